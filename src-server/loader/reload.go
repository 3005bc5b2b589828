package loader

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"cogbot/src-server/interaction"
	"cogbot/src-server/registry"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"
)

// Reload re-reads the roots of kind and replaces the entry whose exact
// identifier is id. Like a full load, the last matching unit in walk order
// wins. Units keyed by a pattern can't be reloaded by identifier.
//
// When no unit on disk declares id the registry is left untouched and
// false is returned.
func (l *Loader) Reload(kind interaction.Kind, id string) bool {
	reg := l.as.Registry(kind)
	if reg == nil {
		slog.Warn("reload: kind has no registry", "kind", kind.String())
		return false
	}

	var found *unit.Record
	for _, root := range l.roots.For(kind) {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		files, err := findUnitFiles(root)
		if err != nil {
			slog.Error("reload: can't walk unit directory", "kind", kind.String(), "dir", root, "error", err)
			continue
		}
		for _, path := range files {
			u, err := unit.ParseFile(path)
			if err != nil {
				slog.Error("reload: can't read unit", "kind", kind.String(), "file", relative(root, path), "error", err)
				continue
			}
			if u.ExactID(kind) != id {
				continue
			}
			_, rec, err := l.build(kind, u)
			if err != nil {
				slog.Error("reload: can't build unit", "kind", kind.String(), "id", id, "file", relative(root, path), "error", err)
				continue
			}
			found = rec
		}
	}

	if found == nil {
		slog.Warn("reload: no unit declares this identifier", "kind", kind.String(), "id", id)
		recordReload(kind, false)
		return false
	}

	if prev, ok := reg.Lookup(id); ok && prev.Unit != nil && prev.Unit.Hash == found.Unit.Hash {
		slog.Debug("reload: manifest unchanged", "kind", kind.String(), "id", id)
	}
	reg.Insert(registry.Exact(id), found)
	recordReload(kind, true)
	utils.Success("reloaded unit", "kind", kind.String(), "id", id, "file", found.Unit.Path)
	return true
}
