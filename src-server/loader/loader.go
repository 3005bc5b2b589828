package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"cogbot/src-server/handler"
	"cogbot/src-server/interaction"
	"cogbot/src-server/metric"
	"cogbot/src-server/registry"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"golang.org/x/sync/errgroup"
)

// Roots lists the directories each kind is loaded from. Later roots of a
// kind overwrite earlier ones on identifier collision.
type Roots struct {
	Commands    []string
	Buttons     []string
	Modals      []string
	SelectMenus []string
	Events      []string
}

// DefaultRoots lays the kinds out below unitsDir. Select menus are also
// read from buttons/applications, where application forms keep their
// menus next to the buttons that open them.
func DefaultRoots(unitsDir string) Roots {
	return Roots{
		Commands: []string{filepath.Join(unitsDir, "commands")},
		Buttons:  []string{filepath.Join(unitsDir, "buttons")},
		Modals:   []string{filepath.Join(unitsDir, "modals")},
		SelectMenus: []string{
			filepath.Join(unitsDir, "menus"),
			filepath.Join(unitsDir, "buttons", "applications"),
		},
		Events: []string{filepath.Join(unitsDir, "events")},
	}
}

func (r Roots) For(kind interaction.Kind) []string {
	switch kind {
	case interaction.KindCommand, interaction.KindAutocomplete:
		return r.Commands
	case interaction.KindButton:
		return r.Buttons
	case interaction.KindModal:
		return r.Modals
	case interaction.KindSelectMenu:
		return r.SelectMenus
	}
	return nil
}

// Report sums up one load.
type Report struct {
	Files   int
	Loaded  int
	Skipped int // readable but missing identifier or handler
	Failed  int // unreadable, invalid, or the factory failed
}

func (r *Report) add(o Report) {
	r.Files += o.Files
	r.Loaded += o.Loaded
	r.Skipped += o.Skipped
	r.Failed += o.Failed
}

// Loader turns unit manifests into registry records.
type Loader struct {
	as    *utils.AppState
	table *handler.Table
	roots Roots

	listenersM sync.Mutex
	listeners  map[string][]func() // event name -> remove funcs
	binder     EventBinder
}

var _ utils.Reloader = (*Loader)(nil)

func New(as *utils.AppState, table *handler.Table, roots Roots) *Loader {
	return &Loader{
		as:        as,
		table:     table,
		roots:     roots,
		listeners: make(map[string][]func()),
	}
}

// build resolves the identifier and the handler of u. Errors wrapping
// unit.ErrNoIdentifier or unit.ErrNoHandler mean "skip with a warning".
func (l *Loader) build(kind interaction.Kind, u *unit.Unit) (registry.Identifier, *unit.Record, error) {
	id, err := u.Identifier(kind)
	if err != nil {
		return nil, nil, err
	}
	factory, ok := l.table.Factory(u.Handler)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q is not in the handler table", unit.ErrNoHandler, u.Handler)
	}
	h, err := factory(l.as, u)
	if err != nil {
		return nil, nil, fmt.Errorf("handler %q: %w", u.Handler, err)
	}
	if h.Invoke == nil {
		return nil, nil, fmt.Errorf("%w: %q built no invoke func", unit.ErrNoHandler, u.Handler)
	}
	return id, &unit.Record{Unit: u, Handler: h}, nil
}

func isSkip(err error) bool {
	return errors.Is(err, unit.ErrNoIdentifier) || errors.Is(err, unit.ErrNoHandler)
}

// LoadInto loads every unit below roots into reg, in root order. Existing
// entries are only ever added to or overwritten, never removed.
func (l *Loader) LoadInto(kind interaction.Kind, reg *unit.Registry, roots ...string) Report {
	var total Report
	for _, root := range roots {
		total.add(l.loadRoot(kind, reg, root))
	}
	metric.SetUnitsLoaded(kind.String(), reg.Len())
	slog.Info("units loaded",
		"kind", kind.String(),
		"files", total.Files,
		"loaded", total.Loaded,
		"skipped", total.Skipped,
		"failed", total.Failed,
		"registry_size", reg.Len(),
	)
	return total
}

func (l *Loader) loadRoot(kind interaction.Kind, reg *unit.Registry, root string) Report {
	var report Report
	if !ensureRoot(root, kind.String()) {
		return report
	}
	files, err := findUnitFiles(root)
	if err != nil {
		slog.Error("can't walk unit directory", "kind", kind.String(), "dir", root, "error", err)
		return report
	}
	report.Files = len(files)
	slog.Info("found unit files", "kind", kind.String(), "dir", root, "count", len(files))

	for _, path := range files {
		file := relative(root, path)

		u, err := unit.ParseFile(path)
		if err != nil {
			slog.Error("can't load unit", "kind", kind.String(), "file", file, "error", err)
			report.Failed++
			continue
		}

		id, rec, err := l.build(kind, u)
		switch {
		case err == nil:
		case isSkip(err):
			slog.Warn("unit is missing required properties (identifier or handler)",
				"kind", kind.String(), "file", file, "error", err)
			report.Skipped++
			continue
		default:
			slog.Error("can't load unit", "kind", kind.String(), "file", file, "error", err)
			report.Failed++
			continue
		}

		reg.Insert(id, rec)
		report.Loaded++
		utils.Success("loaded unit", "kind", kind.String(), "id", id.String(), "file", file)
	}
	return report
}

// LoadAll fills the four interaction registries from their roots. The
// kinds are independent and load concurrently.
func (l *Loader) LoadAll() map[interaction.Kind]Report {
	var (
		g        errgroup.Group
		reportsM sync.Mutex
		reports  = make(map[interaction.Kind]Report)
	)
	for _, kind := range interaction.ReloadableKinds() {
		g.Go(func() error {
			report := l.LoadInto(kind, l.as.Registry(kind), l.roots.For(kind)...)
			reportsM.Lock()
			reports[kind] = report
			reportsM.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

// ReloadAll re-reads every root. Units removed from disk stay registered.
func (l *Loader) ReloadAll() {
	slog.Info("reloading all units")
	l.LoadAll()
	metric.RecordReload("all", true)
}

func recordReload(kind interaction.Kind, ok bool) {
	metric.RecordReload(kind.String(), ok)
}
