package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"cogbot/src-server/unit"
	"cogbot/src-server/utils"
)

// EventBinder is the part of *discordgo.Session listeners are bound with.
type EventBinder interface {
	AddHandler(handler interface{}) func()
	AddHandlerOnce(handler interface{}) func()
}

type pendingListener struct {
	u *unit.Unit
	h any
}

func (l *Loader) buildListener(u *unit.Unit) (string, any, error) {
	name, err := u.EventName()
	if err != nil {
		return "", nil, err
	}
	factory, ok := l.table.Listener(u.Handler)
	if !ok {
		return "", nil, fmt.Errorf("%w: listener %q is not in the handler table", unit.ErrNoHandler, u.Handler)
	}
	h, err := factory(l.as, u)
	if err != nil {
		return "", nil, fmt.Errorf("listener %q: %w", u.Handler, err)
	}
	if h == nil {
		return "", nil, fmt.Errorf("%w: listener %q built nothing", unit.ErrNoHandler, u.Handler)
	}
	return name, h, nil
}

func (l *Loader) bind(b EventBinder, u *unit.Unit, h any) func() {
	if u.Event.Once {
		return b.AddHandlerOnce(h)
	}
	return b.AddHandler(h)
}

// BindListeners loads every event listener unit and binds it to b.
func (l *Loader) BindListeners(b EventBinder) Report {
	l.listenersM.Lock()
	defer l.listenersM.Unlock()
	l.binder = b

	var report Report
	for _, root := range l.roots.Events {
		if !ensureRoot(root, "event") {
			continue
		}
		files, err := findUnitFiles(root)
		if err != nil {
			slog.Error("can't walk event directory", "dir", root, "error", err)
			continue
		}
		report.Files += len(files)
		for _, path := range files {
			file := relative(root, path)
			u, err := unit.ParseFile(path)
			if err != nil {
				slog.Error("can't load event", "file", file, "error", err)
				report.Failed++
				continue
			}
			name, h, err := l.buildListener(u)
			switch {
			case err == nil:
			case isSkip(err):
				slog.Warn("event is missing required properties (name or handler)", "file", file, "error", err)
				report.Skipped++
				continue
			default:
				slog.Error("can't load event", "file", file, "error", err)
				report.Failed++
				continue
			}
			l.listeners[name] = append(l.listeners[name], l.bind(b, u, h))
			report.Loaded++
			utils.Success("loaded event", "event", name, "once", u.Event.Once, "file", file)
		}
	}
	return report
}

// ReloadListener unbinds every listener of the event name and binds the
// ones currently on disk. Nothing changes when no unit listens to name.
func (l *Loader) ReloadListener(name string) bool {
	l.listenersM.Lock()
	defer l.listenersM.Unlock()
	if l.binder == nil {
		slog.Warn("reload: listeners were never bound", "event", name)
		return false
	}

	var fresh []pendingListener
	for _, root := range l.roots.Events {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		files, err := findUnitFiles(root)
		if err != nil {
			slog.Error("reload: can't walk event directory", "dir", root, "error", err)
			continue
		}
		for _, path := range files {
			u, err := unit.ParseFile(path)
			if err != nil {
				slog.Error("reload: can't read event", "file", relative(root, path), "error", err)
				continue
			}
			if u.Event == nil || u.Event.Name != name {
				continue
			}
			_, h, err := l.buildListener(u)
			if err != nil {
				slog.Error("reload: can't build event", "event", name, "file", relative(root, path), "error", err)
				continue
			}
			fresh = append(fresh, pendingListener{u: u, h: h})
		}
	}

	if len(fresh) == 0 {
		slog.Warn("reload: no unit listens to this event", "event", name)
		return false
	}

	for _, remove := range l.listeners[name] {
		remove()
	}
	removers := make([]func(), 0, len(fresh))
	for _, p := range fresh {
		removers = append(removers, l.bind(l.binder, p.u, p.h))
	}
	l.listeners[name] = removers
	utils.Success("reloaded event", "event", name, "listeners", len(fresh))
	return true
}
