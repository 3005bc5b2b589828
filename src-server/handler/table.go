package handler

import (
	"fmt"
	"slices"
	"sync"

	"cogbot/src-server/unit"
	"cogbot/src-server/utils"
)

// Factory builds the handler of an interaction unit from its manifest.
type Factory func(as *utils.AppState, u *unit.Unit) (unit.Handler, error)

// ListenerFactory builds a discordgo event handler (for example
// func(*discordgo.Session, *discordgo.Ready)) from a listener unit.
type ListenerFactory func(as *utils.AppState, u *unit.Unit) (any, error)

// Table is the registration table unit manifests refer to by name. Handler
// packages fill it from their Init functions, main calls them in order.
type Table struct {
	mu        sync.RWMutex
	factories map[string]Factory
	listeners map[string]ListenerFactory
}

func NewTable() *Table {
	return &Table{
		factories: make(map[string]Factory),
		listeners: make(map[string]ListenerFactory),
	}
}

// Register makes an interaction handler available under name. Registering
// the same name twice is a programming error.
func (t *Table) Register(name string, f Factory) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.factories[name]; ok {
		panic(fmt.Sprintf("handler: %q registered twice", name))
	}
	t.factories[name] = f
}

// Listen makes an event listener available under name.
func (t *Table) Listen(name string, f ListenerFactory) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.listeners[name]; ok {
		panic(fmt.Sprintf("handler: listener %q registered twice", name))
	}
	t.listeners[name] = f
}

func (t *Table) Factory(name string) (Factory, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.factories[name]
	return f, ok
}

func (t *Table) Listener(name string) (ListenerFactory, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.listeners[name]
	return f, ok
}

// Names lists every registered interaction handler, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.factories))
	for name := range t.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
