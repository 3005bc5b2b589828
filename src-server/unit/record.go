package unit

import (
	"cogbot/src-server/interaction"
	"cogbot/src-server/registry"
)

// Handler is what a factory in the handler table builds from a unit.
type Handler struct {
	Invoke interaction.InvokeFunc
	// commands only, nil when the command has no autocompleted option
	Autocomplete interaction.InvokeFunc
}

// Record is a loaded unit, the value type of every interaction registry.
type Record struct {
	Unit *Unit
	Handler
}

// Registry is the registry type shared by the four interaction kinds.
type Registry = registry.Registry[*Record]

func NewRegistry() *Registry {
	return registry.New[*Record]()
}
