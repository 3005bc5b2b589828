package unit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cogbot/src-server/interaction"
	"cogbot/src-server/registry"
)

// Extension of unit manifest files. Everything else under a unit root is
// ignored.
const Extension = ".toml"

var (
	ErrNoIdentifier = errors.New("unit has no identifier")
	ErrNoHandler    = errors.New("unit has no handler")
)

// Unit is one manifest file on disk.
type Unit struct {
	// name in the handler table
	Handler string `toml:"handler"`

	// at most one of these three, for buttons, modals and select menus
	CustomID        string `toml:"custom_id"`
	CustomIDPattern string `toml:"custom_id_pattern"`
	CustomIDPrefix  string `toml:"custom_id_prefix"`

	Params  map[string]any `toml:"params"`
	Command *Command       `toml:"command"`
	Event   *Event         `toml:"event"`

	// filled by the decoder
	Path string `toml:"-"`
	Hash string `toml:"-"`
}

// Event binds a gateway event listener.
type Event struct {
	Name string `toml:"name"`
	Once bool   `toml:"once"`
}

// Identifier derives the registry key of the unit for the given kind.
// ErrNoIdentifier and ErrNoHandler mark a malformed but readable unit,
// any other error means the unit can't be used at all.
func (u *Unit) Identifier(kind interaction.Kind) (registry.Identifier, error) {
	if strings.TrimSpace(u.Handler) == "" {
		return nil, ErrNoHandler
	}

	if kind == interaction.KindCommand {
		if u.Command == nil || strings.TrimSpace(u.Command.Name) == "" {
			return nil, ErrNoIdentifier
		}
		return registry.Exact(u.Command.Name), nil
	}

	set := 0
	for _, s := range []string{u.CustomID, u.CustomIDPattern, u.CustomIDPrefix} {
		if s != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, ErrNoIdentifier
	case set > 1:
		return nil, fmt.Errorf("(*Unit).Identifier: custom_id, custom_id_pattern and custom_id_prefix are mutually exclusive")
	}

	switch {
	case u.CustomID != "":
		return registry.Exact(u.CustomID), nil
	case u.CustomIDPattern != "":
		re, err := regexp.Compile(u.CustomIDPattern)
		if err != nil {
			return nil, fmt.Errorf("(*Unit).Identifier: invalid custom_id_pattern: %w", err)
		}
		return registry.Regexp(re), nil
	default:
		prefix := u.CustomIDPrefix
		return registry.Predicate("prefix:"+prefix, func(key string) bool {
			return strings.HasPrefix(key, prefix)
		}), nil
	}
}

// ExactID returns the exact identifier of the unit for kind, or "" when
// the unit is keyed by a pattern or is malformed.
func (u *Unit) ExactID(kind interaction.Kind) string {
	id, err := u.Identifier(kind)
	if err != nil {
		return ""
	}
	if exact, ok := id.(registry.Exact); ok {
		return string(exact)
	}
	return ""
}

// EventName validates a listener unit and returns the event it binds to.
func (u *Unit) EventName() (string, error) {
	if strings.TrimSpace(u.Handler) == "" {
		return "", ErrNoHandler
	}
	if u.Event == nil || strings.TrimSpace(u.Event.Name) == "" {
		return "", ErrNoIdentifier
	}
	return u.Event.Name, nil
}

// Param returns a string parameter, or def when it's missing or not a
// string.
func (u *Unit) Param(key, def string) string {
	if v, ok := u.Params[key].(string); ok {
		return v
	}
	return def
}

// IntParam returns an integer parameter, or def.
func (u *Unit) IntParam(key string, def int) int {
	switch v := u.Params[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// BoolParam returns a boolean parameter, or def.
func (u *Unit) BoolParam(key string, def bool) bool {
	if v, ok := u.Params[key].(bool); ok {
		return v
	}
	return def
}
