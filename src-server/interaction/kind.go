package interaction

import "fmt"

// Kind is the category of an inbound interaction. Each kind owns its own
// registry, except Autocomplete which is served from the command registry.
type Kind int

const (
	KindCommand Kind = iota
	KindButton
	KindModal
	KindSelectMenu
	KindAutocomplete
)

var kindNames = map[Kind]string{
	KindCommand:      "command",
	KindButton:       "button",
	KindModal:        "modal",
	KindSelectMenu:   "select_menu",
	KindAutocomplete: "autocomplete",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of String, used by reload triggers.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("ParseKind: unknown kind %q", s)
}

// ReloadableKinds lists the kinds that own a registry on disk.
func ReloadableKinds() []Kind {
	return []Kind{KindCommand, KindButton, KindModal, KindSelectMenu}
}
