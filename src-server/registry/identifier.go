package registry

import (
	"regexp"
)

// Identifier is the key a handler is registered under. It is either an
// Exact string or a Pattern.
type Identifier interface {
	String() string
	isIdentifier()
}

// Exact matches a single custom id / command name.
type Exact string

func (e Exact) String() string { return string(e) }
func (Exact) isIdentifier()    {}

// Pattern matches every key its predicate accepts.
type Pattern struct {
	// shown in logs and diagnostics
	Name  string
	Match func(key string) bool
}

func (p Pattern) String() string { return p.Name }
func (Pattern) isIdentifier()    {}

// Regexp wraps a compiled regular expression into a Pattern.
func Regexp(re *regexp.Regexp) Pattern {
	return Pattern{
		Name:  re.String(),
		Match: re.MatchString,
	}
}

// Predicate wraps an arbitrary function into a Pattern.
func Predicate(name string, fn func(key string) bool) Pattern {
	return Pattern{
		Name:  name,
		Match: fn,
	}
}
