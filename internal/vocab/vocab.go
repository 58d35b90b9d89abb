// Package vocab provides the vocabulary registry: the fixed set of attribute
// groups, their fields, each field's kind, and the enumerated values an enum
// field may take. The registry is built once at process start and treated as
// immutable for the process lifetime; every filter rule and judgment is
// resolved against it, and unknown fields are a validation error, never
// silently ignored.
package vocab

import (
	"fmt"
	"sort"
)

// Group is one of the four logical attribute groups a candidate snapshot
// is assembled from.
type Group string

const (
	GroupStartup     Group = "startup"
	GroupSelection   Group = "selection"
	GroupMotherTheme Group = "mother_theme"
	GroupLandingPage Group = "landing_page"
)

// GroupOrder fixes the iteration order for anything that walks groups.
// Deterministic ordering here keeps evaluator diagnostics and validator
// error lists stable across runs.
var GroupOrder = []Group{GroupStartup, GroupSelection, GroupMotherTheme, GroupLandingPage}

// ParseGroup returns the Group for a raw string, or false when the string
// names no known group.
func ParseGroup(s string) (Group, bool) {
	switch Group(s) {
	case GroupStartup, GroupSelection, GroupMotherTheme, GroupLandingPage:
		return Group(s), true
	}
	return "", false
}

// FieldKind classifies what values a field holds and which constraint
// shapes may be applied to it.
type FieldKind string

const (
	KindEnum    FieldKind = "enum"
	KindNumber  FieldKind = "number"
	KindBoolean FieldKind = "boolean"
	KindText    FieldKind = "text"
)

// ParseFieldKind returns the FieldKind for a raw string, or false when the
// string names no known kind.
func ParseFieldKind(s string) (FieldKind, bool) {
	switch FieldKind(s) {
	case KindEnum, KindNumber, KindBoolean, KindText:
		return FieldKind(s), true
	}
	return "", false
}

// FieldSpec describes one registered field: its name, kind, and for enum
// fields the closed set of allowed values.
type FieldSpec struct {
	Name        string    `yaml:"name"`
	Kind        FieldKind `yaml:"kind"`
	Allowed     []string  `yaml:"allowed,omitempty"`
	Description string    `yaml:"description,omitempty"`
}

// AllowsValue reports whether v is a registered value for this field.
// Only meaningful for enum fields; comparison is case-sensitive exact match
// on the registry-normalized value.
func (f FieldSpec) AllowsValue(v string) bool {
	for _, a := range f.Allowed {
		if a == v {
			return true
		}
	}
	return false
}

// Registry holds the full vocabulary. It is read-only after construction;
// there is no runtime mutation path.
type Registry struct {
	groups map[Group]map[string]FieldSpec
}

// NewRegistry returns an empty registry ready for register calls. Callers
// are expected to finish registration before sharing the registry; once
// shared it must be treated as immutable.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[Group]map[string]FieldSpec)}
}

// Register adds a field spec under a group, replacing any previous spec
// with the same name. It returns an error for enum fields registered
// without allowed values, since an empty enum can never match anything.
func (r *Registry) Register(g Group, spec FieldSpec) error {
	if _, ok := ParseGroup(string(g)); !ok {
		return fmt.Errorf("unknown group %q", g)
	}
	if spec.Name == "" {
		return fmt.Errorf("group %s: field spec with empty name", g)
	}
	if _, ok := ParseFieldKind(string(spec.Kind)); !ok {
		return fmt.Errorf("group %s, field %s: unknown kind %q", g, spec.Name, spec.Kind)
	}
	if spec.Kind == KindEnum && len(spec.Allowed) == 0 {
		return fmt.Errorf("group %s, field %s: enum field without allowed values", g, spec.Name)
	}
	if r.groups[g] == nil {
		r.groups[g] = make(map[string]FieldSpec)
	}
	r.groups[g][spec.Name] = spec
	return nil
}

// mustRegister is for the built-in vocabulary, where a bad spec is a
// programming error.
func (r *Registry) mustRegister(g Group, spec FieldSpec) {
	if err := r.Register(g, spec); err != nil {
		panic(err)
	}
}

// Lookup resolves a (group, field) pair. The second return is false when
// either the group or the field is unknown.
func (r *Registry) Lookup(g Group, field string) (FieldSpec, bool) {
	fields, ok := r.groups[g]
	if !ok {
		return FieldSpec{}, false
	}
	spec, ok := fields[field]
	return spec, ok
}

// HasGroup reports whether any field is registered under the group.
func (r *Registry) HasGroup(g Group) bool {
	return len(r.groups[g]) > 0
}

// Fields returns the field names registered under a group, sorted.
func (r *Registry) Fields(g Group) []string {
	names := make([]string, 0, len(r.groups[g]))
	for name := range r.groups[g] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllowedValues returns the registered enum values for a field, or nil
// when the field is unknown or not enum-backed.
func (r *Registry) AllowedValues(g Group, field string) []string {
	spec, ok := r.Lookup(g, field)
	if !ok || spec.Kind != KindEnum {
		return nil
	}
	return spec.Allowed
}
