package dune

import (
	"iter"
	"strings"
)

// Stanza is a fragment of a dune file.
type Stanza interface {
	Lines() iter.Seq[string]
}

// Comment is a block of `;` comment lines. Each element is one line without
// the leading "; ".
type Comment []string

func (c Comment) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, text := range c {
			line := ";"
			if text != "" {
				line = "; " + text
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Blank is an empty separator line.
type Blank struct{}

func (Blank) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		yield("")
	}
}

// Dep is one entry of a rule's deps field. A named dep renders as
// `(:name path)` and can be referenced from the action as %{name}.
type Dep struct {
	Name string
	Path string
}

func (d Dep) String() string {
	if d.Name == "" {
		return d.Path
	}
	return "(:" + d.Name + " " + d.Path + ")"
}

// Rule is a `(rule ...)` stanza.
type Rule struct {
	Targets []string
	Deps    []Dep
	// Action is the s-expression inside the action field, e.g.
	// `(run %{bin:cppo} ...)`.
	Action string
}

func (r Rule) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		deps := make([]string, len(r.Deps))
		for i, d := range r.Deps {
			deps[i] = d.String()
		}
		lines := []string{
			"(rule",
			field("targets", strings.Join(r.Targets, " ")),
			field("deps", strings.Join(deps, " ")),
			field("action", r.Action),
			")",
		}
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Library is a `(library ...)` stanza. Empty fields are left out; Wrapped is
// only written when set.
type Library struct {
	Name       string
	PublicName string
	// Preprocess lists ppx rewriters, rendered as (preprocess (pps ...)).
	Preprocess []string
	Libraries  []string
	Wrapped    *bool
}

func (l Library) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		lines := []string{"(library", field("name", l.Name)}
		if l.PublicName != "" {
			lines = append(lines, field("public_name", l.PublicName))
		}
		if len(l.Preprocess) > 0 {
			lines = append(lines, field("preprocess", "(pps "+strings.Join(l.Preprocess, " ")+")"))
		}
		if len(l.Libraries) > 0 {
			lines = append(lines, field("libraries", strings.Join(l.Libraries, " ")))
		}
		if l.Wrapped != nil {
			wrapped := "false"
			if *l.Wrapped {
				wrapped = "true"
			}
			lines = append(lines, field("wrapped", wrapped))
		}
		lines = append(lines, ")")
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// field renders one indented `(name value)` line of a stanza.
func field(name, value string) string {
	return "  (" + name + " " + value + ")"
}

// Concat chains the lines of several stanzas into one sequence.
func Concat(stanzas ...Stanza) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range stanzas {
			for line := range s.Lines() {
				if !yield(line) {
					return
				}
			}
		}
	}
}
