package ability

import (
	"fmt"
	"sort"
)

// Lookup finds definitions by id
type Lookup interface {
	Get(id ID) (*Definition, bool)
}

// Severity ranks an audit finding
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one problem found in authored data
type Finding struct {
	Ability  ID
	Severity Severity
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] ability %d: %s", f.Severity, f.Ability, f.Message)
}

// FindSupersedeCycle walks every superseded-by link reachable from start and
// returns the ids forming the first cycle found, starting and ending at the
// repeated id. It returns nil when the graph below start is acyclic.
func FindSupersedeCycle(lookup Lookup, start ID) []ID {
	const (
		unseen = iota
		onPath
		done
	)
	state := make(map[ID]int)
	var path []ID

	var visit func(id ID) []ID
	visit = func(id ID) []ID {
		switch state[id] {
		case onPath:
			for i, p := range path {
				if p == id {
					cycle := append([]ID(nil), path[i:]...)
					return append(cycle, id)
				}
			}
		case done:
			return nil
		}

		def, ok := lookup.Get(id)
		if !ok {
			state[id] = done
			return nil
		}

		state[id] = onPath
		path = append(path, id)
		for _, next := range def.SupersededBy() {
			if cycle := visit(next); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		state[id] = done
		return nil
	}

	return visit(start)
}

// Audit checks a set of definitions for authoring mistakes. Supersede
// cycles are errors; dangling references and missing messages are warnings.
func Audit(defs []*Definition) []Finding {
	byID := make(mapLookup, len(defs))
	for _, def := range defs {
		byID[def.ID] = def
	}

	var findings []Finding
	add := func(id ID, sev Severity, format string, args ...any) {
		findings = append(findings, Finding{Ability: id, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	reported := make(map[string]bool)
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			add(def.ID, SeverityError, "%v", err)
		}

		var union TypeFlags
		for _, wt := range def.Types {
			union |= wt.Type.Flag()
		}
		if union != def.TypeFlags {
			add(def.ID, SeverityError, "type flags %v do not match weighted types", def.TypeFlags)
		}

		if cycle := FindSupersedeCycle(byID, def.ID); cycle != nil {
			key := cycleKey(cycle)
			if !reported[key] {
				reported[key] = true
				add(def.ID, SeverityError, "supersede cycle %v", cycle)
			}
		}

		for _, next := range def.SupersededBy() {
			if _, ok := byID[next]; !ok {
				add(def.ID, SeverityWarning, "superseded by unknown ability %d", next)
			}
		}
		for _, entry := range def.DataOfKind(DataParent) {
			if _, ok := byID[ID(entry.Vnum)]; !ok {
				add(def.ID, SeverityWarning, "parent ability %d does not exist", entry.Vnum)
			}
		}
		if def.HasMastery() {
			if _, ok := byID[def.MasteryAbility]; !ok {
				add(def.ID, SeverityWarning, "mastery ability %d does not exist", def.MasteryAbility)
			}
		}
		for _, h := range def.Hooks {
			if h.Trigger == HookAbility && h.Value != AnyValue {
				if _, ok := byID[ID(h.Value)]; !ok {
					add(def.ID, SeverityWarning, "hooks unknown ability %d", h.Value)
				}
			}
		}

		if def.IsOverTime() {
			if _, ok := def.Message(MsgBeginToChar, 0); !ok {
				add(def.ID, SeverityWarning, "over-time ability has no begin message")
			}
			if !def.HasTickMessage(0) {
				add(def.ID, SeverityWarning, "over-time ability has no tick messages")
			}
		}
		if def.HasType(TypeDOT) && def.MaxStacks == 0 {
			add(def.ID, SeverityWarning, "dot ability has no max stacks; it will never stack")
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Ability < findings[j].Ability
	})
	return findings
}

// HasErrors reports whether any finding is an error
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

type mapLookup map[ID]*Definition

func (m mapLookup) Get(id ID) (*Definition, bool) {
	def, ok := m[id]
	return def, ok
}

// cycleKey identifies a cycle regardless of which member it was found from
func cycleKey(cycle []ID) string {
	members := append([]ID(nil), cycle[:len(cycle)-1]...)
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
	return fmt.Sprint(members)
}
