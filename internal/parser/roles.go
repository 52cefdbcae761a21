package parser

import "github.com/gubarz/chatmd/internal/chat"

// RoleKind is the closed set of declared roles the parser treats differently
type RoleKind int

const (
	KindSystem RoleKind = iota
	KindUser
	KindAssistant
	KindInclude
	KindThinking
	KindOther
)

func (k RoleKind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindUser:
		return "user"
	case KindAssistant:
		return "assistant"
	case KindInclude:
		return "include"
	case KindThinking:
		return "thinking"
	default:
		return "other"
	}
}

// KindOf maps a declared role name to its kind
func KindOf(role string) RoleKind {
	switch role {
	case "system":
		return KindSystem
	case "user":
		return KindUser
	case "assistant":
		return KindAssistant
	case "include":
		return KindInclude
	case "thinking":
		return KindThinking
	default:
		return KindOther
	}
}

// Resolved is a section paired with the role its content is attributed to
type Resolved struct {
	Section
	Kind RoleKind
	Role chat.Role // empty when Suppressed
}

// Suppressed reports whether the section contributes nothing to the output
func (r Resolved) Suppressed() bool {
	return r.Kind == KindThinking
}

// roleTracker remembers the last role an include section inherits from
type roleTracker struct {
	last chat.Role
}

func newRoleTracker() roleTracker {
	return roleTracker{last: chat.RoleUser}
}

func (t roleTracker) resolve(s Section) (Resolved, roleTracker) {
	r := Resolved{Section: s, Kind: KindOf(s.Role)}
	switch r.Kind {
	case KindThinking:
	case KindInclude:
		r.Role = t.last
	default:
		r.Role = chat.Role(s.Role)
		t.last = r.Role
	}
	return r, t
}

// ResolveRoles computes the effective role of every section in order
func ResolveRoles(sections []Section) []Resolved {
	tracker := newRoleTracker()
	resolved := make([]Resolved, 0, len(sections))
	for _, s := range sections {
		var r Resolved
		r, tracker = tracker.resolve(s)
		resolved = append(resolved, r)
	}
	return resolved
}
