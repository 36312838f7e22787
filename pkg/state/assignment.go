// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package state holds the role assignment carried by a panel message and
// the codec that embeds it in the message text.
//
// An Assignment is a value: every mutation returns a new Assignment and
// leaves the receiver untouched. The only persistent copy lives inside the
// rendered message, so a handler always decodes, mutates and re-encodes.
package state

import (
	"maps"
	"sort"
)

// Assignment maps role keys to assignee display names and carries the id
// of the person the next role selection applies to.
type Assignment struct {
	roles  map[string]string
	active string
}

// New returns an empty assignment.
func New() Assignment {
	return Assignment{roles: map[string]string{}}
}

// FromRoles builds an assignment from a role->name map. Empty names are
// dropped and a name held by several roles keeps only the
// lexicographically first role key.
func FromRoles(roles map[string]string) Assignment {
	a := New()
	keys := make([]string, 0, len(roles))
	for k := range roles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	seen := make(map[string]bool, len(roles))
	for _, k := range keys {
		name := roles[k]
		if k == "" || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		a.roles[k] = name
	}
	return a
}

func (a Assignment) clone() Assignment {
	out := Assignment{roles: make(map[string]string, len(a.roles)+1), active: a.active}
	maps.Copy(out.roles, a.roles)
	return out
}

// Assignee returns the name assigned to role.
func (a Assignment) Assignee(role string) (string, bool) {
	name, ok := a.roles[role]
	return name, ok
}

// RoleOf returns the role key currently held by name.
func (a Assignment) RoleOf(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	for role, holder := range a.roles {
		if holder == name {
			return role, true
		}
	}
	return "", false
}

// Roles returns a copy of the role->name map.
func (a Assignment) Roles() map[string]string {
	out := make(map[string]string, len(a.roles))
	maps.Copy(out, a.roles)
	return out
}

// Len returns the number of assigned roles.
func (a Assignment) Len() int { return len(a.roles) }

// Active returns the active person id, if one is set.
func (a Assignment) Active() (string, bool) {
	return a.active, a.active != ""
}

// Assign places name in role. The name is first removed from any role it
// holds, and whoever held role before is unassigned. An empty name only
// vacates role.
func (a Assignment) Assign(role, name string) Assignment {
	out := a.Unassign(name)
	delete(out.roles, role)
	if name != "" && role != "" {
		out.roles[role] = name
	}
	return out
}

// Unassign removes name from whichever role it holds. An empty name holds
// no role.
func (a Assignment) Unassign(name string) Assignment {
	out := a.clone()
	if name == "" {
		return out
	}
	for k, holder := range out.roles {
		if holder == name {
			delete(out.roles, k)
		}
	}
	return out
}

// WithActive returns a copy whose active person is id. An empty id clears it.
func (a Assignment) WithActive(id string) Assignment {
	out := a.clone()
	out.active = id
	return out
}

// Prune drops every role key for which keep returns false.
func (a Assignment) Prune(keep func(role string) bool) Assignment {
	out := a.clone()
	for k := range out.roles {
		if !keep(k) {
			delete(out.roles, k)
		}
	}
	return out
}

// Equal reports whether both assignments hold the same roles and active person.
func (a Assignment) Equal(b Assignment) bool {
	return a.active == b.active && maps.Equal(a.roles, b.roles)
}
