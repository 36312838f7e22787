package state

import (
	"testing"
)

func TestAssignMovesPersonToNewRole(t *testing.T) {
	a := New().Assign("H1", "U")
	b := a.Assign("D1", "U")

	if _, ok := b.Assignee("H1"); ok {
		t.Error("expected H1 to be vacated")
	}
	if name, _ := b.Assignee("D1"); name != "U" {
		t.Errorf("expected D1=U, got %q", name)
	}
	if b.Len() != 1 {
		t.Errorf("expected exactly one role, got %v", b.Roles())
	}
	if name, _ := a.Assignee("H1"); name != "U" {
		t.Error("Assign must not modify the receiver")
	}
}

func TestAssignOverwritesHolder(t *testing.T) {
	a := FromRoles(map[string]string{"H1": "Q"})
	b := a.Assign("H1", "P")

	if name, _ := b.Assignee("H1"); name != "P" {
		t.Errorf("expected H1=P, got %q", name)
	}
	if _, ok := b.RoleOf("Q"); ok {
		t.Error("displaced holder must be unassigned, not moved")
	}
}

func TestSingleRoleInvariant(t *testing.T) {
	keys := []string{"MT", "ST", "H1", "H2", "D1", "D2", "D3", "D4"}
	people := []string{"A", "B", "C"}

	a := New()
	for i := 0; i < 50; i++ {
		a = a.Assign(keys[(i*3)%len(keys)], people[i%len(people)])
		seen := map[string]string{}
		for role, name := range a.Roles() {
			if prev, dup := seen[name]; dup {
				t.Fatalf("step %d: %s holds both %s and %s", i, name, prev, role)
			}
			seen[name] = role
		}
	}
}

func TestAssignEmptyNameVacates(t *testing.T) {
	a := FromRoles(map[string]string{"MT": "A", "ST": "B"})
	b := a.Assign("MT", "")
	if _, ok := b.Assignee("MT"); ok {
		t.Error("expected MT to be vacated")
	}
	if name, _ := b.Assignee("ST"); name != "B" {
		t.Error("expected ST to be untouched")
	}
}

func TestUnassign(t *testing.T) {
	a := FromRoles(map[string]string{"MT": "A", "ST": "B"}).Unassign("A")
	if _, ok := a.RoleOf("A"); ok {
		t.Error("expected A to hold no role")
	}
	if a.Len() != 1 {
		t.Errorf("expected one role left, got %v", a.Roles())
	}
}

func TestFromRolesDropsEmptyAndDuplicates(t *testing.T) {
	a := FromRoles(map[string]string{"MT": "", "ST": "A", "H1": "A", "": "B"})
	if _, ok := a.Assignee("MT"); ok {
		t.Error("empty names must not be stored")
	}
	if a.Len() != 1 {
		t.Fatalf("expected one role, got %v", a.Roles())
	}
	if role, _ := a.RoleOf("A"); role != "H1" {
		t.Errorf("expected A to keep the first key H1, got %q", role)
	}
}

func TestWithActive(t *testing.T) {
	a := New().WithActive("123")
	if id, ok := a.Active(); !ok || id != "123" {
		t.Errorf("expected active 123, got %q", id)
	}
	if _, ok := a.WithActive("").Active(); ok {
		t.Error("expected empty id to clear the active person")
	}
	if _, ok := a.RoleOf("123"); ok {
		t.Error("active person must not count as a role holder")
	}
}

func TestPrune(t *testing.T) {
	a := FromRoles(map[string]string{"MT": "A", "OLD": "B"}).WithActive("9")
	b := a.Prune(func(role string) bool { return role != "OLD" })
	if _, ok := b.Assignee("OLD"); ok {
		t.Error("expected OLD to be pruned")
	}
	if id, _ := b.Active(); id != "9" {
		t.Error("prune must keep the active person")
	}
}

func TestEqual(t *testing.T) {
	a := FromRoles(map[string]string{"MT": "A"}).WithActive("1")
	b := New().Assign("MT", "A").WithActive("1")
	if !a.Equal(b) {
		t.Error("expected assignments to be equal")
	}
	if a.Equal(b.WithActive("2")) {
		t.Error("different active person must not be equal")
	}
	if !(Assignment{}).Equal(New()) {
		t.Error("zero value must equal New()")
	}
}
