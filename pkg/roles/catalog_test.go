package roles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	want := []string{"MT", "ST", "H1", "H2", "D1", "D2", "D3", "D4"}
	got := c.Roles()
	if len(got) != len(want) {
		t.Fatalf("expected %d roles, got %d", len(want), len(got))
	}
	for i, key := range want {
		if got[i].Key != key {
			t.Errorf("role %d: expected %s, got %s", i, key, got[i].Key)
		}
		if !c.Has(key) {
			t.Errorf("expected catalog to have %s", key)
		}
	}
	if c.Has("_activePerson") {
		t.Error("side-channel key must not be a role")
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tooMany := make([]Role, MaxRoles+1)
	for i := range tooMany {
		tooMany[i] = Role{Key: "R" + strings.Repeat("x", i+1)}
	}

	tests := []struct {
		name    string
		roles   []Role
		wantErr string
	}{
		{name: "empty", roles: nil, wantErr: "empty"},
		{name: "blank key", roles: []Role{{Key: " "}}, wantErr: "empty key"},
		{name: "reserved", roles: []Role{{Key: "_activePerson"}}, wantErr: "reserved"},
		{name: "duplicate", roles: []Role{{Key: "MT"}, {Key: "MT"}}, wantErr: "duplicate"},
		{name: "too many", roles: tooMany, wantErr: "at most"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.roles)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLabelFallsBackToKey(t *testing.T) {
	c, err := NewCatalog([]Role{{Key: "tank"}, {Key: "heal", Label: "Healer"}})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	roles := c.Roles()
	if roles[0].Label != "tank" {
		t.Errorf("expected label tank, got %q", roles[0].Label)
	}
	if roles[1].Label != "Healer" {
		t.Errorf("expected label Healer, got %q", roles[1].Label)
	}
}

func TestRolesReturnsCopy(t *testing.T) {
	c := Default()
	roles := c.Roles()
	roles[0].Key = "changed"
	if c.Roles()[0].Key != "MT" {
		t.Error("mutating Roles() result must not change the catalog")
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	manifest := `
roles:
  - key: tank
    label: "🛡️ Tank"
  - key: healer
    label: "💚 Healer"
  - key: dps
`
	if err := os.WriteFile(path, []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 roles, got %d", c.Len())
	}
	roles := c.Roles()
	if roles[0].Label != "🛡️ Tank" {
		t.Errorf("unexpected tank label %q", roles[0].Label)
	}
	if roles[2].Label != "dps" {
		t.Errorf("unexpected dps label %q", roles[2].Label)
	}
}

func TestLoadCatalogDefaultsAndErrors(t *testing.T) {
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog(\"\") failed: %v", err)
	}
	if c.Len() != 8 {
		t.Errorf("expected default catalog, got %d roles", c.Len())
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("roles: [unclosed"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := LoadCatalog(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(Default().Manifest())
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	path := filepath.Join(t.TempDir(), "roles.yaml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Len() != Default().Len() {
		t.Errorf("expected %d roles, got %d", Default().Len(), c.Len())
	}
}
