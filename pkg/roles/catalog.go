// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package roles defines the ordered catalog of assignable role slots.
package roles

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxRoles is the number of options a Discord select menu can carry.
const MaxRoles = 25

// ReservedPrefix marks keys that belong to the panel's side channel.
const ReservedPrefix = "_"

// Role is one assignable slot.
type Role struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Catalog is an ordered, immutable list of roles.
type Catalog struct {
	roles []Role
	index map[string]int
}

// Manifest is the on-disk catalog layout.
type Manifest struct {
	Roles []Role `yaml:"roles"`
}

// NewCatalog validates roles and returns them as a catalog. A role with no
// label is displayed with its key.
func NewCatalog(roles []Role) (*Catalog, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("roles: catalog is empty")
	}
	if len(roles) > MaxRoles {
		return nil, fmt.Errorf("roles: catalog has %d roles, at most %d are allowed", len(roles), MaxRoles)
	}
	c := &Catalog{
		roles: make([]Role, 0, len(roles)),
		index: make(map[string]int, len(roles)),
	}
	for i, r := range roles {
		key := strings.TrimSpace(r.Key)
		if key == "" {
			return nil, fmt.Errorf("roles: role %d has an empty key", i)
		}
		if strings.HasPrefix(key, ReservedPrefix) {
			return nil, fmt.Errorf("roles: key %q uses the reserved prefix %q", key, ReservedPrefix)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("roles: duplicate key %q", key)
		}
		label := strings.TrimSpace(r.Label)
		if label == "" {
			label = key
		}
		c.index[key] = len(c.roles)
		c.roles = append(c.roles, Role{Key: key, Label: label})
	}
	return c, nil
}

// Default returns the eight-slot party catalog: two tanks, two healers and
// four damage dealers.
func Default() *Catalog {
	c, err := NewCatalog([]Role{
		{Key: "MT", Label: "MT"},
		{Key: "ST", Label: "ST"},
		{Key: "H1", Label: "H1"},
		{Key: "H2", Label: "H2"},
		{Key: "D1", Label: "D1"},
		{Key: "D2", Label: "D2"},
		{Key: "D3", Label: "D3"},
		{Key: "D4", Label: "D4"},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads a YAML manifest from path. An empty path yields the
// default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role catalog: %w", err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("parse role catalog: %w", err)
	}
	return NewCatalog(manifest.Roles)
}

// Roles returns a copy of the roles in render order.
func (c *Catalog) Roles() []Role {
	out := make([]Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// Len returns the number of roles.
func (c *Catalog) Len() int { return len(c.roles) }

// Has reports whether key is a role in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Manifest returns the catalog in its on-disk layout.
func (c *Catalog) Manifest() Manifest {
	return Manifest{Roles: c.Roles()}
}
