// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package render turns an assignment into the platform-neutral panel that
// is written back to the message.
package render

import (
	"strings"

	"github.com/jllopis/rolepanel/pkg/roles"
	"github.com/jllopis/rolepanel/pkg/state"
)

// Custom ids of the two select menus. The router dispatches on them.
const (
	RolePickerID   = "role_select"
	PersonPickerID = "user_select"
)

// Texts holds every user-visible string of the panel.
type Texts struct {
	Title             string
	AssignedTitle     string
	Placeholder       string
	BlobLabel         string
	RolePlaceholder   string
	PersonPlaceholder string
	Color             int
}

// DefaultTexts returns the stock Cantonese wording.
func DefaultTexts() Texts {
	return Texts{
		Title:             "📊 職能選擇",
		AssignedTitle:     "📊 已選擇職能",
		Placeholder:       "冇人做",
		BlobLabel:         "🧾 Base64 資料：",
		RolePlaceholder:   "選擇職能",
		PersonPlaceholder: "選擇用戶",
		Color:             0x00AE86,
	}
}

func (t Texts) withDefaults() Texts {
	d := DefaultTexts()
	if t.Title == "" {
		t.Title = d.Title
	}
	if t.AssignedTitle == "" {
		t.AssignedTitle = d.AssignedTitle
	}
	if t.Placeholder == "" {
		t.Placeholder = d.Placeholder
	}
	if t.BlobLabel == "" {
		t.BlobLabel = d.BlobLabel
	}
	if t.RolePlaceholder == "" {
		t.RolePlaceholder = d.RolePlaceholder
	}
	if t.PersonPlaceholder == "" {
		t.PersonPlaceholder = d.PersonPlaceholder
	}
	if t.Color == 0 {
		t.Color = d.Color
	}
	return t
}

// Person identifies someone on the platform.
type Person struct {
	ID   string
	Name string
}

// Option is one entry of the role picker.
type Option struct {
	Label   string
	Value   string
	Default bool
}

// RolePicker is the single-choice role select menu.
type RolePicker struct {
	CustomID    string
	Placeholder string
	Options     []Option
}

// Selected returns the value of the default option, if any.
func (p RolePicker) Selected() (string, bool) {
	for _, o := range p.Options {
		if o.Default {
			return o.Value, true
		}
	}
	return "", false
}

// PersonPicker is the single-choice user select menu.
type PersonPicker struct {
	CustomID    string
	Placeholder string
	DefaultID   string
}

// Panel is everything written to the message on each render.
type Panel struct {
	Title        string
	Body         string
	Color        int
	RolePicker   RolePicker
	PersonPicker PersonPicker
}

// Renderer builds panels for one catalog.
type Renderer struct {
	catalog *roles.Catalog
	texts   Texts
}

// New creates a renderer. Empty fields of texts fall back to DefaultTexts.
func New(catalog *roles.Catalog, texts Texts) *Renderer {
	return &Renderer{catalog: catalog, texts: texts.withDefaults()}
}

// Texts returns the renderer's wording.
func (r *Renderer) Texts() Texts { return r.texts }

// Catalog returns the renderer's catalog.
func (r *Renderer) Catalog() *roles.Catalog { return r.catalog }

// Table renders one "label: assignee" line per catalog role, in order.
func (r *Renderer) Table(a state.Assignment) string {
	var b strings.Builder
	for i, role := range r.catalog.Roles() {
		if i > 0 {
			b.WriteByte('\n')
		}
		name, ok := a.Assignee(role.Key)
		if !ok {
			name = r.texts.Placeholder
		}
		b.WriteString(role.Label)
		b.WriteString(": ")
		b.WriteString(name)
	}
	return b.String()
}

// Body renders the table followed by the labelled state block.
func (r *Renderer) Body(a state.Assignment) string {
	return r.Table(a) + "\n\n" + r.texts.BlobLabel + "\n" + state.Fence(state.Encode(a))
}

// Panel renders a with the given title. The role picker preselects the role
// held by active.Name and the person picker preselects active.ID.
func (r *Renderer) Panel(a state.Assignment, active Person, title string) Panel {
	if title == "" {
		title = r.texts.Title
	}
	current, _ := a.RoleOf(active.Name)

	catalogRoles := r.catalog.Roles()
	options := make([]Option, 0, len(catalogRoles))
	for _, role := range catalogRoles {
		options = append(options, Option{
			Label:   role.Label,
			Value:   role.Key,
			Default: role.Key == current,
		})
	}

	return Panel{
		Title: title,
		Body:  r.Body(a),
		Color: r.texts.Color,
		RolePicker: RolePicker{
			CustomID:    RolePickerID,
			Placeholder: r.texts.RolePlaceholder,
			Options:     options,
		},
		PersonPicker: PersonPicker{
			CustomID:    PersonPickerID,
			Placeholder: r.texts.PersonPlaceholder,
			DefaultID:   active.ID,
		},
	}
}
