// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package panel implements the role panel state machine: one command opens
// a panel, and two select menus mutate the assignment embedded in it.
package panel

import (
	"context"

	"github.com/jllopis/rolepanel/pkg/render"
)

// Kind names an interaction kind for logs and metrics.
type Kind string

const (
	KindOpen       Kind = "open"
	KindPickRole   Kind = "pick_role"
	KindPickPerson Kind = "pick_person"
)

// Responder writes a rendered panel back to the platform for one interaction.
type Responder interface {
	// Reply posts the panel as a new message.
	Reply(ctx context.Context, p render.Panel) error
	// Update replaces the message the interaction arrived on.
	Update(ctx context.Context, p render.Panel) error
}

// Directory resolves guild members to display names.
type Directory interface {
	DisplayName(ctx context.Context, guildID, userID string) (string, error)
}

// Base carries the fields shared by every interaction.
type Base struct {
	// ID is the platform's interaction id.
	ID        string
	GuildID   string
	ChannelID string
	Actor     render.Person
	Responder Responder
}

// Event is one of OpenPanel, PickRole or PickPerson.
type Event interface {
	Kind() Kind
	base() *Base
}

// OpenPanel is the slash command that creates a new panel.
type OpenPanel struct {
	Base
}

// PickRole is a selection on the role picker.
type PickRole struct {
	Base
	RoleKey string
	// MessageText is the description of the panel the menu belongs to.
	MessageText string
}

// PickPerson is a selection on the person picker.
type PickPerson struct {
	Base
	PersonID string
	// PersonName is the display name resolved by the platform, if it sent one.
	PersonName  string
	MessageText string
}

func (e *OpenPanel) Kind() Kind  { return KindOpen }
func (e *PickRole) Kind() Kind   { return KindPickRole }
func (e *PickPerson) Kind() Kind { return KindPickPerson }

func (e *OpenPanel) base() *Base  { return &e.Base }
func (e *PickRole) base() *Base   { return &e.Base }
func (e *PickPerson) base() *Base { return &e.Base }
