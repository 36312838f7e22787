// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package panel

import (
	"context"
	"log/slog"

	"github.com/jllopis/rolepanel/pkg/errlog"
	"github.com/jllopis/rolepanel/pkg/errors"
	"github.com/jllopis/rolepanel/pkg/render"
	"github.com/jllopis/rolepanel/pkg/state"
)

// Service holds the three panel handlers. Each handler decodes the state
// from the message it was invoked on, applies one mutation, re-renders and
// writes the result back to that same message. Nothing is kept between
// calls, so two interactions racing on one message both start from the same
// decoded state and the last update to reach the platform wins.
type Service struct {
	renderer  *render.Renderer
	codec     *state.Codec
	directory Directory
	sink      errlog.Sink
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithDirectory sets the member directory used to resolve display names.
func WithDirectory(d Directory) ServiceOption {
	return func(s *Service) {
		s.directory = d
	}
}

// WithServiceLogger sets the service logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates the handlers. Failures the handlers recover from, such
// as undecodable state or an unresolvable picked person, are reported to sink.
func NewService(renderer *render.Renderer, sink errlog.Sink, opts ...ServiceOption) *Service {
	if sink == nil {
		sink = errlog.Discard
	}
	s := &Service{
		renderer: renderer,
		codec:    state.NewCodec(sink),
		sink:     sink,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open posts a new panel with no roles assigned. The person picker starts
// on the invoker, but the invoker is not written to the state.
func (s *Service) Open(ctx context.Context, ev *OpenPanel) error {
	if ev.Responder == nil {
		return errors.New(errors.CodeInvalidInput, "interaction has no responder", nil)
	}
	p := s.renderer.Panel(state.New(), ev.Actor, s.renderer.Texts().Title)
	if err := ev.Responder.Reply(ctx, p); err != nil {
		return errors.New(errors.CodePlatformIO, "reply with new panel", err).
			WithContext("channel_id", ev.ChannelID)
	}
	return nil
}

// PickPerson makes ev.PersonID the active person of the panel.
func (s *Service) PickPerson(ctx context.Context, ev *PickPerson) error {
	if ev.Responder == nil {
		return errors.New(errors.CodeInvalidInput, "interaction has no responder", nil)
	}
	if ev.PersonID == "" {
		return errors.New(errors.CodeInvalidInput, "person picker sent no selection", nil)
	}

	a := s.decode(ctx, ev.MessageText).WithActive(ev.PersonID)

	name := ev.PersonName
	if name == "" {
		var err error
		if name, err = s.displayName(ctx, &ev.Base, ev.PersonID); err != nil {
			// Without a name the role picker simply has no default.
			s.sink.Record(ctx, err)
		}
	}

	p := s.renderer.Panel(a, render.Person{ID: ev.PersonID, Name: name}, s.renderer.Texts().Title)
	if err := ev.Responder.Update(ctx, p); err != nil {
		return errors.New(errors.CodePlatformIO, "update panel after person pick", err).
			WithContext("person_id", ev.PersonID)
	}
	return nil
}

// PickRole places the active person, or the interacting user when none is
// set, in ev.RoleKey. The person leaves any role they held, and whoever held
// ev.RoleKey is unassigned. If the person's name cannot be resolved the
// panel is left as it was.
func (s *Service) PickRole(ctx context.Context, ev *PickRole) error {
	if ev.Responder == nil {
		return errors.New(errors.CodeInvalidInput, "interaction has no responder", nil)
	}
	if !s.renderer.Catalog().Has(ev.RoleKey) {
		return errors.New(errors.CodeInvalidInput, "unknown role", nil).
			WithContext("role_key", ev.RoleKey)
	}

	a := s.decode(ctx, ev.MessageText)

	activeID, ok := a.Active()
	if !ok {
		activeID = ev.Actor.ID
	}
	// Names are the only identity in the state, so placing an unresolved
	// person under any other key could give them a second role.
	name, err := s.displayName(ctx, &ev.Base, activeID)
	if err != nil {
		return err
	}

	a = a.Assign(ev.RoleKey, name)
	s.logger.DebugContext(ctx, "panel.role.assigned",
		slog.String("role_key", ev.RoleKey),
		slog.String("person_id", activeID),
	)

	p := s.renderer.Panel(a, render.Person{ID: activeID, Name: name}, s.renderer.Texts().AssignedTitle)
	if err := ev.Responder.Update(ctx, p); err != nil {
		return errors.New(errors.CodePlatformIO, "update panel after role pick", err).
			WithContext("role_key", ev.RoleKey)
	}
	return nil
}

// decode reads the assignment from message text and drops roles that are
// no longer in the catalog.
func (s *Service) decode(ctx context.Context, text string) state.Assignment {
	return s.codec.Decode(ctx, text).Prune(s.renderer.Catalog().Has)
}

// displayName resolves userID in the interaction's guild. The interacting
// user's own name comes with the payload and needs no lookup.
func (s *Service) displayName(ctx context.Context, b *Base, userID string) (string, error) {
	if userID == b.Actor.ID && b.Actor.Name != "" {
		return b.Actor.Name, nil
	}

	var cause error
	if s.directory != nil {
		name, err := s.directory.DisplayName(ctx, b.GuildID, userID)
		if err == nil && name != "" {
			return name, nil
		}
		cause = err
	}

	return "", errors.New(errors.CodeLookupFailure, "resolve member display name", cause).
		WithContext("guild_id", b.GuildID).
		WithContext("user_id", userID).
		WithRecoverable(true)
}
