// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry provides logging, tracing and metrics for the panel bot.
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by spans, metrics and log records.
const (
	AttrInteractionKind = "rolepanel.interaction.kind"
	AttrInteractionID   = "rolepanel.interaction.id"
	AttrDispatchID      = "rolepanel.dispatch.id"
	AttrGuildID         = "rolepanel.guild.id"
	AttrChannelID       = "rolepanel.channel.id"
	AttrActorID         = "rolepanel.actor.id"
	AttrRoleKey         = "rolepanel.role.key"
	AttrPersonID        = "rolepanel.person.id"
	AttrOutcome         = "rolepanel.outcome"
	AttrErrorCode       = "error.code"
)

// InteractionAttributes returns the span attributes common to every dispatch.
func InteractionAttributes(kind, interactionID, dispatchID, guildID, channelID, actorID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrInteractionKind, kind),
		attribute.String(AttrDispatchID, dispatchID),
	}
	if interactionID != "" {
		attrs = append(attrs, attribute.String(AttrInteractionID, interactionID))
	}
	if guildID != "" {
		attrs = append(attrs, attribute.String(AttrGuildID, guildID))
	}
	if channelID != "" {
		attrs = append(attrs, attribute.String(AttrChannelID, channelID))
	}
	if actorID != "" {
		attrs = append(attrs, attribute.String(AttrActorID, actorID))
	}
	return attrs
}
