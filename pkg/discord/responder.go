// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/jllopis/rolepanel/pkg/render"
)

// interactionAPI is the part of *discordgo.Session used to answer interactions.
type interactionAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// responder answers one interaction. Reply posts a new message in the
// channel; Update edits the message whose component was used.
type responder struct {
	api         interactionAPI
	interaction *discordgo.Interaction
}

func (r *responder) Reply(ctx context.Context, p render.Panel) error {
	return r.respond(ctx, discordgo.InteractionResponseChannelMessageWithSource, p)
}

func (r *responder) Update(ctx context.Context, p render.Panel) error {
	return r.respond(ctx, discordgo.InteractionResponseUpdateMessage, p)
}

func (r *responder) respond(ctx context.Context, typ discordgo.InteractionResponseType, p render.Panel) error {
	embeds, components := BuildMessage(p)
	return r.api.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: typ,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	}, discordgo.WithContext(ctx))
}
