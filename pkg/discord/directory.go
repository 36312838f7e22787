// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type memberAPI interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// Directory resolves members from the session's state cache, falling back
// to the REST API for members the gateway has not sent.
type Directory struct {
	state *discordgo.State
	api   memberAPI
}

// NewDirectory creates a directory over s.
func NewDirectory(s *discordgo.Session) *Directory {
	return &Directory{state: s.State, api: s}
}

// DisplayName returns the member's nickname, global name or username.
func (d *Directory) DisplayName(ctx context.Context, guildID, userID string) (string, error) {
	if d.state != nil {
		if m, err := d.state.Member(guildID, userID); err == nil {
			if name := displayName(m, m.User); name != "" {
				return name, nil
			}
		}
	}
	m, err := d.api.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("fetch member %s: %w", userID, err)
	}
	name := displayName(m, m.User)
	if name == "" {
		return "", fmt.Errorf("member %s has no name", userID)
	}
	return name, nil
}
