// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jllopis/rolepanel/pkg/panel"
	"github.com/jllopis/rolepanel/pkg/render"
)

// toEvent translates an interaction into a panel event. It returns nil for
// interactions the panel does not own: other commands, other components,
// and menus that arrive without a selection.
func toEvent(i *discordgo.Interaction, command string, r panel.Responder) panel.Event {
	if i == nil {
		return nil
	}
	base := panel.Base{
		ID:        i.ID,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Actor:     actor(i),
		Responder: r,
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name != command {
			return nil
		}
		return &panel.OpenPanel{Base: base}

	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if len(data.Values) == 0 {
			return nil
		}
		switch {
		case data.CustomID == render.RolePickerID && data.ComponentType == discordgo.SelectMenuComponent:
			return &panel.PickRole{
				Base:        base,
				RoleKey:     data.Values[0],
				MessageText: messageText(i.Message),
			}
		case data.CustomID == render.PersonPickerID && data.ComponentType == discordgo.UserSelectMenuComponent:
			id := data.Values[0]
			return &panel.PickPerson{
				Base:        base,
				PersonID:    id,
				PersonName:  displayName(data.Resolved.Members[id], data.Resolved.Users[id]),
				MessageText: messageText(i.Message),
			}
		}
	}
	return nil
}

// actor is the user who triggered the interaction. Guild interactions carry
// a member; direct messages carry only the user.
func actor(i *discordgo.Interaction) render.Person {
	if i.Member != nil && i.Member.User != nil {
		return render.Person{ID: i.Member.User.ID, Name: displayName(i.Member, i.Member.User)}
	}
	if i.User != nil {
		return render.Person{ID: i.User.ID, Name: displayName(nil, i.User)}
	}
	return render.Person{}
}

// displayName follows the guild's precedence: nickname, then global display
// name, then username. Either argument may be nil.
func displayName(m *discordgo.Member, u *discordgo.User) string {
	if m != nil {
		if m.Nick != "" {
			return m.Nick
		}
		if u == nil {
			u = m.User
		}
	}
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
