// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package discord connects the panel handlers to a discordgo session.
package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jllopis/rolepanel/pkg/render"
)

// BuildMessage converts a rendered panel into one embed and two rows of
// select menus, the person picker above the role picker.
func BuildMessage(p render.Panel) ([]*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       p.Title,
		Description: p.Body,
		Color:       p.Color,
	}
	return []*discordgo.MessageEmbed{embed}, []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{personMenu(p.PersonPicker)}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{roleMenu(p.RolePicker)}},
	}
}

func personMenu(pp render.PersonPicker) discordgo.SelectMenu {
	menu := discordgo.SelectMenu{
		MenuType:    discordgo.UserSelectMenu,
		CustomID:    pp.CustomID,
		Placeholder: pp.Placeholder,
		MinValues:   ptrInt(1),
		MaxValues:   1,
	}
	if pp.DefaultID != "" {
		menu.DefaultValues = []discordgo.SelectMenuDefaultValue{
			{ID: pp.DefaultID, Type: discordgo.SelectMenuDefaultValueUser},
		}
	}
	return menu
}

func roleMenu(rp render.RolePicker) discordgo.SelectMenu {
	opts := make([]discordgo.SelectMenuOption, 0, len(rp.Options))
	for _, o := range rp.Options {
		opts = append(opts, discordgo.SelectMenuOption{
			Label:   o.Label,
			Value:   o.Value,
			Default: o.Default,
		})
	}
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    rp.CustomID,
		Placeholder: rp.Placeholder,
		Options:     opts,
		MinValues:   ptrInt(1),
		MaxValues:   1,
	}
}

func ptrInt(v int) *int { return &v }

// messageText returns the description of the first embed, which holds the
// encoded state.
func messageText(m *discordgo.Message) string {
	if m == nil || len(m.Embeds) == 0 || m.Embeds[0] == nil {
		return ""
	}
	return m.Embeds[0].Description
}
