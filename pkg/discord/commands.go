// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"

	perrors "github.com/jllopis/rolepanel/pkg/errors"
	"github.com/jllopis/rolepanel/pkg/resilience"
)

type commandAPI interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Command is the slash command that opens a panel. It takes no options.
func Command(name, description string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        name,
		Description: description,
	}
}

// Register replaces the application's commands in guildID with cmd. An empty
// guildID registers the command globally.
func Register(ctx context.Context, api commandAPI, retry resilience.RetryConfig, appID, guildID string, cmd *discordgo.ApplicationCommand) error {
	return overwrite(ctx, api, retry, appID, guildID, []*discordgo.ApplicationCommand{cmd})
}

// Unregister removes every command the application has in guildID.
func Unregister(ctx context.Context, api commandAPI, retry resilience.RetryConfig, appID, guildID string) error {
	return overwrite(ctx, api, retry, appID, guildID, []*discordgo.ApplicationCommand{})
}

func overwrite(ctx context.Context, api commandAPI, retry resilience.RetryConfig, appID, guildID string, cmds []*discordgo.ApplicationCommand) error {
	return retry.Do(ctx, func(ctx context.Context) error {
		_, err := api.ApplicationCommandBulkOverwrite(appID, guildID, cmds, discordgo.WithContext(ctx))
		if err != nil {
			return perrors.New(perrors.CodePlatformIO, "overwrite application commands", err).
				WithContext("app_id", appID).
				WithContext("guild_id", guildID).
				WithRecoverable(retryable(err))
		}
		return nil
	})
}

// retryable reports whether a REST failure may succeed later. Client errors
// other than rate limits will not.
func retryable(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Response == nil {
		return true
	}
	code := rest.Response.StatusCode
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
