// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"

	"github.com/jllopis/rolepanel/pkg/errlog"
	"github.com/jllopis/rolepanel/pkg/errors"
	"github.com/jllopis/rolepanel/pkg/panel"
	"github.com/jllopis/rolepanel/pkg/telemetry"
)

// Intents requested on the gateway. Member events keep the state cache
// populated for display name lookups.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

// NewSession creates a bot session for token. It does not connect.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = Intents
	return s, nil
}

// Bot feeds interactions from a gateway session into a panel router.
type Bot struct {
	session *discordgo.Session
	router  *panel.Router
	command string
	logger  *slog.Logger
	sink    errlog.Sink
	metrics *telemetry.PanelMetrics
}

// BotOption configures a Bot.
type BotOption func(*Bot)

// WithSink records failures that happen before an interaction reaches the
// router, such as a malformed payload.
func WithSink(sink errlog.Sink) BotOption {
	return func(b *Bot) {
		if sink != nil {
			b.sink = sink
		}
	}
}

// WithMetrics counts interactions the bot does not handle.
func WithMetrics(m *telemetry.PanelMetrics) BotOption {
	return func(b *Bot) {
		b.metrics = m
	}
}

// NewBot creates a bot answering the slash command named command.
func NewBot(s *discordgo.Session, router *panel.Router, command string, logger *slog.Logger, opts ...BotOption) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bot{session: s, router: router, command: command, logger: logger, sink: errlog.Discard}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run connects to the gateway and handles interactions until ctx is done.
// Each interaction is dispatched on the goroutine discordgo started for it.
func (b *Bot) Run(ctx context.Context) error {
	removeReady := b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.logger.InfoContext(ctx, "discord.session.ready",
			slog.String("user", r.User.Username),
			slog.Int("guilds", len(r.Guilds)),
		)
	})
	defer removeReady()

	removeInteraction := b.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		b.handle(ctx, s, ic.Interaction)
	})
	defer removeInteraction()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	b.logger.InfoContext(ctx, "discord.session.open", slog.String("command", b.command))

	<-ctx.Done()

	b.logger.InfoContext(context.Background(), "discord.session.close")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord session: %w", err)
	}
	return nil
}

func (b *Bot) handle(ctx context.Context, api interactionAPI, i *discordgo.Interaction) {
	defer func() {
		if rec := recover(); rec != nil {
			b.sink.Record(ctx, errors.FromPanic(rec, debug.Stack()).
				WithContext("interaction_id", i.ID).
				WithContext("stage", "decode"))
		}
	}()
	ev := toEvent(i, b.command, &responder{api: api, interaction: i})
	if ev == nil {
		b.logger.DebugContext(ctx, "discord.interaction.ignored",
			slog.String("interaction_id", i.ID),
			slog.Int("type", int(i.Type)),
		)
		b.metrics.RecordInteraction(ctx, i.Type.String(), telemetry.OutcomeIgnored, 0)
		return
	}
	b.router.Dispatch(ctx, ev)
}
