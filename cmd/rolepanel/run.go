// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jllopis/rolepanel/pkg/config"
	"github.com/jllopis/rolepanel/pkg/discord"
	"github.com/jllopis/rolepanel/pkg/errlog"
	"github.com/jllopis/rolepanel/pkg/panel"
	"github.com/jllopis/rolepanel/pkg/render"
	"github.com/jllopis/rolepanel/pkg/resilience"
	"github.com/jllopis/rolepanel/pkg/roles"
	"github.com/jllopis/rolepanel/pkg/telemetry"
)

const serviceName = "rolepanel"

func runBot(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(true); err != nil {
		return err
	}
	logger := telemetry.ConfigureSlog(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	shutdown, err := telemetry.InitWithConfig(serviceName, version, telemetry.Config{
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
		AppID:        cfg.Discord.AppID,
		GuildID:      cfg.Discord.GuildID,
		CommandName:  cfg.Discord.CommandName,
	})
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Error("telemetry.shutdown", slog.String("error", err.Error()))
		}
	}()

	metrics, err := telemetry.NewPanelMetrics()
	if err != nil {
		return err
	}
	sink := errlog.NewRecorder(errlog.NewFileSink(cfg.ErrorLog.Path),
		errlog.WithLogger(logger),
		errlog.WithMetrics(metrics),
	)

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return err
	}
	discord.BridgeLogger(session, logger, telemetry.ParseLogLevel(cfg.Log.Level))

	svc := panel.NewService(renderer, sink,
		panel.WithDirectory(discord.NewDirectory(session)),
		panel.WithServiceLogger(logger),
	)
	router := panel.NewRouter(svc, sink,
		panel.WithTimeout(cfg.Panel.InteractionTimeout),
		panel.WithLogger(logger),
		panel.WithMetrics(metrics),
	)

	logger.Info("rolepanel.start",
		slog.String("version", version),
		slog.Int("roles", renderer.Catalog().Len()),
		slog.String("error_log", cfg.ErrorLog.Path),
	)
	bot := discord.NewBot(session, router, cfg.Discord.CommandName, logger,
		discord.WithSink(sink),
		discord.WithMetrics(metrics),
	)
	return bot.Run(ctx)
}

func runRegister(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(false); err != nil {
		return err
	}
	logger := telemetry.ConfigureSlog(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return err
	}
	discord.BridgeLogger(session, logger, telemetry.ParseLogLevel(cfg.Log.Level))

	cmd := discord.Command(cfg.Discord.CommandName, cfg.Discord.CommandDescription)
	if err := discord.Register(ctx, session, resilience.DefaultRetryConfig(), cfg.Discord.AppID, cfg.Discord.GuildID, cmd); err != nil {
		return err
	}
	logger.Info("discord.command.registered",
		slog.String("command", cmd.Name),
		slog.String("guild_id", cfg.Discord.GuildID),
	)
	return nil
}

func runUnregister(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(false); err != nil {
		return err
	}
	logger := telemetry.ConfigureSlog(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return err
	}
	discord.BridgeLogger(session, logger, telemetry.ParseLogLevel(cfg.Log.Level))

	if err := discord.Unregister(ctx, session, resilience.DefaultRetryConfig(), cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		return err
	}
	logger.Info("discord.command.unregistered", slog.String("guild_id", cfg.Discord.GuildID))
	return nil
}

// runCatalog prints the catalog the bot would serve, so a custom catalog
// file can be checked before deploying it.
func runCatalog(w io.Writer, cfg *config.Config) error {
	catalog, err := roles.LoadCatalog(cfg.Panel.CatalogPath)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalog.Manifest()); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}

func newRenderer(cfg *config.Config) (*render.Renderer, error) {
	catalog, err := roles.LoadCatalog(cfg.Panel.CatalogPath)
	if err != nil {
		return nil, err
	}
	return render.New(catalog, render.Texts{
		Title:             cfg.Panel.Title,
		AssignedTitle:     cfg.Panel.AssignedTitle,
		Placeholder:       cfg.Panel.Placeholder,
		BlobLabel:         cfg.Panel.BlobLabel,
		RolePlaceholder:   cfg.Panel.RolePlaceholder,
		PersonPlaceholder: cfg.Panel.PersonPlaceholder,
		Color:             cfg.Panel.Color,
	}), nil
}
