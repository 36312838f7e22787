// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// BridgeLogger routes discordgo's package logger into logger and sets the
// session's verbosity to match level.
func BridgeLogger(s *discordgo.Session, logger *slog.Logger, level slog.Level) {
	discordgo.Logger = func(msgL, _ int, format string, a ...interface{}) {
		logger.Log(context.Background(), slogLevel(msgL), fmt.Sprintf(format, a...),
			slog.String("component", "discordgo"))
	}
	if s != nil {
		s.LogLevel = discordLevel(level)
	}
}

func slogLevel(msgL int) slog.Level {
	switch msgL {
	case discordgo.LogError:
		return slog.LevelError
	case discordgo.LogWarning:
		return slog.LevelWarn
	case discordgo.LogInformational:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// discordLevel keeps discordgo at warnings unless debug logging is on; its
// informational output is per heartbeat.
func discordLevel(level slog.Level) int {
	switch {
	case level <= slog.LevelDebug:
		return discordgo.LogDebug
	case level >= slog.LevelError:
		return discordgo.LogError
	default:
		return discordgo.LogWarning
	}
}
