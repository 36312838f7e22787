// Copyright 2026 © The Kairos Authors
// SPDX-License-Identifier: Apache-2.0

// Package main implements the rolepanel bot and its command management CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/jllopis/rolepanel/pkg/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type globalFlags struct {
	ConfigPath string
	EnvFile    string
	Help       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout); err != nil {
		fatal(err)
	}
}

func execute(ctx context.Context, argv []string, stdout io.Writer) error {
	global, args, err := parseGlobalFlags(argv)
	if err != nil {
		return err
	}
	if global.Help || len(args) == 0 {
		printUsage(stdout)
		return nil
	}

	cmd := args[0]
	switch cmd {
	case "help":
		printUsage(stdout)
		return nil
	case "version":
		fmt.Fprintln(stdout, version)
		return nil
	case "run", "register", "unregister", "catalog":
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if len(args) > 1 {
		return fmt.Errorf("unexpected args: %v", args[1:])
	}

	if err := config.LoadDotEnv(global.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(global.ConfigPath)
	if err != nil {
		return err
	}

	switch cmd {
	case "catalog":
		return runCatalog(stdout, cfg)
	case "register":
		return runRegister(ctx, cfg)
	case "unregister":
		return runUnregister(ctx, cfg)
	default:
		return runBot(ctx, cfg)
	}
}

func parseGlobalFlags(argv []string) (globalFlags, []string, error) {
	var flags globalFlags
	fs := pflag.NewFlagSet("rolepanel", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&flags.ConfigPath, "config", "c", os.Getenv("ROLEPANEL_CONFIG"), "path to a YAML config file")
	fs.StringVar(&flags.EnvFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	fs.BoolVarP(&flags.Help, "help", "h", false, "show usage")

	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			flags.Help = true
			return flags, nil, nil
		}
		return flags, nil, err
	}
	return flags, fs.Args(), nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `rolepanel: a Discord role panel whose state lives in the panel message

Usage:
  rolepanel [flags] <command>

Flags:
  -c, --config <path>    YAML config file (default $ROLEPANEL_CONFIG)
      --env-file <path>  dotenv file to load first (default .env)
  -h, --help             show this help

Commands:
  run         connect to the gateway and serve panels
  register    create or replace the slash command
  unregister  remove the bot's slash commands
  catalog     print the role catalog as YAML
  version     print the version
  help        show this help
`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
