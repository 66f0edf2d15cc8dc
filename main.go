package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/scriptogre/sdls/internal"
	"github.com/urfave/cli/v3"
)

// Build information set by GoReleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		internal.ShowError(os.Stderr, internal.ErrorMessage(err))
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:                  "sdls",
		Usage:                 "Add magnet links to Synology Download Station",
		Description:           "Authenticate against a Synology NAS (credentials from config, 1Password or prompts) and submit magnet links to Download Station.",
		Version:               version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file (default: $SDLS_CONFIG_PATH or ~/.config/sdls.yml)",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load environment variables from a .env file before anything else",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Write debug logs to stderr",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if envFile := cmd.String("env-file"); envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return ctx, fmt.Errorf("failed to load env file %s: %w", envFile, err)
				}
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Display the sdls version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("%s (commit %s, built %s)\n", version, commit, date)
					return nil
				},
			},
			{
				Name:        "config",
				Usage:       "Display the current configuration",
				Description: "Print the loaded configuration file with the password redacted",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, err := newApp(cmd)
					if err != nil {
						return err
					}

					app.ShowConfig()
					return nil
				},
			},
			{
				Name:        "connect",
				Usage:       "Verify connectivity and authentication with the server",
				Description: "Log in to the NAS, asking for an OTP if two-factor authentication is enabled",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, err := newApp(cmd)
					if err != nil {
						return err
					}

					return app.Connect(ctx)
				},
			},
			{
				Name:        "add",
				Usage:       "Add a magnet link to Synology Download Station",
				Description: "Submit a magnet link. Without an argument the link is read from the clipboard.",
				ArgsUsage:   "[magnet]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "destination",
						Aliases: []string{"d"},
						Usage:   "Download directory (skips the interactive selection)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, err := newApp(cmd, withClipboard())
					if err != nil {
						return err
					}

					return app.Add(ctx, cmd.Args().First(), cmd.String("destination"))
				},
			},
		},
	}
}

type appOption func(*internal.Options)

func withClipboard() appOption {
	return func(o *internal.Options) {
		o.Clipboard = internal.ReadClipboard
	}
}

func newApp(cmd *cli.Command, opts ...appOption) (*internal.App, error) {
	options := internal.Options{
		ConfigPath: cmd.String("config"),
		Logger:     internal.NewLogger(os.Stderr, cmd.Bool("verbose")),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return internal.NewApp(options)
}
