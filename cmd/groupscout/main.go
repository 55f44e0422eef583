// Package main is the entry point for the groupscout CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"groupscout/internal/config"
	"groupscout/internal/core"
	"groupscout/modules/client/gotd"
	"groupscout/pkg/app"

	_ "groupscout/internal/gateway"
	_ "groupscout/modules/channel/telegram"
	_ "groupscout/modules/sink/sheets"
	_ "groupscout/modules/sink/sqlite"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "groupscout",
		Short:         "Telegram group contact collector driven by a chat bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), startCmd(), configCmd(), sessionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and compiled modules",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("groupscout %s (commit: %s, built: %s)\n", version, commit, date)
			mods := core.GetModules()
			if len(mods) == 0 {
				fmt.Println("\nNo compiled modules.")
				return
			}
			fmt.Println("\nCompiled modules:")
			for _, mod := range mods {
				fmt.Printf("  %s\n", mod.ID)
			}
		},
	}
}

func startCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start groupscout with all configured modules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Secrets commonly live in a local .env during development;
			// absence is fine.
			_ = godotenv.Load()

			cfgPath, _ := cmd.Flags().GetString("config")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			levelName, _ := cmd.Flags().GetString("log-level")

			level, err := parseLevel(levelName)
			if err != nil {
				return err
			}

			return app.Run(app.RunParams{
				ConfigPath: cfgPath,
				Version:    version,
				Commit:     commit,
				Date:       date,
				DataDir:    dataDir,
				LogLevel:   level,
			})
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().String("data-dir", "", "Persistent data directory")
	cmd.Flags().String("log-level", "info", "Minimum log level (debug, info, warn, error)")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			ids := config.Resolve(cfg)
			fmt.Printf("Configuration OK (%d modules)\n", len(ids))
			for _, id := range ids {
				fmt.Printf("  %s\n", id)
			}
			return nil
		},
	})
	return cmd
}

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "MTProto session management",
	}

	importCmd := &cobra.Command{
		Use:   "import [base64]",
		Short: "Write a base64-encoded session to the session file",
		Long: "Decodes a base64-encoded MTProto session and writes it to the " +
			"session file, so a host can be provisioned without an interactive " +
			"login. Reads the TELEGRAM_SESSION_BASE64 environment variable when " +
			"no argument is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			encoded := os.Getenv("TELEGRAM_SESSION_BASE64")
			if len(args) == 1 {
				encoded = args[0]
			}
			if encoded == "" {
				return fmt.Errorf("no session data: pass an argument or set TELEGRAM_SESSION_BASE64")
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				dataDir, _ := cmd.Flags().GetString("data-dir")
				if dataDir == "" {
					dataDir = app.DefaultDataDir()
				}
				path = gotd.DefaultSessionPath(dataDir)
			}

			if err := gotd.ImportSession(encoded, path); err != nil {
				return err
			}
			fmt.Printf("Session written to %s\n", path)
			return nil
		},
	}
	importCmd.Flags().String("out", "", "Session file destination")
	importCmd.Flags().String("data-dir", "", "Persistent data directory")
	cmd.AddCommand(importCmd)
	return cmd
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}
