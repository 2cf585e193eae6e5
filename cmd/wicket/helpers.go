package main

import (
	"log/slog"
	"os"
	"os/user"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/wicket"
	"github.com/aretw0/wicket/internal/cli"
	"github.com/aretw0/wicket/internal/logging"
)

// sessionSetup resolves the shared flags into a logger and base engine options.
func sessionSetup(cmd *cobra.Command) (*slog.Logger, []wicket.Option, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	lvl, _ := cmd.Flags().GetString("log-level")

	logger := logging.New(logging.ParseLevel(lvl))

	opts, err := cli.LoadOptions(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	return logger, append(opts, wicket.WithLogger(logger)), nil
}

// historyPath returns the shell history file location, creating its
// directory if possible. Empty string disables history.
func historyPath() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	dir := filepath.Join(u.HomeDir, ".wicket")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
