package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jaekwang-park/combo-todo/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Fallback logger for failures before config is loaded
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cmd := cli.NewRootCommand(version)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}
