package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/launchgen/cmd/launchgen/commands"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("launchgen"),
		kong.Description("Generate .vscode/launch.json from reusable templates and per-scenario configurations."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := parser.Run(&commands.Global{Context: ctx, Logger: slog.Default(), Stdout: os.Stdout}, &cli)
	if err != nil {
		cancel()
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
