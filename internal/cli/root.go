package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/altlinux/archivebuild/internal"
	"github.com/altlinux/archivebuild/internal/paths"
)

// Represents the root command for the archivebuild tool.
var RootCmd struct {
	Quiet   bool       `short:"q" help:"Suppress informational output."`
	Verbose bool       `short:"v" help:"Enable verbose output."`
	Debug   bool       `help:"Enable debug output."`
	Build   BuildCmd   `cmd:"" help:"Build, test, and publish archive base images."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds multi-architecture ALT archive base images across a matrix of branches, snapshot dates, and architectures."),
		kong.UsageOnError(),
		kong.Vars{
			"version":     internal.VersionString(),
			"mkimage_dir": paths.DefaultMkimageProfiles(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Reconfigures the global logger based on CLI flags.
func configureLogger() {
	level := slog.LevelInfo
	if RootCmd.Debug || internal.IsDebug() {
		level = slog.LevelDebug
	} else if RootCmd.Quiet || internal.IsQuiet() {
		level = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: RootCmd.Verbose,
	})

	slog.SetDefault(slog.New(handler).WithGroup(internal.Name))
}
