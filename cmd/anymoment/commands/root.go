// Package commands defines the anymoment command tree.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/sineways/anymoment-cli/internal/api"
	"github.com/sineways/anymoment-cli/internal/app"
)

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string) error {
	cmd := &cli.Command{
		Name:    "anymoment",
		Usage:   "Manage calendars and events on an AnyMoment server",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
				Value: slog.LevelInfo.String(),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text|json)",
				Value: string(app.DefaultConfigLogFormat),
			},
		},
		Commands: []*cli.Command{
			authCommand(),
			tokensCommand(),
			configCommand(),
			calendarsCommand(),
			eventsCommand(),
			agendaCommand(),
			usersCommand(),
		},
	}

	return cmd.Run(ctx, args)
}

// ExitCode maps an error from Execute to a process exit code:
// authentication failures exit 2 so scripts can prompt for a re-login,
// everything else exits 1.
func ExitCode(err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindAuthentication {
		return 2
	}
	return 1
}
