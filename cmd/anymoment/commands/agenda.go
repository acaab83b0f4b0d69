package commands

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sineways/anymoment-cli/internal/api"
)

func agendaCommand() *cli.Command {
	return &cli.Command{
		Name:  "agenda",
		Usage: "Agenda and search (time window and fuzzy search)",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List events and instances in a time window",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "start", Usage: "start of window (ISO 8601, e.g. 2025-02-03T00:00:00Z)"},
					&cli.StringFlag{Name: "end", Usage: "end of window (ISO 8601)"},
					&cli.StringFlag{Name: "calendar", Usage: "restrict to calendar ID(s); comma-separated for multiple"},
					&cli.BoolFlag{Name: "no-cache", Usage: "do not use the instance cache"},
					&cli.BoolFlag{Name: "webhooks", Usage: "include webhooks in event payloads"},
					hostFlag(), rawFlag(), pipeFlag(),
				},
				Action: agendaListAction,
			},
			{
				Name:      "search",
				Usage:     "Fuzzy search events by name",
				ArgsUsage: "<query>",
				Flags: append(activeFlags(),
					&cli.StringFlag{Name: "start", Usage: "only events with an instance on or after this time (ISO 8601)"},
					&cli.StringFlag{Name: "end", Usage: "only events with an instance on or before this time (ISO 8601)"},
					&cli.StringFlag{Name: "calendar", Usage: "restrict to calendar ID(s); comma-separated for multiple"},
					&cli.IntFlag{Name: "limit", Usage: "max results (1-100)", Value: 50},
					&cli.IntFlag{Name: "offset", Usage: "skip this many results"},
					&cli.BoolFlag{Name: "no-instances", Usage: "do not include instances when a window is given"},
					hostFlag(), rawFlag(), pipeFlag(),
				),
				Action: agendaSearchAction,
			},
		},
	}
}

func agendaListAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.requireAuth(ctx); err != nil {
		return err
	}

	start := cmd.String("start")
	end := cmd.String("end")
	if start == "" || end == "" {
		defStart, defEnd := defaultWindow(e.cfg.Defaults.Timezone)
		if start == "" {
			start = defStart
		}
		if end == "" {
			end = defEnd
		}
	}

	data, err := e.client.Agenda(ctx, api.AgendaQuery{
		Start:           start,
		End:             end,
		CalendarIDs:     splitIDs(cmd.String("calendar")),
		UseCache:        !cmd.Bool("no-cache"),
		IncludeWebhooks: cmd.Bool("webhooks"),
	})
	if err != nil {
		return err
	}

	foundBanner(cmd, data, "event")
	return output(cmd, data)
}

func agendaSearchAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "query")
	if err != nil {
		return err
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.requireAuth(ctx); err != nil {
		return err
	}

	data, err := e.client.SearchEvents(ctx, api.SearchQuery{
		Query:            args[0],
		Start:            cmd.String("start"),
		End:              cmd.String("end"),
		CalendarIDs:      splitIDs(cmd.String("calendar")),
		IsActive:         activeFilter(cmd),
		Limit:            cmd.Int("limit"),
		Offset:           cmd.Int("offset"),
		IncludeInstances: !cmd.Bool("no-instances"),
	})
	if err != nil {
		return err
	}

	foundBanner(cmd, data, "event")
	return output(cmd, data)
}

// defaultWindow is today's full day in the given timezone, rendered as a
// UTC ISO 8601 pair.
func defaultWindow(tzName string) (string, string) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}

	now := time.Now().In(loc)
	year, month, day := now.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := time.Date(year, month, day, 23, 59, 59, 0, loc)

	const layout = "2006-01-02T15:04:05Z"
	return start.UTC().Format(layout), end.UTC().Format(layout)
}
