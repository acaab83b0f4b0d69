package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/sineways/anymoment-cli/internal/api"
	"github.com/sineways/anymoment-cli/internal/render"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Event management",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an event from natural language",
				ArgsUsage: "<text>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "event name (extracted from text if not provided)"},
					&cli.StringFlag{Name: "description", Usage: "event description"},
					&cli.StringFlag{Name: "timezone", Usage: "event timezone (defaults to config or UTC)"},
					&cli.StringFlag{Name: "calendar", Usage: "calendar ID (defaults to config default)"},
					&cli.StringFlag{Name: "model", Usage: "model: high, low, mega", Value: "high"},
					hostFlag(), rawFlag(),
				},
				Action: eventsCreateAction,
			},
			{
				Name:  "list",
				Usage: "List events",
				Flags: append(activeFlags(),
					&cli.StringFlag{Name: "calendar", Usage: "calendar ID (defaults to config default)"},
					&cli.IntFlag{Name: "limit", Usage: "maximum number of results"},
					&cli.IntFlag{Name: "offset", Usage: "number of results to skip"},
					&cli.BoolFlag{Name: "minimal", Usage: "return minimal event data"},
					hostFlag(), rawFlag(), pipeFlag(),
				),
				Action: eventsListAction,
			},
			{
				Name:      "get",
				Usage:     "Get event details",
				ArgsUsage: "<event-id>",
				Flags:     []cli.Flag{hostFlag(), rawFlag()},
				Action:    eventsGetAction,
			},
			{
				Name:      "update",
				Usage:     "Update an event",
				ArgsUsage: "<event-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "event name"},
					&cli.StringFlag{Name: "description", Usage: "event description"},
					hostFlag(), rawFlag(),
				},
				Action: eventsUpdateAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete an event",
				ArgsUsage: "<event-id>",
				Flags:     []cli.Flag{hostFlag()},
				Action:    eventsDeleteAction,
			},
			{
				Name:      "toggle",
				Usage:     "Toggle an event's active status",
				ArgsUsage: "<event-id>",
				Flags:     []cli.Flag{hostFlag(), rawFlag()},
				Action:    eventsToggleAction,
			},
			{
				Name:      "instances",
				Usage:     "Get event instances for a date range",
				ArgsUsage: "<event-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "start date"},
					&cli.StringFlag{Name: "to", Usage: "end date"},
					&cli.BoolFlag{Name: "optimized", Usage: "return optimized format"},
					hostFlag(), rawFlag(),
				},
				Action: eventsInstancesAction,
			},
			{
				Name:      "next",
				Usage:     "Get the next instance of an event",
				ArgsUsage: "<event-id>",
				Flags:     []cli.Flag{hostFlag(), rawFlag()},
				Action:    eventsNextAction,
			},
			{
				Name:      "export",
				Usage:     "Export event instances as JSON",
				ArgsUsage: "<event-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Usage: "start date"},
					&cli.StringFlag{Name: "to", Usage: "end date"},
					&cli.StringFlag{Name: "out", Usage: "output file path"},
					hostFlag(),
				},
				Action: eventsExportAction,
			},
		},
	}
}

func eventsCreateAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "text")
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

	timezone := cmd.String("timezone")
	if timezone == "" {
		timezone = e.cfg.Defaults.Timezone
	}

	var calendarID *string
	if id := cmd.String("calendar"); id != "" {
		calendarID = &id
	} else if id := e.cfg.Defaults.CalendarID; id != "" {
		calendarID = &id
	}

	data, err := e.client.CreateEventFromText(ctx, api.CreateEventParams{
		RecurrenceText: args[0],
		Name:           strPtr(cmd, "name"),
		Description:    strPtr(cmd, "description"),
		Timezone:       timezone,
		CalendarID:     calendarID,
		Model:          cmd.String("model"),
	})
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Println("Event created successfully.")
		fmt.Println()
	}
	if err := output(cmd, data); err != nil {
		return err
	}
	if !cmd.Bool("raw") {
		fmt.Printf("\n  Event ID: %s\n", gjson.GetBytes(data, "id").String())
	}
	return nil
}

func eventsListAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.requireAuth(ctx); err != nil {
		return err
	}

	calendarID := cmd.String("calendar")
	if calendarID == "" {
		calendarID = e.cfg.Defaults.CalendarID
	}

	data, err := e.client.ListEvents(ctx, api.EventListQuery{
		CalendarID: calendarID,
		IsActive:   activeFilter(cmd),
		Limit:      intPtr(cmd, "limit"),
		Offset:     intPtr(cmd, "offset"),
		Minimal:    cmd.Bool("minimal"),
	})
	if err != nil {
		return err
	}

	foundBanner(cmd, data, "event")
	return output(cmd, data)
}

func eventsGetAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "event-id")
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

	data, err := e.client.GetEvent(ctx, args[0])
	if err != nil {
		return err
	}
	return output(cmd, data)
}

func eventsUpdateAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "event-id")
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

	data, err := e.client.UpdateEvent(ctx, args[0], strPtr(cmd, "name"), strPtr(cmd, "description"))
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Println("Event updated successfully.")
		fmt.Println()
	}
	return output(cmd, data)
}

func eventsDeleteAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "event-id")
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

	if err := e.client.DeleteEvent(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Event deleted successfully.")
	return nil
}

func eventsToggleAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "event-id")
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

	data, err := e.client.ToggleEvent(ctx, args[0])
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		status := "deactivated"
		if gjson.GetBytes(data, "is_active").Bool() {
			status = "activated"
		}
		fmt.Printf("Event %s successfully.\n\n", status)
	}
	return output(cmd, data)
}

func eventsInstancesAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "event-id")
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

	data, err := e.client.EventInstances(ctx, args[0], api.InstanceQuery{
		From:      cmd.String("from"),
		To:        cmd.String("to"),
		Optimized: cmd.Bool("optimized"),
	})
	if err != nil {
		return err
	}

	foundBanner(cmd, data, "instance")
	return output(cmd, data)
}

func eventsNextAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "event-id")
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

	data, err := e.client.NextEventInstance(ctx, args[0])
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		if start := gjson.GetBytes(data, "start").String(); start != "" {
			fmt.Printf("Next occurrence: %s\n\n", start)
		}
	}
	return output(cmd, data)
}

func eventsExportAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "event-id")
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

	data, err := e.client.EventInstances(ctx, args[0], api.InstanceQuery{
		From: cmd.String("from"),
		To:   cmd.String("to"),
	})
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		if err := render.JSON(f, data); err != nil {
			return err
		}
		fmt.Printf("Exported %d instance(s) to %s\n", render.Count(data), out)
		return nil
	}

	return render.JSON(os.Stdout, data)
}
