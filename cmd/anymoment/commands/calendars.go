package commands

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/sineways/anymoment-cli/internal/api"
)

func calendarsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendars",
		Usage: "Calendar management",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List calendars",
				Flags: append(activeFlags(),
					&cli.IntFlag{Name: "limit", Usage: "maximum number of results"},
					&cli.IntFlag{Name: "offset", Usage: "number of results to skip"},
					hostFlag(), rawFlag(), pipeFlag(),
				),
				Action: calendarsListAction,
			},
			{
				Name:      "create",
				Usage:     "Create a new calendar",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description", Usage: "calendar description"},
					&cli.StringFlag{Name: "timezone", Usage: "calendar timezone (defaults to config or UTC)"},
					&cli.StringFlag{Name: "color", Usage: "calendar color"},
					hostFlag(), rawFlag(),
				},
				Action: calendarsCreateAction,
			},
			{
				Name:      "get",
				Usage:     "Get calendar details",
				ArgsUsage: "<calendar-id>",
				Flags:     []cli.Flag{hostFlag(), rawFlag()},
				Action:    calendarsGetAction,
			},
			{
				Name:      "update",
				Usage:     "Update a calendar",
				ArgsUsage: "<calendar-id>",
				Flags: append(activeFlags(),
					&cli.StringFlag{Name: "name", Usage: "calendar name"},
					&cli.StringFlag{Name: "description", Usage: "calendar description"},
					&cli.StringFlag{Name: "timezone", Usage: "calendar timezone"},
					&cli.StringFlag{Name: "color", Usage: "calendar color"},
					hostFlag(), rawFlag(),
				),
				Action: calendarsUpdateAction,
			},
			{
				Name:      "delete",
				Usage:     "Delete a calendar",
				ArgsUsage: "<calendar-id>",
				Flags:     []cli.Flag{hostFlag()},
				Action:    calendarsDeleteAction,
			},
			{
				Name:      "share",
				Usage:     "Share a calendar with another user",
				ArgsUsage: "<calendar-id> <user-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "role", Usage: "role: owner, editor, viewer", Value: "viewer"},
					hostFlag(), rawFlag(),
				},
				Action: calendarsShareAction,
			},
			{
				Name:      "webhook-url",
				Usage:     "Get the webhook URL for a calendar",
				ArgsUsage: "<calendar-id>",
				Flags:     []cli.Flag{hostFlag(), rawFlag()},
				Action:    calendarsWebhookURLAction,
			},
			{
				Name:      "link",
				Usage:     "Link an event to a calendar",
				ArgsUsage: "<calendar-id> <event-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "order", Usage: "display order within the calendar"},
					&cli.StringFlag{Name: "color", Usage: "color override for this calendar"},
					hostFlag(), rawFlag(),
				},
				Action: calendarsLinkAction,
			},
			{
				Name:      "unlink",
				Usage:     "Unlink an event from a calendar",
				ArgsUsage: "<calendar-id> <event-id>",
				Flags:     []cli.Flag{hostFlag()},
				Action:    calendarsUnlinkAction,
			},
		},
	}
}

func calendarsListAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.requireAuth(ctx); err != nil {
		return err
	}

	data, err := e.client.ListCalendars(ctx, api.ListQuery{
		IsActive: activeFilter(cmd),
		Limit:    intPtr(cmd, "limit"),
		Offset:   intPtr(cmd, "offset"),
	})
	if err != nil {
		return err
	}

	foundBanner(cmd, data, "calendar")
	return output(cmd, data)
}

func calendarsCreateAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "name")
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

	data, err := e.client.CreateCalendar(ctx, api.CreateCalendarParams{
		Name:        args[0],
		Description: strPtr(cmd, "description"),
		Timezone:    timezone,
		Color:       strPtr(cmd, "color"),
	})
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Println("Calendar created successfully.")
		fmt.Println()
	}
	if err := output(cmd, data); err != nil {
		return err
	}
	if !cmd.Bool("raw") {
		fmt.Printf("\n  Calendar ID: %s\n", gjson.GetBytes(data, "id").String())
	}
	return nil
}

func calendarsGetAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id")
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

	data, err := e.client.GetCalendar(ctx, args[0])
	if err != nil {
		return err
	}
	return output(cmd, data)
}

func calendarsUpdateAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id")
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

	data, err := e.client.UpdateCalendar(ctx, args[0], api.UpdateCalendarParams{
		Name:        strPtr(cmd, "name"),
		Description: strPtr(cmd, "description"),
		Timezone:    strPtr(cmd, "timezone"),
		Color:       strPtr(cmd, "color"),
		IsActive:    activeFilter(cmd),
	})
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Println("Calendar updated successfully.")
		fmt.Println()
	}
	return output(cmd, data)
}

func calendarsDeleteAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id")
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

	if err := e.client.DeleteCalendar(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Calendar deleted successfully.")
	return nil
}

func calendarsShareAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id", "user-id")
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

	role := cmd.String("role")
	data, err := e.client.ShareCalendar(ctx, args[0], args[1], role)
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Printf("Calendar shared with user %s as %s.\n\n", args[1], role)
	}
	return output(cmd, data)
}

func calendarsLinkAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id", "event-id")
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

	data, err := e.client.LinkEvent(ctx, args[0], args[1], intPtr(cmd, "order"), strPtr(cmd, "color"))
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Println("Event linked successfully.")
		fmt.Println()
	}
	return output(cmd, data)
}

func calendarsUnlinkAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id", "event-id")
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

	if err := e.client.UnlinkEvent(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Println("Event unlinked successfully.")
	return nil
}

func calendarsWebhookURLAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id")
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

	data, err := e.client.CalendarWebhookURL(ctx, args[0])
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Printf("Webhook URL:\n  %s\n\n", gjson.GetBytes(data, "webhook_url").String())
	}
	return output(cmd, data)
}
