package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Commands: []*cli.Command{
			{
				Name:      "set-url",
				Usage:     "Set the default API URL",
				ArgsUsage: "<url>",
				Action:    configSetURLAction,
			},
			{
				Name:      "set-timezone",
				Usage:     "Set the default timezone (IANA format, e.g. America/New_York)",
				ArgsUsage: "<timezone>",
				Action:    configSetTimezoneAction,
			},
			{
				Name:      "set-calendar",
				Usage:     "Set the default calendar ID",
				ArgsUsage: "<calendar-id>",
				Action:    configSetCalendarAction,
			},
			{
				Name:   "show",
				Usage:  "Display the current configuration",
				Action: configShowAction,
			},
		},
	}
}

func configSetURLAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "url")
	if err != nil {
		return err
	}

	if err := setConfigValue(cmd.String("config"), "api.base_url", args[0]); err != nil {
		return err
	}
	fmt.Printf("Default API URL set to %s\n", args[0])
	return nil
}

func configSetTimezoneAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "timezone")
	if err != nil {
		return err
	}

	if err := setConfigValue(cmd.String("config"), "defaults.timezone", args[0]); err != nil {
		return err
	}
	fmt.Printf("Default timezone set to %s\n", args[0])
	return nil
}

func configSetCalendarAction(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, "calendar-id")
	if err != nil {
		return err
	}
	if err := uuid.Validate(args[0]); err != nil {
		return fmt.Errorf("invalid calendar ID %q", args[0])
	}

	if err := setConfigValue(cmd.String("config"), "defaults.calendar_id", args[0]); err != nil {
		return err
	}
	fmt.Printf("Default calendar ID set to %s\n", args[0])
	return nil
}

func configShowAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"), cmd, os.Environ)
	if err != nil {
		return err
	}

	calendarID := cfg.Defaults.CalendarID
	if calendarID == "" {
		calendarID = "(not set)"
	}

	fmt.Println("Current configuration:")
	fmt.Printf("  API URL:       %s\n", cfg.API.BaseURL)
	fmt.Printf("  Timezone:      %s\n", cfg.Defaults.Timezone)
	fmt.Printf("  Calendar ID:   %s\n", calendarID)
	fmt.Printf("  Token storage: %s\n", cfg.Auth.Storage)
	return nil
}
