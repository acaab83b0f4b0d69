package commands

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
)

func usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "User management",
		Commands: []*cli.Command{
			{
				Name:   "me",
				Usage:  "Show current user info",
				Flags:  []cli.Flag{hostFlag(), rawFlag()},
				Action: usersMeAction,
			},
		},
	}
}

func usersMeAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := e.requireAuth(ctx); err != nil {
		return err
	}

	data, err := e.client.UserInfo(ctx)
	if err != nil {
		return err
	}

	if !cmd.Bool("raw") {
		fmt.Printf("Logged in as: %s\n\n", gjson.GetBytes(data, "email").String())
	}
	return output(cmd, data)
}
