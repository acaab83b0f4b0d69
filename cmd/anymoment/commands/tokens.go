package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/sineways/anymoment-cli/internal/render"
)

func tokensCommand() *cli.Command {
	return &cli.Command{
		Name:  "tokens",
		Usage: "Token cache management",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show all cached tokens with expiry status",
				Action: tokensListAction,
			},
			{
				Name:   "clear",
				Usage:  "Clear all cached tokens",
				Action: tokensClearAction,
			},
		},
	}
}

func tokensListAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	statuses, err := e.store.List(ctx)
	if err != nil {
		return err
	}

	if len(statuses) == 0 {
		fmt.Println("No tokens found.")
		fmt.Println("  Run 'anymoment auth login' to authenticate.")
		return nil
	}

	fmt.Println("Cached tokens:")
	render.TokenTable(os.Stdout, statuses)
	return nil
}

func tokensClearAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	if err := e.store.Clear(ctx); err != nil {
		return err
	}

	fmt.Println("All tokens cleared.")
	return nil
}
