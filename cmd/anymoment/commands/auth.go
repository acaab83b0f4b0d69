package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication commands",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Interactive login (prompts for email and password)",
				Flags:  []cli.Flag{hostFlag()},
				Action: loginAction,
			},
			{
				Name:   "logout",
				Usage:  "Clear the cached token for a host",
				Flags:  []cli.Flag{hostFlag()},
				Action: logoutAction,
			},
		},
	}
}

func loginAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s...\n", e.client.BaseURL())

	email, err := promptLine("Email: ")
	if err != nil {
		return err
	}
	if email == "" {
		return errors.New("email is required")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password is required")
	}

	if _, err := e.client.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("Login successful.")
	fmt.Printf("  Token saved for %s\n", e.client.BaseURL())
	return nil
}

func logoutAction(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}

	if err := e.store.Delete(ctx, e.client.BaseURL()); err != nil {
		return err
	}

	fmt.Printf("Logged out from %s\n", e.client.BaseURL())
	return nil
}
