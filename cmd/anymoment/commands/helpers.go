package commands

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/sineways/anymoment-cli/internal/api"
	"github.com/sineways/anymoment-cli/internal/app"
	"github.com/sineways/anymoment-cli/internal/observability"
	"github.com/sineways/anymoment-cli/internal/render"
	"github.com/sineways/anymoment-cli/internal/tokenstore"
)

// env bundles the resolved configuration and the collaborators every
// command action needs.
type env struct {
	cfg    *app.Config
	store  tokenstore.Store
	client *api.Client
}

// setup loads configuration, installs logging, and builds the store and
// client for the selected host. Called at the start of every action.
func setup(cmd *cli.Command) (*env, error) {
	cfg, err := loadConfig(cmd.String("config"), cmd, os.Environ)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := observability.Instrument(cfg.LogLevel, string(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	store, err := cfg.Auth.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to create token store: %w", err)
	}

	baseURL := cfg.API.BaseURL
	if host := cmd.String("host"); host != "" {
		baseURL = host
	}

	return &env{
		cfg:    cfg,
		store:  store,
		client: api.New(baseURL, store, api.WithTimeout(cfg.API.Timeout)),
	}, nil
}

// requireAuth fails fast when no usable token is cached for the target
// host, before any request is attempted.
func (e *env) requireAuth(ctx context.Context) error {
	token, err := e.store.Get(ctx, e.client.BaseURL())
	if err != nil {
		return err
	}
	if token == "" {
		return &api.Error{
			Kind:       api.KindAuthentication,
			StatusCode: http.StatusUnauthorized,
			Detail:     "not authenticated; run 'anymoment auth login' first",
		}
	}
	return nil
}

// output renders a response body according to the --raw/--pipe flags.
func output(cmd *cli.Command, data []byte) error {
	switch {
	case cmd.Bool("pipe"):
		return render.Pipe(os.Stdout, data)
	case cmd.Bool("raw"):
		return render.JSON(os.Stdout, data)
	default:
		return render.Summary(os.Stdout, data)
	}
}

// foundBanner prints the "Found N item(s)" line for list commands in
// human-readable mode.
func foundBanner(cmd *cli.Command, data []byte, noun string) {
	if cmd.Bool("raw") || cmd.Bool("pipe") {
		return
	}
	if n := render.Count(data); n > 0 {
		fmt.Printf("Found %d %s(s):\n\n", n, noun)
	}
}

// Shared flags

func hostFlag() *cli.StringFlag {
	return &cli.StringFlag{Name: "host", Usage: "API host URL"}
}

func rawFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "raw", Usage: "output full JSON"}
}

func pipeFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "pipe", Usage: "output only IDs"}
}

func activeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "active", Usage: "only active entries"},
		&cli.BoolFlag{Name: "inactive", Usage: "only inactive entries"},
	}
}

// activeFilter resolves the tri-state --active/--inactive pair.
func activeFilter(cmd *cli.Command) *bool {
	if cmd.Bool("active") {
		b := true
		return &b
	}
	if cmd.Bool("inactive") {
		b := false
		return &b
	}
	return nil
}

// intPtr returns the flag value only when it was set explicitly.
func intPtr(cmd *cli.Command, name string) *int {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.Int(name)
	return &v
}

// strPtr returns the flag value only when it was set explicitly.
func strPtr(cmd *cli.Command, name string) *string {
	if !cmd.IsSet(name) {
		return nil
	}
	v := cmd.String(name)
	return &v
}

// requireArgs extracts the positional arguments, naming the first missing
// one in the error.
func requireArgs(cmd *cli.Command, names ...string) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) < len(names) {
		return nil, fmt.Errorf("missing required argument: %s", names[len(args)])
	}
	return args, nil
}

// splitIDs parses a comma-separated ID list flag.
func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// promptLine reads one line of input, with the prompt written to stderr so
// piped stdout stays clean.
func promptLine(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a secret without echo when stdin is a terminal, and
// falls back to a plain line read otherwise (pipes, tests).
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(label)
	}

	fmt.Fprint(os.Stderr, label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(secret)), nil
}
