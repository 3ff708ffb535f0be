// Command docstudio is the terminal front end for the documentation studio
// backend: generate documentation from a JSON sample, browse history, edit
// revisions and manage rules.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docstudio/internal/apiclient"
	"docstudio/internal/catalog"
	"docstudio/internal/config"
	models "docstudio/internal/domain/models/docgen"
)

// app is the state shared by every subcommand
type app struct {
	cfg    *config.ClientConfig
	logger *slog.Logger
	client *apiclient.Client
	agent  models.AgentConfig
	out    io.Writer
	errOut io.Writer
	// plain disables glamour and lipgloss output
	plain bool
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{out: os.Stdout, errOut: os.Stderr}
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		apiURL  string
		token   string
		agent   string
		verbose bool
	)

	root := &cobra.Command{
		Use:           "docstudio",
		Short:         "Generate and manage API documentation",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `docstudio talks to the documentation backend.

Pick a rule, give it a request and response JSON sample plus a short
description, and the backend generates markdown documentation. Generated
documents keep a revision graph that can be browsed and edited.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(apiURL, token, agent, verbose)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", "", "backend base URL (default $DOCSTUDIO_API_URL)")
	flags.StringVar(&token, "token", "", "bearer token (default $DOCSTUDIO_TOKEN)")
	flags.StringVar(&agent, "agent", "", "generation agent profile (default $DOCSTUDIO_AGENT)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	flags.BoolVar(&a.plain, "plain", false, "print raw markdown without styling")

	root.AddCommand(
		newGenerateCmd(a),
		newDocsCmd(a),
		newRulesCmd(a),
	)
	return root
}

func (a *app) setup(apiURL, token, agent string, verbose bool) error {
	cfg := config.LoadClient()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if token != "" {
		cfg.Token = token
	}
	if agent != "" {
		cfg.Agent = agent
	}
	cfg.Debug = cfg.Debug || verbose
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	// Warnings and errors only unless asked; the terminal is for output
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("failed to load agent catalog: %w", err)
	}
	profile, err := cat.Agent(cfg.Agent)
	if err != nil {
		return fmt.Errorf("unknown agent %q", cfg.Agent)
	}
	a.agent = profile.AgentConfig("")

	var opts []apiclient.Option
	if cfg.Token != "" {
		opts = append(opts, apiclient.WithToken(cfg.Token))
	}
	a.client = apiclient.New(cfg.APIURL, a.logger, opts...)

	a.logger.Debug("client configured", "api_url", cfg.APIURL, "agent", cfg.Agent)
	return nil
}

var readAllStdin = func() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	return string(data), err
}
