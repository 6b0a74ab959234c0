package serve

import (
	"context"
	"fmt"
	"log/slog"

	"doppel/internal/agent"
	"doppel/internal/config"
	gw "doppel/internal/gateway"
	"doppel/internal/llm"
	"doppel/internal/notify"
	"doppel/internal/persona"
	"doppel/internal/store"
	"doppel/internal/tools"
	"doppel/internal/trace"

	"github.com/spf13/cobra"
)

var (
	addr       string
	configFile string
)

var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the persona chat server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr != "" {
			cfg.Gateway.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if cfg.Trace.Endpoint != "" {
			shutdown, err := trace.Init(ctx, trace.Config(cfg.Trace))
			if err != nil {
				return fmt.Errorf("initializing tracing: %w", err)
			}
			defer shutdown(context.Background())
		}

		p, err := persona.Load(cfg.Persona.Name, cfg.Persona.Dir)
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		defer st.Close()

		notifier := notify.NewPushover(cfg.Pushover.Token, cfg.Pushover.User)
		if !notifier.Enabled() {
			slog.Warn("pushover credentials missing, notifications disabled")
		}

		registry := agent.NewRegistry(
			tools.NewContact(notifier, st),
			tools.NewUnknownQuestion(notifier, st),
		)
		provider := llm.NewOpenAI(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
		ag := agent.New(p, provider, registry,
			agent.WithMaxToolRounds(cfg.Agent.MaxToolRounds),
		)

		srv := gw.NewServer(ag, st)
		slog.Info("starting gateway", "addr", cfg.Gateway.Addr, "persona", cfg.Persona.Name, "model", cfg.LLM.Model)
		return srv.ListenAndServe(cfg.Gateway.Addr)
	},
}

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", "", "override gateway listen address")
	Cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file")
}
