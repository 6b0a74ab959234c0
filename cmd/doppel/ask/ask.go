package ask

import (
	"fmt"
	"log/slog"

	"doppel/internal/agent"
	"doppel/internal/config"
	"doppel/internal/llm"
	"doppel/internal/notify"
	"doppel/internal/persona"
	"doppel/internal/store"
	"doppel/internal/tools"

	"github.com/spf13/cobra"
)

var configFile string

// Cmd asks the persona a single question with empty history. Exercises the
// same construction path as serve, without the HTTP host.
var Cmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the persona a single question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
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

		reply, err := ag.Chat(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file")
}
