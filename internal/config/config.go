package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Persona  PersonaConfig  `toml:"persona"`
	Pushover PushoverConfig `toml:"pushover"`
	Agent    AgentConfig    `toml:"agent"`
	Gateway  GatewayConfig  `toml:"gateway"`
	DB       DBConfig       `toml:"db"`
	Trace    TraceConfig    `toml:"trace"`
}

type LLMConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

type PersonaConfig struct {
	Name string `toml:"name"`
	Dir  string `toml:"dir"`
}

type PushoverConfig struct {
	Token string `toml:"token"`
	User  string `toml:"user"`
}

type AgentConfig struct {
	MaxToolRounds int `toml:"max_tool_rounds"`
}

type GatewayConfig struct {
	Addr string `toml:"addr"`
}

type DBConfig struct {
	Path string `toml:"path"`
}

type TraceConfig struct {
	Endpoint string `toml:"endpoint"`
	URLPath  string `toml:"url_path"`
	APIKey   string `toml:"api_key"`
}

// Load reads the config file at path (or the default location when path is
// empty), then layers secret overrides from the environment on top. Missing
// files yield defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		Persona: PersonaConfig{
			Dir: "me",
		},
		Agent: AgentConfig{
			MaxToolRounds: 8,
		},
		Gateway: GatewayConfig{
			Addr: ":8686",
		},
		DB: DBConfig{
			Path: defaultDBPath(),
		},
	}

	if path == "" {
		path = configPath()
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// Validate enforces the fail-fast startup contract: no conversation may be
// served without model credentials, a persona name, and a persona directory.
// Pushover credentials are deliberately not required; without them the
// notifier is disabled and tool acknowledgments are unaffected.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("llm api key is not set (config llm.api_key or OPENAI_API_KEY)")
	}
	if c.Persona.Name == "" {
		return errors.New("persona name is not set (config persona.name)")
	}
	if c.Persona.Dir == "" {
		return errors.New("persona dir is not set (config persona.dir)")
	}
	if c.Agent.MaxToolRounds <= 0 {
		return errors.New("agent max_tool_rounds must be positive")
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("PUSHOVER_TOKEN"); v != "" {
		cfg.Pushover.Token = v
	}
	if v := os.Getenv("PUSHOVER_USER"); v != "" {
		cfg.Pushover.User = v
	}
}

func configPath() string {
	dir, _ := os.UserConfigDir()
	return filepath.Join(dir, "doppel", "config.toml")
}

func defaultDBPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, ".local", "share", "doppel", "doppel.db")
}
