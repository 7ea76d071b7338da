// Package config loads service configuration from the environment.
package config

import "github.com/caarlos0/env/v10"

type Config struct {
	// LedgerAPIURL is the base URL of the Hiro-style node API.
	LedgerAPIURL string `env:"LEDGER_API_URL,required"`
	// Contract is the tokenized-stock contract identifier, "ADDRESS.name".
	Contract string `env:"STOCKIFY_CONTRACT,required"`
	// ParamPrefix is the SSM path prefix for secrets (demo signer key).
	ParamPrefix     string `env:"PARAM_PREFIX,required"`
	ExplorerBaseURL string `env:"EXPLORER_BASE_URL" envDefault:"https://explorer.hiro.so"`
	MaxMessageLen   int    `env:"MAX_MESSAGE_LENGTH" envDefault:"500"`
}

func Load() (Config, error) {
	var cfg Config
	return cfg, env.Parse(&cfg)
}
