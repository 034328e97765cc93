package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// defaults are merged in last, so any value set by env or flags wins.
// The admin identity mirrors the backend's original superuser script; the
// migration retry delay and readiness budgets match the compose startup
// ordering the container is deployed with.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Runtime: Runtime{
			Mode: Production,
		},
		Server: Server{
			Command:        "uvicorn",
			App:            "app.main:app",
			Host:           "0.0.0.0",
			Port:           8000,
			Workers:        4,
			HealthPath:     "/ping",
			HealthAttempts: 30,
			HealthInterval: time.Second,
		},
		Migrations: Migrations{
			Policy:     MigrationStrict,
			RetryDelay: 5 * time.Second,
		},
		Readiness: Readiness{
			MaxAttempts: 30,
			Interval:    time.Second,
		},
		Seed: Seed{
			AdminEmail:    "admin@example.com",
			AdminPassword: "admin",
			AdminFullName: "Admin User",
		},
	}
}

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 3),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}
