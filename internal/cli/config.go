package cli

import (
	"context"
	"errors"

	"github.com/rulesync-dev/rulesync/internal/domain"
)

// loadConfigOrDefault loads the configuration file, treating a missing
// file as an empty configuration. Every command except init works
// without one: selection then falls through to the enable-everything
// tier and all agents use their default paths.
func loadConfigOrDefault(ctx context.Context, configPath string, logger *Logger) (*domain.Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}
	configManager := domain.NewConfigManager(configPath)

	config, err := configManager.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			logger.Verbose("No configuration file at %s, using defaults", configPath)
			return &domain.Config{}, nil
		}
		return nil, err
	}

	logger.Verbose("Loaded configuration from %s", configPath)
	return config, nil
}
