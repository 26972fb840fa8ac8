package cli

import (
	"context"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/rulesync-dev/rulesync/internal/adapter/agent"
	"github.com/rulesync-dev/rulesync/internal/domain"
)

// ListCmd represents the list command
type ListCmd struct {
	Config  string `help:"Path to the configuration file" default:".rulesync.toml"`
	BaseDir string `help:"Project directory to resolve output paths against" default:"."`
}

// Run executes the list command
func (c *ListCmd) Run(ctx *kong.Context) error {
	return c.run(context.Background(), NewLogger(verboseFlag(ctx)))
}

// run lists every registered agent with its output path, marking the
// ones the current configuration would select.
func (c *ListCmd) run(ctx context.Context, logger *Logger) error {
	config, err := loadConfigOrDefault(ctx, c.Config, logger)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}

	registry := agent.Registry()
	loaded := &domain.LoadedConfig{
		DefaultAgents: config.DefaultAgents,
		AgentConfigs:  config.Agents,
	}

	selected := map[string]bool{}
	agents, err := domain.ResolveSelectedAgents(loaded, registry)
	if err != nil {
		// An invalid default_agents entry should not hide the agent
		// table; report it and list with nothing marked.
		logger.Error("%v", err)
	} else {
		for _, a := range agents {
			selected[a.Identifier()] = true
		}
	}

	logger.Info("")
	logger.Info("Supported Agents:")
	logger.Info("%-2s %-16s %-18s %-40s", "", "IDENTIFIER", "NAME", "OUTPUT PATH")
	logger.Info("%s", "--------------------------------------------------------------------------------")

	for _, a := range registry {
		marker := ""
		if selected[a.Identifier()] {
			marker = "*"
		}
		outputPath := a.DefaultOutputPath(c.BaseDir)
		if ac := config.AgentConfigFor(a.Identifier()); ac != nil && ac.OutputPath != "" {
			if filepath.IsAbs(ac.OutputPath) {
				outputPath = ac.OutputPath
			} else {
				outputPath = filepath.Join(c.BaseDir, ac.OutputPath)
			}
		}
		logger.Info("%-2s %-16s %-18s %-40s", marker, a.Identifier(), a.DisplayName(), outputPath)
	}

	logger.Info("")
	logger.Info("Total: %d agent(s), * = selected by current configuration", len(registry))

	return nil
}
