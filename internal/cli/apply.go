package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/rulesync-dev/rulesync/internal/adapter/agent"
	"github.com/rulesync-dev/rulesync/internal/domain"
)

// ApplyCmd represents the apply command
type ApplyCmd struct {
	Agents       []string `arg:"" optional:"" help:"Agent identifiers or name substrings to target (default: resolved from configuration)"`
	Config       string   `help:"Path to the configuration file" default:".rulesync.toml"`
	RulesDir     string   `help:"Directory containing rule fragment files (default: from configuration)"`
	BaseDir      string   `help:"Project directory to write agent files into" default:"."`
	BackupSuffix string   `help:"Suffix for backup artifacts" default:".bak"`
	DryRun       bool     `help:"Show what would change without writing files"`
}

// Run executes the apply command
func (c *ApplyCmd) Run(ctx *kong.Context) error {
	return c.run(context.Background(), NewLogger(verboseFlag(ctx)))
}

// run is the internal implementation, callable from tests with a custom
// logger.
func (c *ApplyCmd) run(ctx context.Context, logger *Logger) error {
	config, err := loadConfigOrDefault(ctx, c.Config, logger)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}

	registry := agent.Registry()
	loaded := &domain.LoadedConfig{
		CLIAgents:     c.Agents,
		DefaultAgents: config.DefaultAgents,
		AgentConfigs:  config.Agents,
	}

	selected, err := domain.ResolveSelectedAgents(loaded, registry)
	if err != nil {
		logger.Error("%v", err)
		return err
	}
	if len(selected) == 0 {
		logger.Info("No agents selected, nothing to do")
		return nil
	}
	logger.Verbose("Selected %d agent(s): %v", len(selected), agent.Identifiers(selected))

	rulesDir := c.RulesDir
	if rulesDir == "" {
		rulesDir = config.EffectiveRulesDir()
	}

	fragments, err := domain.LoadRuleFragments(rulesDir)
	if err != nil {
		logger.Error("Failed to load rule files: %v", err)
		return err
	}
	if len(fragments) == 0 {
		err := domain.Errorf("no rule files found in %s. Add markdown files to the rules directory", rulesDir)
		logger.Error("%v", err)
		return err
	}
	logger.Verbose("Loaded %d rule fragment(s) from %s", len(fragments), rulesDir)

	rules := domain.ConcatenateRules(fragments, c.BaseDir)

	manager := domain.NewSyncManager(registry, config.Agents, domain.SyncOptions{
		BackupSuffix: c.BackupSuffix,
		DryRun:       c.DryRun,
	}, logger.Verbose)

	results, err := manager.Apply(ctx, selected, rules, c.BaseDir)
	c.report(logger, results)
	if err != nil {
		logger.Error("%v", err)
		return err
	}
	return nil
}

func (c *ApplyCmd) report(logger *Logger, results []*domain.AgentResult) {
	prefix := ""
	if c.DryRun {
		prefix = "(dry-run) "
	}

	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Err != nil {
			logger.Error("%s%s: failed: %v", prefix, r.Identifier, r.Err)
			continue
		}
		logger.Success("%s%s: %s %s", prefix, r.Identifier, r.Action, r.OutputPath)
		if r.Diff != "" {
			logger.Info("%s", r.Diff)
		}
	}
}
