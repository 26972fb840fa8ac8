package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/rulesync-dev/rulesync/internal/adapter/agent"
	"github.com/rulesync-dev/rulesync/internal/domain"
)

// RevertCmd represents the revert command
type RevertCmd struct {
	Agents       []string `arg:"" optional:"" help:"Agent identifiers to revert (default: all agents)"`
	Config       string   `help:"Path to the configuration file" default:".rulesync.toml"`
	BaseDir      string   `help:"Project directory containing the agent files" default:"."`
	BackupSuffix string   `help:"Suffix for backup artifacts" default:".bak"`
	KeepBackups  bool     `help:"Keep backup artifacts after restoring from them"`
	DryRun       bool     `help:"Show what would be restored or deleted without touching files"`
}

// Run executes the revert command
func (c *RevertCmd) Run(ctx *kong.Context) error {
	return c.run(context.Background(), NewLogger(verboseFlag(ctx)))
}

// run is the internal implementation, callable from tests with a custom
// logger. Revert consumes only file-system state: it works without a
// prior apply in the same process.
func (c *RevertCmd) run(ctx context.Context, logger *Logger) error {
	config, err := loadConfigOrDefault(ctx, c.Config, logger)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return err
	}

	manager := domain.NewSyncManager(agent.Registry(), config.Agents, domain.SyncOptions{
		BackupSuffix: c.BackupSuffix,
		KeepBackups:  c.KeepBackups,
		DryRun:       c.DryRun,
	}, logger.Verbose)

	results, err := manager.Revert(ctx, c.Agents, c.BaseDir)
	if err != nil {
		c.report(logger, results)
		logger.Error("%v", err)
		return err
	}
	c.report(logger, results)
	return nil
}

func (c *RevertCmd) report(logger *Logger, results []*domain.AgentResult) {
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
		if r.Action == domain.ActionSkipped {
			logger.Info("%s%s: %s %s", prefix, r.Identifier, r.Action, r.OutputPath)
			continue
		}
		logger.Success("%s%s: %s %s", prefix, r.Identifier, r.Action, r.OutputPath)
	}
}
