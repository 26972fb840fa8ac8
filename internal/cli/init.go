package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/rulesync-dev/rulesync/internal/domain"
)

// starterRule seeds the rules directory so the first apply has
// something to write.
const starterRule = `# Project rules

Describe your project's conventions here. Every markdown file in this
directory becomes part of the rules document written to each agent.
`

// InitCmd represents the init command
type InitCmd struct {
	Config        string   `help:"Path to the configuration file to create" default:".rulesync.toml"`
	RulesDir      string   `help:"Rules directory to create" default:".rulesync"`
	DefaultAgents []string `help:"Agent names to record as default_agents"`
}

// Run executes the init command
func (c *InitCmd) Run(ctx *kong.Context) error {
	return c.run(context.Background(), NewLogger(verboseFlag(ctx)))
}

// run creates the configuration file and seeds the rules directory with
// a starter fragment.
func (c *InitCmd) run(ctx context.Context, logger *Logger) error {
	configManager := domain.NewConfigManager(c.Config)
	if err := configManager.Initialize(ctx, c.RulesDir, c.DefaultAgents); err != nil {
		logger.Error("Failed to create configuration: %v", err)
		return err
	}
	logger.Success("Created %s", c.Config)

	if err := os.MkdirAll(c.RulesDir, 0o755); err != nil {
		logger.Error("Failed to create rules directory %s: %v", c.RulesDir, err)
		return err
	}

	starterPath := filepath.Join(c.RulesDir, "overview.md")
	if _, err := os.Stat(starterPath); os.IsNotExist(err) {
		if err := os.WriteFile(starterPath, []byte(starterRule), 0o644); err != nil {
			logger.Error("Failed to create starter rule file %s: %v", starterPath, err)
			return err
		}
		logger.Success("Created %s", starterPath)
	} else {
		logger.Verbose("Rule file %s already exists, leaving it in place", starterPath)
	}

	logger.Info("")
	logger.Info("Edit the rules under %s, then run 'rulesync apply'", c.RulesDir)
	return nil
}
