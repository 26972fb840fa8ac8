// Package domain provides the core logic of rulesync: configuration
// handling, agent selection, rule concatenation, and the apply/revert
// engines.
package domain

// DefaultRulesDir is the directory rule fragments are read from when
// the configuration does not name one.
const DefaultRulesDir = ".rulesync"

// Config represents the entire .rulesync.toml configuration.
type Config struct {
	// RulesDir is the directory containing the rule fragment files.
	RulesDir string `toml:"rules_dir,omitempty"`

	// DefaultAgents lists the agents to target when the command line
	// names none. Entries match agent identifiers exactly or display
	// names by substring.
	DefaultAgents []string `toml:"default_agents,omitempty"`

	// Agents holds per-agent settings keyed by agent identifier.
	Agents map[string]*AgentConfig `toml:"agents,omitempty"`
}

// AgentConfig is the per-agent settings record.
type AgentConfig struct {
	// Enabled, when set, decides the agent's inclusion outright during
	// default-list selection and opts the agent out of the
	// everything-enabled fallback when false.
	Enabled *bool `toml:"enabled,omitempty"`

	// OutputPath overrides the agent's default output location,
	// resolved relative to the project directory unless absolute.
	OutputPath string `toml:"output_path,omitempty"`
}

// AgentConfigFor returns the settings record for the identifier, or nil
// when none is configured.
func (c *Config) AgentConfigFor(identifier string) *AgentConfig {
	if c == nil || c.Agents == nil {
		return nil
	}
	return c.Agents[identifier]
}

// EffectiveRulesDir returns the configured rules directory, falling
// back to DefaultRulesDir.
func (c *Config) EffectiveRulesDir() string {
	if c != nil && c.RulesDir != "" {
		return c.RulesDir
	}
	return DefaultRulesDir
}

// Validate validates the configuration. Identifiers under [agents.*]
// that no registered agent uses are tolerated: a config may predate or
// outlive an agent's presence in the registry, and selection never
// reads them.
func (c *Config) Validate() error {
	for id, ac := range c.Agents {
		if id == "" {
			return Errorf("agent settings require a non-empty agent identifier")
		}
		if ac == nil {
			return Errorf("agent settings for %q are empty", id)
		}
	}
	return nil
}
