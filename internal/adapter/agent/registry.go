// Package agent provides the adapter implementations for every
// supported coding-agent tool. The set is closed: adding support for a
// new agent means adding a constructor here and registering it in
// Registry.
package agent

import (
	"github.com/rulesync-dev/rulesync/internal/port"
)

// Registry returns all supported agents in their canonical order.
// Selection and batch operations preserve this order, so it must stay
// stable across releases.
func Registry() []port.Agent {
	return []port.Agent{
		NewClaudeCode(),
		NewCodexCLI(),
		NewCursor(),
		NewCline(),
		NewWindsurf(),
		NewGithubCopilot(),
		NewGeminiCLI(),
		NewJunie(),
		NewGoose(),
		NewAmp(),
		NewQwenCode(),
		NewAider(),
	}
}

// Identifiers returns the identifiers of the given agents, preserving
// order.
func Identifiers(agents []port.Agent) []string {
	ids := make([]string, 0, len(agents))
	for _, a := range agents {
		ids = append(ids, a.Identifier())
	}
	return ids
}
