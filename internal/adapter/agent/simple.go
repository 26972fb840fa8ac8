package agent

import (
	"path/filepath"

	"github.com/rulesync-dev/rulesync/internal/port"
)

// simpleAgent is a generic agent implementation for agents that expect
// the rules document verbatim in a single file at a fixed path under
// the project directory.
type simpleAgent struct {
	id        string
	name      string
	pathParts []string
}

func newSimpleAgent(id, name string, pathParts ...string) port.Agent {
	return &simpleAgent{id: id, name: name, pathParts: pathParts}
}

func (a *simpleAgent) Identifier() string {
	return a.id
}

func (a *simpleAgent) DisplayName() string {
	return a.name
}

func (a *simpleAgent) DefaultOutputPath(baseDir string) string {
	parts := append([]string{baseDir}, a.pathParts...)
	return filepath.Join(parts...)
}

func (a *simpleAgent) Render(rules string, _ []byte) ([]byte, error) {
	return []byte(rules), nil
}

// NewClaudeCode creates the Claude Code agent adapter (CLAUDE.md).
func NewClaudeCode() port.Agent {
	return newSimpleAgent("claude-code", "Claude Code", "CLAUDE.md")
}

// NewCodexCLI creates the Codex CLI agent adapter (AGENTS.md).
func NewCodexCLI() port.Agent {
	return newSimpleAgent("codex-cli", "Codex CLI", "AGENTS.md")
}

// NewCline creates the Cline agent adapter (.clinerules).
func NewCline() port.Agent {
	return newSimpleAgent("cline", "Cline", ".clinerules")
}

// NewWindsurf creates the Windsurf agent adapter (.windsurfrules).
func NewWindsurf() port.Agent {
	return newSimpleAgent("windsurf", "Windsurf", ".windsurfrules")
}

// NewGithubCopilot creates the GitHub Copilot agent adapter
// (.github/copilot-instructions.md).
func NewGithubCopilot() port.Agent {
	return newSimpleAgent("github-copilot", "GitHub Copilot", ".github", "copilot-instructions.md")
}

// NewGeminiCLI creates the Gemini CLI agent adapter (GEMINI.md).
func NewGeminiCLI() port.Agent {
	return newSimpleAgent("gemini-cli", "Gemini CLI", "GEMINI.md")
}

// NewJunie creates the JetBrains Junie agent adapter (.junie/guidelines.md).
func NewJunie() port.Agent {
	return newSimpleAgent("junie", "JetBrains Junie", ".junie", "guidelines.md")
}

// NewGoose creates the Goose agent adapter (.goosehints).
func NewGoose() port.Agent {
	return newSimpleAgent("goose", "Goose", ".goosehints")
}

// NewAmp creates the Amp agent adapter (AGENT.md).
func NewAmp() port.Agent {
	return newSimpleAgent("amp", "Amp", "AGENT.md")
}

// NewQwenCode creates the Qwen Code agent adapter (QWEN.md).
func NewQwenCode() port.Agent {
	return newSimpleAgent("qwen-code", "Qwen Code", "QWEN.md")
}

// NewAider creates the Aider agent adapter (CONVENTIONS.md).
func NewAider() port.Agent {
	return newSimpleAgent("aider", "Aider", "CONVENTIONS.md")
}
