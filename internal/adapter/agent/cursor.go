package agent

import (
	"bytes"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rulesync-dev/rulesync/internal/port"
)

// Cursor writes project rules as an .mdc file under .cursor/rules.
// Cursor expects a YAML frontmatter block describing how the rule is
// attached, followed by the rule body.
type Cursor struct{}

// NewCursor creates the Cursor agent adapter instance.
func NewCursor() port.Agent {
	return &Cursor{}
}

// frontmatter is the Cursor .mdc rule header.
type frontmatter struct {
	Description string `yaml:"description"`
	Globs       string `yaml:"globs"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

var frontmatterDelim = []byte("---\n")

// Identifier returns the unique key for the Cursor agent.
func (a *Cursor) Identifier() string {
	return "cursor"
}

// DisplayName returns the human-readable agent name.
func (a *Cursor) DisplayName() string {
	return "Cursor"
}

// DefaultOutputPath returns the rule file location under baseDir.
func (a *Cursor) DefaultOutputPath(baseDir string) string {
	return filepath.Join(baseDir, ".cursor", "rules", "rulesync.mdc")
}

// Render wraps the rules document in Cursor's .mdc frontmatter. When the
// existing file already carries a frontmatter block, its settings are
// preserved so a user-tuned description or glob survives re-apply.
func (a *Cursor) Render(rules string, existing []byte) ([]byte, error) {
	fm := frontmatter{AlwaysApply: true}
	if prev, ok := parseFrontmatter(existing); ok {
		fm = prev
	}

	header, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cursor frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(frontmatterDelim)
	buf.Write(header)
	buf.Write(frontmatterDelim)
	buf.WriteString("\n")
	buf.WriteString(rules)
	return buf.Bytes(), nil
}

// parseFrontmatter extracts the leading YAML frontmatter block from an
// existing .mdc file. Returns false when the content has no block or
// the block is not valid YAML.
func parseFrontmatter(content []byte) (frontmatter, bool) {
	var fm frontmatter

	if !bytes.HasPrefix(content, frontmatterDelim) {
		return fm, false
	}
	rest := content[len(frontmatterDelim):]
	end := bytes.Index(rest, frontmatterDelim)
	if end < 0 {
		return fm, false
	}
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return fm, false
	}
	return fm, true
}
