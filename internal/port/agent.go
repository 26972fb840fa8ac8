// Package port defines the abstraction interfaces between the domain
// logic and the per-agent adapter implementations.
package port

// Agent describes one supported coding-agent tool. Implementations form
// a closed, registry-driven set: one per agent, created at process
// start and never mutated.
type Agent interface {
	// Identifier returns the unique, lowercase, stable key for the agent.
	Identifier() string

	// DisplayName returns the human-readable agent name. Display names
	// are not guaranteed unique.
	DisplayName() string

	// DefaultOutputPath returns the agent's default rules file location
	// under the given project directory.
	DefaultOutputPath(baseDir string) string

	// Render produces the bytes to write to the agent's output path.
	// Most agents pass the merged rules document through unchanged;
	// format-aware agents may transform it or carry state over from the
	// existing file content (nil when no file exists yet).
	Render(rules string, existing []byte) ([]byte, error)
}
