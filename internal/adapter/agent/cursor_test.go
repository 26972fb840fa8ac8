package agent_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rulesync-dev/rulesync/internal/adapter/agent"
)

func TestCursor_DefaultOutputPath(t *testing.T) {
	a := agent.NewCursor()
	want := filepath.Join("/base", ".cursor", "rules", "rulesync.mdc")
	if got := a.DefaultOutputPath("/base"); got != want {
		t.Errorf("DefaultOutputPath() = %q, want %q", got, want)
	}
}

func TestCursor_RenderAddsFrontmatter(t *testing.T) {
	a := agent.NewCursor()

	got, err := a.Render("the rules body\n", nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	content := string(got)
	if !strings.HasPrefix(content, "---\n") {
		t.Errorf("output does not start with a frontmatter block: %q", content)
	}
	if !strings.Contains(content, "alwaysApply: true") {
		t.Errorf("default frontmatter missing alwaysApply: %q", content)
	}
	if !strings.HasSuffix(content, "the rules body\n") {
		t.Errorf("rules body missing or altered: %q", content)
	}
}

func TestCursor_RenderPreservesExistingFrontmatter(t *testing.T) {
	a := agent.NewCursor()

	existing := []byte("---\ndescription: my tuned rule\nglobs: \"src/**\"\nalwaysApply: false\n---\n\nold body\n")
	got, err := a.Render("new body\n", existing)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	content := string(got)
	if !strings.Contains(content, "description: my tuned rule") {
		t.Errorf("tuned description lost: %q", content)
	}
	if !strings.Contains(content, "alwaysApply: false") {
		t.Errorf("tuned alwaysApply lost: %q", content)
	}
	if !strings.Contains(content, "new body") {
		t.Errorf("new rules body missing: %q", content)
	}
	if strings.Contains(content, "old body") {
		t.Errorf("old rules body survived re-render: %q", content)
	}
}

func TestCursor_RenderIsStable(t *testing.T) {
	// Re-rendering the previous output with the same rules must be
	// byte-identical, or apply could never take its unchanged fast path
	// for Cursor.
	a := agent.NewCursor()

	first, err := a.Render("body\n", nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := a.Render("body\n", first)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("re-render changed output:\n%q\n%q", first, second)
	}
}

func TestCursor_RenderIgnoresMalformedFrontmatter(t *testing.T) {
	a := agent.NewCursor()

	existing := []byte("---\n:::not yaml at all\n---\nbody\n")
	got, err := a.Render("body\n", existing)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(got), "alwaysApply: true") {
		t.Errorf("malformed frontmatter should fall back to defaults: %q", got)
	}
}
