package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListCmd_ShowsAllAgents(t *testing.T) {
	baseDir := t.TempDir()
	logger, out, _ := newTestLogger(false)

	cmd := &ListCmd{
		Config:  filepath.Join(baseDir, ".rulesync.toml"),
		BaseDir: baseDir,
	}
	if err := cmd.run(context.Background(), logger); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"claude-code", "cursor", "github-copilot", "CLAUDE.md", "IDENTIFIER"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestListCmd_MarksConfiguredSelection(t *testing.T) {
	baseDir := t.TempDir()
	configPath := filepath.Join(baseDir, ".rulesync.toml")
	configContent := "default_agents = [\"cursor\"]\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	logger, out, _ := newTestLogger(false)
	cmd := &ListCmd{Config: configPath, BaseDir: baseDir}
	if err := cmd.run(context.Background(), logger); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var markedCursor, markedClaude bool
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "cursor") && strings.HasPrefix(line, "*") {
			markedCursor = true
		}
		if strings.Contains(line, "claude-code") && strings.HasPrefix(line, "*") {
			markedClaude = true
		}
	}
	if !markedCursor {
		t.Error("cursor not marked as selected despite default_agents")
	}
	if markedClaude {
		t.Error("claude-code marked as selected despite not matching default_agents")
	}
}

func TestListCmd_ResolvesOutputPathOverrideAgainstBaseDir(t *testing.T) {
	baseDir := t.TempDir()
	configPath := filepath.Join(baseDir, ".rulesync.toml")
	configContent := "[agents.claude-code]\noutput_path = \"docs/rules.md\"\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	logger, out, _ := newTestLogger(false)
	cmd := &ListCmd{Config: configPath, BaseDir: baseDir}
	if err := cmd.run(context.Background(), logger); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := filepath.Join(baseDir, "docs", "rules.md")
	got := out.String()
	if !strings.Contains(got, want) {
		t.Errorf("list output missing resolved override %q:\n%s", want, got)
	}
	var claudeLine string
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "claude-code") {
			claudeLine = line
		}
	}
	if strings.Contains(claudeLine, " docs/rules.md") {
		t.Errorf("override shown unresolved: %s", claudeLine)
	}
}
