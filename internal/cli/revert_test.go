package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rulesync-dev/rulesync/internal/domain"
)

func TestRevertCmd_RestoresAfterApply(t *testing.T) {
	baseDir := setupProject(t, "rule\n")
	claudePath := filepath.Join(baseDir, "CLAUDE.md")
	if err := os.WriteFile(claudePath, []byte("hand-written"), 0o644); err != nil {
		t.Fatalf("failed to seed existing file: %v", err)
	}

	logger, _, _ := newTestLogger(false)
	applyCmd := &ApplyCmd{
		Agents:       []string{"claude-code"},
		Config:       filepath.Join(baseDir, ".rulesync.toml"),
		RulesDir:     filepath.Join(baseDir, ".rulesync"),
		BaseDir:      baseDir,
		BackupSuffix: ".bak",
	}
	if err := applyCmd.run(context.Background(), logger); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	revertCmd := &RevertCmd{
		Agents:       []string{"claude-code"},
		Config:       filepath.Join(baseDir, ".rulesync.toml"),
		BaseDir:      baseDir,
		BackupSuffix: ".bak",
	}
	if err := revertCmd.run(context.Background(), logger); err != nil {
		t.Fatalf("revert failed: %v", err)
	}

	data, err := os.ReadFile(claudePath)
	if err != nil {
		t.Fatalf("restored file missing: %v", err)
	}
	if string(data) != "hand-written" {
		t.Errorf("restored content = %q, want %q", data, "hand-written")
	}
	if _, err := os.Stat(claudePath + ".bak"); !os.IsNotExist(err) {
		t.Error("backup artifact still present after revert")
	}
}

func TestRevertCmd_DeletesCreatedFiles(t *testing.T) {
	baseDir := setupProject(t, "rule\n")

	logger, _, _ := newTestLogger(false)
	applyCmd := &ApplyCmd{
		Agents:       []string{"claude-code", "codex-cli"},
		Config:       filepath.Join(baseDir, ".rulesync.toml"),
		RulesDir:     filepath.Join(baseDir, ".rulesync"),
		BaseDir:      baseDir,
		BackupSuffix: ".bak",
	}
	if err := applyCmd.run(context.Background(), logger); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// Revert with no identifiers targets every agent.
	revertCmd := &RevertCmd{
		Config:       filepath.Join(baseDir, ".rulesync.toml"),
		BaseDir:      baseDir,
		BackupSuffix: ".bak",
	}
	if err := revertCmd.run(context.Background(), logger); err != nil {
		t.Fatalf("revert failed: %v", err)
	}

	for _, name := range []string{"CLAUDE.md", "AGENTS.md"} {
		if _, err := os.Stat(filepath.Join(baseDir, name)); !os.IsNotExist(err) {
			t.Errorf("%s still present after revert", name)
		}
	}
}

func TestRevertCmd_UnknownIdentifier(t *testing.T) {
	baseDir := t.TempDir()
	logger, _, _ := newTestLogger(false)

	cmd := &RevertCmd{
		Agents:       []string{"ghost"},
		Config:       filepath.Join(baseDir, ".rulesync.toml"),
		BaseDir:      baseDir,
		BackupSuffix: ".bak",
	}
	err := cmd.run(context.Background(), logger)

	var unknownErr *domain.ErrorUnknownAgents
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected ErrorUnknownAgents, got %v", err)
	}
}

func TestRevertCmd_DryRun(t *testing.T) {
	baseDir := t.TempDir()
	claudePath := filepath.Join(baseDir, "CLAUDE.md")
	if err := os.WriteFile(claudePath, []byte("generated"), 0o644); err != nil {
		t.Fatalf("failed to seed output file: %v", err)
	}

	logger, _, _ := newTestLogger(false)
	cmd := &RevertCmd{
		Agents:       []string{"claude-code"},
		Config:       filepath.Join(baseDir, ".rulesync.toml"),
		BaseDir:      baseDir,
		BackupSuffix: ".bak",
		DryRun:       true,
	}
	if err := cmd.run(context.Background(), logger); err != nil {
		t.Fatalf("dry-run revert failed: %v", err)
	}

	if _, err := os.Stat(claudePath); err != nil {
		t.Errorf("dry-run deleted the output file: %v", err)
	}
}
