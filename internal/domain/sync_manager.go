package domain

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"

	"github.com/rulesync-dev/rulesync/internal/port"
)

// Directory and file permission constants for generated output
const (
	outputDirMode  fs.FileMode = 0o755 // User: rwx, Group: rx, Others: rx
	outputFileMode fs.FileMode = 0o644 // User: rw, Group: r, Others: r
)

// DefaultBackupSuffix is appended to an output path to name its backup
// artifact when no override is configured.
const DefaultBackupSuffix = ".bak"

// SyncOptions carries the explicit backup and execution settings
// threaded through apply and revert. Zero value means: default suffix,
// delete backups on revert, really write.
type SyncOptions struct {
	// BackupSuffix overrides the backup artifact suffix.
	BackupSuffix string
	// KeepBackups leaves backup artifacts in place after revert restores
	// from them.
	KeepBackups bool
	// DryRun reports what would change without touching the file system.
	DryRun bool
}

func (o SyncOptions) suffix() string {
	if o.BackupSuffix == "" {
		return DefaultBackupSuffix
	}
	return o.BackupSuffix
}

// Action describes what apply or revert did (or, under dry-run, would
// do) for one agent.
type Action string

const (
	ActionCreated   Action = "created"   // output file written, none existed before
	ActionUpdated   Action = "updated"   // existing output backed up and overwritten
	ActionUnchanged Action = "unchanged" // output already matches, nothing touched
	ActionRestored  Action = "restored"  // output restored from its backup artifact
	ActionDeleted   Action = "deleted"   // generated output deleted, no backup existed
	ActionSkipped   Action = "skipped"   // neither output nor backup present
)

// AgentResult is the per-agent outcome of a batch apply or revert.
type AgentResult struct {
	Identifier string
	OutputPath string
	Action     Action
	Err        error

	// Diff describes the pending change to an existing file during a
	// dry-run apply, for the caller to display. Empty otherwise.
	Diff string
}

// SyncManager materializes the merged rules document into agent config
// files and reverts those writes from their backups.
type SyncManager interface {
	// Apply writes the rules document to each agent's output path,
	// backing up any pre-existing file first. One agent's failure does
	// not stop the others; failures are collected into the returned
	// error while results report every agent attempted.
	Apply(ctx context.Context, agents []port.Agent, rules string, baseDir string) ([]*AgentResult, error)

	// Revert restores each targeted agent's output path from its backup
	// artifact, or deletes the generated file when no backup exists.
	// Identifiers must match registered agents exactly; an empty list
	// targets every agent. Revert depends only on file-system state.
	Revert(ctx context.Context, agentIDs []string, baseDir string) ([]*AgentResult, error)
}

// syncManagerImpl is the concrete implementation of SyncManager.
type syncManagerImpl struct {
	registry     []port.Agent
	agentConfigs map[string]*AgentConfig
	opts         SyncOptions
	logf         func(format string, args ...any)
}

// NewSyncManager creates a SyncManager over the given agent registry.
// agentConfigs supplies per-agent output path overrides and may be nil.
// logf receives verbose diagnostics and may be nil.
func NewSyncManager(registry []port.Agent, agentConfigs map[string]*AgentConfig, opts SyncOptions, logf func(format string, args ...any)) SyncManager {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &syncManagerImpl{
		registry:     registry,
		agentConfigs: agentConfigs,
		opts:         opts,
		logf:         logf,
	}
}

// resolveOutputPath resolves the output file location for one agent:
// the configured override joined onto baseDir (used as-is when
// absolute), or the agent's default path.
func (s *syncManagerImpl) resolveOutputPath(a port.Agent, baseDir string) string {
	if ac := s.agentConfigs[a.Identifier()]; ac != nil && ac.OutputPath != "" {
		if filepath.IsAbs(ac.OutputPath) {
			return ac.OutputPath
		}
		return filepath.Join(baseDir, ac.OutputPath)
	}
	return a.DefaultOutputPath(baseDir)
}

// Apply implements SyncManager. Agents are processed concurrently;
// their output paths are disjoint, and the backup-then-write ordering
// within each agent stays strict.
func (s *syncManagerImpl) Apply(ctx context.Context, agents []port.Agent, rules string, baseDir string) ([]*AgentResult, error) {
	results := make([]*AgentResult, len(agents))

	var eg errgroup.Group
	for i, a := range agents {
		i, a := i, a
		eg.Go(func() error {
			results[i] = s.applyAgent(ctx, a, rules, baseDir)
			return nil
		})
	}
	// Goroutines record failures in their result; Wait never returns an
	// error here, so every sibling agent is always attempted.
	_ = eg.Wait()

	return results, s.collectFailures("apply", results)
}

func (s *syncManagerImpl) applyAgent(ctx context.Context, a port.Agent, rules string, baseDir string) *AgentResult {
	result := &AgentResult{
		Identifier: a.Identifier(),
		OutputPath: s.resolveOutputPath(a, baseDir),
	}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	existing, err := os.ReadFile(result.OutputPath)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		result.Err = fmt.Errorf("failed to read existing file at %s: %w", result.OutputPath, err)
		return result
	}

	rendered, err := a.Render(rules, existing)
	if err != nil {
		result.Err = fmt.Errorf("failed to render rules for agent '%s': %w", a.Identifier(), err)
		return result
	}

	// Unchanged fast path: re-applying identical rules must not touch
	// the backup, or repeated applies would roll it forward until the
	// pre-apply original is lost.
	if exists && bytes.Equal(existing, rendered) {
		result.Action = ActionUnchanged
		s.logf("%s: %s already up to date", a.Identifier(), result.OutputPath)
		return result
	}

	if s.opts.DryRun {
		result.Action = ActionCreated
		if exists {
			result.Action = ActionUpdated
			result.Diff = renderDiff(string(existing), string(rendered))
		}
		return result
	}

	// Backup strictly before write: the backup artifact must reflect the
	// state immediately before this write.
	if exists {
		if err := copyFile(result.OutputPath, result.OutputPath+s.opts.suffix()); err != nil {
			result.Err = fmt.Errorf("failed to back up %s: %w", result.OutputPath, err)
			return result
		}
		s.logf("%s: backed up %s", a.Identifier(), result.OutputPath)
	}

	if err := os.MkdirAll(filepath.Dir(result.OutputPath), outputDirMode); err != nil {
		result.Err = fmt.Errorf("failed to create parent directory for %s: %w. Check file permissions", result.OutputPath, err)
		return result
	}
	if err := os.WriteFile(result.OutputPath, rendered, outputFileMode); err != nil {
		result.Err = fmt.Errorf("failed to write %s: %w. Check file permissions", result.OutputPath, err)
		return result
	}

	result.Action = ActionCreated
	if exists {
		result.Action = ActionUpdated
	}
	s.logf("%s: wrote %s", a.Identifier(), result.OutputPath)
	return result
}

// Revert implements SyncManager.
func (s *syncManagerImpl) Revert(ctx context.Context, agentIDs []string, baseDir string) ([]*AgentResult, error) {
	targets, err := s.revertTargets(agentIDs)
	if err != nil {
		return nil, err
	}

	results := make([]*AgentResult, len(targets))
	var eg errgroup.Group
	for i, a := range targets {
		i, a := i, a
		eg.Go(func() error {
			results[i] = s.revertAgent(ctx, a, baseDir)
			return nil
		})
	}
	_ = eg.Wait()

	return results, s.collectFailures("revert", results)
}

// revertTargets resolves the requested identifiers to registry agents,
// preserving registry order. Unlike selection filters, revert matches
// identifiers exactly: it is addressed at specific artifacts, and a
// permissive match could delete files the user did not mean to touch.
func (s *syncManagerImpl) revertTargets(agentIDs []string) ([]port.Agent, error) {
	if len(agentIDs) == 0 {
		return s.registry, nil
	}

	known := make(map[string]bool, len(s.registry))
	for _, a := range s.registry {
		known[a.Identifier()] = true
	}

	requested := make(map[string]bool, len(agentIDs))
	var invalid []string
	for _, id := range agentIDs {
		if !known[id] {
			invalid = append(invalid, id)
			continue
		}
		requested[id] = true
	}
	if len(invalid) > 0 {
		valid := make([]string, 0, len(s.registry))
		for _, a := range s.registry {
			valid = append(valid, a.Identifier())
		}
		return nil, &ErrorUnknownAgents{Names: invalid, Valid: valid}
	}

	targets := make([]port.Agent, 0, len(requested))
	for _, a := range s.registry {
		if requested[a.Identifier()] {
			targets = append(targets, a)
		}
	}
	return targets, nil
}

func (s *syncManagerImpl) revertAgent(ctx context.Context, a port.Agent, baseDir string) *AgentResult {
	result := &AgentResult{
		Identifier: a.Identifier(),
		OutputPath: s.resolveOutputPath(a, baseDir),
	}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	backupPath := result.OutputPath + s.opts.suffix()

	if _, err := os.Stat(backupPath); err == nil {
		result.Action = ActionRestored
		if s.opts.DryRun {
			s.logf("%s: would restore %s from %s", a.Identifier(), result.OutputPath, backupPath)
			return result
		}

		// Restore strictly before deleting the backup, so a failed
		// restore leaves the artifact available for a re-run.
		if err := copyFile(backupPath, result.OutputPath); err != nil {
			result.Err = fmt.Errorf("failed to restore %s from %s: %w", result.OutputPath, backupPath, err)
			return result
		}
		if !s.opts.KeepBackups {
			if err := os.Remove(backupPath); err != nil {
				result.Err = fmt.Errorf("failed to remove backup %s: %w", backupPath, err)
				return result
			}
		}
		s.logf("%s: restored %s", a.Identifier(), result.OutputPath)
		return result
	} else if !os.IsNotExist(err) {
		result.Err = fmt.Errorf("failed to check backup at %s: %w", backupPath, err)
		return result
	}

	if _, err := os.Stat(result.OutputPath); err == nil {
		// No backup means apply created the file; reverting deletes it.
		result.Action = ActionDeleted
		if s.opts.DryRun {
			s.logf("%s: would delete %s", a.Identifier(), result.OutputPath)
			return result
		}
		if err := os.Remove(result.OutputPath); err != nil {
			result.Err = fmt.Errorf("failed to delete %s: %w", result.OutputPath, err)
			return result
		}
		s.logf("%s: deleted %s", a.Identifier(), result.OutputPath)
		return result
	} else if !os.IsNotExist(err) {
		result.Err = fmt.Errorf("failed to check output at %s: %w", result.OutputPath, err)
		return result
	}

	result.Action = ActionSkipped
	s.logf("%s: nothing to revert at %s", a.Identifier(), result.OutputPath)
	return result
}

// collectFailures aggregates per-agent errors into a partial-failure
// error, or nil when every agent succeeded.
func (s *syncManagerImpl) collectFailures(op string, results []*AgentResult) error {
	var errs []error
	for _, r := range results {
		if r != nil && r.Err != nil {
			errs = append(errs, fmt.Errorf("agent '%s': %w", r.Identifier, r.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ErrorPartialFailure{Op: op, Errs: errs}
}

// copyFile copies a single file from src to dst byte-for-byte,
// preserving the source file's mode.
// renderDiff produces a colored line-level diff between the current and
// pending file contents.
func renderDiff(existing, rendered string) string {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(existing, rendered)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)
	return dmp.DiffPrettyText(diffs)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.WriteFile(dst, data, srcInfo.Mode()); err != nil {
		return err
	}

	return nil
}
