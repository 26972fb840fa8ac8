package domain

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RuleFragment is one source file contributing instruction text to the
// merged rules document. Ordering among fragments is significant and
// preserved.
type RuleFragment struct {
	// Path is the fragment's source file path.
	Path string
	// Content is the fragment's raw text.
	Content string
}

// ruleFileExtensions are the file types collected as rule fragments.
var ruleFileExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// ConcatenateRules joins rule fragments into a single document. Each
// fragment contributes a block of the form
//
//	---
//	Source: <path relative to baseDir>
//	---
//	<content, leading/trailing whitespace trimmed>
//
// followed by a newline; blocks are joined with a single newline, which
// leaves a blank line between consecutive blocks. An empty baseDir
// defaults to the current working directory. The function is pure
// otherwise and byte-stable: identical inputs always produce identical
// output.
func ConcatenateRules(fragments []RuleFragment, baseDir string) string {
	if len(fragments) == 0 {
		return ""
	}

	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		}
	}

	blocks := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		rel, err := filepath.Rel(baseDir, frag.Path)
		if err != nil {
			rel = frag.Path
		}
		blocks = append(blocks, fmt.Sprintf("---\nSource: %s\n---\n%s\n",
			filepath.ToSlash(rel), strings.TrimSpace(frag.Content)))
	}

	return strings.Join(blocks, "\n")
}

// LoadRuleFragments reads every rule file under rulesDir, in the
// deterministic lexical order of the directory walk. Only markdown and
// plain-text files are collected; everything else is ignored.
func LoadRuleFragments(rulesDir string) ([]RuleFragment, error) {
	info, err := os.Stat(rulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: rules directory %s does not exist. Run 'rulesync init' to create it", ErrNoRuleFragments, rulesDir)
		}
		return nil, fmt.Errorf("failed to access rules directory %s: %w", rulesDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rules path %s is not a directory", rulesDir)
	}

	var fragments []RuleFragment
	err = filepath.WalkDir(rulesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !ruleFileExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read rule file %s: %w", path, readErr)
		}
		fragments = append(fragments, RuleFragment{Path: path, Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk rules directory %s: %w", rulesDir, err)
	}

	return fragments, nil
}
