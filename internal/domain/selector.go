package domain

import (
	"strings"

	"github.com/rulesync-dev/rulesync/internal/port"
)

// LoadedConfig aggregates the selection inputs for one invocation:
// command-line agent filters, the persistent default-agent list, and
// the per-agent settings. Built once by the caller, read-only here.
type LoadedConfig struct {
	// CLIAgents are the user-supplied filter strings, in order. May be
	// empty.
	CLIAgents []string

	// DefaultAgents is the default-agent list from the configuration
	// file, in order. May be empty.
	DefaultAgents []string

	// AgentConfigs maps agent identifiers to their settings records.
	AgentConfigs map[string]*AgentConfig
}

// ResolveSelectedAgents computes the ordered subset of agents to
// process. Precedence, first non-empty tier wins:
//
//  1. CLI filters: an agent is selected when any filter equals its
//     identifier or is a substring of its lower-cased display name.
//     Every filter must match at least one agent or the whole call
//     fails.
//  2. Default-agent list: same matching and validation, except an
//     explicitly set per-agent Enabled flag decides inclusion outright,
//     overriding list membership in both directions.
//  3. Neither present: every agent whose Enabled flag is not explicitly
//     false.
//
// The result preserves registry order and contains each agent at most
// once. No side effects.
func ResolveSelectedAgents(loaded *LoadedConfig, all []port.Agent) ([]port.Agent, error) {
	if filters := normalizeFilters(loaded.CLIAgents); len(filters) > 0 {
		if invalid := unmatchedFilters(filters, all); len(invalid) > 0 {
			return nil, &ErrorUnknownAgents{Names: invalid, Valid: identifiers(all)}
		}

		selected := make([]port.Agent, 0, len(all))
		for _, a := range all {
			if matchesAny(a, filters) {
				selected = append(selected, a)
			}
		}
		return selected, nil
	}

	if defaults := normalizeFilters(loaded.DefaultAgents); len(defaults) > 0 {
		if invalid := unmatchedFilters(defaults, all); len(invalid) > 0 {
			return nil, &ErrorUnknownAgents{Names: invalid, Valid: identifiers(all)}
		}

		selected := make([]port.Agent, 0, len(all))
		for _, a := range all {
			// An explicit enabled flag wins over list membership. This
			// lets enabled = true force-include an agent absent from
			// default_agents, intentionally asymmetric with tier 3.
			if ac := loaded.AgentConfigs[a.Identifier()]; ac != nil && ac.Enabled != nil {
				if *ac.Enabled {
					selected = append(selected, a)
				}
				continue
			}
			if matchesAny(a, defaults) {
				selected = append(selected, a)
			}
		}
		return selected, nil
	}

	// Fallback: everything that has not opted out.
	selected := make([]port.Agent, 0, len(all))
	for _, a := range all {
		if ac := loaded.AgentConfigs[a.Identifier()]; ac != nil && ac.Enabled != nil && !*ac.Enabled {
			continue
		}
		selected = append(selected, a)
	}
	return selected, nil
}

// normalizeFilters lower-cases and trims filter entries, dropping
// blanks, preserving order.
func normalizeFilters(filters []string) []string {
	normalized := make([]string, 0, len(filters))
	for _, f := range filters {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			normalized = append(normalized, f)
		}
	}
	return normalized
}

// matchesAny reports whether the agent matches any filter, by exact
// identifier match or substring of the lower-cased display name. The
// substring match is deliberately permissive: one filter may select
// several agents.
func matchesAny(a port.Agent, filters []string) bool {
	name := strings.ToLower(a.DisplayName())
	for _, f := range filters {
		if f == a.Identifier() || strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// unmatchedFilters returns the filters that match no agent at all, in
// input order.
func unmatchedFilters(filters []string, all []port.Agent) []string {
	var invalid []string
	for _, f := range filters {
		matched := false
		for _, a := range all {
			if f == a.Identifier() || strings.Contains(strings.ToLower(a.DisplayName()), f) {
				matched = true
				break
			}
		}
		if !matched {
			invalid = append(invalid, f)
		}
	}
	return invalid
}

func identifiers(all []port.Agent) []string {
	ids := make([]string, 0, len(all))
	for _, a := range all {
		ids = append(ids, a.Identifier())
	}
	return ids
}
