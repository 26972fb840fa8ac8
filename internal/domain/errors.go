package domain

import (
	"errors"
	"fmt"
	"strings"
)

// errorPrefix is the stable prefix carried by every user-facing error
// produced by this tool.
const errorPrefix = "rulesync"

// Errorf formats an error message with the tool's stable prefix. It is
// a pure formatting function; there is no mutable prefix state.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(errorPrefix+": "+format, args...)
}

// Sentinel errors for domain-level error identification.
var (
	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigExists indicates that a configuration file already exists.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrNoRuleFragments indicates that no rule files were found in the
	// rules directory.
	ErrNoRuleFragments = errors.New("no rule files found")
)

// ErrorUnknownAgents reports agent filter entries that matched no known
// agent. Selection fails as a whole on this error: no agents are
// chosen, the caller must abort.
type ErrorUnknownAgents struct {
	// Names are the filter entries that matched nothing, in input order.
	Names []string
	// Valid are the identifiers of every known agent, in registry order.
	Valid []string
}

func (e *ErrorUnknownAgents) Error() string {
	return fmt.Sprintf("%s: invalid agent(s): %s. Valid agents are: %s",
		errorPrefix, strings.Join(e.Names, ", "), strings.Join(e.Valid, ", "))
}

// ErrorPartialFailure reports a batch apply or revert in which some
// agents failed. Successful agents keep their effects; the error names
// each failure.
type ErrorPartialFailure struct {
	// Op is the batch operation that partially failed ("apply" or "revert").
	Op string
	// Errs holds one error per failed agent.
	Errs []error
}

func (e *ErrorPartialFailure) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s: %s finished with %d error(s): %s",
		errorPrefix, e.Op, len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the per-agent errors to errors.Is / errors.As.
func (e *ErrorPartialFailure) Unwrap() []error {
	return e.Errs
}
