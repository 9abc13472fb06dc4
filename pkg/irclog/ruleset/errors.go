package ruleset

import "fmt"

// ValidationError represents a schema-level validation error.
// These errors occur when a Config or rule file violates structural
// requirements (e.g., an unknown sub-pattern name, an unsupported version).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// RuleError represents an error in a single composed rule.
// These errors occur when a composed top-level pattern fails to compile or
// does not expose the capture groups classification depends on.
type RuleError struct {
	Rule    string // "msg" or "action"
	Pattern string // composed pattern source
	Message string
	Cause   error // underlying error (e.g., regex compile error)
}

func (e *RuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rule %q: %s: %v", e.Rule, e.Message, e.Cause)
	}
	return fmt.Sprintf("rule %q: %s", e.Rule, e.Message)
}

// Unwrap returns the underlying cause of the error.
// This enables errors.Is() and errors.As() to work with RuleError.
func (e *RuleError) Unwrap() error {
	return e.Cause
}
