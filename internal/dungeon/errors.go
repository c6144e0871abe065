package dungeon

import "fmt"

// ConfigurationInvalid is returned by Config.Validate when the configured
// parameters can never produce a correct generator (§7). It is fatal: the
// caller should not start the server.
type ConfigurationInvalid struct {
	Field  string
	Reason string
}

func (e *ConfigurationInvalid) Error() string {
	return fmt.Sprintf("dungeon: invalid configuration field %q: %s", e.Field, e.Reason)
}

// InternalConsistencyViolation is returned by a post-generation self-check
// that finds a boundary disagreement or an unreachable opening (§7). It
// should be unreachable in a correct implementation; the caller must not
// cache the offending chunk.
type InternalConsistencyViolation struct {
	CX, CY int
	Reason string
}

func (e *InternalConsistencyViolation) Error() string {
	return fmt.Sprintf("dungeon: internal consistency violation at (%d,%d): %s", e.CX, e.CY, e.Reason)
}
