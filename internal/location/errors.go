package location

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid location alias configuration")

// ConfigurationError reports an alias table that cannot be loaded.
// It is fatal: the process must not start with an ambiguous table.
type ConfigurationError struct {
	Group      string
	OtherGroup string
	Key        Key
	Reason     string
}

func (e *ConfigurationError) Error() string {
	if e.OtherGroup != "" {
		return fmt.Sprintf("alias key %q appears in groups %q and %q", e.Key, e.OtherGroup, e.Group)
	}
	return fmt.Sprintf("alias group %q: %s", e.Group, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
