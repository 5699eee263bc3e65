package assets

import (
	"fmt"
	"strings"
)

// MaxAssetNameLength bounds asset names read from config files and flags.
const MaxAssetNameLength = 64

// ValidateAssetName checks that name can be used as a bare file name:
// non-empty, short, and free of separators and dots.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	case strings.ContainsAny(name, "/\\."):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
