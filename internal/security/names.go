package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyName   = errors.New("empty name not allowed")
	ErrInvalidName = errors.New("invalid name")
)

// maxNameLen keeps names well below common filesystem limits, leaving room
// for the .enc suffix.
const maxNameLen = 200

// ValidateName validates a label or secret name that will become a single
// path component under the sealbox root. It rejects:
//   - Empty names
//   - Names longer than 200 characters
//   - Names containing path separators
//   - "." and ".."
//   - Names that are not local paths (Windows reserved names, etc.)
//   - Names starting with a dot (would hide files and collide with internals)
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("%w: name too long", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	}
	// filepath.IsLocal rejects reserved names, NUL bytes and other
	// platform-specific hazards (Go 1.20+)
	if !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
