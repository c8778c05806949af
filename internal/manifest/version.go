package manifest

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SupportedVersions is the schema_version range this build understands.
const SupportedVersions = "^1.0.0"

// ErrUnsupportedVersion is returned for a schema_version outside SupportedVersions.
var ErrUnsupportedVersion = errors.New("unsupported manifest schema version")

// CheckVersion verifies v satisfies SupportedVersions.
func CheckVersion(v string) error {
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing supported range %q: %w", SupportedVersions, err)
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("schema_version %q: %w", v, ErrUnsupportedVersion)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("schema_version %s does not satisfy %s: %w", v, SupportedVersions, ErrUnsupportedVersion)
	}
	return nil
}
