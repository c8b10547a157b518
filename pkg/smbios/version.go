package smbios

import (
	"fmt"
	"strings"

	"github.com/blang/semver"
	"github.com/pkg/errors"
)

// Version of the SMBIOS specification a table claims to implement
type Version struct {
	Major uint8 `json:"major" yaml:"major"`
	Minor uint8 `json:"minor" yaml:"minor"`
}

// ParseVersion parses versions in the forms "3.4", "3.4.0" and
// "SMBIOS 3.4"
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "SMBIOS")
	s = strings.TrimSpace(strings.TrimSuffix(s, "present."))

	v, err := semver.ParseTolerant(s)
	if err != nil {
		return Version{}, errors.Wrapf(err, "invalid smbios version '%s'", s)
	}

	if v.Major > 0xff || v.Minor > 0xff {
		return Version{}, errors.Errorf("smbios version '%s' out of range", s)
	}

	return Version{Major: uint8(v.Major), Minor: uint8(v.Minor)}, nil
}

// IsZero is true if the version is not known
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// AtLeast checks if v is the same or newer than major.minor
func (v Version) AtLeast(major, minor uint8) bool {
	if v.Major != major {
		return v.Major > major
	}

	return v.Minor >= minor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
