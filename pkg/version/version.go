// Package version reports the build version of the smbios tools
package version

import (
	"fmt"
	"os"
	"regexp"
	"runtime/debug"
	"strings"
)

// Branch and Revision are set at build time with
//
//	-ldflags "-X github.com/threefoldtech/smbios/pkg/version.Branch=..."
//
// When they are not, the vcs information embedded by the go tool is used.
var (
	// Branch of the code
	Branch = ""
	// Revision of the code
	Revision = ""
	// Dirty flag shows if the binary is built from a
	// repo with uncommitted changes
	Dirty = ""
)

var (
	re = regexp.MustCompile(`^Version:([^@]*)@Revision:([^\(]+)`)
)

// Version of the running binary
type Version struct {
	Branch   string
	Revision string
	Dirty    bool
}

// Current get current version
func Current() Version {
	v := Version{
		Branch:   Branch,
		Revision: Revision,
		Dirty:    len(Dirty) != 0,
	}

	if len(v.Revision) != 0 {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.Revision = setting.Value
		case "vcs.modified":
			v.Dirty = setting.Value == "true"
		}
	}

	if len(v.Branch) == 0 {
		v.Branch = info.Main.Version
	}

	return v
}

func (v Version) String() string {
	s := fmt.Sprintf("Version: %s @Revision: %s", v.Branch, v.Revision)
	if v.Dirty {
		s += " (dirty-repo)"
	}

	return s
}

// Short returns the branch and the abbreviated revision
func (v Version) Short() string {
	revision := v.Revision
	if len(revision) > 7 {
		revision = revision[:7]
	}

	s := fmt.Sprintf("%s@%s", v.Branch, revision)
	if v.Dirty {
		s += "(D)"
	}
	return s
}

// ShowAndExit prints the version and exits
func ShowAndExit(short bool) {
	if short {
		fmt.Println(Current().Short())
	} else {
		fmt.Println(Current())
	}

	os.Exit(0)
}

// Parse version string as returned by Version.String
func Parse(v string) (Version, error) {
	m := re.FindStringSubmatch(v)
	if m == nil {
		return Version{}, fmt.Errorf("invalid version string")
	}

	return Version{
		Branch:   strings.TrimSpace(m[1]),
		Revision: strings.TrimSpace(m[2]),
		Dirty:    strings.HasSuffix(v, "(dirty-repo)"),
	}, nil
}
