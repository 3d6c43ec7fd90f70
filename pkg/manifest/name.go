package manifest

import (
	"regexp"
	"strings"

	"github.com/project-copacetic/edgedriver-manifest/pkg/types"
)

const (
	driverFilePrefix = "edgedriver_"
	driverFileSuffix = ".zip"
)

// Regular expression for matching driver archive file names
var driverFileRegex = regexp.MustCompile(`^` + regexp.QuoteMeta(driverFilePrefix) + `(.+)` + regexp.QuoteMeta(driverFileSuffix) + `$`)

// ParseName extracts the version and platform from a blob name such as
// "100.0.1154.0/edgedriver_arm64.zip".
func ParseName(name string) (types.Version, types.Platform, bool) {
	version, platform, err := splitName(name)
	if err != nil {
		return "", "", false
	}
	return version, platform, true
}

// CheckName is ParseName reporting the reason a name was rejected.
func CheckName(name string) error {
	_, _, err := splitName(name)
	if err != nil {
		return err
	}
	return nil
}

func splitName(name string) (types.Version, types.Platform, *NameError) {
	sides := strings.Split(name, "/")
	if len(sides) != 2 {
		return "", "", &NameError{Name: name, Reason: "expected exactly one '/'"}
	}

	if sides[0] == "" {
		return "", "", &NameError{Name: name, Reason: "empty version"}
	}

	if sides[1] == driverFilePrefix+driverFileSuffix {
		return "", "", &NameError{Name: name, Reason: "empty platform"}
	}

	matches := driverFileRegex.FindStringSubmatch(sides[1])
	if len(matches) != 2 {
		return "", "", &NameError{Name: name, Reason: "file is not edgedriver_<platform>.zip"}
	}

	return types.Version(sides[0]), types.Platform(matches[1]), nil
}
