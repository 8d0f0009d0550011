package version

import (
	"regexp"
)

var (
	regexpVersionNumber = regexp.MustCompile(`^\d+\.[0-9.]*$`)
)

// GetVersion returns this binary's version, or "latest" if it's not a
// release build.
func GetVersion() string {
	if LooksLikeVersionNumber(Version) {
		return Version
	}
	return "latest"
}

func LooksLikeVersionNumber(s string) bool {
	return regexpVersionNumber.MatchString(s)
}
