// Package urlutil provides small URL helpers for diagnostics. The
// interception core never validates URLs; these exist for log output on the
// bridge side.
package urlutil

import (
	"net/url"
	"path"
	"strings"
)

// DefaultName is used when no filename can be derived from a URL path.
const DefaultName = "download.dat"

// IsValid reports whether s parses as an absolute URL with a scheme and host.
func IsValid(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// DefaultFilename derives a filename from the URL path, falling back to
// DefaultName when the path has none.
func DefaultFilename(s string) string {
	u, err := url.Parse(s)
	if err != nil {
		return DefaultName
	}

	// A trailing slash means a directory, not a filename.
	if strings.HasSuffix(u.Path, "/") {
		return DefaultName
	}

	name := path.Base(u.Path)
	if name == "" || name == "." {
		return DefaultName
	}
	return name
}
