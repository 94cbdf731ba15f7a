package version

// Version is the release version, set at build time with
// -ldflags "-X github.com/reblaw/legal-api/internal/version.Version=...".
var Version = "0.1.0-dev"

// GitCommit is the commit the binary was built from.
var GitCommit = ""

// Human returns the version and, when known, the commit.
func Human() string {
	if GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
