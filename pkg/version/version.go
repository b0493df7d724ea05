// Package version carries the build identity stamped in by the linker.
package version

var (
	// Version is the release tag, or empty for untagged builds.
	Version = ""

	// CommitSHA identifies the exact commit the binary was built from.
	CommitSHA = ""

	// CommitDate is when that commit was made.
	CommitDate = ""
)
