// Package build holds build information for ssmctl, set at link time with -ldflags -X.
package build

var (
	// ReleaseVersion is the ssmctl release this binary was built from.
	ReleaseVersion = "UNKNOWN_RELEASE_VERSION"
	// GitCommit is the commit the binary was built from.
	GitCommit = "UNKNOWN_GIT_COMMIT"
	// GoVersion is the Go toolchain used for the build.
	GoVersion = "UNKNOWN_GO_VERSION"
	// BuildTime is the time of the build.
	BuildTime = "UNKNOWN_BUILD_TIME"
)
