// Package version provides version information for the flatroutes CLI.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set via ldflags during build.
var Version = "dev"

// ManifestSchemaVersion is bumped when the shape of generated manifests
// changes. Generated Go sources embed it so stale output can be detected.
const ManifestSchemaVersion = 1

// GetVersion returns the current version string. Builds installed with
// go install report their module version instead of "dev".
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// GetManifestSchemaVersion returns the current manifest schema version.
func GetManifestSchemaVersion() int {
	return ManifestSchemaVersion
}

// UserAgent identifies flatroutes in generated headers.
func UserAgent() string {
	return fmt.Sprintf("flatroutes/%s", GetVersion())
}
