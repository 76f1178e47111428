// Package version reports the version of the a32ir binary.
package version

import "runtime/debug"

// Default is returned when the version cannot be determined.
const Default = "dev"

// version is set at link time:
//
//	go build -ldflags "-X github.com/a32ir/a32ir/internal/version.version=v1.0.0"
var version string

// GetVersion returns the link time version, then the main module version
// recorded in the build info, then Default.
func GetVersion() string {
	if version != "" {
		return version
	}
	return fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(info *debug.BuildInfo, ok bool) string {
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Default
	}
	return info.Main.Version
}
