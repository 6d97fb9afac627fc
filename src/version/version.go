// Package version carries the build metadata shown by the CLI tools.
package version

var buildName string
var buildVersion string

// BuildName gets the current build name. This is usually injected by the
// linker if built from git, or returns "yggdrasil-keys-go" otherwise.
func BuildName() string {
	if buildName == "" {
		return "yggdrasil-keys-go"
	}
	return buildName
}

// BuildVersion gets the current build version. This is usually injected by
// the linker if built from git, or returns "unknown" otherwise.
func BuildVersion() string {
	if buildVersion == "" {
		return "unknown"
	}
	return buildVersion
}
