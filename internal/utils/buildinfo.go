package utils

import "runtime/debug"

const (
	unknownVersion      = "unknown"
	develBuildVersion   = "(devel)"
	vcsRevisionSetting  = "vcs.revision"
	vcsModifiedSetting  = "vcs.modified"
	shortRevisionLength = 12
	modifiedSuffix      = "-dirty"
)

// Version is set at link time with -ldflags "-X github.com/temirov/lister/internal/utils.Version=...".
var Version = ""

// GetApplicationVersion returns the link-time Version when set and otherwise derives one
// from the binary's embedded build information.
func GetApplicationVersion() string {
	if Version != "" {
		return Version
	}
	buildInfo, available := debug.ReadBuildInfo()
	if !available {
		return unknownVersion
	}
	return versionFromBuildInfo(buildInfo)
}

// versionFromBuildInfo prefers a released module version, then the short VCS revision
// stamped by the go command, marked when the working tree was modified.
func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if buildInfo == nil {
		return unknownVersion
	}
	if moduleVersion := buildInfo.Main.Version; moduleVersion != "" && moduleVersion != develBuildVersion {
		return moduleVersion
	}
	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case vcsRevisionSetting:
			revision = setting.Value
		case vcsModifiedSetting:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += modifiedSuffix
	}
	return revision
}
