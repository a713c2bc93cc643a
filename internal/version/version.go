// Package version holds build metadata, set with -ldflags "-X".
package version

import "runtime/debug"

var (
	AppName   = "Abyss"
	Version   = "dev"
	BuildDate = ""
	GoVersion = goVersion()
)

func goVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		return bi.GoVersion
	}
	return ""
}
