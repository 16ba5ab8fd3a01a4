package main

import "runtime/debug"

// buildVersion is stamped at release time:
//
//	go build -ldflags "-X main.buildVersion=v0.3.0"
//
// Unstamped binaries fall back to the module version recorded by
// "go install", then to "dev".
var buildVersion string

func resolveVersion() string {
	if buildVersion != "" {
		return buildVersion
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		v := info.Main.Version
		if v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}
