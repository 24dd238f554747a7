// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

import "runtime/debug"

// ModulePath is the module path of srvinv.
const ModulePath = "github.com/toeirei/srvinv"

// Set at link time, e.g.
// -ldflags "-X github.com/toeirei/srvinv/buildvars.Version=v1.2.3".
// They stay at their defaults for local builds.
var (
	Version = "dev"
	Commit  = "dev"
	Date    = ""
)

// VersionOrDefault returns Version if set, otherwise def.
func VersionOrDefault(def string) string {
	if len(Version) > 0 && Version != "dev" {
		return Version
	}
	return def
}

// Info is the resolved build identity of the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date,omitempty"`
}

// String renders the info on one line: "v1.2.3 (abc123) built: 2026-01-01".
func (i Info) String() string {
	s := i.Version
	if i.Commit != "" && i.Commit != "dev" && i.Commit != i.Version {
		s += " (" + i.Commit + ")"
	}
	if i.Date != "" {
		s += " built: " + i.Date
	}
	return s
}

// Resolve computes the best-available version, commit and build date.
// Link-time values are the fallback; module and VCS data from info win when
// present. A nil info reads the runtime build info.
func Resolve(info *debug.BuildInfo) Info {
	out := Info{Version: Version, Commit: Commit, Date: Date}
	if info == nil {
		if local, ok := debug.ReadBuildInfo(); ok {
			info = local
		}
	}
	if info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			out.Version = info.Main.Version
		}
		if out.Version == "dev" || out.Version == "(devel)" {
			for _, dep := range info.Deps {
				if dep.Path == ModulePath && dep.Version != "" {
					out.Version = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					out.Commit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					out.Date = s.Value
				}
			}
		}
	}
	// Last resort: a commit passed via ldflags still beats "dev".
	if out.Version == "dev" && Commit != "dev" && Commit != "" {
		out.Version = Commit
	}
	return out
}
