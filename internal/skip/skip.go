// Package skip implements the two independent rules that decide whether
// a directory is descended into: an opt-in name blocklist and an
// always-on system-path rule.
package skip

import (
	"path/filepath"
	"strings"
)

// commonDirs is the opt-in, case-insensitive name blocklist applied when
// Criteria.SkipCommonDirs is true.
var commonDirs = buildSet(
	"$RECYCLE.BIN", "System Volume Information", "Windows", "Program Files",
	"Program Files (x86)", "ProgramData", "Recovery", "Intel", "AMD", "NVIDIA",
	"node_modules", ".git", ".svn", "__pycache__", "obj", "bin", "Debug",
	"Release", ".vs", "packages", "bower_components", "dist", "build",
)

// systemComponents is the always-on, case-insensitive path-component
// blocklist applied regardless of SkipCommonDirs.
var systemComponents = buildSet(
	"$recycle.bin", "system volume information", "program files",
	"program files (x86)", "programdata", "recovery", "intel", "amd",
	"nvidia", "hiberfil.sys", "pagefile.sys", "swapfile.sys",
)

func buildSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// IsCommonDir reports whether basename matches the opt-in skip list.
// Callers should only honour this when SkipCommonDirs is enabled.
func IsCommonDir(basename string) bool {
	_, ok := commonDirs[strings.ToLower(basename)]
	return ok
}

// IsSystemPath reports whether path contains a component the
// always-on system-path rule forbids descending into: any component in
// systemComponents, or a "windows" component immediately followed by
// "system32" or "syswow64" (or standing alone as the final component).
func IsSystemPath(path string) bool {
	components := splitComponents(path)

	sawWindows := false
	for _, c := range components {
		lc := strings.ToLower(c)

		if lc == "windows" {
			sawWindows = true
		} else {
			if sawWindows && (lc == "system32" || lc == "syswow64") {
				return true
			}
			sawWindows = false
		}

		if _, ok := systemComponents[lc]; ok {
			return true
		}
	}

	// A terminal "windows" component (nothing following it) is treated
	// as skippable too.
	return sawWindows
}

// splitComponents tokenises a path on native and forward separators,
// stripping a leading drive prefix ("C:") and empty components.
func splitComponents(path string) []string {
	p := path
	if len(p) >= 2 && p[1] == ':' {
		p = p[2:]
	}

	fields := strings.FieldsFunc(p, func(r rune) bool {
		return r == filepath.Separator || r == '/' || r == '\\'
	})
	return fields
}
