package optiscaler

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ExeLocation is a candidate directory for an OptiScaler install, ranked
// by how likely it is to contain the game's real executable.
type ExeLocation struct {
	Dir      string
	ExeName  string
	Kind     string
	Priority int
}

var (
	skipPathParts = []string{"engine", "redist", "directx", "vcredist", "_commonredist", "tools", "crash"}
	skipExeNames  = []string{"unins", "setup", "launcher", "redist", "vcredist", "directx", "crash"}
)

// FindExecutableDirs walks a game directory for Windows executables and
// returns candidate install locations, best first. Redistributables,
// installers, and engine helpers are skipped; the game root and Unreal
// *_Shipping binaries rank highest.
func FindExecutableDirs(gamePath string) []ExeLocation {
	var locations []ExeLocation
	byDir := map[string]int{}

	_ = filepath.WalkDir(gamePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".exe") {
			return nil
		}

		dir := filepath.Dir(path)
		lowerDir := strings.ToLower(dir)
		lowerName := strings.ToLower(d.Name())

		for _, skip := range skipPathParts {
			if strings.Contains(lowerDir, skip) {
				return nil
			}
		}
		for _, skip := range skipExeNames {
			if strings.Contains(lowerName, skip) {
				return nil
			}
		}
		if strings.Contains(lowerName, "ue4") || strings.Contains(lowerName, "ue5") {
			return nil
		}

		loc := ExeLocation{Dir: dir, ExeName: d.Name(), Kind: "Other", Priority: 3}
		switch {
		case dir == gamePath:
			loc.Kind, loc.Priority = "Main Game Directory", 1
		case strings.Contains(lowerName, "_shipping"):
			loc.Kind, loc.Priority = "Shipping Executable (UE)", 1
		case strings.Contains(lowerDir, "bin/x64"),
			strings.Contains(lowerDir, "retail"),
			strings.Contains(lowerDir, "binaries/win64"):
			loc.Kind, loc.Priority = "Common Game Folder", 2
		}

		if i, seen := byDir[dir]; seen {
			if loc.Priority < locations[i].Priority {
				locations[i] = loc
			}
			return nil
		}
		byDir[dir] = len(locations)
		locations = append(locations, loc)
		return nil
	})

	sort.Slice(locations, func(i, j int) bool {
		a, b := locations[i], locations[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		da := strings.Count(a.Dir, string(filepath.Separator))
		db := strings.Count(b.Dir, string(filepath.Separator))
		if da != db {
			return da < db
		}
		return a.Dir < b.Dir
	})
	return locations
}
