// Package steam discovers a Steam installation, its libraries and games,
// and applies launch options to the active user's localconfig.vdf.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"optiscalerctl/internal/commit"
	"optiscalerctl/internal/patch"
	"optiscalerctl/internal/vdf"
)

// FindRoot probes the standard Steam installation locations, including
// the snap and flatpak layouts, and returns the first that exists.
func FindRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	candidates := []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		"/usr/share/steam",
		filepath.Join(home, ".steam", "root"),
		filepath.Join(home, "snap", "steam", "common", ".steam", "steam"),
		"/var/lib/flatpak/app/com.valvesoftware.Steam/home/.steam/steam",
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", "home", ".steam", "steam"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("steam installation not found in standard locations")
}

// Libraries returns every Steam library root: the installation itself
// plus the "path" entries of steamapps/libraryfolders.vdf that exist on
// disk.
func Libraries(root string) []string {
	libs := []string{root}
	seen := map[string]bool{root: true}

	data, err := os.ReadFile(filepath.Join(root, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		return libs
	}
	for _, p := range vdf.FieldValues(data, "path") {
		if seen[p] {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			seen[p] = true
			libs = append(libs, p)
		}
	}
	return libs
}

// Game is one installed Steam app, as described by its appmanifest.
type Game struct {
	AppID      string
	Name       string
	InstallDir string
	Path       string
	Library    string
}

// Games scans every library's appmanifest_*.acf files. When an app shows
// up in more than one library the copy whose install directory was
// touched most recently wins. The result is sorted by name.
func Games(root string) []Game {
	var games []Game
	index := map[string]int{}

	for _, lib := range Libraries(root) {
		steamapps := filepath.Join(lib, "steamapps")
		manifests, err := filepath.Glob(filepath.Join(steamapps, "appmanifest_*.acf"))
		if err != nil {
			continue
		}
		for _, manifest := range manifests {
			data, err := os.ReadFile(manifest)
			if err != nil {
				continue
			}
			appID, okID := vdf.FieldValue(data, "appid")
			name, okName := vdf.FieldValue(data, "name")
			installDir, okDir := vdf.FieldValue(data, "installdir")
			if !okID || !okName || !okDir {
				continue
			}
			gamePath := filepath.Join(steamapps, "common", installDir)
			info, err := os.Stat(gamePath)
			if err != nil || !info.IsDir() {
				continue
			}
			g := Game{AppID: appID, Name: name, InstallDir: installDir, Path: gamePath, Library: lib}
			if i, dup := index[appID]; dup {
				prev, err := os.Stat(games[i].Path)
				if err != nil || info.ModTime().After(prev.ModTime()) {
					games[i] = g
				}
				continue
			}
			index[appID] = len(games)
			games = append(games, g)
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games
}

// CompatdataPath returns the Proton prefix directory for an app, looked
// up across every library.
func CompatdataPath(root, appID string) (string, bool) {
	for _, lib := range Libraries(root) {
		p := filepath.Join(lib, "steamapps", "compatdata", appID)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// LocalConfigPath returns the localconfig.vdf of the most recently active
// Steam user under root/userdata.
func LocalConfigPath(root string) (string, error) {
	userdata := filepath.Join(root, "userdata")
	entries, err := os.ReadDir(userdata)
	if err != nil {
		return "", fmt.Errorf("read userdata: %w", err)
	}

	best := ""
	var bestMod int64 = -1
	for _, e := range entries {
		if !e.IsDir() || !isNumeric(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if m := info.ModTime().UnixNano(); m > bestMod {
			best = e.Name()
			bestMod = m
		}
	}
	if best == "" {
		return "", fmt.Errorf("no steam user directories under %s", userdata)
	}

	cfg := filepath.Join(userdata, best, "config", "localconfig.vdf")
	if _, err := os.Stat(cfg); err != nil {
		return "", fmt.Errorf("localconfig.vdf: %w", err)
	}
	return cfg, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ApplyLaunchOptions sets the LaunchOptions field of the app's record in
// the active user's localconfig.vdf and returns the patch result together
// with the path of the file that was patched.
func ApplyLaunchOptions(root, appID, command string, opts commit.Options) (*patch.Result, string, error) {
	cfg, err := LocalConfigPath(root)
	if err != nil {
		return nil, "", err
	}
	res, err := patch.Apply(cfg, patch.Request{
		RecordPath: []string{"apps", appID},
		Field:      "LaunchOptions",
		Value:      command,
	}, opts)
	return res, cfg, err
}
