package optiscaler

import (
	"fmt"
	"os"
	"path/filepath"
)

// installedFiles is everything an OptiScaler install may have dropped
// into the game directory, including the proxy-DLL names its setup
// renames OptiScaler.dll to.
var installedFiles = []string{
	"OptiScaler.dll", "OptiScaler.ini", "OptiScaler.log", "OptiScaler Setup.bat",
	"setup_linux.sh", "setup_windows.bat", "remove_optiscaler.sh",
	"dxgi.dll", "winmm.dll", "version.dll", "dbghelp.dll",
	"d3d12.dll", "wininet.dll", "winhttp.dll", "OptiScaler.asi",
	"nvngx.dll", "libxess.dll", "amd_fidelityfx_fsr2.dll",
	"amd_fidelityfx_fsr3.dll", "ffx_fsr2_api_x64.dll",
}

var installedDirs = []string{
	"D3D12_Optiscaler", "DlssOverrides", "Licenses",
}

// Uninstall removes OptiScaler's files from the recorded install path and
// restores the backed-up originals. Files already gone are skipped.
func Uninstall(st *Store, inst Installation) error {
	dir := inst.InstallPath

	for _, name := range installedFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	for _, name := range installedDirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}

	for original, backup := range inst.BackupFiles {
		if _, err := os.Stat(backup); err != nil {
			continue
		}
		if err := os.Rename(backup, filepath.Join(dir, original)); err != nil {
			return fmt.Errorf("restore %s: %w", original, err)
		}
	}

	if _, err := st.Remove(inst.InstallPath); err != nil {
		return err
	}
	return nil
}

// RemoveFSR4DLL deletes the FSR4 library from a game's Proton prefix.
func RemoveFSR4DLL(compatdata string) error {
	target := filepath.Join(compatdata, "pfx", "drive_c", "windows", "system32", "amdxcffx64.dll")
	if _, err := os.Stat(target); err != nil {
		return nil
	}
	return os.Remove(target)
}
