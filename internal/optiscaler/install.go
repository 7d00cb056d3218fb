package optiscaler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// originalDLLs are the upscaler libraries OptiScaler may shadow in the
// game directory; they are copied aside before extraction so an uninstall
// can restore them.
var originalDLLs = []string{
	"nvngx.dll",
	"libxess.dll",
	"amd_fidelityfx_fsr2.dll",
	"amd_fidelityfx_fsr3.dll",
	"ffx_fsr2_api_x64.dll",
}

const dllBackupSuffix = ".optiscaler_backup"

// BackupOriginals copies the known upscaler DLLs in dir aside and returns
// a map of original name to backup path.
func BackupOriginals(dir string) (map[string]string, error) {
	backups := map[string]string{}
	for _, name := range originalDLLs {
		src := filepath.Join(dir, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := src + dllBackupSuffix
		if err := copyFile(src, dst); err != nil {
			return backups, fmt.Errorf("backup %s: %w", name, err)
		}
		backups[name] = dst
	}
	return backups, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Install unpacks an OptiScaler archive into a game's executable
// directory, forces the FSR4 setting in its INI, and records the install
// in the store.
func Install(st *Store, appID, gameName, targetDir, archive string) (*Installation, error) {
	backups, err := BackupOriginals(targetDir)
	if err != nil {
		return nil, err
	}
	if err := Extract(archive, targetDir); err != nil {
		return nil, err
	}
	if err := ConfigureINI(targetDir); err != nil {
		return nil, err
	}

	inst := Installation{
		AppID:         appID,
		GameName:      gameName,
		InstallPath:   targetDir,
		Timestamp:     time.Now(),
		BackupFiles:   backups,
		ArchiveSource: archive,
	}
	if err := st.Add(inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// CopyFSR4DLL places the FSR4 library into a game's Proton prefix as
// amdxcffx64.dll, where the driver stack picks it up.
func CopyFSR4DLL(dllPath, compatdata string) error {
	system32 := filepath.Join(compatdata, "pfx", "drive_c", "windows", "system32")
	if err := os.MkdirAll(system32, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", system32, err)
	}
	target := filepath.Join(system32, "amdxcffx64.dll")
	if err := copyFile(dllPath, target); err != nil {
		return fmt.Errorf("copy fsr4 dll: %w", err)
	}
	return nil
}
