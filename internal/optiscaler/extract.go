package optiscaler

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Extract unpacks an OptiScaler archive into dir. Zip archives are
// handled natively; .7z archives shell out to the system 7z binary, which
// is how the nightlies are packaged.
func Extract(archive, dir string) error {
	if strings.EqualFold(filepath.Ext(archive), ".7z") {
		return extract7z(archive, dir)
	}
	return extractZip(archive, dir)
}

func extract7z(archive, dir string) error {
	out, err := exec.Command("7z", "x", archive, "-o"+dir, "-y").CombinedOutput()
	if err != nil {
		if _, lookErr := exec.LookPath("7z"); lookErr != nil {
			return fmt.Errorf("7z not found; install p7zip to extract %s", filepath.Base(archive))
		}
		return fmt.Errorf("7z extraction failed: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

func extractZip(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open zip %s: %w", archive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		path := filepath.Join(dir, f.Name)
		// Keep entries inside the target directory.
		if !strings.HasPrefix(path, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes target directory", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", path, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}

		if err := extractZipFile(f, path); err != nil {
			return err
		}
	}
	return nil
}

func extractZipFile(f *zip.File, path string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s in archive: %w", f.Name, err)
	}
	defer rc.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(dst, rc); err != nil {
		_ = dst.Close()
		return fmt.Errorf("extract %s: %w", path, err)
	}
	return dst.Close()
}
