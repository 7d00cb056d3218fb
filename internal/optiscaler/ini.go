package optiscaler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fsr4Line is the setting that makes OptiScaler upgrade FSR 3.1 calls to
// FSR4.
const fsr4Line = "Fsr4Update=true"

const defaultINI = `[OptiScaler]
Fsr4Update=true
Dx12Upscaler=auto
ColorResourceBarrier=auto
MotionVectorResourceBarrier=auto
OverrideNvapiDll=auto
`

// ConfigureINI forces Fsr4Update=true in dir's OptiScaler.ini. A missing
// file is created with defaults; an existing one is edited line by line
// (first match wins) so every other byte, including lines this tool does
// not know about, survives unchanged. The INI is owned by OptiScaler
// itself, which is why it gets the same surgical treatment as the Steam
// config.
func ConfigureINI(dir string) error {
	path := filepath.Join(dir, "OptiScaler.ini")

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return os.WriteFile(path, []byte(defaultINI), 0o644)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	lines := strings.SplitAfter(string(data), "\n")
	updated := false
	for i, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "Fsr4Update=") {
			continue
		}
		nl := ""
		if strings.HasSuffix(line, "\n") {
			nl = "\n"
		}
		lines[i] = fsr4Line + nl
		updated = true
		break
	}
	if !updated {
		lines = insertFSR4Line(lines)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// insertFSR4Line places the setting inside the [OptiScaler] section,
// before the next section header, or appends a new section when none
// exists.
func insertFSR4Line(lines []string) []string {
	inSection := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "[OptiScaler]" {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "[") {
			out := make([]string, 0, len(lines)+1)
			out = append(out, lines[:i]...)
			out = append(out, fsr4Line+"\n")
			return append(out, lines[i:]...)
		}
	}

	if n := len(lines); n > 0 && lines[n-1] != "" && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n"
	}
	if inSection {
		return append(lines, fsr4Line+"\n")
	}
	return append(lines, "\n[OptiScaler]\n"+fsr4Line+"\n")
}
