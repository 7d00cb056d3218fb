package steam

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

const processHint = "steam"

// ReloadStatus summarizes a best-effort reload notification.
type ReloadStatus struct {
	Touched  bool
	Signaled []int
}

// NotifyReload nudges a running Steam to pick up a config change without
// a restart: the file's mtime is bumped (Steam polls it) and every
// matching process gets a SIGHUP. It never fails; callers report the
// returned status informationally.
func NotifyReload(configPath string) ReloadStatus {
	var st ReloadStatus
	st.Touched = touch(configPath)

	for _, pid := range pgrep(processHint) {
		if err := unix.Kill(pid, unix.SIGHUP); err == nil {
			st.Signaled = append(st.Signaled, pid)
		}
	}
	return st
}

// touch bumps the file's modification time to now.
func touch(path string) bool {
	now := time.Now()
	return os.Chtimes(path, now, now) == nil
}

// pgrep returns the pids of processes whose command line matches hint.
func pgrep(hint string) []int {
	out, err := exec.Command("pgrep", "-f", hint).Output()
	if err != nil {
		return nil
	}
	var pids []int
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if pid, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			pids = append(pids, pid)
		}
	}
	return pids
}

// IsRunning reports whether a Steam process is currently up.
func IsRunning() bool {
	return len(pgrep(processHint)) > 0
}

// startCommands are tried in order when launching Steam.
var startCommands = [][]string{
	{"steam"},
	{"/usr/bin/steam"},
	{"flatpak", "run", "com.valvesoftware.Steam"},
	{"snap", "run", "steam"},
}

// Restart stops any running Steam processes, waits for them to exit, and
// starts Steam again with the first launcher that works on this system.
func Restart() error {
	_ = exec.Command("pkill", "-f", "steam").Run()
	_ = exec.Command("pkill", "-f", "Steam").Run()

	time.Sleep(5 * time.Second)
	if IsRunning() {
		time.Sleep(3 * time.Second)
	}

	for _, argv := range startCommands {
		cmd := exec.Command(argv[0], argv[1:]...)
		if err := cmd.Start(); err != nil {
			continue
		}
		// Detach; Steam outlives this process.
		_ = cmd.Process.Release()
		return nil
	}
	return fmt.Errorf("could not start steam with any known launcher")
}
