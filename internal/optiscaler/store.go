package optiscaler

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Installation records one OptiScaler install so it can be removed later.
type Installation struct {
	AppID         string            `json:"app_id"`
	GameName      string            `json:"game_name"`
	InstallPath   string            `json:"install_path"`
	Timestamp     time.Time         `json:"timestamp"`
	BackupFiles   map[string]string `json:"backup_files"`
	ArchiveSource string            `json:"archive_source"`
	FSR4DLLCopied bool              `json:"fsr4_dll_copied"`
}

// Store persists the installation log as JSON at a fixed path. The format
// is append-only records keyed by install path.
type Store struct {
	Path string
}

// Load returns the recorded installations; a missing log is empty.
func (s *Store) Load() ([]Installation, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read install log: %w", err)
	}
	var installs []Installation
	if err := json.Unmarshal(data, &installs); err != nil {
		return nil, fmt.Errorf("parse install log: %w", err)
	}
	return installs, nil
}

// Add appends an installation record.
func (s *Store) Add(inst Installation) error {
	installs, err := s.Load()
	if err != nil {
		return err
	}
	installs = append(installs, inst)
	return s.write(installs)
}

// Update replaces the record with the same install path, or appends when
// none matches.
func (s *Store) Update(inst Installation) error {
	installs, err := s.Load()
	if err != nil {
		return err
	}
	for i := range installs {
		if installs[i].InstallPath == inst.InstallPath {
			installs[i] = inst
			return s.write(installs)
		}
	}
	installs = append(installs, inst)
	return s.write(installs)
}

// Remove deletes the record whose install path matches and reports
// whether one was found.
func (s *Store) Remove(installPath string) (bool, error) {
	installs, err := s.Load()
	if err != nil {
		return false, err
	}
	kept := installs[:0]
	removed := false
	for _, inst := range installs {
		if !removed && inst.InstallPath == installPath {
			removed = true
			continue
		}
		kept = append(kept, inst)
	}
	if !removed {
		return false, nil
	}
	return true, s.write(kept)
}

// FindByApp returns the most recent installation for an app id.
func (s *Store) FindByApp(appID string) (Installation, bool, error) {
	installs, err := s.Load()
	if err != nil {
		return Installation{}, false, err
	}
	for i := len(installs) - 1; i >= 0; i-- {
		if installs[i].AppID == appID {
			return installs[i], true, nil
		}
	}
	return Installation{}, false, nil
}

func (s *Store) write(installs []Installation) error {
	data, err := json.MarshalIndent(installs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write install log: %w", err)
	}
	return nil
}
