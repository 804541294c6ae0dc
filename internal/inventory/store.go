package inventory

import (
	"encoding/json"
	"errors"
	"os"
)

// LoadSnapshot reads the persisted snapshot file.
//
// A missing file is not an error: it returns an empty snapshot, which the
// monitor treats as "first run". An unreadable or corrupt file also returns
// an empty snapshot, plus the error so the caller can log it; the effect is
// the same first-run degradation rather than a crash.
func LoadSnapshot(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, err
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// SaveSnapshot writes the snapshot as pretty-printed JSON, atomically
// (temp file + rename) so an interrupt mid-write cannot corrupt the
// previous state.
func SaveSnapshot(path string, snap Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
