package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DownloadPrefix names every downloaded voice file.
const DownloadPrefix = "pookanfai_voice"

// DownloadName returns "<prefix>_YYYYMMDDHHMMSS.wav" for t.
func DownloadName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.wav", prefix, t.Format("20060102150405"))
}

// Save writes the resource's container into dir under DownloadName and
// returns the written path. The container is re-validated first so a
// downloaded file is always a well-formed WAV.
func Save(r *Resource, dir string, now time.Time) (string, error) {
	wav, err := r.Bytes()
	if err != nil {
		return "", err
	}
	if _, err := ParseHeader(wav); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("audio: creating download directory: %w", err)
	}
	path := filepath.Join(dir, DownloadName(DownloadPrefix, now))
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		return "", fmt.Errorf("audio: writing download: %w", err)
	}
	return path, nil
}
