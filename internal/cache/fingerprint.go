package cache

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeebo/blake3"
)

// Fingerprint is a change-detection record for one filesystem input. Two
// fingerprints for the same identifier are equivalent only when both byte
// size and content hash match; size is the cheap first gate.
type Fingerprint struct {
	Identifier  string    `json:"identifier"`
	SourcePath  string    `json:"source_file"`
	ByteSize    int64     `json:"file_size"`
	ContentHash string    `json:"file_hash"`
	CapturedAt  time.Time `json:"captured_at"`
}

// FingerprintFile captures the current fingerprint of the file at path.
func FingerprintFile(identifier, path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("cache: stat %s: %w", path, err)
	}
	hash, err := hashFile(path)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{
		Identifier:  identifier,
		SourcePath:  path,
		ByteSize:    info.Size(),
		ContentHash: hash,
		CapturedAt:  time.Now().UTC(),
	}, nil
}

// Matches reports whether the file at the fingerprint's path is unchanged.
// The full hash is only recomputed when the size still agrees.
func (f Fingerprint) Matches(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.Size() != f.ByteSize {
		return false
	}
	hash, err := hashFile(path)
	if err != nil {
		return false
	}
	return hash == f.ContentHash
}

// hashFile streams the file through the content hasher so large documents
// do not load whole into memory.
func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cache: open %s: %w", path, err)
	}
	defer file.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("cache: read %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil))[:hashLen], nil
}
