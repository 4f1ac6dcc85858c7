package download

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

func verifySha(bin []byte, sha []byte) bool {
	h := sha256.New()
	h.Write(bin)
	return bytes.Equal(h.Sum(nil), sha)
}

// ParseChecksum decodes a hex SHA-256 digest as written by sha256sum; a
// trailing file name is ignored.
func ParseChecksum(s string) ([]byte, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty checksum")
	}
	sum, err := hex.DecodeString(fields[0])
	if err != nil {
		return nil, fmt.Errorf("decoding checksum: %w", err)
	}
	if len(sum) != sha256.Size {
		return nil, fmt.Errorf("checksum is %d bytes, want %d", len(sum), sha256.Size)
	}
	return sum, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
