package util

import (
	"strconv"
	"strings"
)

var sizeSuffixes = []struct {
	suffix string
	bytes  int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
}

// ParseSize converts a human-readable size like "10MB" or "512KB" to a byte
// count. A bare number is taken as bytes. Unparseable input yields
// defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	var unit int64 = 1
	for _, sz := range sizeSuffixes {
		if strings.HasSuffix(s, sz.suffix) {
			unit = sz.bytes
			s = strings.TrimSpace(strings.TrimSuffix(s, sz.suffix))
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return defaultBytes
	}
	return n * unit
}

// MaskSecret renders a secret for logging: at most visiblePrefix leading
// characters, the rest replaced. Secrets no longer than the prefix are
// masked entirely.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
