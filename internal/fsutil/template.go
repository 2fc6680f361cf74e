package fsutil

import (
	"fmt"
	"os"
	"strings"
)

// ReplacePlaceholders copies the file at src to dst, substituting every
// occurrence of each replacement key with its value. Keys are expected to be
// disjoint markers (eg. "@VERSION@"), so substitution order does not matter.
func ReplacePlaceholders(src, dst string, replacements map[string]string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", src, err)
	}

	text := string(data)
	for marker, value := range replacements {
		text = strings.ReplaceAll(text, marker, value)
	}

	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
