package clip

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputDir returns the folder segments of mediaPath are written to: the
// configured folder, or the media's own directory when none is set.
func OutputDir(mediaPath, configured string) string {
	if configured != "" {
		return configured
	}
	return filepath.Dir(mediaPath)
}

// NextOutputPath returns the first unused "<name>_<n><ext>" in dir, counting
// n up from 1, where name and ext come from mediaPath.
// Example: /videos/match.mp4 -> <dir>/match_1.mp4, or match_2.mp4 if that exists.
// The directory is scanned on every call so earlier runs are never overwritten.
func NextOutputPath(dir, mediaPath string) (string, error) {
	base := filepath.Base(mediaPath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, n, ext))
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
	}
}
