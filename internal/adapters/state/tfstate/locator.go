package tfstate

import (
	"os"
	"path/filepath"
)

const stateFileName = "terraform.tfstate"

// Locate finds the nearest state file: the working directory first, then
// its ancestors. Returns "" when none exists; callers treat that as zero
// managed resources, not as an error.
func Locate(workDir string) string {
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, stateFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
