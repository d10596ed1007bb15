package pipeline

import "os"

// IsComplete reports whether the stage's artifact is already on disk. The
// check is repeated fresh on every call: the filesystem is the only run
// ledger, which is what makes an interrupted run safe to re-invoke.
func IsComplete(stage Stage) bool {
	_, err := os.Stat(stage.Artifact)
	return err == nil
}

// MissingInputs returns the predecessor artifacts the stage needs that are
// not on disk. Empty means the stage may run.
func MissingInputs(stage Stage) []string {
	var missing []string
	for _, path := range stage.Requires {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	return missing
}
