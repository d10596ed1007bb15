package pipeline

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// EnvContext is an activatable toolchain environment (a conda env) that one
// stage needs instead of the default context the other stages run in.
type EnvContext struct {
	Name string
}

type EnvContextError struct {
	Context string
	Err     error
}

func (e *EnvContextError) Error() string {
	return fmt.Sprintf("environment context %q: %v", e.Context, e.Err)
}

func (e *EnvContextError) Unwrap() error {
	return e.Err
}

// Acquire switches the process into the context by putting the env's bin
// directory at the front of PATH, and returns a release func that restores
// the default context. Callers must defer the release so the default context
// comes back on every exit path, command failure included.
func (e *EnvContext) Acquire() (func(), error) {
	condaPath, err := exec.LookPath("conda")
	if err != nil {
		return nil, &EnvContextError{Context: e.Name, Err: fmt.Errorf("conda not found: %w", err)}
	}

	condaRoot := filepath.Dir(filepath.Dir(condaPath))
	binDir := filepath.Join(condaRoot, "envs", e.Name, "bin")
	if _, err := os.Stat(binDir); err != nil {
		return nil, &EnvContextError{Context: e.Name, Err: fmt.Errorf("env not found at %s: %w", binDir, err)}
	}

	prevPath := os.Getenv("PATH")
	prevEnv, hadEnv := os.LookupEnv("CONDA_DEFAULT_ENV")

	os.Setenv("PATH", binDir+string(os.PathListSeparator)+prevPath)
	os.Setenv("CONDA_DEFAULT_ENV", e.Name)
	fmt.Printf("Activated %s environment (%s)\n", e.Name, binDir)

	release := func() {
		os.Setenv("PATH", prevPath)
		if hadEnv {
			os.Setenv("CONDA_DEFAULT_ENV", prevEnv)
		} else {
			os.Unsetenv("CONDA_DEFAULT_ENV")
		}
		fmt.Printf("Restored default environment\n")
	}
	return release, nil
}
