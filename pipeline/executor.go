package pipeline

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/dnyali/bactasm/config"
)

type Status int

const (
	Skipped Status = iota
	Ran
	Failed
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "SKIPPED"
	case Ran:
		return "RAN"
	case Failed:
		return "FAILED"
	}
	return "UNKNOWN"
}

// Result records what happened to one stage. ExitCode is meaningful only
// when the stage actually ran.
type Result struct {
	Status   Status
	ExitCode int
	Duration time.Duration
}

type StageExecutionError struct {
	Stage    string
	ExitCode int
	Err      error
}

func (e *StageExecutionError) Error() string {
	return fmt.Sprintf("stage %s failed with exit code %d: %v", e.Stage, e.ExitCode, e.Err)
}

func (e *StageExecutionError) Unwrap() error {
	return e.Err
}

// Execute builds the stage's concrete command line from the effective config
// and runs it as a child process, streaming the tool's own output straight
// through to the user. A non-zero exit is fatal to the run; the stage is
// never retried here. Stages with an EnvContext run inside it, and the
// default context is restored whether or not the command succeeds.
func Execute(stage Stage, cfg config.EffectiveConfig) (Result, error) {
	if stage.Env != nil {
		release, err := stage.Env.Acquire()
		if err != nil {
			return Result{Status: Failed, ExitCode: -1}, err
		}
		defer release()
	}

	cmdStr := stage.Command(cfg)
	fmt.Println(cmdStr)

	start := time.Now()
	cmd := exec.Command("bash", "-c", cmdStr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return Result{Status: Failed, ExitCode: exitCode, Duration: elapsed},
			&StageExecutionError{Stage: stage.Name, ExitCode: exitCode, Err: err}
	}

	return Result{Status: Ran, ExitCode: 0, Duration: elapsed}, nil
}
