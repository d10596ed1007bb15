package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dnyali/bactasm/config"
)

type State int

const (
	NotStarted State = iota
	Validating
	Running
	Completed
	AbortedInvalidInput
	AbortedMissingPredecessor
	AbortedStageFailed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT STARTED"
	case Validating:
		return "VALIDATING"
	case Running:
		return "RUNNING"
	case Completed:
		return "COMPLETED"
	case AbortedInvalidInput:
		return "ABORTED (invalid input)"
	case AbortedMissingPredecessor:
		return "ABORTED (missing predecessor artifact)"
	case AbortedStageFailed:
		return "ABORTED (stage failed)"
	}
	return "UNKNOWN"
}

// StageOutcome pairs a stage with what happened to it in this run.
type StageOutcome struct {
	Stage  Stage
	Result Result
}

// PipelineRun accumulates per-stage outcomes for one invocation. It lives
// only for the process: cross-run state is carried entirely by the artifacts
// the stages leave on disk.
type PipelineRun struct {
	Stages  []StageOutcome
	State   State
	Elapsed time.Duration
}

// InvalidInput returns a terminal run for a configuration that failed
// validation before any stage could be considered.
func InvalidInput() *PipelineRun {
	return &PipelineRun{State: AbortedInvalidInput}
}

// Run walks the fixed stage list in order. A stage whose artifact already
// exists is skipped; otherwise its predecessor artifacts are checked
// defensively, the stage is executed, and any failure stops the run on the
// spot. Artifacts of stages that finished earlier are left alone, so the
// next invocation resumes past them.
func Run(stages []Stage, cfg config.EffectiveConfig, logger *slog.Logger) (*PipelineRun, error) {
	run := &PipelineRun{State: Running}

	for _, stage := range stages {
		if IsComplete(stage) {
			fmt.Printf("%s already done (%s exists), skipping ...\n\n", stage.Name, stage.Artifact)
			logger.Info("PIPELINE", "STAGE", stage.Name, "STATUS", "SKIPPED", "ARTIFACT", stage.Artifact)
			run.Stages = append(run.Stages, StageOutcome{Stage: stage, Result: Result{Status: Skipped}})
			continue
		}

		if missing := MissingInputs(stage); len(missing) > 0 {
			run.State = AbortedMissingPredecessor
			logger.Error("PIPELINE", "STAGE", stage.Name, "STATUS", "MISSING_PREDECESSOR", "PATHS", strings.Join(missing, ","))
			return run, fmt.Errorf("stage %s cannot run, missing: %s", stage.Name, strings.Join(missing, ", "))
		}

		fmt.Printf("Running %s ...\n", stage.Name)
		logger.Info("PIPELINE", "STAGE", stage.Name, "STATUS", "STARTED")

		result, err := Execute(stage, cfg)
		run.Stages = append(run.Stages, StageOutcome{Stage: stage, Result: result})
		if err != nil {
			run.State = AbortedStageFailed
			logger.Error("PIPELINE", "STAGE", stage.Name, "STATUS", "FAILED", "EXIT_CODE", result.ExitCode)
			return run, err
		}

		fmt.Printf("%s took %s\n\n", stage.Name, result.Duration)
		logger.Info("PIPELINE", "STAGE", stage.Name, "STATUS", "COMPLETED", "ARTIFACT", stage.Artifact)
	}

	run.State = Completed
	return run, nil
}

// NewRunLogger opens the JSON run log in workdir. The log is observational
// only, the artifact probe never reads it. Callers close the returned file.
func NewRunLogger(workdir string) (*slog.Logger, *os.File, error) {
	logFilePath := filepath.Join(workdir, "assembly.log")
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", logFilePath, err)
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logger, logFile, nil
}
