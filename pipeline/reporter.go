package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/dnyali/bactasm/utils"
)

// ToolVersion asks the stage's external tool for its version banner and
// returns the first line, or just the tool name when the probe fails or the
// tool has no version flag. Observational only.
func ToolVersion(stage Stage) string {
	if stage.VersionCmd == "" {
		return stage.Tool
	}
	out, err := utils.BashCmdOutput(stage.VersionCmd)
	if err != nil || out == "" {
		return stage.Tool
	}
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return out
}

// Report prints the per-stage skip/run status and the total wall-clock time
// for the run. start is the process start timestamp, passed in explicitly.
func Report(run *PipelineRun, start time.Time) {
	run.Elapsed = time.Since(start)

	fmt.Printf("\n================== PIPELINE %s ==================\n", run.State)
	for _, outcome := range run.Stages {
		switch outcome.Result.Status {
		case Skipped:
			fmt.Printf("%-20s %-8s artifact: %s (%s)\n", outcome.Stage.Name, outcome.Result.Status, outcome.Stage.Artifact, ToolVersion(outcome.Stage))
		case Ran:
			fmt.Printf("%-20s %-8s in %s (%s)\n", outcome.Stage.Name, outcome.Result.Status, outcome.Result.Duration, ToolVersion(outcome.Stage))
		case Failed:
			fmt.Printf("%-20s %-8s exit code %d\n", outcome.Stage.Name, outcome.Result.Status, outcome.Result.ExitCode)
		}
	}
	fmt.Printf("Whole run took %s\n", run.Elapsed)
}
