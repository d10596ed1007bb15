package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/dnyali/bactasm/config"
)

// Stage describes one step of the fixed pipeline: the external tool it runs,
// the artifact whose presence on disk marks the stage complete, and the
// artifacts from earlier stages it needs before it may run.
type Stage struct {
	Name       string
	Tool       string
	Artifact   string
	Requires   []string
	Env        *EnvContext
	VersionCmd string
	Command    func(cfg config.EffectiveConfig) string
}

// Stages returns the fixed ordered stage list for a run. Artifact paths below
// workdir are the resumability contract: filtered reads next to the input,
// flye_assembly/, medaka/, prokka_out/, ropro_out/ and checkm/ in workdir.
func Stages(cfg config.EffectiveConfig, workdir string) []Stage {
	filtered := cfg.SampleName + "_filt.fastq"
	assembly := filepath.Join(workdir, "flye_assembly", "assembly.fasta")
	consensus := filepath.Join(workdir, "medaka", "consensus.fasta")
	prokkaOut := filepath.Join(workdir, "prokka_out")
	roproOut := filepath.Join(workdir, "ropro_out")
	checkmSummary := filepath.Join(workdir, "checkm", "summary", "summary.txt")

	return []Stage{
		{
			Name:       "filter-reads",
			Tool:       "NanoFilt",
			Artifact:   filtered,
			Requires:   []string{cfg.ReadsPath},
			VersionCmd: "NanoFilt --version",
			Command: func(cfg config.EffectiveConfig) string {
				return fmt.Sprintf(`NanoFilt -q %d -l %d < %s > %s`, cfg.QualityThreshold, cfg.MinLength, cfg.ReadsPath, filtered)
			},
		},
		{
			Name:       "assemble",
			Tool:       "flye",
			Artifact:   assembly,
			Requires:   []string{filtered},
			VersionCmd: "flye --version",
			Command: func(cfg config.EffectiveConfig) string {
				readsFlag := "--nano-raw"
				if cfg.AssemblyMode == config.ModeHighQuality {
					readsFlag = "--nano-hq"
				}
				return fmt.Sprintf(`flye %s %s --out-dir %s --threads %d`, readsFlag, filtered, filepath.Join(workdir, "flye_assembly"), cfg.EffectiveCores)
			},
		},
		{
			Name:       "polish",
			Tool:       "medaka",
			Artifact:   consensus,
			Requires:   []string{filtered, assembly},
			VersionCmd: "medaka --version",
			Command: func(cfg config.EffectiveConfig) string {
				return fmt.Sprintf(`medaka_consensus -i %s -d %s -o %s -m %s -t %d`, filtered, assembly, filepath.Join(workdir, "medaka"), cfg.MedakaModel, cfg.EffectiveCores)
			},
		},
		{
			Name:       "annotate",
			Tool:       "prokka",
			Artifact:   prokkaOut,
			Requires:   []string{consensus},
			VersionCmd: "prokka --version",
			Command: func(cfg config.EffectiveConfig) string {
				return fmt.Sprintf(`prokka --outdir %s --prefix %s --cpus %d %s`, prokkaOut, filepath.Base(cfg.SampleName), cfg.EffectiveCores, consensus)
			},
		},
		{
			Name:     "summarize",
			Tool:     "ropro",
			Artifact: roproOut,
			Requires: []string{prokkaOut},
			Command: func(cfg config.EffectiveConfig) string {
				return fmt.Sprintf(`ropro.py -ra -i %s -o %s`, prokkaOut, roproOut)
			},
		},
		{
			Name:       "check-completeness",
			Tool:       "checkm",
			Artifact:   checkmSummary,
			Requires:   []string{consensus},
			Env:        &EnvContext{Name: "checkm"},
			VersionCmd: "checkm -h | head -2 | tail -1",
			Command: func(cfg config.EffectiveConfig) string {
				summaryDir := filepath.Join(workdir, "checkm", "summary")
				return fmt.Sprintf(`mkdir -p %s && checkm lineage_wf -t %d -x fasta %s %s -f %s`, summaryDir, cfg.EffectiveCores, filepath.Join(workdir, "medaka"), filepath.Join(workdir, "checkm"), checkmSummary)
			},
		},
	}
}
