package utils

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

type Config struct {
	Reads     string
	Model     string
	Quality   int
	MinLength int
	Threads   int
}

// ReadConfig parses a run file of "key: value" lines. Unknown keys are ignored.
func ReadConfig(configPath string) (Config, error) {
	configFile, err := os.Open(configPath)
	if err != nil {
		return Config{}, err
	}
	defer configFile.Close()
	var cfg Config

	scanner := bufio.NewScanner(configFile)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "reads":
			cfg.Reads = value
		case "model":
			cfg.Model = value
		case "quality":
			q, qErr := strconv.Atoi(value)
			if qErr == nil {
				cfg.Quality = q
			}
		case "min_length":
			l, lErr := strconv.Atoi(value)
			if lErr == nil {
				cfg.MinLength = l
			}
		case "threads":
			t, tErr := strconv.Atoi(value)
			if tErr == nil {
				cfg.Threads = t
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil

}

func RunBashCmdVerbose(cmdStr string) error {
	cmd := exec.Command("bash", "-c", cmdStr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return err
	}
	return nil
}

// BashCmdOutput runs a command and returns its trimmed stdout, with stderr discarded.
func BashCmdOutput(cmdStr string) (string, error) {
	cmd := exec.Command("bash", "-c", cmdStr)

	var stdoutBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf

	err := cmd.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stdoutBuf.String()), nil
}
