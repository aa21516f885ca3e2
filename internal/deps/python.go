package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CheckPythonModule reports whether module imports under the given interpreter.
// Path is the resolved interpreter; Detail carries the last line the
// interpreter wrote to stderr on failure.
func CheckPythonModule(ctx context.Context, python, module string) Status {
	python = strings.TrimSpace(python)
	module = strings.TrimSpace(module)
	status := Status{
		Name:        fmt.Sprintf("Python module %s", module),
		Command:     python,
		Description: "Imported by the transcription helper",
	}
	if python == "" {
		status.Detail = "python interpreter not configured"
		return status
	}
	if module == "" {
		status.Detail = "module not configured"
		return status
	}

	interpreter := Resolve(Requirement{Command: python})
	if !interpreter.Available {
		status.Detail = interpreter.Detail
		return status
	}
	status.Path = interpreter.Path

	cmd := exec.CommandContext(ctx, interpreter.Path, "-c", "import "+module) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := lastLine(string(output))
		if detail == "" {
			detail = err.Error()
		}
		status.Detail = detail
		return status
	}
	status.Available = true
	return status
}

func lastLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
