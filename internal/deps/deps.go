package deps

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
)

// Requirement names an executable fwtranscribe launches.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports whether a requirement resolved. Path holds the absolute
// executable location when Available is true; Detail explains a failure.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Resolve locates req.Command using the same rules exec.Command applies: bare
// names are searched on PATH, anything containing a separator is used as is.
func Resolve(req Requirement) Status {
	command := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     command,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if command == "" {
		status.Detail = "command not configured"
		return status
	}

	path, err := exec.LookPath(command)
	if err != nil {
		status.Detail = lookupDetail(command, err)
		return status
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	status.Available = true
	status.Path = path
	return status
}

// CheckBinaries resolves each requirement in order.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, Resolve(req))
	}
	return results
}

func lookupDetail(command string, err error) string {
	if strings.ContainsRune(command, filepath.Separator) {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Sprintf("%s is not executable", command)
		}
		return fmt.Sprintf("%s not found", command)
	}
	return fmt.Sprintf("%q not found on PATH", command)
}
