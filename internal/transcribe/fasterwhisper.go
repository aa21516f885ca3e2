package transcribe

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"fwtranscribe/internal/deps"
)

//go:embed assets/faster_whisper_helper.py
var helperScript string

// faster-whisper engine constants.
const (
	PythonCommand = "python3"
	PythonEnv     = "FWTRANSCRIBE_PYTHON"
	ModuleName    = "faster_whisper"

	// helperImportFailed is the helper's exit status when the import fails.
	helperImportFailed = 2
	maxRecordBytes     = 4 << 20
	helperWaitDelay    = 5 * time.Second
)

// FasterWhisper runs faster-whisper through an embedded Python helper.
type FasterWhisper struct {
	python string
}

// NewFasterWhisper creates an engine using the given interpreter. An empty
// value falls back to $FWTRANSCRIBE_PYTHON, then python3.
func NewFasterWhisper(python string) *FasterWhisper {
	python = strings.TrimSpace(python)
	if python == "" {
		python = strings.TrimSpace(os.Getenv(PythonEnv))
	}
	if python == "" {
		python = PythonCommand
	}
	return &FasterWhisper{python: python}
}

// Python returns the configured interpreter name or path.
func (f *FasterWhisper) Python() string {
	return f.python
}

// Check resolves the interpreter and verifies faster_whisper imports.
func (f *FasterWhisper) Check(ctx context.Context) error {
	interpreter := deps.Resolve(deps.Requirement{Name: "Python", Command: f.python})
	if !interpreter.Available {
		return unavailable(fmt.Errorf("python interpreter: %s", interpreter.Detail))
	}
	module := deps.CheckPythonModule(ctx, interpreter.Path, ModuleName)
	if ctx.Err() != nil {
		return failed(ctx.Err())
	}
	if !module.Available {
		return unavailable(errors.New(module.Detail))
	}
	return nil
}

// Transcribe starts the helper and returns once the info record is read.
func (f *FasterWhisper) Transcribe(ctx context.Context, opts Options) (SegmentReader, Info, error) {
	opts = opts.Normalized()
	if opts.AudioPath == "" {
		return nil, Info{}, failed(errors.New("audio path required"))
	}

	cmd := exec.CommandContext(ctx, f.python, f.buildArgs(opts)...) //nolint:gosec
	// The helper talks UTF-8 regardless of the host locale.
	cmd.Env = append(os.Environ(), "PYTHONIOENCODING=utf-8", "PYTHONUNBUFFERED=1")
	cmd.WaitDelay = helperWaitDelay

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, Info{}, failed(fmt.Errorf("helper stdout: %w", err))
	}
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, Info{}, unavailable(fmt.Errorf("python interpreter %q: %w", f.python, err))
		}
		return nil, Info{}, failed(fmt.Errorf("start helper: %w", err))
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)
	stream := &helperStream{
		ctx:     ctx,
		cmd:     cmd,
		stdout:  stdout,
		stderr:  stderr,
		scanner: scanner,
	}

	info, err := stream.readInfo()
	if err != nil {
		closeErr := stream.Close()
		if closeErr != nil {
			return nil, Info{}, closeErr
		}
		return nil, Info{}, failed(err)
	}
	return stream, info, nil
}

// buildArgs constructs the interpreter arguments for the helper.
func (f *FasterWhisper) buildArgs(opts Options) []string {
	args := []string{
		"-c", helperScript,
		"--audio", opts.AudioPath,
		"--model", opts.Model,
		"--device", opts.Device,
		"--compute-type", opts.ComputeType,
		"--beam-size", strconv.Itoa(opts.BeamSize),
		"--vad-filter", strconv.FormatBool(opts.VADFilter),
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	return args
}

// helperRecord is one line of helper output.
type helperRecord struct {
	Type                string  `json:"type"`
	Language            *string `json:"language"`
	LanguageProbability float64 `json:"language_probability"`
	Duration            float64 `json:"duration"`
	Start               float64 `json:"start"`
	End                 float64 `json:"end"`
	Text                *string `json:"text"`
}

type helperStream struct {
	ctx     context.Context
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  *bytes.Buffer
	scanner *bufio.Scanner

	drained bool
	closed  bool
	err     error
}

func (s *helperStream) next() (helperRecord, error) {
	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec helperRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return helperRecord{}, fmt.Errorf("decode helper output: %w", err)
		}
		return rec, nil
	}
	if err := s.scanner.Err(); err != nil {
		return helperRecord{}, fmt.Errorf("read helper output: %w", err)
	}
	s.drained = true
	return helperRecord{}, io.EOF
}

func (s *helperStream) readInfo() (Info, error) {
	rec, err := s.next()
	if errors.Is(err, io.EOF) {
		return Info{}, errors.New("helper exited without reporting transcription info")
	}
	if err != nil {
		return Info{}, err
	}
	if rec.Type != "info" {
		return Info{}, fmt.Errorf("unexpected helper record %q before info", rec.Type)
	}
	info := Info{
		LanguageProbability: rec.LanguageProbability,
		Duration:            rec.Duration,
	}
	if rec.Language != nil {
		info.Language = *rec.Language
	}
	return normalizeInfo(info), nil
}

// Next returns the next segment or io.EOF once the helper finishes writing.
func (s *helperStream) Next() (Segment, error) {
	for {
		rec, err := s.next()
		if err != nil {
			return Segment{}, err
		}
		if rec.Type != "segment" {
			continue
		}
		seg := Segment{Start: rec.Start, End: rec.End}
		if rec.Text != nil {
			seg.Text = *rec.Text
		}
		return seg, nil
	}
}

// Close waits for the helper and translates its exit status.
func (s *helperStream) Close() error {
	if s.closed {
		return s.err
	}
	s.closed = true
	if !s.drained && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	waitErr := s.cmd.Wait()
	if !s.drained && waitErr != nil && s.ctx.Err() == nil {
		// Killed on purpose; the caller already has the real error.
		return nil
	}
	s.err = s.exitError(waitErr)
	return s.err
}

func (s *helperStream) exitError(err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		return failed(ctxErr)
	}
	message := lastLine(s.stderr.String())
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if message == "" {
			message = exitErr.Error()
		}
		if exitErr.ExitCode() == helperImportFailed {
			return unavailable(errors.New(message))
		}
		return failed(errors.New(message))
	}
	return failed(fmt.Errorf("helper: %w", err))
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
