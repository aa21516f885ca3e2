package transcribe

import (
	"strconv"
	"strings"
)

// Recognized device and compute type values. Other values are passed through
// to the library unchanged.
const (
	DeviceAuto = "auto"
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"

	ComputeInt8    = "int8"
	ComputeFloat16 = "float16"
	ComputeFloat32 = "float32"
)

// Defaults applied when a field is left empty.
const (
	DefaultModel       = "small"
	DefaultDevice      = DeviceAuto
	DefaultComputeType = ComputeInt8
	DefaultBeamSize    = 1
)

// Options captures a single transcription request.
type Options struct {
	// AudioPath is the input file handed to the library.
	AudioPath string
	// Model is a model name ("small", "large-v3") or a local model directory.
	Model string
	// Device selects where inference runs: auto, cpu, or cuda.
	Device string
	// ComputeType is the numeric precision: int8, float16, or float32.
	ComputeType string
	// Language is an ISO 639-1 hint. Empty means auto-detect.
	Language string
	// BeamSize is the decoder beam width; values below 1 are clamped.
	BeamSize int
	// VADFilter toggles the library's voice activity detection.
	VADFilter bool
}

// Normalized returns a copy with defaults filled and the beam width clamped.
func (o Options) Normalized() Options {
	o.AudioPath = strings.TrimSpace(o.AudioPath)
	o.Model = strings.TrimSpace(o.Model)
	if o.Model == "" {
		o.Model = DefaultModel
	}
	o.Device = strings.TrimSpace(o.Device)
	if o.Device == "" {
		o.Device = DefaultDevice
	}
	o.ComputeType = strings.TrimSpace(o.ComputeType)
	if o.ComputeType == "" {
		o.ComputeType = DefaultComputeType
	}
	o.Language = strings.TrimSpace(o.Language)
	o.BeamSize = max(1, o.BeamSize)
	return o
}

// KnownDevice reports whether device is one of the documented values.
func KnownDevice(device string) bool {
	switch device {
	case DeviceAuto, DeviceCPU, DeviceCUDA:
		return true
	}
	return false
}

// KnownComputeType reports whether computeType is one of the documented values.
func KnownComputeType(computeType string) bool {
	switch computeType {
	case ComputeInt8, ComputeFloat16, ComputeFloat32:
		return true
	}
	return false
}

// UsesAccelerator reports whether the request may run on a GPU.
func (o Options) UsesAccelerator() bool {
	return o.Device != DeviceCPU
}

// ParseBool accepts exactly "true" or "false".
func ParseBool(value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: value, Err: strconv.ErrSyntax}
}
