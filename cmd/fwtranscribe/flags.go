package main

import (
	"strconv"

	"fwtranscribe/internal/transcribe"
)

// strictBool is a flag value that accepts exactly "true" or "false" and
// always requires an explicit argument.
type strictBool struct {
	value *bool
}

func newStrictBool(p *bool, def bool) *strictBool {
	*p = def
	return &strictBool{value: p}
}

func (b *strictBool) Set(s string) error {
	v, err := transcribe.ParseBool(s)
	if err != nil {
		return err
	}
	*b.value = v
	return nil
}

func (b *strictBool) String() string {
	if b.value == nil {
		return "false"
	}
	return strconv.FormatBool(*b.value)
}

func (b *strictBool) Type() string { return "true|false" }
