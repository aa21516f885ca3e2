package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fwtranscribe/internal/transcribe"
)

// writeResult prints the payload as one JSON line with non-ASCII and HTML
// characters left unescaped.
func writeResult(w io.Writer, result transcribe.Result) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if _, err := w.Write(unescapeLineSeparators(buf.Bytes())); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// unescapeLineSeparators restores U+2028 and U+2029, which encoding/json
// always escapes. Escape pairs are consumed whole so an escaped backslash
// followed by "u2028" stays as written.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if rest := data[i+1:]; len(rest) >= 5 && rest[0] == 'u' && string(rest[1:4]) == "202" && (rest[4] == '8' || rest[4] == '9') {
			if rest[4] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
