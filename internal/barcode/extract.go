// Package barcode normalizes scanned asset barcodes into canonical model
// codes. Scanners in the field emit several label formats, so extraction is
// a short chain of prefix and delimiter rules.
package barcode

import "strings"

// Mode selects how the leading-run fallback rule reads the barcode. Scanner
// firmware in the field disagrees on whether digits belong to the model
// code, so both behaviors are kept selectable.
type Mode int

const (
	// ModeLetters keeps only the leading run of letters. Default.
	ModeLetters Mode = iota
	// ModeAlnum keeps the leading run of letters and digits up to the
	// first non-alphanumeric character.
	ModeAlnum
)

// Extract normalizes a raw barcode with the default letters-only rule.
func Extract(raw string) string {
	return ExtractMode(raw, ModeLetters)
}

// ExtractMode normalizes a raw barcode into a model code. Rules are tried
// in order and the first match wins:
//
//  1. empty input returns empty output
//  2. a THE prefix is stripped, then the leading letter run is returned
//  3. text before the first "-" wins
//  4. text before the first "_" wins
//  5. otherwise the leading run (per mode) wins; input with no usable
//     leading run is returned unchanged
func ExtractMode(raw string, mode Mode) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(s, "THE"); ok {
		if run := leadingLetters(rest); run != "" {
			return run
		}
		// No letters after the prefix, keep trying the later rules.
	}
	if before, _, ok := strings.Cut(s, "-"); ok {
		return before
	}
	if before, _, ok := strings.Cut(s, "_"); ok {
		return before
	}

	var run string
	switch mode {
	case ModeAlnum:
		run = leadingAlnum(s)
	default:
		run = leadingLetters(s)
	}
	if run == "" {
		return s
	}
	return run
}

func leadingLetters(s string) string {
	for i, r := range s {
		if r < 'A' || r > 'Z' {
			return s[:i]
		}
	}
	return s
}

func leadingAlnum(s string) string {
	for i, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return s[:i]
		}
	}
	return s
}
