package dictionary

import "strings"

// Correction holds the known fixes for one misspelled word.
type Correction struct {
	// Candidates are the suggested replacements in dictionary order.
	// Never empty; callers may treat the first entry as primary.
	Candidates []string
	// Fix is true when the entry carried no reason annotation, meaning the
	// single candidate is safe to apply automatically.
	Fix bool
	// Reason explains why the correction needs review. Empty when Fix is true.
	Reason string
}

// parseCorrection interprets the data half of a dictionary entry.
// Text after the last comma is the reason; everything before it is the
// comma-separated candidate list. Without a comma the whole field is one
// auto-fixable candidate.
func parseCorrection(data string) *Correction {
	data = strings.TrimSpace(data)

	fix := true
	reason := ""
	if idx := strings.LastIndexByte(data, ','); idx >= 0 {
		fix = false
		reason = strings.TrimSpace(data[idx+1:])
		data = data[:idx]
	}

	parts := strings.Split(data, ",")
	candidates := make([]string, len(parts))
	for i, c := range parts {
		candidates[i] = strings.TrimSpace(c)
	}

	return &Correction{
		Candidates: candidates,
		Fix:        fix,
		Reason:     reason,
	}
}
