package core

import (
	"encoding/json"
	"strings"

	"medcopilot/pkg"
)

// The remote model is untrusted as a structured-output source: it may wrap
// the JSON in commentary or markdown fences, truncate it at the token
// budget, or emit invalid JSON outright. Extraction slices the text from
// the first '{' to the last '}' and substitutes a fixed schema-shaped
// fallback on any failure, so a parse error never reaches the HTTP
// boundary and callers never see a half-constructed document.

// FallbackNote is the note returned whenever real content cannot be
// obtained or parsed.
func FallbackNote() pkg.ClinicalNote {
	return pkg.ClinicalNote{
		Subjective: "Processed patient conversation",
		Objective:  "Extracted relevant medical information",
		Assessment: "Clinical assessment based on conversation",
		Plan:       "Treatment and follow-up recommendations",
	}
}

// FallbackDifferential is the empty-content report returned when the model
// reply cannot be parsed into a differential.
func FallbackDifferential() pkg.DifferentialReport {
	return pkg.DifferentialReport{
		PrimarySuspectedDiagnosis: "Unable to parse differential diagnoses from model response",
		DifferentialDiagnoses:     []pkg.DifferentialDiagnosis{},
		RedFlags:                  []string{},
		AdditionalTests:           []string{},
	}
}

// sliceJSON returns the substring between the first '{' and the last '}'
// inclusive. ok is false when either brace is absent; no heuristic
// construction from prose is attempted.
func sliceJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// ExtractNote parses a ClinicalNote out of raw model output. Keys missing
// from otherwise valid JSON are left empty rather than auto-filled; the
// struct shape still guarantees all four keys appear in anything
// serialized back to a caller.
func ExtractNote(raw string) pkg.ClinicalNote {
	slice, ok := sliceJSON(raw)
	if !ok {
		return FallbackNote()
	}
	var note pkg.ClinicalNote
	if err := json.Unmarshal([]byte(slice), &note); err != nil {
		return FallbackNote()
	}
	return note
}

// ExtractDifferential parses a DifferentialReport out of raw model output,
// using the same slice-then-parse approach as ExtractNote. List fields are
// normalized to empty slices so the serialized report always carries them.
func ExtractDifferential(raw string) pkg.DifferentialReport {
	slice, ok := sliceJSON(raw)
	if !ok {
		return FallbackDifferential()
	}
	var report pkg.DifferentialReport
	if err := json.Unmarshal([]byte(slice), &report); err != nil {
		return FallbackDifferential()
	}
	if report.DifferentialDiagnoses == nil {
		report.DifferentialDiagnoses = []pkg.DifferentialDiagnosis{}
	}
	if report.RedFlags == nil {
		report.RedFlags = []string{}
	}
	if report.AdditionalTests == nil {
		report.AdditionalTests = []string{}
	}
	return report
}
