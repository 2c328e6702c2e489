package core

import (
	"fmt"
	"strings"

	"medcopilot/pkg"
)

// prompts.go defines the instruction templates for the two document types.
// Keeping them in a separate file makes them easy to tweak without
// touching the pipeline.

const (
	// soapSystemRole is the system message for note generation.
	soapSystemRole = "You are a medical scribe assistant that generates detailed SOAP notes " +
		"from doctor-patient conversations and medical test images."

	// differentialSystemRole is the system message for differential
	// generation.
	differentialSystemRole = "You are an experienced clinician that produces ranked differential " +
		"diagnoses from structured SOAP notes."

	// NoImagesPlaceholder is inserted into the note prompt when the request
	// carries no analyzable images.
	NoImagesPlaceholder = "No medical test images provided"
)

const soapPromptTemplate = `You are an expert medical scribe assistant. Your task is to generate detailed and comprehensive SOAP notes from doctor-patient conversation transcripts and optional medical test images.

SOAP Note Format:
- Subjective (S): Patient's chief complaint, history of present illness, and relevant past medical history. Be detailed about symptoms, duration, and severity.
- Objective (O): Measurable data including vital signs, physical examination findings, and test results. Include specific measurements and detailed descriptions of physical findings. If medical images are provided, incorporate detailed findings from the image analysis.
- Assessment (A): Clinical impressions, diagnoses, and problem list. Provide differential diagnoses when appropriate and explain your reasoning.
- Plan (P): Treatment plan, medications, follow-up instructions, and referrals. Be specific about dosages, timing, and monitoring requirements.

Instructions:
- Extract all relevant information from the conversation and organize it into the SOAP format
- If medical test images are provided, incorporate detailed findings from the image descriptions
- Be comprehensive and detailed, avoiding vague statements
- Use precise medical terminology appropriately
- Include relevant negative findings (e.g., "no fever", "normal heart sounds")
- Prioritize accuracy and completeness
- Structure information logically within each SOAP section

Doctor-Patient Conversation:
%s

Medical Test Image Descriptions (if available):
%s

Generate detailed SOAP notes in the following JSON format:
{
  "subjective": "Comprehensive chief complaint, history of present illness with timeline, associated symptoms, and relevant past medical history...",
  "objective": "Detailed vital signs, comprehensive physical examination findings with specific observations, and detailed results from medical test images...",
  "assessment": "Primary diagnosis with supporting evidence, differential diagnoses when appropriate, and clinical reasoning...",
  "plan": "Specific treatment recommendations with dosages if applicable, follow-up timeline, monitoring requirements, and patient education..."
}

Detailed SOAP Notes:
`

const differentialPromptTemplate = `You are an expert diagnostician. Based on the following SOAP note, produce a ranked list of candidate diagnoses consistent with the documented findings.

Instructions:
- List the most likely diagnoses first
- Rate the likelihood of each candidate as High, Moderate, or Low
- Cite the supporting evidence from the note and explain your clinical reasoning
- Call out red flags that require urgent attention
- Recommend additional tests that would narrow the differential

SOAP Note:
%s

Respond in the following JSON format:
{
  "primary_suspected_diagnosis": "Most likely diagnosis...",
  "differential_diagnoses": [
    {
      "diagnosis": "Candidate diagnosis...",
      "likelihood": "High|Moderate|Low",
      "supporting_evidence": "Findings from the note supporting this diagnosis...",
      "reasoning": "Clinical reasoning..."
    }
  ],
  "red_flags": ["Findings requiring urgent attention..."],
  "additional_tests": ["Recommended tests..."]
}

Differential Diagnosis:
`

// BuildNotePrompt renders the note-generation prompt from a transcript and
// any image findings. Pure: equal inputs yield byte-identical output, and
// an empty finding list is valid input, not an error.
func BuildNotePrompt(transcript string, findings []pkg.ImageFinding) string {
	descriptions := NoImagesPlaceholder
	if len(findings) > 0 {
		parts := make([]string, 0, len(findings))
		for _, f := range findings {
			parts = append(parts, fmt.Sprintf("Image %s: %s", f.Image, f.Description))
		}
		descriptions = strings.Join(parts, "\n\n")
	}
	return fmt.Sprintf(soapPromptTemplate, transcript, descriptions)
}

// BuildDifferentialPrompt renders the differential-generation prompt from
// a previously produced clinical note.
func BuildDifferentialPrompt(note pkg.ClinicalNote) string {
	return fmt.Sprintf(differentialPromptTemplate, FormatNote(note))
}

// FormatNote serializes a note to the canonical text form embedded in the
// differential prompt.
func FormatNote(note pkg.ClinicalNote) string {
	var b strings.Builder
	b.WriteString("Subjective: " + note.Subjective + "\n\n")
	b.WriteString("Objective: " + note.Objective + "\n\n")
	b.WriteString("Assessment: " + note.Assessment + "\n\n")
	b.WriteString("Plan: " + note.Plan)
	return b.String()
}
