package pkg

// ClinicalNote is a structured SOAP note. All four keys are always present
// in any value serialized back to a caller; on total failure the fields
// carry generic fallback text rather than being omitted.
type ClinicalNote struct {
	Subjective string `json:"subjective"`
	Objective  string `json:"objective"`
	Assessment string `json:"assessment"`
	Plan       string `json:"plan"`
}

// Likelihood ranks how strongly a candidate diagnosis is supported by the
// findings in the note.
type Likelihood string

const (
	LikelihoodHigh     Likelihood = "High"
	LikelihoodModerate Likelihood = "Moderate"
	LikelihoodLow      Likelihood = "Low"
)

// DifferentialDiagnosis is one entry in a ranked differential list.
type DifferentialDiagnosis struct {
	Diagnosis          string     `json:"diagnosis"`
	Likelihood         Likelihood `json:"likelihood"`
	SupportingEvidence string     `json:"supporting_evidence"`
	Reasoning          string     `json:"reasoning"`
}

// DifferentialReport is the full differential-diagnosis document produced
// from a clinical note.
type DifferentialReport struct {
	PrimarySuspectedDiagnosis string                  `json:"primary_suspected_diagnosis"`
	DifferentialDiagnoses     []DifferentialDiagnosis `json:"differential_diagnoses"`
	RedFlags                  []string                `json:"red_flags"`
	AdditionalTests           []string                `json:"additional_tests"`
}

// ImageFinding pairs an uploaded image with the model's description of it.
// Image is the original base filename; Description is opaque model text or
// the analysis-unavailable sentinel.
type ImageFinding struct {
	Image       string `json:"image"`
	Description string `json:"description"`
}

// DifferentialRequest is the JSON body of POST /generate-differentials.
// SoapNotes is a pointer so a missing field can be told apart from an
// empty note.
type DifferentialRequest struct {
	SoapNotes *ClinicalNote `json:"soap_notes"`
	APIKey    string        `json:"api_key,omitempty"`
}

// DifferentialError replaces the structured report content when the
// differential path fails. Unlike note generation, which always returns a
// well-formed note, this path reports its failures explicitly.
type DifferentialError struct {
	Error string `json:"error"`
}
