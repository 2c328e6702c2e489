package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"medcopilot/internal/config"
	"medcopilot/internal/llm"
	"medcopilot/internal/upload"
	"medcopilot/pkg"
)

// ErrNoAPIKey signals that neither the caller nor the environment supplied
// a text-completion credential.
var ErrNoAPIKey = errors.New("API key not available")

const (
	noteMaxTokens           = 1500
	noteTemperature         = 0.3
	differentialMaxTokens   = 1500
	differentialTemperature = 0.3

	// AnalysisUnavailable is the sentinel description substituted when an
	// image cannot be analyzed: no vision credential, an unreadable file, a
	// transport failure, or the model declining.
	AnalysisUnavailable = "Image analysis not available"
)

// Pipeline orchestrates prompt building, the remote model call, and
// response extraction for the two document types. It holds no per-request
// state; the config is read-only after construction.
type Pipeline struct {
	cfg       config.Config
	newClient llm.Factory
}

// NewPipeline constructs a Pipeline around a client factory so each
// request can carry its own credential.
func NewPipeline(cfg config.Config, factory llm.Factory) *Pipeline {
	return &Pipeline{cfg: cfg, newClient: factory}
}

func (p *Pipeline) key(override string) string {
	if override != "" {
		return override
	}
	return p.cfg.APIKey
}

// AnalyzeImages runs one vision call per staged image, sequentially and in
// order. Images that cannot be analyzed get the sentinel description
// instead of failing the request. Without a vision credential no call is
// made at all.
func (p *Pipeline) AnalyzeImages(ctx context.Context, images []upload.Stored) []pkg.ImageFinding {
	findings := make([]pkg.ImageFinding, 0, len(images))
	if len(images) == 0 {
		return findings
	}

	var analyzer llm.ImageAnalyzer
	if p.cfg.VisionAPIKey != "" {
		analyzer = p.newClient(p.cfg.VisionAPIKey)
	}

	for _, img := range images {
		findings = append(findings, pkg.ImageFinding{
			Image:       img.Name,
			Description: p.describeImage(ctx, analyzer, img),
		})
	}
	return findings
}

func (p *Pipeline) describeImage(ctx context.Context, analyzer llm.ImageAnalyzer, img upload.Stored) string {
	if analyzer == nil {
		return AnalysisUnavailable
	}
	data, err := os.ReadFile(img.Path)
	if err != nil {
		log.Printf("failed to read staged image %s: %v", img.Path, err)
		return AnalysisUnavailable
	}
	desc, err := analyzer.AnalyzeImage(ctx, data, img.MimeType)
	if err != nil {
		log.Printf("image analysis failed for %s: %v", img.Name, err)
		return AnalysisUnavailable
	}
	// A reply containing "cannot" is treated as the model declining to
	// analyze the image.
	if strings.Contains(strings.ToLower(desc), "cannot") {
		return AnalysisUnavailable
	}
	return desc
}

// GenerateNote produces a clinical note from a transcript and image
// findings. It never returns an error: without a credential it skips the
// remote call and returns the fallback note directly, and any transport
// or parse failure also resolves to the fallback note.
func (p *Pipeline) GenerateNote(ctx context.Context, transcript string, findings []pkg.ImageFinding, apiKeyOverride string) pkg.ClinicalNote {
	key := p.key(apiKeyOverride)
	if key == "" {
		return FallbackNote()
	}

	prompt := BuildNotePrompt(transcript, findings)
	raw, err := p.newClient(key).Complete(ctx, soapSystemRole, prompt, noteMaxTokens, noteTemperature)
	if err != nil {
		log.Printf("note generation failed: %v", err)
		return FallbackNote()
	}
	return ExtractNote(raw)
}

// GenerateDifferential produces a differential report from a previously
// generated note. Unlike GenerateNote, credential and transport failures
// are returned as errors for the handler to report explicitly; only a
// parse failure degrades silently to the fallback report.
func (p *Pipeline) GenerateDifferential(ctx context.Context, note pkg.ClinicalNote, apiKeyOverride string) (pkg.DifferentialReport, error) {
	key := p.key(apiKeyOverride)
	if key == "" {
		return pkg.DifferentialReport{}, ErrNoAPIKey
	}

	prompt := BuildDifferentialPrompt(note)
	raw, err := p.newClient(key).Complete(ctx, differentialSystemRole, prompt, differentialMaxTokens, differentialTemperature)
	if err != nil {
		return pkg.DifferentialReport{}, fmt.Errorf("differential generation: %w", err)
	}
	return ExtractDifferential(raw), nil
}

// ListModels returns the model ids available to the given credential.
func (p *Pipeline) ListModels(ctx context.Context, apiKeyOverride string) ([]string, error) {
	key := p.key(apiKeyOverride)
	if key == "" {
		return nil, ErrNoAPIKey
	}
	lister, ok := p.newClient(key).(llm.ModelLister)
	if !ok {
		return nil, errors.New("model listing not supported by this client")
	}
	return lister.ListModels(ctx)
}
