package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"medcopilot/internal/core"
	"medcopilot/internal/upload"
	"medcopilot/pkg"

	"github.com/gin-gonic/gin"
)

// Server bundles the dependencies required by the HTTP handlers.
type Server struct {
	Pipeline *core.Pipeline
	Uploads  *upload.Store
}

// NewServer constructs a Server.
func NewServer(pipeline *core.Pipeline, uploads *upload.Store) *Server {
	return &Server{Pipeline: pipeline, Uploads: uploads}
}

// handleGenerateSOAP turns a multipart conversation transcript plus
// optional images into a structured SOAP note.
func (s *Server) handleGenerateSOAP(c *gin.Context) {
	conversation := c.PostForm("conversation_text")
	if strings.TrimSpace(conversation) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Conversation text is required",
		})
		return
	}
	apiKey := c.PostForm("api_key")

	var staged []upload.Stored
	if form, err := c.MultipartForm(); err == nil {
		for _, file := range form.File["images"] {
			if file == nil || file.Filename == "" || !upload.Allowed(file.Filename) {
				continue
			}
			stored, err := s.Uploads.Save(file)
			if err != nil {
				log.Printf("failed to stage upload %s: %v", file.Filename, err)
				continue
			}
			staged = append(staged, stored)
		}
	}
	// Staged files are request-scoped; remove them no matter how the
	// request ends.
	defer func() {
		for _, stored := range staged {
			s.Uploads.Remove(stored)
		}
	}()

	ctx := c.Request.Context()
	findings := s.Pipeline.AnalyzeImages(ctx, staged)
	note := s.Pipeline.GenerateNote(ctx, conversation, findings, apiKey)

	c.JSON(http.StatusOK, gin.H{
		"status":             "success",
		"image_descriptions": findings,
		"soap_notes":         note,
	})
}

// handleGenerateDifferentials turns a previously generated SOAP note into
// a ranked differential report.
func (s *Server) handleGenerateDifferentials(c *gin.Context) {
	var req pkg.DifferentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}
	if req.SoapNotes == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "soap_notes is required",
		})
		return
	}

	report, err := s.Pipeline.GenerateDifferential(c.Request.Context(), *req.SoapNotes, req.APIKey)
	if err != nil {
		// Failure on this path is reported inside an otherwise-successful
		// response. The asymmetry with note generation, which always
		// synthesizes a full fallback note, is part of the contract.
		msg := "Failed to generate differential diagnoses"
		if errors.Is(err, core.ErrNoAPIKey) {
			msg = core.ErrNoAPIKey.Error()
		} else {
			log.Printf("differential generation failed: %v", err)
		}
		c.JSON(http.StatusOK, gin.H{
			"status":                 "success",
			"differential_diagnoses": pkg.DifferentialError{Error: msg},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                 "success",
		"differential_diagnoses": report,
	})
}

// handleListModels reports the model ids the remote endpoint serves.
func (s *Server) handleListModels(c *gin.Context) {
	models, err := s.Pipeline.ListModels(c.Request.Context(), c.Query("api_key"))
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, core.ErrNoAPIKey) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "models": models})
}

// handleHome is the static service descriptor.
func (s *Server) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Medical AI Copilot API",
		"version": "1.0.0",
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
