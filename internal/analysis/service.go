package analysis

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/credlens/credlens/internal/advising"
	"github.com/credlens/credlens/internal/document"
	"github.com/credlens/credlens/internal/report"
	"github.com/credlens/credlens/internal/scoring"
)

// IDGenerator generates unique IDs for analyses
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random UUIDs; the ID also prefixes the staged
// document name, which keeps concurrent uploads from colliding.
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles report analysis operations. The model and scaler are
// loaded once at startup and never mutated, so one Service is safe for
// concurrent requests.
type Service struct {
	db          DB
	storage     Storage
	converter   document.Converter
	advisor     advising.Advisor // nil disables advice
	model       *scoring.Model   // nil disables the scoring paths
	scaler      *scoring.Scaler  // nil means identity normalization
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, storage Storage, converter document.Converter, advisor advising.Advisor, model *scoring.Model, scaler *scoring.Scaler) *Service {
	return &Service{
		db:          db,
		storage:     storage,
		converter:   converter,
		advisor:     advisor,
		model:       model,
		scaler:      scaler,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, storage Storage, converter document.Converter, advisor advising.Advisor, model *scoring.Model, scaler *scoring.Scaler, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		storage:     storage,
		converter:   converter,
		advisor:     advisor,
		model:       model,
		scaler:      scaler,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	// Remove special characters, keep only alphanumeric, spaces, hyphens, and underscores
	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "report"
	}

	return base + ext
}

// Predict scores caller-supplied raw feature values. Values are normalized
// and fed to the model as-is, without range validation.
func (s *Service) Predict(features map[string]float64) (float64, error) {
	if s.model == nil {
		return 0, fmt.Errorf("scoring model not loaded")
	}
	vec := scoring.FromMap(features)
	return s.model.Score(s.scaler.Transform(vec)), nil
}

// AnalyzeDocument stages an uploaded report, extracts its fields, scores
// them, and asks the advisor for a narrative assessment. Advisor failure
// degrades to an error field on the result; every other failure aborts the
// analysis.
func (s *Service) AnalyzeDocument(filename string, data []byte, contentType string) (*Result, error) {
	if s.model == nil {
		return nil, fmt.Errorf("scoring model not loaded")
	}

	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	stagedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("staging document: %w", err)
	}

	text, err := s.converter.ExtractText(data, contentType)
	if err != nil {
		slog.Error("Failed to extract text from document",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.storage.Delete(stagedPath)
		return nil, fmt.Errorf("extracting document text: %w", err)
	}

	fields := report.ExtractFields(text)
	subscriptions := report.DetectSubscriptions(text)

	vec := scoring.ForDocument(fields)
	score := s.model.Score(s.scaler.Transform(vec))

	analysis := &Analysis{
		ID:            id,
		Filename:      stagedPath,
		ContentType:   contentType,
		Score:         score,
		Fields:        fields,
		Subscriptions: subscriptions,
		CreatedAt:     now,
	}

	if err := s.db.SaveAnalysis(analysis); err != nil {
		s.storage.Delete(stagedPath)
		return nil, fmt.Errorf("saving analysis to database: %w", err)
	}

	result := &Result{Analysis: analysis}
	if s.advisor != nil {
		advice, err := s.advisor.Advise(text)
		if err != nil {
			slog.Warn("Advisor failed, returning partial result", "id", id, "error", err)
			result.AdviceError = err.Error()
		} else {
			result.Advice = advice
		}
	}

	return result, nil
}

// GetAnalysis retrieves an analysis by ID
func (s *Service) GetAnalysis(id string) (*Analysis, error) {
	analysis, err := s.db.GetAnalysis(id)
	if err != nil {
		return nil, fmt.Errorf("getting analysis: %w", err)
	}
	return analysis, nil
}

// ListAnalyses returns all analyses
func (s *Service) ListAnalyses() ([]*Analysis, error) {
	analyses, err := s.db.ListAnalyses()
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return analyses, nil
}

// DeleteAnalysis removes an analysis and its staged document
func (s *Service) DeleteAnalysis(id string) error {
	analysis, err := s.db.GetAnalysis(id)
	if err != nil {
		return fmt.Errorf("getting analysis for deletion: %w", err)
	}

	if err := s.storage.Delete(analysis.Filename); err != nil {
		// Log error but continue with database deletion
		slog.Warn("Failed to delete document", "filename", analysis.Filename, "error", err)
	}

	if err := s.db.DeleteAnalysis(id); err != nil {
		return fmt.Errorf("deleting analysis from database: %w", err)
	}
	return nil
}

// GetAnalysisDocument retrieves the staged document for an analysis
func (s *Service) GetAnalysisDocument(id string) ([]byte, string, error) {
	analysis, err := s.db.GetAnalysis(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting analysis: %w", err)
	}

	data, err := s.storage.Get(analysis.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting analysis document: %w", err)
	}

	return data, analysis.ContentType, nil
}
