package nlp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/siherrmann/nercheck/helper"
)

// Hugot is a Capability backed by hugot token classification pipelines on the pure Go backend
type Hugot struct {
	language string
	log      *slog.Logger

	mu              sync.Mutex
	loaded          bool
	closed          bool
	defaultPipeline Pipeline
	loadErr         error
}

// NewHugot creates a capability whose documents are analysed with the model of language.
// The default model is loaded on the first NewDocument call.
func NewHugot(language string, logger *slog.Logger) *Hugot {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Hugot{
		language: language,
		log:      logger,
	}
}

// Language returns the language code documents are analysed in
func (h *Hugot) Language() string {
	return h.language
}

// NewDocument analyses text with the default pipeline.
// It fails with ErrClosed once Close was called.
func (h *Hugot) NewDocument(ctx context.Context, text string) (*Document, error) {
	pipeline, err := h.documentPipeline()
	if err != nil {
		return nil, err
	}

	analysis, err := pipeline.Analyze(ctx, text)
	if err != nil {
		return nil, helper.NewError("analyze document", err)
	}

	return &Document{
		Text:     text,
		Analysis: analysis,
	}, nil
}

// LoadModel prepares the model of language and starts a new hugot session for it
func (h *Hugot) LoadModel(language string) (Pipeline, error) {
	spec, err := LookupModel(language)
	if err != nil {
		return nil, err
	}

	// Prepare model (download if needed)
	modelPath, err := helper.PrepareModel(spec.Name, spec.OnnxFilePath)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "ner-pipeline-" + normalizeLanguage(language),
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	h.log.Debug("Loaded NER model", slog.String("language", language), slog.String("model", spec.Name))

	return &hugotPipeline{
		language: normalizeLanguage(language),
		session:  session,
		pipeline: nerPipeline,
	}, nil
}

// documentPipeline loads the default pipeline on first use. A failed load is not retried.
func (h *Hugot) documentPipeline() (Pipeline, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, helper.NewError("load default model", ErrClosed)
	}
	if !h.loaded {
		h.defaultPipeline, h.loadErr = h.LoadModel(h.language)
		h.loaded = true
	}
	if h.loadErr != nil {
		return nil, helper.NewError("load default model", h.loadErr)
	}
	return h.defaultPipeline, nil
}

// Close releases the default pipeline if it was loaded. The capability cannot build documents afterwards.
func (h *Hugot) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	if h.defaultPipeline == nil {
		return nil
	}
	err := h.defaultPipeline.Close()
	h.defaultPipeline = nil
	return err
}

type hugotPipeline struct {
	language string
	session  *hugot.Session
	pipeline *pipelines.TokenClassificationPipeline
}

func (p *hugotPipeline) Analyze(ctx context.Context, text string) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Text:     text,
		Language: p.language,
	}
	if strings.TrimSpace(text) == "" {
		return analysis, nil
	}

	result, err := p.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to run NER: %w", err)
	}
	if len(result.Entities) == 0 {
		return analysis, nil
	}

	for _, entity := range result.Entities[0] {
		analysis.Spans = append(analysis.Spans, Span{
			Word:  entity.Word,
			Label: entity.Entity,
			Start: int(entity.Start),
			End:   int(entity.End),
			Score: float64(entity.Score),
		})
	}

	return analysis, nil
}

func (p *hugotPipeline) Close() error {
	if p.session == nil {
		return nil
	}
	err := p.session.Destroy()
	p.session = nil
	return err
}
