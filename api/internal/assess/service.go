package assess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"claims-assistant/api/internal/fraud"
	"claims-assistant/api/internal/imagex"
	"claims-assistant/api/internal/store"
	"claims-assistant/api/internal/util"
	"claims-assistant/api/internal/vision"
)

var (
	ErrInvalidImage   = errors.New("invalid image")
	ErrFraudSuspected = errors.New("potential fraud detected")
)

// Options controls one assessment request.
type Options struct {
	ChatID int64  // messaging-channel chat, 0 for plain HTTP
	Source string // "http" | "telegram" | "whatsapp"

	SkipFraudCheck bool
	// BlockOnFraud rejects flagged images instead of only logging. The
	// HTTP API blocks; the chat channels process anyway and rely on the
	// fraud_analysis fields in the reply.
	BlockOnFraud bool
}

// Service runs the full assessment pipeline: validate, fraud heuristics,
// downscale, vision call, reconcile, persist.
type Service struct {
	Engines *vision.Manager
	Repo    *store.AssessmentRepo // optional
}

func NewService(engines *vision.Manager, repo *store.AssessmentRepo) *Service {
	return &Service{Engines: engines, Repo: repo}
}

// AssessDamage processes one image and returns a reconciled document.
func (s *Service) AssessDamage(ctx context.Context, image []byte, opt Options) (*Document, error) {
	if ok, reason := imagex.Validate(image); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, reason)
	}

	var hints vision.Hints
	if opt.SkipFraudCheck {
		log.Printf("assess: fraud detection skipped (source=%s)", opt.Source)
	} else if flagged, reason := fraud.Check(image); flagged {
		log.Printf("assess: potential fraud: %s (source=%s)", reason, opt.Source)
		if opt.BlockOnFraud {
			return nil, fmt.Errorf("%w: %s", ErrFraudSuspected, reason)
		}
		hints = vision.Hints{FraudSuspected: true, FraudReason: reason}
	}

	image = imagex.ResizeIfNeeded(image, imagex.MaxUploadBytes)

	engine := s.Engines.Get(opt.ChatID)
	raw, err := engine.AnalyzeDamage(ctx, image, hints)
	if err != nil {
		return nil, fmt.Errorf("vision engine %s: %w", engine.Name(), err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("vision engine %s: %w", engine.Name(), err)
	}
	Reconcile(doc)

	if s.Repo != nil {
		s.save(ctx, image, engine, doc, opt)
	}
	return doc, nil
}

// save is best effort; a history failure never fails the assessment.
func (s *Service) save(ctx context.Context, image []byte, engine vision.Engine, doc *Document, opt Options) {
	js, err := json.Marshal(doc)
	if err != nil {
		log.Printf("assess: marshal for history: %v", err)
		return
	}
	row := store.AssessmentRow{
		ChatID:    opt.ChatID,
		Source:    opt.Source,
		ImageHash: util.SHA256Hex(image),
		Engine:    engine.Name(),
		Model:     engine.GetModel(),
		Result:    js,
	}
	if err := s.Repo.Insert(ctx, row); err != nil {
		log.Printf("assess: history insert: %v", err)
	}
}
