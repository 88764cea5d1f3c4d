package service

import (
	"context"
	"encoding/json"
	"time"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/internal/repository/specification"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/events"
	"ml-discovery-be/pkg/matcher"
	pktNats "ml-discovery-be/pkg/nats"
	"ml-discovery-be/pkg/recommend/prompt"
	"ml-discovery-be/pkg/recommend/response"
	"ml-discovery-be/pkg/store"
	"ml-discovery-be/pkg/utils"

	"github.com/google/uuid"
)

// IRecommendationGenerator is satisfied by recommend.Generator; the indirection
// keeps the pipeline testable against a deterministic backend.
type IRecommendationGenerator interface {
	Generate(ctx context.Context, promptText string) (*response.Response, string, error)
}

type IAnalysisService interface {
	Run(ctx context.Context, sessionId uuid.UUID) (*dto.RunAnalysisResponse, error)
	List(ctx context.Context, sessionId uuid.UUID) ([]*dto.AnalysisItemResponse, error)
}

type analysisService struct {
	uowFactory     unitofwork.RepositoryFactory
	matcher        *matcher.Matcher
	generator      IRecommendationGenerator
	sessions       *memory.SessionRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	maxPromptChars int
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	m *matcher.Matcher,
	generator IRecommendationGenerator,
	sessions *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	maxPromptChars int,
) IAnalysisService {
	return &analysisService{
		uowFactory:     uowFactory,
		matcher:        m,
		generator:      generator,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		logger:         log,
		maxPromptChars: maxPromptChars,
	}
}

// Per-kind JSON fragments of one structured response. The report synthesizer
// reads these back, so the shapes are shared across the two services.

type competitiveFragment struct {
	ExecutiveSummary    string                       `json:"executive_summary"`
	CompetitiveAnalysis response.CompetitiveAnalysis `json:"competitive_analysis"`
	RisksToAvoid        []string                     `json:"risks_to_avoid"`
}

type strategyFragment struct {
	Strategy           response.Strategy `json:"strategy"`
	PocRecommendations []string          `json:"poc_recommendations"`
}

type discoveryFragment struct {
	DiscoveryQuestions []string `json:"discovery_questions"`
}

type computeUpsideFragment struct {
	ComputeUpside response.ComputeUpside `json:"compute_upside"`
}

// Run executes the full pipeline for one session: gather profile and uploads,
// rank the reference knowledge, generate the structured analysis, persist all
// result kinds in a single transaction. A failed generation persists nothing;
// the caller may retry the identical request.
func (s *analysisService) Run(ctx context.Context, sessionId uuid.UUID) (*dto.RunAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	uploads, err := uow.UploadRepository().FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	if profile == nil && len(uploads) == 0 {
		return nil, apperror.NotFound("session has no profile and no uploads")
	}
	if profile == nil {
		profile = &entity.CustomerProfile{SessionId: sessionId}
	}

	documents := make([]string, len(uploads))
	for i, u := range uploads {
		documents[i] = u.NormalizedText
	}
	uploadText := utils.TruncateOldest(documents, s.maxPromptChars)

	references, err := uow.ReferenceRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := s.matcher.Rank(references, matcher.Query{
		NormalizedText: uploadText,
		Platforms:      profile.CurrentPlatforms,
		UseCases:       profile.UseCases,
		PainPoints:     profile.PainPoints,
	})
	matches := matcher.Flatten(ranked)

	s.markAnalyzing(sessionId)

	promptText := prompt.NewSectionedBuilder(profile, uploadText, matches).Build()
	parsed, raw, err := s.generator.Generate(ctx, promptText)
	if err != nil {
		s.markFailed(ctx, sessionId, err)
		return nil, err
	}

	results, err := s.buildResults(sessionId, parsed, matches)
	if err != nil {
		s.markFailed(ctx, sessionId, err)
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if err := uow.AnalysisRepository().CreateBulk(ctx, results); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.markAnalyzed(sessionId, len(results))

	if s.eventPublisher != nil {
		evt := events.NewSessionEvent(events.TypeAnalysisCompleted, sessionId.String(), map[string]interface{}{
			"result_count": len(results),
			"match_count":  len(matches),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("AnalysisService", "Failed to publish analysis event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("AnalysisService", "Analysis completed", map[string]interface{}{
		"session_id":   sessionId,
		"result_count": len(results),
		"match_count":  len(matches),
		"raw_chars":    len(raw),
	})

	items := make([]dto.AnalysisItemResponse, len(results))
	for i, r := range results {
		items[i] = toAnalysisItem(r)
	}
	return &dto.RunAnalysisResponse{
		SessionId: sessionId,
		Results:   items,
	}, nil
}

// buildResults slices the structured response into the four persisted kinds.
// Either every kind marshals or none is persisted.
func (s *analysisService) buildResults(sessionId uuid.UUID, parsed *response.Response, matches []matcher.Match) ([]*entity.AnalysisResult, error) {
	matchedIds := make([]uuid.UUID, len(matches))
	for i, m := range matches {
		matchedIds[i] = m.Record.Id
	}
	confidence := matcher.Confidence(matches)

	fragments := []struct {
		kind    string
		payload interface{}
	}{
		{entity.AnalysisKindCompetitive, competitiveFragment{
			ExecutiveSummary:    parsed.ExecutiveSummary,
			CompetitiveAnalysis: parsed.CompetitiveAnalysis,
			RisksToAvoid:        parsed.RisksToAvoid,
		}},
		{entity.AnalysisKindStrategy, strategyFragment{
			Strategy:           parsed.Strategy,
			PocRecommendations: parsed.PocRecommendations,
		}},
		{entity.AnalysisKindDiscovery, discoveryFragment{
			DiscoveryQuestions: parsed.DiscoveryQuestions,
		}},
		{entity.AnalysisKindComputeUpside, computeUpsideFragment{
			ComputeUpside: parsed.ComputeUpside,
		}},
	}

	results := make([]*entity.AnalysisResult, len(fragments))
	for i, f := range fragments {
		text, err := json.Marshal(f.payload)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindGenerationError, "marshal analysis fragment", err)
		}
		results[i] = &entity.AnalysisResult{
			SessionId:           sessionId,
			Kind:                f.kind,
			GeneratedText:       string(text),
			MatchedReferenceIds: matchedIds,
			Confidence:          confidence,
		}
	}
	return results, nil
}

func (s *analysisService) List(ctx context.Context, sessionId uuid.UUID) ([]*dto.AnalysisItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	results, err := uow.AnalysisRepository().FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AnalysisItemResponse, len(results))
	for i, r := range results {
		item := toAnalysisItem(r)
		items[i] = &item
	}
	return items, nil
}

func toAnalysisItem(r *entity.AnalysisResult) dto.AnalysisItemResponse {
	return dto.AnalysisItemResponse{
		AnalysisId:          r.Id,
		Kind:                r.Kind,
		GeneratedText:       r.GeneratedText,
		MatchedReferenceIds: r.MatchedReferenceIds,
		Confidence:          r.Confidence,
		CreatedAt:           r.CreatedAt,
	}
}

func (s *analysisService) markAnalyzing(sessionId uuid.UUID) {
	if sess, ok := s.sessions.Get(sessionId.String()); ok {
		sess.State = store.StateAnalyzing
		s.sessions.Save(sess)
	}
}

func (s *analysisService) markAnalyzed(sessionId uuid.UUID, count int) {
	if sess, ok := s.sessions.Get(sessionId.String()); ok {
		sess.State = store.StateAnalyzed
		sess.AnalysisCount += count
		sess.LastAnalysisAt = time.Now()
		sess.LastError = ""
		s.sessions.Save(sess)
	}
}

func (s *analysisService) markFailed(ctx context.Context, sessionId uuid.UUID, cause error) {
	if sess, ok := s.sessions.Get(sessionId.String()); ok {
		sess.State = store.StateProfiled
		sess.LastError = cause.Error()
		s.sessions.Save(sess)
	}
	if s.eventPublisher != nil {
		evt := events.NewSessionEvent(events.TypeAnalysisFailed, sessionId.String(), map[string]interface{}{
			"error": cause.Error(),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("AnalysisService", "Failed to publish analysis failed event", map[string]interface{}{"error": err.Error()})
		}
	}
}
