package service

import (
	"context"
	"encoding/json"
	"strings"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/internal/pkg/logger"
	"ml-discovery-be/internal/pkg/mailer"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/internal/repository/specification"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/events"
	pktNats "ml-discovery-be/pkg/nats"
	"ml-discovery-be/pkg/recommend/response"
	"ml-discovery-be/pkg/store"

	"github.com/google/uuid"
)

type IReportService interface {
	Synthesize(ctx context.Context, sessionId uuid.UUID) (*dto.ReportResponse, error)
	Get(ctx context.Context, sessionId uuid.UUID) (*dto.ReportResponse, error)
	Email(ctx context.Context, sessionId uuid.UUID, req *dto.EmailReportRequest) error
}

type reportService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	sessions       *memory.SessionRepository
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	sessions *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IReportService {
	return &reportService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Synthesize builds the session report from the latest analysis result of
// each kind. Pure read plus one upsert: re-synthesizing after a new analysis
// replaces the report, it never creates a second one.
func (s *reportService) Synthesize(ctx context.Context, sessionId uuid.UUID) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("no profile for session")
	}

	latest := make(map[string]*entity.AnalysisResult, len(entity.AnalysisKinds))
	for _, kind := range entity.AnalysisKinds {
		result, err := uow.AnalysisRepository().FindOne(ctx,
			specification.BySession{SessionID: sessionId},
			specification.ByKind{Kind: kind},
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, apperror.NotFound("no " + kind + " analysis for session")
		}
		latest[kind] = result
	}

	report, err := assembleReport(sessionId, latest)
	if err != nil {
		return nil, err
	}

	if err := uow.ReportRepository().Upsert(ctx, report); err != nil {
		return nil, err
	}

	if sess, ok := s.sessions.Get(sessionId.String()); ok {
		sess.State = store.StateReported
		s.sessions.Save(sess)
	}

	if s.eventPublisher != nil {
		evt := events.NewSessionEvent(events.TypeReportSynthesized, sessionId.String(), map[string]interface{}{
			"report_id": report.Id,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("ReportService", "Failed to publish report event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.logger.Info("ReportService", "Report synthesized", map[string]interface{}{
		"session_id": sessionId,
		"report_id":  report.Id,
	})
	return toReportResponse(report), nil
}

func (s *reportService) Get(ctx context.Context, sessionId uuid.UUID) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	report, err := uow.ReportRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperror.NotFound("no report for session")
	}
	return toReportResponse(report), nil
}

func (s *reportService) Email(ctx context.Context, sessionId uuid.UUID, req *dto.EmailReportRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return err
	}
	if report == nil {
		return apperror.NotFound("no report for session")
	}
	profile, err := uow.ProfileRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperror.NotFound("no profile for session")
	}

	sections := map[string]string{
		"Executive Summary":     report.ExecutiveSummary,
		"Competitive Analysis":  report.CompetitiveAnalysis,
		"Strategy (Short Term)": report.StrategyShortTerm,
		"Strategy (Long Term)":  report.StrategyLongTerm,
		"Discovery Questions":   bulletList(report.DiscoveryQuestions),
		"POC Recommendations":   bulletList(report.PocRecommendations),
		"Risks":                 bulletList(report.Risks),
	}

	if err := s.emailService.SendReport(req.ToEmail, profile.CompanyName, sections); err != nil {
		return err
	}

	s.logger.Info("ReportService", "Report emailed", map[string]interface{}{
		"session_id": sessionId,
		"to":         req.ToEmail,
	})
	return nil
}

// assembleReport decodes the per-kind JSON fragments written by the analysis
// pipeline back into report columns.
func assembleReport(sessionId uuid.UUID, latest map[string]*entity.AnalysisResult) (*entity.Report, error) {
	var competitive competitiveFragment
	if err := json.Unmarshal([]byte(latest[entity.AnalysisKindCompetitive].GeneratedText), &competitive); err != nil {
		return nil, apperror.Wrap(apperror.KindParseError, "decode competitive analysis", err)
	}
	var strategy strategyFragment
	if err := json.Unmarshal([]byte(latest[entity.AnalysisKindStrategy].GeneratedText), &strategy); err != nil {
		return nil, apperror.Wrap(apperror.KindParseError, "decode strategy analysis", err)
	}
	var discovery discoveryFragment
	if err := json.Unmarshal([]byte(latest[entity.AnalysisKindDiscovery].GeneratedText), &discovery); err != nil {
		return nil, apperror.Wrap(apperror.KindParseError, "decode discovery analysis", err)
	}
	var compute computeUpsideFragment
	if err := json.Unmarshal([]byte(latest[entity.AnalysisKindComputeUpside].GeneratedText), &compute); err != nil {
		return nil, apperror.Wrap(apperror.KindParseError, "decode compute upside analysis", err)
	}

	return &entity.Report{
		SessionId:           sessionId,
		ExecutiveSummary:    competitive.ExecutiveSummary,
		CompetitiveAnalysis: renderCompetitiveAnalysis(competitive.CompetitiveAnalysis, compute.ComputeUpside),
		StrategyShortTerm:   bulletList(strategy.Strategy.ShortTerm),
		StrategyLongTerm:    bulletList(strategy.Strategy.LongTerm),
		DiscoveryQuestions:  discovery.DiscoveryQuestions,
		PocRecommendations:  strategy.PocRecommendations,
		Risks:               competitive.RisksToAvoid,
	}, nil
}

func renderCompetitiveAnalysis(ca response.CompetitiveAnalysis, cu response.ComputeUpside) string {
	var b strings.Builder
	if len(ca.CurrentPlatforms) > 0 {
		b.WriteString("Current platforms:\n" + bulletList(ca.CurrentPlatforms) + "\n\n")
	}
	if len(ca.SnowflakeAdvantages) > 0 {
		b.WriteString("Snowflake advantages:\n" + bulletList(ca.SnowflakeAdvantages) + "\n\n")
	}
	if len(ca.CompetitiveRisks) > 0 {
		b.WriteString("Competitive risks:\n" + bulletList(ca.CompetitiveRisks) + "\n\n")
	}
	if cu.EstimatedWorkloads != "" {
		b.WriteString("Estimated workloads: " + cu.EstimatedWorkloads + "\n")
	}
	if cu.PotentialComputeIncrease != "" {
		b.WriteString("Potential compute increase: " + cu.PotentialComputeIncrease + "\n")
	}
	if cu.RevenueOpportunity != "" {
		b.WriteString("Revenue opportunity: " + cu.RevenueOpportunity + "\n")
	}
	return strings.TrimSpace(b.String())
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return "- " + strings.Join(items, "\n- ")
}

func toReportResponse(report *entity.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ReportId:            report.Id,
		SessionId:           report.SessionId,
		ExecutiveSummary:    report.ExecutiveSummary,
		CompetitiveAnalysis: report.CompetitiveAnalysis,
		StrategyShortTerm:   report.StrategyShortTerm,
		StrategyLongTerm:    report.StrategyLongTerm,
		DiscoveryQuestions:  report.DiscoveryQuestions,
		PocRecommendations:  report.PocRecommendations,
		Risks:               report.Risks,
		CreatedAt:           report.CreatedAt,
		UpdatedAt:           report.UpdatedAt,
	}
}
