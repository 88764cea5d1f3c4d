package service

import (
	"context"
	"time"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/repository/contract"
	"ml-discovery-be/internal/repository/specification"
	"ml-discovery-be/internal/repository/unitofwork"
	"ml-discovery-be/pkg/recommend/response"

	"github.com/google/uuid"
)

// In-memory doubles for the persistence and provider boundaries. The fake
// unit of work stages bulk writes until Commit so transactional behavior is
// observable from tests.

type fakeStore struct {
	references []*entity.ReferenceRecord
	profiles   map[uuid.UUID]*entity.CustomerProfile
	uploads    []*entity.UploadRecord
	analyses   []*entity.AnalysisResult
	reports    map[uuid.UUID]*entity.Report

	analysisCreateErr error
	commitErr         error

	began      int
	committed  int
	rolledBack int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[uuid.UUID]*entity.CustomerProfile),
		reports:  make(map[uuid.UUID]*entity.Report),
	}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store           *fakeStore
	pendingAnalyses []*entity.AnalysisResult
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.store.began++
	return nil
}

func (u *fakeUow) Commit() error {
	if u.store.commitErr != nil {
		return u.store.commitErr
	}
	u.store.analyses = append(u.store.analyses, u.pendingAnalyses...)
	u.pendingAnalyses = nil
	u.store.committed++
	return nil
}

func (u *fakeUow) Rollback() error {
	if u.pendingAnalyses != nil {
		u.pendingAnalyses = nil
		u.store.rolledBack++
	}
	return nil
}

func (u *fakeUow) ReferenceRepository() contract.ReferenceRepository {
	return &fakeReferenceRepo{store: u.store}
}

func (u *fakeUow) ProfileRepository() contract.ProfileRepository {
	return &fakeProfileRepo{store: u.store}
}

func (u *fakeUow) UploadRepository() contract.UploadRepository {
	return &fakeUploadRepo{store: u.store}
}

func (u *fakeUow) AnalysisRepository() contract.AnalysisRepository {
	return &fakeAnalysisRepo{store: u.store, uow: u}
}

func (u *fakeUow) ReportRepository() contract.ReportRepository {
	return &fakeReportRepo{store: u.store}
}

type fakeReferenceRepo struct {
	store *fakeStore
}

func (r *fakeReferenceRepo) CreateBulk(ctx context.Context, records []*entity.ReferenceRecord) error {
	for _, rec := range records {
		if rec.Id == uuid.Nil {
			rec.Id = uuid.New()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now()
		}
		r.store.references = append(r.store.references, rec)
	}
	return nil
}

func (r *fakeReferenceRepo) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	for _, rec := range r.store.references {
		if rec.Id == id {
			rec.Summary = summary
			return nil
		}
	}
	return nil
}

func (r *fakeReferenceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReferenceRecord, error) {
	for _, rec := range r.store.references {
		if matchesID(specs, rec.Id) {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeReferenceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReferenceRecord, error) {
	var out []*entity.ReferenceRecord
	for _, rec := range r.store.references {
		if cat, ok := categoryFilter(specs); ok && rec.Category != cat {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeReferenceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeProfileRepo struct {
	store *fakeStore
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *entity.CustomerProfile) error {
	r.store.profiles[profile.SessionId] = profile
	return nil
}

func (r *fakeProfileRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.CustomerProfile, error) {
	return r.store.profiles[sessionId], nil
}

type fakeUploadRepo struct {
	store *fakeStore
}

func (r *fakeUploadRepo) Create(ctx context.Context, upload *entity.UploadRecord) error {
	if upload.Id == uuid.Nil {
		upload.Id = uuid.New()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now()
	}
	r.store.uploads = append(r.store.uploads, upload)
	return nil
}

func (r *fakeUploadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UploadRecord, error) {
	for _, u := range r.store.uploads {
		if matchesSession(specs, u.SessionId) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUploadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UploadRecord, error) {
	var out []*entity.UploadRecord
	for _, u := range r.store.uploads {
		if matchesSession(specs, u.SessionId) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUploadRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeAnalysisRepo struct {
	store *fakeStore
	uow   *fakeUow
}

func (r *fakeAnalysisRepo) CreateBulk(ctx context.Context, results []*entity.AnalysisResult) error {
	if r.store.analysisCreateErr != nil {
		return r.store.analysisCreateErr
	}
	now := time.Now()
	for _, res := range results {
		if res.Id == uuid.Nil {
			res.Id = uuid.New()
		}
		if res.CreatedAt.IsZero() {
			res.CreatedAt = now
		}
	}
	r.uow.pendingAnalyses = append(r.uow.pendingAnalyses, results...)
	return nil
}

func (r *fakeAnalysisRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisResult, error) {
	var latest *entity.AnalysisResult
	for _, a := range r.store.analyses {
		if !matchesSession(specs, a.SessionId) {
			continue
		}
		if kind, ok := kindFilter(specs); ok && a.Kind != kind {
			continue
		}
		if latest == nil || !a.CreatedAt.Before(latest.CreatedAt) {
			latest = a
		}
	}
	return latest, nil
}

func (r *fakeAnalysisRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisResult, error) {
	var out []*entity.AnalysisResult
	for _, a := range r.store.analyses {
		if matchesSession(specs, a.SessionId) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnalysisRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeReportRepo struct {
	store *fakeStore
}

func (r *fakeReportRepo) Upsert(ctx context.Context, report *entity.Report) error {
	if existing, ok := r.store.reports[report.SessionId]; ok {
		report.Id = existing.Id
		report.CreatedAt = existing.CreatedAt
	} else if report.Id == uuid.Nil {
		report.Id = uuid.New()
		report.CreatedAt = time.Now()
	}
	r.store.reports[report.SessionId] = report
	return nil
}

func (r *fakeReportRepo) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.Report, error) {
	return r.store.reports[sessionId], nil
}

func matchesSession(specs []specification.Specification, sessionId uuid.UUID) bool {
	for _, s := range specs {
		if bySession, ok := s.(specification.BySession); ok {
			return bySession.SessionID == sessionId
		}
	}
	return true
}

func matchesID(specs []specification.Specification, id uuid.UUID) bool {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return byID.ID == id
		}
	}
	return true
}

func kindFilter(specs []specification.Specification) (string, bool) {
	for _, s := range specs {
		if byKind, ok := s.(specification.ByKind); ok {
			return byKind.Kind, true
		}
	}
	return "", false
}

func categoryFilter(specs []specification.Specification) (string, bool) {
	for _, s := range specs {
		if byCategory, ok := s.(specification.ByCategory); ok {
			return byCategory.Category, true
		}
	}
	return "", false
}

// fakeParser stands in for the document extraction backend.
type fakeParser struct {
	stagedPaths      []string
	stagedBytes      [][]byte
	parseResult      string
	parseErr         error
	transcribeResult string
	transcribeErr    error
}

func (p *fakeParser) StageFile(ctx context.Context, relativePath string, content []byte) error {
	p.stagedPaths = append(p.stagedPaths, relativePath)
	p.stagedBytes = append(p.stagedBytes, content)
	return nil
}

func (p *fakeParser) ParseDocument(ctx context.Context, relativePath string) (string, error) {
	return p.parseResult, p.parseErr
}

func (p *fakeParser) TranscribeAudio(ctx context.Context, relativePath string) (string, error) {
	return p.transcribeResult, p.transcribeErr
}

// fakeGenerator stands in for the recommendation backend.
type fakeGenerator struct {
	resp    *response.Response
	raw     string
	err     error
	calls   int
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, promptText string) (*response.Response, string, error) {
	g.calls++
	g.prompts = append(g.prompts, promptText)
	if g.err != nil {
		return nil, "", g.err
	}
	return g.resp, g.raw, nil
}

type fakeMailer struct {
	to       string
	company  string
	sections map[string]string
	sent     int
	err      error
}

func (m *fakeMailer) SendReport(toEmail, companyName string, sections map[string]string) error {
	if m.err != nil {
		return m.err
	}
	m.to = toEmail
	m.company = companyName
	m.sections = sections
	m.sent++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func validGeneratorResponse() *response.Response {
	return &response.Response{
		ExecutiveSummary: "Customer runs ML on a standalone Spark platform with growing costs.",
		CompetitiveAnalysis: response.CompetitiveAnalysis{
			CurrentPlatforms:    []string{"Spark"},
			SnowflakeAdvantages: []string{"No data movement"},
			CompetitiveRisks:    []string{"Entrenched notebooks"},
		},
		ComputeUpside: response.ComputeUpside{
			EstimatedWorkloads:       "Feature engineering, batch scoring",
			PotentialComputeIncrease: "Medium",
			RevenueOpportunity:       "Consolidated pipeline spend",
		},
		Strategy: response.Strategy{
			ShortTerm: []string{"Run a Snowpark POC"},
			LongTerm:  []string{"Migrate feature pipelines"},
		},
		DiscoveryQuestions: []string{"What does the nightly export cost?"},
		PocRecommendations: []string{"Port one forecasting pipeline"},
		RisksToAvoid:       []string{"Do not lead with training hardware"},
	}
}
