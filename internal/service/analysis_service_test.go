package service

import (
	"context"
	"encoding/json"
	"testing"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/pkg/matcher"
	"ml-discovery-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newAnalysisFixture(gen *fakeGenerator) (*fakeStore, *memory.SessionRepository, IAnalysisService) {
	st := newFakeStore()
	sessions := memory.NewSessionRepository()
	svc := NewAnalysisService(&fakeFactory{store: st}, matcher.New(3), gen, sessions, nil, nopLogger{}, 12000)
	return st, sessions, svc
}

func seedProfileAndUpload(st *fakeStore, sessionId uuid.UUID) {
	st.profiles[sessionId] = &entity.CustomerProfile{
		SessionId:        sessionId,
		CompanyName:      "Acme Retail",
		CurrentPlatforms: []string{"Spark"},
		UseCases:         []string{"forecasting"},
		PainPoints:       []string{"egress cost"},
	}
	st.uploads = append(st.uploads, &entity.UploadRecord{
		Id:             uuid.New(),
		SessionId:      sessionId,
		SourceKind:     entity.SourceKindText,
		NormalizedText: "They run Spark for demand forecasting and complain about egress cost.",
	})
}

func seedReferences(st *fakeStore) {
	st.references = append(st.references,
		&entity.ReferenceRecord{
			Id:       uuid.New(),
			Category: entity.ReferenceCategoryCustomerStory,
			Title:    "Retailer on Snowpark",
			BodyText: "Retailer moved forecasting off Spark.",
			Tags:     []string{"spark", "forecasting"},
		},
		&entity.ReferenceRecord{
			Id:       uuid.New(),
			Category: entity.ReferenceCategoryCompetitiveNote,
			Title:    "Spark positioning",
			BodyText: "Countering standalone Spark platforms.",
			Tags:     []string{"spark"},
		},
		&entity.ReferenceRecord{
			Id:       uuid.New(),
			Category: entity.ReferenceCategoryCustomerStory,
			Title:    "Unrelated IoT story",
			BodyText: "Sensor telemetry pipeline.",
			Tags:     []string{"iot"},
		},
	)
}

func TestRunRequiresProfileOrUploads(t *testing.T) {
	gen := &fakeGenerator{resp: validGeneratorResponse()}
	st, _, svc := newAnalysisFixture(gen)

	_, err := svc.Run(context.Background(), uuid.New())

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Zero(t, gen.calls, "generation must not run without input")
	assert.Empty(t, st.analyses)
}

func TestRunPersistsEveryKindTransactionally(t *testing.T) {
	gen := &fakeGenerator{resp: validGeneratorResponse(), raw: "{...}"}
	st, sessions, svc := newAnalysisFixture(gen)
	sessionId := uuid.New()
	sessions.Save(&store.Session{ID: sessionId.String(), State: store.StateProfiled})
	seedProfileAndUpload(st, sessionId)
	seedReferences(st)

	resp, err := svc.Run(context.Background(), sessionId)

	assert.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, st.began)
	assert.Equal(t, 1, st.committed)

	if assert.Len(t, st.analyses, len(entity.AnalysisKinds)) {
		for i, kind := range entity.AnalysisKinds {
			assert.Equal(t, kind, st.analyses[i].Kind)
		}
		// One generation call grounds all kinds identically.
		first := st.analyses[0]
		for _, a := range st.analyses[1:] {
			assert.Equal(t, first.Confidence, a.Confidence)
			assert.Equal(t, first.MatchedReferenceIds, a.MatchedReferenceIds)
		}
		assert.NotEmpty(t, first.MatchedReferenceIds)
		assert.Greater(t, first.Confidence, 0.4)
	}
	assert.Len(t, resp.Results, len(entity.AnalysisKinds))

	sess, _ := sessions.Get(sessionId.String())
	assert.Equal(t, store.StateAnalyzed, sess.State)
	assert.Equal(t, len(entity.AnalysisKinds), sess.AnalysisCount)
}

func TestRunFragmentsRoundTrip(t *testing.T) {
	gen := &fakeGenerator{resp: validGeneratorResponse()}
	st, _, svc := newAnalysisFixture(gen)
	sessionId := uuid.New()
	seedProfileAndUpload(st, sessionId)

	_, err := svc.Run(context.Background(), sessionId)
	assert.NoError(t, err)

	byKind := make(map[string]string)
	for _, a := range st.analyses {
		byKind[a.Kind] = a.GeneratedText
	}

	var competitive competitiveFragment
	assert.NoError(t, json.Unmarshal([]byte(byKind[entity.AnalysisKindCompetitive]), &competitive))
	assert.Equal(t, gen.resp.ExecutiveSummary, competitive.ExecutiveSummary)
	assert.Equal(t, gen.resp.RisksToAvoid, competitive.RisksToAvoid)

	var discovery discoveryFragment
	assert.NoError(t, json.Unmarshal([]byte(byKind[entity.AnalysisKindDiscovery]), &discovery))
	assert.Equal(t, gen.resp.DiscoveryQuestions, discovery.DiscoveryQuestions)
}

func TestRunGenerationFailurePersistsNothing(t *testing.T) {
	gen := &fakeGenerator{err: apperror.New(apperror.KindGenerationTimeout, "generation timed out")}
	st, sessions, svc := newAnalysisFixture(gen)
	sessionId := uuid.New()
	sessions.Save(&store.Session{ID: sessionId.String(), State: store.StateProfiled})
	seedProfileAndUpload(st, sessionId)

	_, err := svc.Run(context.Background(), sessionId)

	assert.Equal(t, apperror.KindGenerationTimeout, apperror.KindOf(err))
	assert.True(t, apperror.Retryable(err))
	assert.Empty(t, st.analyses)
	assert.Zero(t, st.committed)

	sess, _ := sessions.Get(sessionId.String())
	assert.Equal(t, store.StateProfiled, sess.State)
	assert.NotEmpty(t, sess.LastError)
}

func TestRunPersistFailureRollsBack(t *testing.T) {
	gen := &fakeGenerator{resp: validGeneratorResponse()}
	st, _, svc := newAnalysisFixture(gen)
	sessionId := uuid.New()
	seedProfileAndUpload(st, sessionId)
	st.analysisCreateErr = assert.AnError

	_, err := svc.Run(context.Background(), sessionId)

	assert.Error(t, err)
	assert.Empty(t, st.analyses)
	assert.Zero(t, st.committed)
}

func TestRunWithUploadsOnlyUsesEmptyProfile(t *testing.T) {
	gen := &fakeGenerator{resp: validGeneratorResponse()}
	st, _, svc := newAnalysisFixture(gen)
	sessionId := uuid.New()
	st.uploads = append(st.uploads, &entity.UploadRecord{
		Id:             uuid.New(),
		SessionId:      sessionId,
		SourceKind:     entity.SourceKindText,
		NormalizedText: "Raw discovery notes without a profile.",
	})

	_, err := svc.Run(context.Background(), sessionId)

	assert.NoError(t, err)
	assert.Len(t, st.analyses, len(entity.AnalysisKinds))
}

func TestRunWithNoMatchesUsesFloorConfidence(t *testing.T) {
	gen := &fakeGenerator{resp: validGeneratorResponse()}
	st, _, svc := newAnalysisFixture(gen)
	sessionId := uuid.New()
	seedProfileAndUpload(st, sessionId)
	// No reference knowledge loaded at all.

	_, err := svc.Run(context.Background(), sessionId)

	assert.NoError(t, err)
	if assert.NotEmpty(t, st.analyses) {
		assert.Equal(t, 0.4, st.analyses[0].Confidence)
		assert.Empty(t, st.analyses[0].MatchedReferenceIds)
	}
}

func TestRunBuildsIdenticalPromptForIdenticalInput(t *testing.T) {
	gen1 := &fakeGenerator{resp: validGeneratorResponse()}
	st1, _, svc1 := newAnalysisFixture(gen1)
	gen2 := &fakeGenerator{resp: validGeneratorResponse()}
	st2, _, svc2 := newAnalysisFixture(gen2)

	sessionId := uuid.New()
	for _, st := range []*fakeStore{st1, st2} {
		seedProfileAndUpload(st, sessionId)
		seedReferences(st)
		// Matching ids and timestamps keep the ranking identical.
		for i := range st.references {
			st.references[i].Id = st1.references[i].Id
			st.references[i].CreatedAt = st1.references[i].CreatedAt
		}
	}

	_, err := svc1.Run(context.Background(), sessionId)
	assert.NoError(t, err)
	_, err = svc2.Run(context.Background(), sessionId)
	assert.NoError(t, err)

	assert.Equal(t, gen1.prompts, gen2.prompts)
}

func TestListReturnsSessionResults(t *testing.T) {
	gen := &fakeGenerator{resp: validGeneratorResponse()}
	st, _, svc := newAnalysisFixture(gen)
	mine, theirs := uuid.New(), uuid.New()
	st.analyses = append(st.analyses,
		&entity.AnalysisResult{Id: uuid.New(), SessionId: mine, Kind: entity.AnalysisKindCompetitive},
		&entity.AnalysisResult{Id: uuid.New(), SessionId: theirs, Kind: entity.AnalysisKindStrategy},
	)

	items, err := svc.List(context.Background(), mine)

	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, entity.AnalysisKindCompetitive, items[0].Kind)
	}
}
