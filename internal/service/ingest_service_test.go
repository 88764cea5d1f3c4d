package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"ml-discovery-be/internal/dto"
	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/internal/repository/memory"
	"ml-discovery-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newIngestFixture() (*fakeStore, *fakeParser, *memory.SessionRepository, IIngestService) {
	st := newFakeStore()
	parser := &fakeParser{}
	sessions := memory.NewSessionRepository()
	svc := NewIngestService(&fakeFactory{store: st}, parser, sessions, nil, nopLogger{})
	return st, parser, sessions, svc
}

func TestIngestRejectsUnknownSourceKind(t *testing.T) {
	st, parser, _, svc := newIngestFixture()

	_, err := svc.Ingest(context.Background(), uuid.New(), &dto.IngestUploadRequest{
		SourceKind: "xlsx",
		Content:    "whatever",
	})

	assert.Error(t, err)
	assert.Equal(t, apperror.KindUnsupportedFormat, apperror.KindOf(err))
	assert.Empty(t, st.uploads)
	assert.Empty(t, parser.stagedPaths)
}

func TestIngestRejectsBlankText(t *testing.T) {
	st, _, _, svc := newIngestFixture()

	_, err := svc.Ingest(context.Background(), uuid.New(), &dto.IngestUploadRequest{
		SourceKind: entity.SourceKindText,
		Content:    "   \n\t  ",
	})

	assert.Equal(t, apperror.KindEmptyContent, apperror.KindOf(err))
	assert.Empty(t, st.uploads)
}

func TestIngestTextPassesThroughUnchanged(t *testing.T) {
	st, parser, sessions, svc := newIngestFixture()
	sessionId := uuid.New()
	sessions.Save(&store.Session{ID: sessionId.String(), State: store.StateProfiled})

	content := "We run nightly Spark jobs for churn scoring."
	resp, err := svc.Ingest(context.Background(), sessionId, &dto.IngestUploadRequest{
		SourceKind: entity.SourceKindText,
		FileName:   "notes.txt",
		Content:    content,
	})

	assert.NoError(t, err)
	assert.Equal(t, content, resp.NormalizedText)
	assert.Empty(t, parser.stagedPaths, "text must not hit the extraction backend")

	if assert.Len(t, st.uploads, 1) {
		assert.Equal(t, content, st.uploads[0].NormalizedText)
		assert.Equal(t, content, st.uploads[0].RawContent)
	}

	sess, ok := sessions.Get(sessionId.String())
	assert.True(t, ok)
	assert.Equal(t, 1, sess.UploadCount)
}

func TestIngestRejectsInvalidBase64(t *testing.T) {
	st, parser, _, svc := newIngestFixture()

	_, err := svc.Ingest(context.Background(), uuid.New(), &dto.IngestUploadRequest{
		SourceKind: entity.SourceKindPDF,
		FileName:   "deck.pdf",
		Content:    "not!!base64%%",
	})

	assert.Equal(t, apperror.KindParseError, apperror.KindOf(err))
	assert.Empty(t, parser.stagedPaths)
	assert.Empty(t, st.uploads)
}

func TestIngestRejectsEmptyFile(t *testing.T) {
	_, parser, _, svc := newIngestFixture()

	_, err := svc.Ingest(context.Background(), uuid.New(), &dto.IngestUploadRequest{
		SourceKind: entity.SourceKindPDF,
		FileName:   "empty.pdf",
		Content:    "",
	})

	assert.Equal(t, apperror.KindEmptyContent, apperror.KindOf(err))
	assert.Empty(t, parser.stagedPaths)
}

func TestIngestDocumentStagedAndParsed(t *testing.T) {
	st, parser, _, svc := newIngestFixture()
	parser.parseResult = "Extracted discovery notes."
	sessionId := uuid.New()

	raw := []byte("%PDF-1.7 fake bytes")
	resp, err := svc.Ingest(context.Background(), sessionId, &dto.IngestUploadRequest{
		SourceKind: entity.SourceKindPDF,
		FileName:   "Q3 Discovery Deck.pdf",
		Content:    base64.StdEncoding.EncodeToString(raw),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Extracted discovery notes.", resp.NormalizedText)

	if assert.Len(t, parser.stagedPaths, 1) {
		path := parser.stagedPaths[0]
		assert.True(t, strings.HasPrefix(path, sessionId.String()+"/"), "stage path %q must be session scoped", path)
		assert.True(t, strings.HasSuffix(path, "_Q3_Discovery_Deck.pdf"), "filename in %q must be sanitized", path)
		assert.Equal(t, raw, parser.stagedBytes[0])
	}
	if assert.Len(t, st.uploads, 1) {
		assert.Equal(t, "Extracted discovery notes.", st.uploads[0].NormalizedText)
	}
}

func TestIngestAudioUsesTranscription(t *testing.T) {
	_, parser, _, svc := newIngestFixture()
	parser.parseResult = "should not be used"
	parser.transcribeResult = "Customer call transcript."

	resp, err := svc.Ingest(context.Background(), uuid.New(), &dto.IngestUploadRequest{
		SourceKind: entity.SourceKindAudio,
		FileName:   "call.mp3",
		Content:    base64.StdEncoding.EncodeToString([]byte("audio-bytes")),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Customer call transcript.", resp.NormalizedText)
}

func TestIngestParserFailurePersistsNothing(t *testing.T) {
	st, parser, _, svc := newIngestFixture()
	parser.parseErr = apperror.New(apperror.KindParseError, "extraction produced no text")

	_, err := svc.Ingest(context.Background(), uuid.New(), &dto.IngestUploadRequest{
		SourceKind: entity.SourceKindDocx,
		FileName:   "notes.docx",
		Content:    base64.StdEncoding.EncodeToString([]byte("docx-bytes")),
	})

	assert.Equal(t, apperror.KindParseError, apperror.KindOf(err))
	assert.Empty(t, st.uploads)
}

func TestListReturnsOnlySessionUploads(t *testing.T) {
	st, _, _, svc := newIngestFixture()
	mine, theirs := uuid.New(), uuid.New()
	st.uploads = append(st.uploads,
		&entity.UploadRecord{Id: uuid.New(), SessionId: mine, SourceKind: entity.SourceKindText, NormalizedText: "a"},
		&entity.UploadRecord{Id: uuid.New(), SessionId: theirs, SourceKind: entity.SourceKindText, NormalizedText: "b"},
		&entity.UploadRecord{Id: uuid.New(), SessionId: mine, SourceKind: entity.SourceKindText, NormalizedText: "c"},
	)

	items, err := svc.List(context.Background(), mine)

	assert.NoError(t, err)
	if assert.Len(t, items, 2) {
		assert.Equal(t, "a", items[0].NormalizedText)
		assert.Equal(t, "c", items[1].NormalizedText)
	}
}
