package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/pkg/llm"
)

const fakeResponse = `{
  "executive_summary": "Strong fit.",
  "competitive_analysis": {"current_platforms": ["SageMaker"], "snowflake_advantages": ["no egress"], "competitive_risks": ["tooling"]},
  "compute_upside": {"estimated_workloads": "training", "potential_compute_increase": "40%", "revenue_opportunity": "high"},
  "strategy": {"short_term": ["POC"], "long_term": ["migration"]},
  "discovery_questions": ["retraining cadence?"],
  "poc_recommendations": ["churn model"],
  "risks_to_avoid": ["overpromising"]
}`

type fakeProvider struct {
	output string
	err    error
	delay  time.Duration
	calls  int
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestGenerateParsesStructuredResponse(t *testing.T) {
	g := NewGenerator(&fakeProvider{output: fakeResponse}, 0.2, time.Second)

	resp, raw, err := g.Generate(context.Background(), "analyze")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ExecutiveSummary != "Strong fit." {
		t.Errorf("unexpected summary: %q", resp.ExecutiveSummary)
	}
	if raw != fakeResponse {
		t.Error("raw output should be returned verbatim for auditing")
	}
}

func TestGenerateIsDeterministicAgainstDeterministicBackend(t *testing.T) {
	g := NewGenerator(&fakeProvider{output: fakeResponse}, 0, time.Second)

	first, _, err := g.Generate(context.Background(), "same prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := g.Generate(context.Background(), "same prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical prompts against a deterministic backend must parse identically")
	}
}

func TestGenerateMapsDeadlineToTimeout(t *testing.T) {
	g := NewGenerator(&fakeProvider{output: fakeResponse, delay: 200 * time.Millisecond}, 0.2, 10*time.Millisecond)

	_, _, err := g.Generate(context.Background(), "analyze")
	if err == nil {
		t.Fatal("expected an error")
	}
	if apperror.KindOf(err) != apperror.KindGenerationTimeout {
		t.Errorf("expected timeout kind, got %v", apperror.KindOf(err))
	}
	if !apperror.Retryable(err) {
		t.Error("timeouts must be retryable")
	}
}

func TestGenerateWrapsBackendErrors(t *testing.T) {
	g := NewGenerator(&fakeProvider{err: errors.New("boom")}, 0.2, time.Second)

	_, _, err := g.Generate(context.Background(), "analyze")
	if apperror.KindOf(err) != apperror.KindGenerationError {
		t.Errorf("expected generation error kind, got %v", apperror.KindOf(err))
	}
}

func TestGeneratePreservesProviderErrorKinds(t *testing.T) {
	rateLimited := apperror.New(apperror.KindRateLimited, "throttled")
	g := NewGenerator(&fakeProvider{err: rateLimited}, 0.2, time.Second)

	_, _, err := g.Generate(context.Background(), "analyze")
	if apperror.KindOf(err) != apperror.KindRateLimited {
		t.Errorf("expected rate limited kind, got %v", apperror.KindOf(err))
	}
}

func TestGenerateRejectsUnparseableOutput(t *testing.T) {
	provider := &fakeProvider{output: "not json at all"}
	g := NewGenerator(provider, 0.2, time.Second)

	_, _, err := g.Generate(context.Background(), "analyze")
	if apperror.KindOf(err) != apperror.KindGenerationError {
		t.Errorf("expected generation error kind, got %v", apperror.KindOf(err))
	}
	if provider.calls != 1 {
		t.Errorf("the generator must never retry on its own, got %d calls", provider.calls)
	}
}
