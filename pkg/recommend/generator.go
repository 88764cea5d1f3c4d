package recommend

import (
	"context"
	"errors"
	"time"

	"ml-discovery-be/internal/pkg/apperror"
	"ml-discovery-be/pkg/llm"
	"ml-discovery-be/pkg/recommend/response"
)

// Generator wraps the model call with the fixed low-randomness setting and
// the generation timeout, then parses the structured response. Failures are
// always whole: either a complete Response comes back or an error does.
type Generator struct {
	provider    llm.LLMProvider
	temperature float64
	timeout     time.Duration
}

func NewGenerator(provider llm.LLMProvider, temperature float64, timeout time.Duration) *Generator {
	return &Generator{
		provider:    provider,
		temperature: temperature,
		timeout:     timeout,
	}
}

// Generate runs one completion and returns the parsed response plus the raw
// model output for auditing. The system never retries on its own; the caller
// may re-issue the identical request.
func (g *Generator) Generate(ctx context.Context, prompt string) (*response.Response, string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.provider.Generate(ctx, prompt,
		llm.WithTemperature(g.temperature),
		llm.WithMaxTokens(2000),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, "", apperror.Wrap(apperror.KindGenerationTimeout, "generation exceeded deadline", err)
		}
		if apperror.KindOf(err) != apperror.KindUnknown {
			return nil, "", err
		}
		return nil, "", apperror.Wrap(apperror.KindGenerationError, "generation failed", err)
	}

	parsed, err := response.Parse(raw)
	if err != nil {
		return nil, "", err
	}
	return parsed, raw, nil
}
