package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/careermap-backend/internal/observability"
	"github.com/yungbote/careermap-backend/internal/platform/httpx"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

// Step is one provider in a cascade. Timeout bounds each attempt; a timed
// out attempt is retried up to TimeoutRetries times before moving on.
type Step struct {
	Provider       Provider
	Timeout        time.Duration
	TimeoutRetries int
}

// Result is the accepted output. When the cascade is exhausted, Text and
// Provider hold the last non-blank output that accept rejected, if any.
type Result struct {
	Text     string
	Provider string
	Attempts int
}

// Cascade tries steps in order and stops at the first accepted output.
type Cascade struct {
	steps []Step
	log   *logger.Logger
}

func NewCascade(log *logger.Logger, steps ...Step) *Cascade {
	kept := make([]Step, 0, len(steps))
	for _, s := range steps {
		if !isNilProvider(s.Provider) {
			kept = append(kept, s)
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Cascade{steps: kept, log: log.With("component", "LLMCascade")}
}

func (c *Cascade) Len() int {
	if c == nil {
		return 0
	}
	return len(c.steps)
}

// Providers lists step provider names in priority order.
func (c *Cascade) Providers() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.steps))
	for _, s := range c.steps {
		out = append(out, s.Provider.Name())
	}
	return out
}

// Generate runs the cascade. accept decides whether an output is usable;
// nil accepts any non-blank text. Cancellation of ctx aborts immediately.
func (c *Cascade) Generate(ctx context.Context, req Request, accept func(string) bool) (Result, error) {
	if c.Len() == 0 {
		return Result{}, ErrNoProviders
	}
	if accept == nil {
		accept = func(s string) bool { return strings.TrimSpace(s) != "" }
	}

	tracer := otel.Tracer("careermap/llm")
	attempts := 0
	var lastErr error
	var rejected Result
	for _, step := range c.steps {
		name := step.Provider.Name()
		for try := 0; try <= step.TimeoutRetries; try++ {
			if err := ctx.Err(); err != nil {
				return Result{Attempts: attempts}, err
			}
			attempts++

			callCtx, span := tracer.Start(ctx, "llm.generate")
			span.SetAttributes(
				attribute.String("llm.provider", name),
				attribute.Int("llm.attempt", try+1),
			)
			started := time.Now()
			text, err := callWithTimeout(callCtx, step, req)
			observability.Current().ObserveLLMRequest(name, attemptStatus(err), time.Since(started))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()

			if err == nil {
				if accept(text) {
					c.log.Debug("llm output accepted", "provider", name, "attempt", try+1)
					return Result{Text: text, Provider: name, Attempts: attempts}, nil
				}
				lastErr = fmt.Errorf("%s: %w", name, ErrEmptyOutput)
				if strings.TrimSpace(text) != "" {
					rejected = Result{Text: text, Provider: name}
				}
				c.log.Warn("llm output rejected", "provider", name, "attempt", try+1)
				break
			}

			lastErr = fmt.Errorf("%s: %w", name, err)
			if ctx.Err() != nil {
				return Result{Attempts: attempts}, ctx.Err()
			}
			if httpx.IsTimeout(err) && try < step.TimeoutRetries {
				c.log.Info("llm call timed out, retrying", "provider", name, "attempt", try+1)
				continue
			}
			c.log.Warn("llm call failed", "provider", name, "attempt", try+1, "error", err)
			break
		}
	}
	if lastErr == nil {
		lastErr = errors.New("llm: cascade exhausted")
	}
	rejected.Attempts = attempts
	return rejected, lastErr
}

func attemptStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case httpx.IsTimeout(err):
		return "timeout"
	default:
		return "error"
	}
}

func callWithTimeout(ctx context.Context, step Step, req Request) (string, error) {
	if step.Timeout <= 0 {
		return step.Provider.Generate(ctx, req)
	}
	cctx, cancel := context.WithTimeout(ctx, step.Timeout)
	defer cancel()
	text, err := step.Provider.Generate(cctx, req)
	if err == nil && cctx.Err() != nil {
		// provider ignored the deadline and returned late
		return "", cctx.Err()
	}
	return text, err
}

func isNilProvider(p Provider) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *Anthropic:
		return v == nil
	case *OpenAICompatible:
		return v == nil
	}
	return false
}
