// Package generation produces lesson-plan content with a generative model.
//
// Generator wraps a Model with prompt construction and a retry loop: quota
// rejections (*RateLimitedError) are retried with exponential backoff and
// become ErrQuotaExceeded once attempts run out. Other errors fail at once.
package generation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Retry defaults: three attempts, waiting 2s then 4s.
const (
	DefaultMaxAttempts = 3
	DefaultBaseBackoff = 2 * time.Second
)

// Generator turns curriculum prompts into markdown through a Model.
type Generator struct {
	model       Model
	maxAttempts int
	baseBackoff time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	log         *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRetry sets the attempt count and the first backoff. Non-positive
// values keep the defaults.
func WithRetry(maxAttempts int, baseBackoff time.Duration) Option {
	return func(g *Generator) {
		if maxAttempts > 0 {
			g.maxAttempts = maxAttempts
		}
		if baseBackoff > 0 {
			g.baseBackoff = baseBackoff
		}
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// withSleep replaces the backoff wait. Tests use it to avoid real delays.
func withSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(g *Generator) { g.sleep = fn }
}

// NewGenerator creates a Generator around model.
func NewGenerator(model Model, opts ...Option) *Generator {
	g := &Generator{
		model:       model,
		maxAttempts: DefaultMaxAttempts,
		baseBackoff: DefaultBaseBackoff,
		sleep:       sleepContext,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Theory generates stage 0 of a skill.
func (g *Generator) Theory(ctx context.Context, skillCode string) (string, error) {
	return g.Generate(ctx, TheoryPrompt(skillCode))
}

// LessonPlan generates lesson stage 1 to 5, carrying the previous stage as
// context.
func (g *Generator) LessonPlan(ctx context.Context, skillCode string, stage int, previous string) (string, error) {
	prompt, err := LessonPlanPrompt(skillCode, stage, previous)
	if err != nil {
		return "", err
	}
	return g.Generate(ctx, prompt)
}

// Resource generates an additional resource from existing plan content.
func (g *Generator) Resource(ctx context.Context, skillCode, kind, planContent string) (string, error) {
	return g.Generate(ctx, ResourcePrompt(skillCode, kind, planContent))
}

// Generate sends prompt, retrying rate-limited attempts with a doubling
// backoff.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	backoff := g.baseBackoff
	for attempt := 1; ; attempt++ {
		text, err := g.model.GenerateText(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if !IsRateLimited(err) {
			return "", err
		}
		if attempt >= g.maxAttempts {
			g.log.Warn("generation quota exhausted", zap.Int("attempts", attempt), zap.Error(err))
			return "", errors.Join(ErrQuotaExceeded, err)
		}

		g.log.Warn("generation rate limited, retrying",
			zap.Int("attempt", attempt), zap.Int("max_attempts", g.maxAttempts), zap.Duration("backoff", backoff))
		if err := g.sleep(ctx, backoff); err != nil {
			return "", err
		}
		backoff *= 2
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
