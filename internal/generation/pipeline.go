package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ay0711/AI/internal/events"
	"github.com/ay0711/AI/internal/redact"
	"github.com/sethvargo/go-retry"
)

// Pipeline defaults.
const (
	DefaultMaxRetries          = 3
	DefaultBaseDelay           = 2 * time.Second
	DefaultRateLimitRetryAfter = 120
)

// User-facing messages of terminal errors.
const (
	msgEmptyPrompt = "Contents must be a non-empty string"
	msgRateLimited = "Rate limit exceeded. Please wait a few minutes before trying again."
	msgQuota       = "API quota exceeded. Please try again tomorrow or upgrade your plan."
	msgAuth        = "Invalid API key. Please check your configuration."
)

// Config holds the retry policy of a Pipeline.
type Config struct {
	// MaxRetries is the total number of attempts per call (not retries after the first).
	MaxRetries int

	// BaseDelay is the wait after the first failed attempt; it doubles on each
	// subsequent failure (BaseDelay * 2^(attempt-1)).
	BaseDelay time.Duration

	// RateLimitRetryAfter is the wait, in seconds, suggested to callers once
	// rate limiting persists across all attempts.
	RateLimitRetryAfter int
}

// DefaultConfig returns the default retry policy: 3 attempts, 2s/4s/8s backoff.
func DefaultConfig() Config {
	return Config{
		MaxRetries:          DefaultMaxRetries,
		BaseDelay:           DefaultBaseDelay,
		RateLimitRetryAfter: DefaultRateLimitRetryAfter,
	}
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithSleeper replaces the backoff sleep (used by tests).
func WithSleeper(s Sleeper) Option {
	return func(p *Pipeline) {
		p.sleep = s
	}
}

// WithClock replaces the clock used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// WithEmitter publishes every retry decision to emitter.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(p *Pipeline) {
		p.emitter = emitter
	}
}

// CallOption customizes a single Generate call.
type CallOption func(*callOptions)

type callOptions struct {
	maxRetries int
	progress   func(*events.RetryEvent)
}

// WithMaxRetries overrides the attempt budget of one call. Values below 1 are ignored.
func WithMaxRetries(n int) CallOption {
	return func(o *callOptions) {
		if n > 0 {
			o.maxRetries = n
		}
	}
}

// WithProgress registers a callback invoked before each backoff sleep.
func WithProgress(fn func(*events.RetryEvent)) CallOption {
	return func(o *callOptions) {
		o.progress = fn
	}
}

// Pipeline validates requests and drives upstream attempts with retries.
// A Pipeline holds no per-call state and is safe for concurrent use.
type Pipeline struct {
	caller  Caller
	catalog *ModelCatalog
	config  Config
	logger  *slog.Logger
	emitter events.EventEmitter
	sleep   Sleeper
	now     func() time.Time
}

var _ Generator = (*Pipeline)(nil)

// NewPipeline creates a Pipeline calling caller for models in catalog.
func NewPipeline(
	caller Caller,
	catalog *ModelCatalog,
	logger *slog.Logger,
	config Config,
	opts ...Option,
) (*Pipeline, error) {
	if caller == nil {
		return nil, fmt.Errorf("%w: caller cannot be nil", ErrInvalidConfig)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: model catalog cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if config.MaxRetries < 1 {
		logger.Warn("Invalid max retries value, using default", "max_retries", DefaultMaxRetries)
		config.MaxRetries = DefaultMaxRetries
	}
	if config.BaseDelay <= 0 {
		logger.Warn("Invalid retry delay value, using default", "base_delay", DefaultBaseDelay)
		config.BaseDelay = DefaultBaseDelay
	}
	if config.RateLimitRetryAfter <= 0 {
		config.RateLimitRetryAfter = DefaultRateLimitRetryAfter
	}

	p := &Pipeline{
		caller:  caller,
		catalog: catalog,
		config:  config,
		logger:  logger,
		sleep:   sleepContext,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Catalog returns the model allow-list.
func (p *Pipeline) Catalog() *ModelCatalog {
	return p.catalog
}

// Validate checks prompt and model without calling upstream.
// An empty model resolves to the catalog default.
func (p *Pipeline) Validate(prompt, model string) (Request, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return Request{}, newClassifiedError(KindInvalidRequest, msgEmptyPrompt, nil)
	}

	model = p.catalog.Resolve(model)
	if err := p.catalog.Validate(model); err != nil {
		return Request{}, err
	}

	return Request{Prompt: trimmed, Model: model}, nil
}

// Generate produces text for prompt, retrying rate-limited and transient
// failures with exponential backoff. The returned error, if any, is always a
// *ClassifiedError.
func (p *Pipeline) Generate(ctx context.Context, prompt string, model string, opts ...CallOption) (*Result, error) {
	co := callOptions{maxRetries: p.config.MaxRetries}
	for _, opt := range opts {
		opt(&co)
	}

	req, err := p.Validate(prompt, model)
	if err != nil {
		return nil, err
	}

	log := p.logger.With("model", req.Model, "max_attempts", co.maxRetries)

	// The backoff sequence is local to this call: BaseDelay, 2*BaseDelay, ...
	// and exhausted after maxRetries-1 waits.
	backoff := retry.WithMaxRetries(uint64(co.maxRetries-1), retry.NewExponential(p.config.BaseDelay))

	var last *RawFailure
	attempts := 0
	for attempt := 1; attempt <= co.maxRetries; attempt++ {
		attempts = attempt
		log.DebugContext(ctx, "Making generation attempt", "attempt", attempt)

		text, callErr := p.caller.Call(ctx, req.Prompt, req.Model)
		if callErr == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				log.InfoContext(ctx, "Generation succeeded", "attempt", attempt)
				return &Result{
					Text:      trimmed,
					Model:     req.Model,
					Attempt:   attempt,
					Timestamp: p.now().UTC(),
				}, nil
			}
			last = emptyResponseFailure()
		} else {
			last = AsRawFailure(callErr)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, p.cancelled(ctx, log, attempt, ctxErr)
		}

		class := Classify(last)
		log.WarnContext(ctx, "Generation attempt failed",
			"attempt", attempt,
			"class", class.String(),
			"status_code", last.StatusCode,
			"code", last.Code,
			"error", redact.String(last.Message))

		switch class {
		case ClassQuotaExceeded:
			return nil, newClassifiedError(KindQuotaExceeded, msgQuota, last)
		case ClassAuth:
			return nil, newClassifiedError(KindAuth, msgAuth, last)
		case ClassPermanent:
			log.WarnContext(ctx, "Permanent error occurred, not retrying", "attempt", attempt)
			return nil, p.exhausted(attempts, last)
		}

		if attempt == co.maxRetries {
			if class == ClassRateLimited {
				return nil, &ClassifiedError{
					Kind:              KindRateLimited,
					Message:           msgRateLimited,
					RetryAfterSeconds: p.config.RateLimitRetryAfter,
					Err:               last,
				}
			}
			break
		}

		wait, stop := backoff.Next()
		if stop {
			break
		}

		p.notify(ctx, co, events.NewRetryEvent(req.Model, attempt, co.maxRetries, wait, class.String()))

		log.InfoContext(ctx, "Retrying after delay",
			"attempt", attempt,
			"delay_seconds", wait.Seconds())
		if err := p.sleep(ctx, wait); err != nil {
			return nil, p.cancelled(ctx, log, attempt, err)
		}
	}

	log.WarnContext(ctx, "Maximum retry attempts reached", "attempts", attempts)
	return nil, p.exhausted(attempts, last)
}

func (p *Pipeline) notify(ctx context.Context, co callOptions, event *events.RetryEvent) {
	if co.progress != nil {
		co.progress(event)
	}
	if p.emitter != nil {
		if err := p.emitter.EmitEvent(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "failed to emit retry event", "error", err, "event_id", event.ID)
		}
	}
}

func (p *Pipeline) exhausted(attempts int, last *RawFailure) *ClassifiedError {
	message := fmt.Sprintf("Content generation failed after %d attempts", attempts)
	var cause error
	if last != nil {
		message = fmt.Sprintf("%s: %s", message, last.Message)
		cause = last
	}
	return newClassifiedError(KindGenerationFailed, message, cause)
}

func (p *Pipeline) cancelled(ctx context.Context, log *slog.Logger, attempt int, err error) *ClassifiedError {
	log.WarnContext(ctx, "Generation cancelled", "attempt", attempt, "ctx_err", err)
	return newClassifiedError(KindGenerationFailed,
		fmt.Sprintf("Content generation cancelled after %d attempts: %v", attempt, err), err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
