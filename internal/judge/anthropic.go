package judge

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"
)

const (
	// DefaultModel is the judgment model. Duplicate grouping is a
	// constrained classification task, so the cost-efficient tier is
	// the default.
	DefaultModel = "claude-3-5-haiku-20241022"

	// DefaultMaxTokens bounds the verdict response size.
	DefaultMaxTokens = 2048

	// DefaultTimeout bounds a single classification call. The caller
	// must never block on the judgment path longer than this.
	DefaultTimeout = 60 * time.Second

	// requestsPerSecond rate-limits judgment traffic.
	requestsPerSecond = 1.0
)

// AnthropicClassifier implements Classifier against the Anthropic
// Messages API.
type AnthropicClassifier struct {
	client    anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
	limiter   *rate.Limiter
}

// Compile-time check that AnthropicClassifier implements Classifier.
var _ Classifier = (*AnthropicClassifier)(nil)

// Option configures an AnthropicClassifier.
type Option func(*AnthropicClassifier)

// WithModel sets the judgment model.
func WithModel(model string) Option {
	return func(c *AnthropicClassifier) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *AnthropicClassifier) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxTokens sets the response token budget.
func WithMaxTokens(n int) Option {
	return func(c *AnthropicClassifier) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// NewAnthropicClassifier creates a classifier using the given API key.
// An empty key falls through to the SDK's ANTHROPIC_API_KEY handling.
func NewAnthropicClassifier(apiKey string, opts ...Option) *AnthropicClassifier {
	var clientOpts []option.RequestOption
	if apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(apiKey))
	}

	c := &AnthropicClassifier{
		client:    anthropic.NewClient(clientOpts...),
		model:     DefaultModel,
		maxTokens: DefaultMaxTokens,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify sends the batch to the Messages API and parses the verdict
// response. Transport failures map to StatusUnavailable and parse
// failures to StatusMalformed; Classify never returns an error to the
// caller directly.
func (c *AnthropicClassifier) Classify(ctx context.Context, batch []RecordSummary) Outcome {
	if len(batch) == 0 {
		return Outcome{Status: StatusOK}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return Outcome{Status: StatusUnavailable, Err: err}
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(batch))),
		},
	})
	if err != nil {
		return Outcome{Status: StatusUnavailable, Err: err}
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	verdicts, err := parseVerdicts(text, len(batch))
	if err != nil {
		return Outcome{Status: StatusMalformed, Err: err}
	}
	return Outcome{Status: StatusOK, Verdicts: verdicts}
}
