// Package assessment turns a student profile into psychometric questions and a
// readiness dashboard using the AI provider, substituting fixed fallback data
// whenever the provider fails or answers with something unusable.
package assessment

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonathan/skillsage/internal/llm"
	"github.com/jonathan/skillsage/internal/logger"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 60 * time.Second

// Adapter names and outcomes reported to the Recorder.
const (
	AdapterQuestions       = "questions"
	AdapterRecommendations = "recommendations"
	OutcomeAI              = "ai"
	OutcomeFallback        = "fallback"
)

// Recorder receives one event per adapter invocation.
type Recorder interface {
	RecordAdapterCall(adapter, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAdapterCall(string, string) {}

// Generator owns the two provider adapters. A nil client is allowed and makes
// every call take the fallback path.
type Generator struct {
	client   llm.Client
	log      *logger.Logger
	timeout  time.Duration
	recorder Recorder
	tracer   trace.Tracer
	random   func() float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout overrides the per-call provider timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithRecorder reports adapter outcomes, typically to Prometheus.
func WithRecorder(r Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithRandom replaces the noise source used for progression curves.
func WithRandom(fn func() float64) Option {
	return func(g *Generator) {
		if fn != nil {
			g.random = fn
		}
	}
}

// WithTracerProvider sets where adapter spans are sent.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(g *Generator) {
		if tp != nil {
			g.tracer = tp.Tracer(tracerName)
		}
	}
}

const tracerName = "github.com/jonathan/skillsage/internal/assessment"

var errNoClient = errors.New("no AI client configured")

// NewGenerator builds a Generator.
func NewGenerator(client llm.Client, log *logger.Logger, opts ...Option) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	g := &Generator{
		client:   client,
		log:      log,
		timeout:  DefaultTimeout,
		recorder: nopRecorder{},
		tracer:   otel.Tracer(tracerName),
		random:   rand.Float64,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// callJSON sends one prompt under the configured timeout.
func (g *Generator) callJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if g.client == nil {
		return "", &APICallError{Message: "provider unavailable", Cause: errNoClient}
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return "", &APICallError{Message: "failed to generate content", Cause: err}
	}
	if text == "" {
		return "", &ParseError{Message: "empty response from provider"}
	}
	return text, nil
}

// finish records the outcome of an adapter call on the span, the recorder and the log.
func (g *Generator) finish(span trace.Span, adapter string, err error) {
	outcome := OutcomeAI
	if err != nil {
		outcome = OutcomeFallback
		span.RecordError(err)
		span.SetStatus(codes.Error, "fallback used")
		g.log.Warn("AI adapter failed, using fallback data", "adapter", adapter, "error", err)
	}
	span.SetAttributes(attribute.Bool("assessment.fallback", err != nil))
	g.recorder.RecordAdapterCall(adapter, outcome)
}
