package middleware

import (
	"context"
	"errors"

	"github.com/vitrine-dev/vitrine/pkg/router"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "vitrine"

// OTelConfig configures navigation tracing.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vitrine").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Filter determines which navigations to trace.
	// Default: all.
	Filter func(to router.Location) bool

	// AttributeExtractor adds custom span attributes.
	AttributeExtractor func(to, from router.Location) []attribute.KeyValue
}

// OTelOption configures navigation tracing.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// WithNavigationFilter sets a filter for traced navigations.
func WithNavigationFilter(filter func(to router.Location) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(to, from router.Location) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing returns a guard that wraps the rest of each navigation in a span
// named "navigate <path>". The span is timed around the guards registered
// after it and the commit. Those guards still receive the navigation's
// context, not the span's, since next takes no context.
//
// Install it first so the span covers the other guards:
//
//	r.BeforeEach(middleware.Tracing())
//	r.BeforeEach(authGuard)
func Tracing(opts ...OTelOption) router.Guard {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	tracer := config.Provider.Tracer(config.TracerName)

	return router.GuardFunc(func(ctx context.Context, to, from router.Location, next func() error) error {
		if config.Filter != nil && !config.Filter(to) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("vitrine.path", to.Path),
			attribute.String("vitrine.from", from.FullPath),
			attribute.Bool("vitrine.matched", to.Matched()),
		}
		if to.Name != "" {
			attrs = append(attrs, attribute.String("vitrine.route", to.Name))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(to, from)...)
		}

		_, span := tracer.Start(ctx, "navigate "+to.Path,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next()
		switch {
		case err == nil:
			span.SetStatus(codes.Ok, "")
		case errors.Is(err, router.ErrNavigationCancelled):
			span.SetAttributes(attribute.Bool("vitrine.cancelled", true))
		default:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	})
}
