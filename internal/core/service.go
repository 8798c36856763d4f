// Package core wires the territory catalog, graph, resolver, and address
// operations into a single service with pluggable catalog backends and
// observability hooks.
package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"postalcore/internal/catalog"
	"postalcore/pkg/address"
	"postalcore/pkg/territory"
)

// Service exposes territory resolution and address operations on top of a
// catalog snapshot loaded once at construction. A Service is immutable after
// NewService returns and safe for concurrent use.
type Service struct {
	source   CatalogSource
	version  string
	graph    *territory.Graph
	resolver *territory.Resolver

	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	clock   func() time.Time
}

// Option customizes service construction.
type Option func(*serviceOptions)

type serviceOptions struct {
	source  CatalogSource
	logger  Logger
	metrics MetricsRecorder
	tracer  Tracer
	clock   func() time.Time
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		logger:  noopLogger{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		clock:   time.Now,
	}
}

// WithSource overrides the catalog source (default: environment selection via
// OpenCatalogSource).
func WithSource(src CatalogSource) Option {
	return func(o *serviceOptions) { o.source = src }
}

// WithLogger installs a structured logger.
func WithLogger(l Logger) Option {
	return func(o *serviceOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsRecorder installs a metrics recorder.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(o *serviceOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(t Tracer) Option {
	return func(o *serviceOptions) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithClock overrides the time source used for instrumentation.
func WithClock(clock func() time.Time) Option {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// NewService loads the catalog dataset from the configured source and builds
// the territory graph and alias resolver.
func NewService(ctx context.Context, opts ...Option) (*Service, error) {
	options := defaultServiceOptions()
	for _, opt := range opts {
		opt(&options)
	}
	src := options.source
	if src == nil {
		opened, err := OpenCatalogSource(ctx)
		if err != nil {
			return nil, fmt.Errorf("open catalog source: %w", err)
		}
		src = opened
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog (%s): %w", src.Driver(), err)
	}
	graph, resolver, err := catalog.Build(ds)
	if err != nil {
		return nil, fmt.Errorf("build territory graph: %w", err)
	}
	svc := &Service{
		source:   src,
		version:  ds.Version,
		graph:    graph,
		resolver: resolver,
		logger:   options.logger,
		metrics:  options.metrics,
		tracer:   options.tracer,
		clock:    options.clock,
	}
	svc.logger.Info("catalog loaded",
		"driver", src.Driver(),
		"version", ds.Version,
		"countries", len(graph.CountryCodes()),
		"subdivisions", len(graph.SubdivisionCodes()))
	return svc, nil
}

var (
	defaultOnce sync.Once
	defaultSvc  *Service
	defaultErr  error
)

// DefaultService returns the process-wide service built from the embedded
// catalog (or the environment-selected backend). The first call performs the
// build; later calls return the same instance.
func DefaultService() (*Service, error) {
	defaultOnce.Do(func() {
		defaultSvc, defaultErr = NewService(context.Background())
	})
	return defaultSvc, defaultErr
}

// Version reports the catalog dataset version the service was built from.
func (s *Service) Version() string { return s.version }

// Driver reports the catalog backend the service loaded from.
func (s *Service) Driver() string { return s.source.Driver() }

// Graph exposes the immutable territory graph.
func (s *Service) Graph() *territory.Graph { return s.graph }

// Resolver exposes the alias resolver bound to the graph.
func (s *Service) Resolver() *territory.Resolver { return s.resolver }

func (s *Service) instrument(ctx context.Context, operation string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, operation)
	start := s.clock()
	err := fn(ctx)
	duration := s.clock().Sub(start)
	span.End(err)
	s.metrics.Observe(ctx, operation, err == nil, duration)
	if err != nil {
		s.logger.Debug("operation failed", "operation", operation, "error", err)
	}
	return err
}

// ResolveTerritory resolves free-form input to a canonical territory code.
func (s *Service) ResolveTerritory(ctx context.Context, input string, kind territory.Kind) (string, error) {
	var code string
	err := s.instrument(ctx, "resolve_territory", func(context.Context) error {
		var rerr error
		code, rerr = s.resolver.Resolve(input, kind)
		return rerr
	})
	return code, err
}

// LookupTerritory returns the territory node for a canonical code.
func (s *Service) LookupTerritory(ctx context.Context, code string) (*territory.Territory, error) {
	var t *territory.Territory
	err := s.instrument(ctx, "lookup_territory", func(context.Context) error {
		var lerr error
		t, lerr = s.graph.Lookup(code)
		return lerr
	})
	return t, err
}

// CountryOfSubdivision walks the parent chain of a subdivision code to its
// root country code.
func (s *Service) CountryOfSubdivision(ctx context.Context, code string) (string, error) {
	var country string
	err := s.instrument(ctx, "country_of_subdivision", func(context.Context) error {
		var cerr error
		country, cerr = s.graph.CountryOf(code)
		return cerr
	})
	return country, err
}

// AttachmentCountry returns the administrative parent country for territories
// politically attached to another country (e.g. overseas territories), or ""
// when none is recorded.
func (s *Service) AttachmentCountry(code string) string {
	return catalog.AttachmentCountry(code)
}

// NewAddress builds a strict-mode address bound to the service resolver.
func (s *Service) NewAddress(fields address.Fields) *address.Address {
	return address.New(s.resolver, fields)
}

// NewLaxAddress builds an address without normalization on construction.
func (s *Service) NewLaxAddress(fields address.Fields) *address.Address {
	return address.New(s.resolver, fields, address.Lax())
}

// NormalizeFields applies address normalization and returns the cleaned
// fields. Normalization never fails; unresolvable values come back empty.
func (s *Service) NormalizeFields(ctx context.Context, fields address.Fields) (address.Fields, error) {
	var out address.Fields
	err := s.instrument(ctx, "normalize_fields", func(context.Context) error {
		out = address.New(s.resolver, fields).Fields()
		return nil
	})
	return out, err
}

// ValidateFields normalizes then validates, returning the itemized report.
// The report is empty when the address is valid.
func (s *Service) ValidateFields(ctx context.Context, fields address.Fields) (address.Report, error) {
	var report address.Report
	err := s.instrument(ctx, "validate_fields", func(context.Context) error {
		addr := address.New(s.resolver, fields)
		if verr := addr.Validate(); verr != nil {
			invalid, ok := verr.(*address.InvalidAddressError)
			if !ok {
				return verr
			}
			report = invalid.Report
		}
		return nil
	})
	return report, err
}

// RenderFields normalizes, validates, and renders the address as postal label
// lines. Returns *address.NotRenderableError when validation fails.
func (s *Service) RenderFields(ctx context.Context, fields address.Fields) (string, error) {
	var rendered string
	err := s.instrument(ctx, "render_fields", func(context.Context) error {
		var rerr error
		rendered, rerr = address.New(s.resolver, fields).Render()
		return rerr
	})
	return rendered, err
}
