package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"conflict-zero/tower/internal/metrics"
	"conflict-zero/tower/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Loader reads flight JSON files and normalises their records.
type Loader struct {
	logger  *zap.SugaredLogger
	metrics *metrics.MetricsRegistry
}

// NewLoader creates a loader logging to logger. metricsReg may be nil.
func NewLoader(logger *zap.SugaredLogger, metricsReg *metrics.MetricsRegistry) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{logger: logger, metrics: metricsReg}
}

// Load reads every path concurrently and returns their flights concatenated
// in argument order. The first failing source aborts the load.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]models.Flight, error) {
	results := make([][]models.Flight, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			flights, err := l.LoadFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = flights
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]models.Flight, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// LoadFile reads a single JSON file holding an array of flight objects.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]models.Flight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		reason := ReasonUnreadable
		if errors.Is(err, os.ErrNotExist) {
			reason = ReasonNotFound
		}
		return nil, l.sourceError(path, reason, err)
	}

	flights, err := l.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, l.sourceError(path, ReasonMalformed, err)
	}

	l.logger.Infow("Loaded flights", "path", path, "count", len(flights))
	return flights, nil
}

// Decode parses a JSON array of flight objects from reader. Items that are
// not objects or lack an identifier are skipped silently; items whose fields
// cannot be coerced are skipped with a warning.
func (l *Loader) Decode(reader io.Reader) ([]models.Flight, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var data any
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of flights, got %s", jsonKind(data))
	}

	flights := make([]models.Flight, 0, len(items))
	for _, item := range items {
		f, err := normalize(item)
		if err != nil {
			l.logger.Warnw("Error parsing flight data", "acid", acidForLog(item), "error", err.Error())
			l.reject("invalid_field")
			continue
		}
		if f == nil {
			l.reject("missing_acid")
			continue
		}
		flights = append(flights, *f)
	}

	if l.metrics != nil {
		l.metrics.FlightsLoadedTotal.Add(float64(len(flights)))
	}
	return flights, nil
}

func (l *Loader) sourceError(path string, reason SourceReason, err error) error {
	l.logger.Errorw("Failed to load flight source", "path", path, "reason", string(reason), "error", err.Error())
	if l.metrics != nil {
		l.metrics.SourceErrorsTotal.WithLabelValues(string(reason)).Inc()
	}
	return &SourceError{Path: path, Reason: reason, Err: err}
}

func (l *Loader) reject(reason string) {
	if l.metrics != nil {
		l.metrics.RecordsRejectedTotal.WithLabelValues(reason).Inc()
	}
}

func acidForLog(item any) string {
	if rec, ok := item.(map[string]any); ok {
		if v, ok := rec["ACID"]; ok && v != nil {
			return toString(v)
		}
	}
	return unknownValue
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
