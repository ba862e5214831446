package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/cafe/internal/services/tab/domain/aggregate"
	"github.com/louisbranch/cafe/internal/services/tab/domain/tab"
	"github.com/louisbranch/cafe/internal/services/tab/storage"
)

const tracerName = "github.com/louisbranch/cafe/internal/services/tab/engine"

// DefaultRetries is how many times a conflicting append is retried when
// Handler.Retries is unset.
const DefaultRetries = 3

// Handler executes tab commands against an event store.
type Handler struct {
	Store storage.EventStore
	Now   func() time.Time
	// Retries bounds re-runs after a version conflict. Zero uses
	// DefaultRetries; negative disables retrying.
	Retries int
	// RetryBackOff overrides the delay policy between retries. It is shared
	// by concurrent executions, so it must be stateless.
	RetryBackOff backoff.BackOff

	locks keyedMutex
}

// Result captures one accepted command.
type Result struct {
	// Events are the decided events, in emission order. Empty when the
	// command was accepted but changed nothing.
	Events []tab.Event
	// Records are the stored envelopes of Events.
	Records []storage.Record
	// State is the tab after Events.
	State tab.State
	// Version is the last stored sequence number.
	Version uint64
}

// Execute decides cmd against the tab's current history and appends the
// result. Rejections are returned as tab.CommandError and never retried.
func (h *Handler) Execute(ctx context.Context, cmd tab.Command) (Result, error) {
	if h == nil || h.Store == nil {
		return Result{}, ErrStoreRequired
	}
	if cmd == nil {
		return Result{}, ErrCommandRequired
	}
	if cmd.TabID() == uuid.Nil {
		return Result{}, storage.ErrTabIDRequired
	}
	tabID := cmd.TabID().String()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "tab.execute", trace.WithAttributes(
		attribute.String("tab.id", tabID),
		attribute.String("tab.command", tab.CommandName(cmd)),
	))
	defer span.End()

	unlock := h.locks.Lock(tabID)
	defer unlock()

	attempts := 0
	result, err := backoff.Retry(ctx, func() (Result, error) {
		attempts++
		result, err := h.executeOnce(ctx, tabID, cmd)
		if err != nil && !errors.Is(err, storage.ErrVersionConflict) {
			return Result{}, backoff.Permanent(err)
		}
		return result, err
	}, backoff.WithBackOff(h.backOff()), backoff.WithMaxTries(h.maxTries()))
	span.SetAttributes(
		attribute.Int("tab.attempts", attempts),
		attribute.Int("tab.events", len(result.Events)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return Result{}, err
	}
	return result, nil
}

func (h *Handler) executeOnce(ctx context.Context, tabID string, cmd tab.Command) (Result, error) {
	records, err := h.Store.Load(ctx, tabID)
	if err != nil {
		return Result{}, fmt.Errorf("load tab: %w", err)
	}
	history, err := decodeRecords(records)
	if err != nil {
		return Result{}, err
	}
	version := storage.Version(records)

	events, state, err := aggregate.Execute[tab.State, tab.Command, tab.Event](tab.Tab{}, tab.Replay(history), cmd)
	if err != nil {
		return Result{}, err
	}
	if len(events) == 0 {
		return Result{State: state, Version: version}, nil
	}

	now := h.now()
	pending := make([]storage.Record, 0, len(events))
	for _, evt := range events {
		eventType, payload, err := tab.EncodePayload(evt)
		if err != nil {
			return Result{}, err
		}
		pending = append(pending, storage.Record{
			Type:        string(eventType),
			Timestamp:   now,
			PayloadJSON: payload,
		})
	}
	stored, err := h.Store.Append(ctx, tabID, version, pending)
	if err != nil {
		return Result{}, fmt.Errorf("append events: %w", err)
	}
	return Result{
		Events:  events,
		Records: stored,
		State:   state,
		Version: storage.Version(stored),
	}, nil
}

// Load returns a tab's current state and version.
func (h *Handler) Load(ctx context.Context, tabID uuid.UUID) (tab.State, uint64, error) {
	history, records, err := h.history(ctx, tabID)
	if err != nil {
		return tab.State{}, 0, err
	}
	return tab.Replay(history), storage.Version(records), nil
}

// History returns a tab's decoded events in order.
func (h *Handler) History(ctx context.Context, tabID uuid.UUID) ([]tab.Event, error) {
	history, _, err := h.history(ctx, tabID)
	return history, err
}

// Records returns a tab's stored envelopes in order.
func (h *Handler) Records(ctx context.Context, tabID uuid.UUID) ([]storage.Record, error) {
	_, records, err := h.history(ctx, tabID)
	return records, err
}

// ListTabs returns the ids of every tab with history.
func (h *Handler) ListTabs(ctx context.Context) ([]string, error) {
	if h == nil || h.Store == nil {
		return nil, ErrStoreRequired
	}
	return h.Store.ListTabs(ctx)
}

func (h *Handler) history(ctx context.Context, tabID uuid.UUID) ([]tab.Event, []storage.Record, error) {
	if h == nil || h.Store == nil {
		return nil, nil, ErrStoreRequired
	}
	if tabID == uuid.Nil {
		return nil, nil, storage.ErrTabIDRequired
	}
	records, err := h.Store.Load(ctx, tabID.String())
	if err != nil {
		return nil, nil, fmt.Errorf("load tab: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, ErrTabNotFound
	}
	history, err := decodeRecords(records)
	if err != nil {
		return nil, nil, err
	}
	return history, records, nil
}

func decodeRecords(records []storage.Record) ([]tab.Event, error) {
	history := make([]tab.Event, 0, len(records))
	for _, rec := range records {
		evt, err := tab.DecodePayload(tab.EventType(rec.Type), rec.PayloadJSON)
		if err != nil {
			return nil, fmt.Errorf("decode seq %d: %w", rec.Seq, err)
		}
		history = append(history, evt)
	}
	return history, nil
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) maxTries() uint {
	switch {
	case h.Retries < 0:
		return 1
	case h.Retries == 0:
		return DefaultRetries + 1
	default:
		return uint(h.Retries) + 1
	}
}

func (h *Handler) backOff() backoff.BackOff {
	if h.RetryBackOff != nil {
		return h.RetryBackOff
	}
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 10 * time.Millisecond
	policy.MaxInterval = 250 * time.Millisecond
	return policy
}
