// Package engine implements the blending session state machine: an
// immutable State transformed by pure reducers, and an Engine that owns
// the current State and talks to the prediction service.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithStore archives every successful prediction.
func WithStore(store domain.BlendStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithNotifier sets where background notices (dropped responses, archive
// failures) are delivered.
func WithNotifier(n domain.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithClock overrides time.Now for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine serializes every state transition behind a mutex. The lock is
// never held across a network call.
type Engine struct {
	mu    sync.Mutex
	state State

	client   domain.PredictionClient
	store    domain.BlendStore
	notifier domain.Notifier
	log      *logger.Logger
	now      func() time.Time
}

// New creates an engine for the given fuel type with an empty catalog.
// Call LoadCatalog to seed the recipe.
func New(client domain.PredictionClient, fuel domain.FuelType, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		state:  NewState(fuel, nil),
		client: client,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current snapshot. The returned value shares no
// mutable data with the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

func (e *Engine) apply(fn func(State) (State, error)) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, err := fn(e.state)
	if err != nil {
		return e.state.clone(), err
	}
	e.state = next
	return next.clone(), nil
}

// LoadCatalog fetches the component catalog. On failure the catalog is
// left empty and the error wraps ErrCatalogUnavailable.
func (e *Engine) LoadCatalog(ctx context.Context) (State, error) {
	catalog, err := e.client.Components(ctx)
	if err != nil {
		e.log.Warn("catalog fetch failed: %v", err)
		return e.State(), fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	e.log.Info("catalog loaded")
	return e.apply(func(s State) (State, error) {
		return LoadCatalog(s, catalog), nil
	})
}

// AddComponent appends a component; an empty name picks the next unused
// additive.
func (e *Engine) AddComponent(name string) (State, error) {
	return e.apply(func(s State) (State, error) {
		return AddComponent(s, name)
	})
}

// RemoveSlot removes the component in a 1-based slot.
func (e *Engine) RemoveSlot(slot int) (State, error) {
	return e.apply(func(s State) (State, error) {
		id, err := s.SlotID(slot)
		if err != nil {
			return s, err
		}
		return RemoveComponent(s, id)
	})
}

// RenameSlot renames the component in a 1-based slot.
func (e *Engine) RenameSlot(slot int, name string) (State, error) {
	return e.apply(func(s State) (State, error) {
		id, err := s.SlotID(slot)
		if err != nil {
			return s, err
		}
		return RenameComponent(s, id, name)
	})
}

// SetSlotPercentage sets the percentage of the component in a 1-based slot.
func (e *Engine) SetSlotPercentage(slot int, value float64) (State, error) {
	return e.apply(func(s State) (State, error) {
		id, err := s.SlotID(slot)
		if err != nil {
			return s, err
		}
		return SetPercentage(s, id, value)
	})
}

// Normalize rescales the recipe to 100% and reports whether it changed.
func (e *Engine) Normalize() (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, changed := Normalize(e.state)
	e.state = next
	return next.clone(), changed
}

// SwitchFuel changes the fuel type, dropping results and pins.
func (e *Engine) SwitchFuel(fuel domain.FuelType) State {
	st, _ := e.apply(func(s State) (State, error) {
		if s.Busy && s.FuelType != fuel {
			e.log.Info("fuel switched to %s with prediction #%d in flight", fuel, s.Seq)
		}
		return SwitchFuel(s, fuel), nil
	})
	return st
}

// ReplaceRecipe installs a recipe read from a file.
func (e *Engine) ReplaceRecipe(fuel domain.FuelType, r domain.Recipe) State {
	st, _ := e.apply(func(s State) (State, error) {
		return ReplaceRecipe(s, fuel, r), nil
	})
	return st
}

// Pin pins the current result. It reports whether it was newly added.
func (e *Engine) Pin() (State, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, added, err := Pin(e.state)
	if err != nil {
		return e.state.clone(), false, err
	}
	e.state = next
	return next.clone(), added, nil
}

// Unpin removes the pinned result at a 1-based position.
func (e *Engine) Unpin(n int) (State, error) {
	return e.apply(func(s State) (State, error) {
		blends := s.Pinned.Blends()
		if n < 1 || n > len(blends) {
			return s, fmt.Errorf("pinned blend %d: %w", n, domain.ErrNotFound)
		}
		return Unpin(s, blends[n-1].ID)
	})
}

// ClearPinned empties the pinned set.
func (e *Engine) ClearPinned() State {
	st, _ := e.apply(func(s State) (State, error) {
		return ClearPinned(s), nil
	})
	return st
}

// BeginPredict validates the recipe and marks a prediction in flight.
func (e *Engine) BeginPredict() (PredictRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, req, err := BeginPredict(e.state)
	if err != nil {
		return PredictRequest{}, err
	}
	e.state = next
	e.log.Debug("predict #%d: %s %s", req.Seq, req.FuelType, req.Recipe.Summary())
	return req, nil
}

// Resolve performs the network call for req. It does not touch state.
func (e *Engine) Resolve(ctx context.Context, req PredictRequest) PredictResponse {
	result, err := e.client.Predict(ctx, req.FuelType, req.Recipe)
	if err == nil && result.CreatedAt.IsZero() {
		result.CreatedAt = e.now()
	}
	return PredictResponse{Seq: req.Seq, FuelType: req.FuelType, Result: result, Err: err}
}

// Complete applies resp. It reports whether the response was current;
// stale responses are logged and dropped. Applied successes are archived.
func (e *Engine) Complete(ctx context.Context, resp PredictResponse) (State, bool) {
	e.mu.Lock()
	next, applied := CompletePredict(e.state, resp)
	e.state = next
	st := next.clone()
	e.mu.Unlock()

	if !applied {
		e.log.Info("dropping stale prediction #%d (%s)", resp.Seq, resp.FuelType)
		return st, false
	}
	if resp.Err != nil {
		e.log.Warn("predict #%d failed: %v", resp.Seq, resp.Err)
		return st, true
	}

	e.log.Info("predict #%d: blend %s ready", resp.Seq, resp.Result.ID)
	if e.store != nil {
		if err := e.store.Save(ctx, resp.Result); err != nil {
			e.log.Error("archiving blend %s: %v", resp.Result.ID, err)
			e.notify(ctx, fmt.Sprintf("Could not archive blend %s.", resp.Result.ID))
		}
	}
	return st, true
}

// Predict runs a full BeginPredict / Resolve / Complete cycle. A request
// superseded while in flight reports errStale whatever its outcome;
// otherwise the error is the validation or remote failure, if any.
func (e *Engine) Predict(ctx context.Context) (*domain.BlendResult, error) {
	req, err := e.BeginPredict()
	if err != nil {
		return nil, err
	}
	resp := e.Resolve(ctx, req)
	st, applied := e.Complete(ctx, resp)
	if !applied {
		return nil, errStale
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	return st.Current, nil
}

// History lists archived blends for the current fuel type, newest first.
func (e *Engine) History(ctx context.Context) ([]*domain.BlendResult, error) {
	if e.store == nil {
		return nil, nil
	}
	fuel := e.State().FuelType
	results, err := e.store.List(ctx, fuel)
	if err != nil {
		return nil, fmt.Errorf("listing %s blends: %w", fuel, err)
	}
	return results, nil
}

var errStale = errors.New("prediction superseded")

// IsStale reports whether err means a prediction was superseded before
// it completed.
func IsStale(err error) bool { return errors.Is(err, errStale) }

func (e *Engine) notify(ctx context.Context, msg string) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.NotifyUrgent(ctx, msg); err != nil {
		e.log.Debug("notify: %v", err)
	}
}
