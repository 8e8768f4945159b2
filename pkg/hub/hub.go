// Package hub manages named runtime states and serializes mutating
// access to each one. A state handle is single-writer: the hub holds a
// per-state lock so only one Update or Load touches a state at a time,
// while read-only projections proceed concurrently.
package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindcore/mindcore/pkg/api/events"
	"github.com/mindcore/mindcore/pkg/metrics"
	"github.com/mindcore/mindcore/pkg/mind"
	"github.com/mindcore/mindcore/pkg/snapshot"
)

// ErrStateNotFound is returned when a state ID is unknown to the hub.
var ErrStateNotFound = errors.New("hub: state not found")

// ErrStateExists is returned when a named state already exists.
var ErrStateExists = errors.New("hub: state name already in use")

// Logger is the minimal logging interface used by the hub.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// StateInfo describes a managed state without exposing its content.
type StateInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	EmbeddingDim  int `json:"embedding_dim"`
	MaxSlots      int `json:"max_slots"`
	OccupiedSlots int `json:"occupied_slots"`

	Plasticity mind.PlasticityView `json:"plasticity"`
	Temporal   mind.TemporalView   `json:"temporal"`
}

// UpdateResult reports the effect of a single experience update.
type UpdateResult struct {
	Outcome       string               `json:"outcome"`
	OccupiedSlots int                  `json:"occupied_slots"`
	Plasticity    float32              `json:"plasticity"`
	Calibration   mind.CalibrationView `json:"calibration"`
}

// QueryResult carries a retrieval hint across the service boundary.
// Vector is an owned copy, safe to hold after the call returns.
type QueryResult struct {
	Vector     []float32 `json:"vector"`
	Dim        int       `json:"dim"`
	Confidence float32   `json:"confidence"`
}

type entry struct {
	mu        sync.RWMutex
	state     *mind.State
	name      string
	createdAt time.Time
}

// StateHub owns all live states for one runtime configuration.
type StateHub struct {
	mu      sync.RWMutex
	entries map[string]*entry
	byName  map[string]string

	rt          *mind.Runtime
	store       snapshot.Store
	metrics     *metrics.Manager
	broadcaster *events.Broadcaster
	logger      Logger
}

// Options configures optional hub collaborators. Nil fields disable the
// corresponding integration.
type Options struct {
	Store       snapshot.Store
	Metrics     *metrics.Manager
	Broadcaster *events.Broadcaster
	Logger      Logger
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NewStateHub creates a hub for states of the given runtime shape.
func NewStateHub(rt *mind.Runtime, opts Options) (*StateHub, error) {
	if rt == nil {
		return nil, mind.ErrInvalidHandle
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NoOpManager()
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	return &StateHub{
		entries:     make(map[string]*entry),
		byName:      make(map[string]string),
		rt:          rt,
		store:       opts.Store,
		metrics:     opts.Metrics,
		broadcaster: opts.Broadcaster,
		logger:      opts.Logger,
	}, nil
}

// Runtime returns the shared runtime configuration.
func (h *StateHub) Runtime() *mind.Runtime { return h.rt }

// CreateState allocates a fresh state under a unique name. An empty
// name gets the generated ID as its name.
func (h *StateHub) CreateState(ctx context.Context, name string) (StateInfo, error) {
	id := uuid.New().String()
	if name == "" {
		name = id
	}

	h.mu.Lock()
	if _, taken := h.byName[name]; taken {
		h.mu.Unlock()
		return StateInfo{}, fmt.Errorf("%w: %q", ErrStateExists, name)
	}
	st, err := h.rt.NewState()
	if err != nil {
		h.mu.Unlock()
		return StateInfo{}, err
	}
	e := &entry{
		state:     st,
		name:      name,
		createdAt: time.Now().UTC(),
	}
	h.entries[id] = e
	h.byName[name] = id
	active := len(h.entries)
	h.mu.Unlock()

	h.metrics.SetStatesActive(active)
	h.logger.Info("state created", "state_id", id, "name", name)
	if h.broadcaster != nil {
		h.broadcaster.BroadcastStateLifecycle("state.created", id, name)
	}
	return h.info(id, e), nil
}

// List returns info for every managed state, in unspecified order.
func (h *StateHub) List() []StateInfo {
	h.mu.RLock()
	ids := make([]string, 0, len(h.entries))
	ents := make([]*entry, 0, len(h.entries))
	for id, e := range h.entries {
		ids = append(ids, id)
		ents = append(ents, e)
	}
	h.mu.RUnlock()

	infos := make([]StateInfo, 0, len(ids))
	for i, e := range ents {
		e.mu.RLock()
		infos = append(infos, h.info(ids[i], e))
		e.mu.RUnlock()
	}
	return infos
}

// GetInfo returns info for one state.
func (h *StateHub) GetInfo(id string) (StateInfo, error) {
	e, err := h.lookup(id)
	if err != nil {
		return StateInfo{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return h.info(id, e), nil
}

// DeleteState removes a state from the hub. Persisted snapshots are
// left in the store.
func (h *StateHub) DeleteState(ctx context.Context, id string) error {
	h.mu.Lock()
	e, ok := h.entries[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}
	delete(h.entries, id)
	delete(h.byName, e.name)
	active := len(h.entries)
	h.mu.Unlock()

	h.metrics.SetStatesActive(active)
	h.metrics.RemoveState(id)
	h.logger.Info("state deleted", "state_id", id, "name", e.name)
	if h.broadcaster != nil {
		h.broadcaster.BroadcastStateLifecycle("state.deleted", id, e.name)
	}
	return nil
}

// ResetState clears a state's slots and temporal signals while keeping
// its identity and configuration.
func (h *StateHub) ResetState(ctx context.Context, id string) error {
	e, err := h.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.state.Reset()
	e.mu.Unlock()

	h.logger.Info("state reset", "state_id", id)
	if h.broadcaster != nil {
		h.broadcaster.BroadcastStateLifecycle("state.reset", id, e.name)
	}
	return nil
}

// Update feeds one experience vector into a state.
func (h *StateHub) Update(ctx context.Context, id string, vector []float32, deltaT float32) (UpdateResult, error) {
	e, err := h.lookup(id)
	if err != nil {
		return UpdateResult{}, err
	}

	start := time.Now()
	e.mu.Lock()
	outcome, uerr := e.state.Update(vector, deltaT)
	occupied := e.state.SlotCount()
	plast := e.state.Plasticity().Plasticity
	temporal := e.state.Temporal()
	calib := e.state.Calibration()
	e.mu.Unlock()
	if uerr != nil {
		return UpdateResult{}, uerr
	}

	h.metrics.RecordUpdate(id, outcome.String(), float64(plast), occupied, time.Since(start))
	if h.broadcaster != nil {
		h.broadcaster.BroadcastStateUpdated(
			id, outcome.String(), occupied,
			temporal.Age, plast, temporal.Velocity,
			calib.Maturity, calib.ReinforcementRatio,
		)
	}
	return UpdateResult{
		Outcome:       outcome.String(),
		OccupiedSlots: occupied,
		Plasticity:    plast,
		Calibration:   calib,
	}, nil
}

// Query retrieves the best-matching slot as an owned hint.
func (h *StateHub) Query(ctx context.Context, id string, vector []float32) (QueryResult, error) {
	e, err := h.lookup(id)
	if err != nil {
		return QueryResult{}, err
	}

	start := time.Now()
	e.mu.RLock()
	hint, qerr := e.state.Query(vector)
	var owned []float32
	if qerr == nil && hint.Vector != nil {
		owned = make([]float32, len(hint.Vector))
		copy(owned, hint.Vector)
	}
	e.mu.RUnlock()
	if qerr != nil {
		return QueryResult{}, qerr
	}

	h.metrics.RecordQuery(time.Since(start))
	return QueryResult{
		Vector:     owned,
		Dim:        hint.Dim,
		Confidence: hint.Confidence,
	}, nil
}

// Plasticity returns the plasticity projection of a state.
func (h *StateHub) Plasticity(id string) (mind.PlasticityView, error) {
	e, err := h.lookup(id)
	if err != nil {
		return mind.PlasticityView{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Plasticity(), nil
}

// Temporal returns the temporal projection of a state.
func (h *StateHub) Temporal(id string) (mind.TemporalView, error) {
	e, err := h.lookup(id)
	if err != nil {
		return mind.TemporalView{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Temporal(), nil
}

// Calibration returns the calibration projection of a state.
func (h *StateHub) Calibration(id string) (mind.CalibrationView, error) {
	e, err := h.lookup(id)
	if err != nil {
		return mind.CalibrationView{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Calibration(), nil
}

// Save persists a snapshot of the state to the configured store.
func (h *StateHub) Save(ctx context.Context, id string) error {
	if h.store == nil {
		return errors.New("hub: no snapshot store configured")
	}
	e, err := h.lookup(id)
	if err != nil {
		return err
	}

	e.mu.RLock()
	data, encErr := mind.Encode(e.state)
	e.mu.RUnlock()
	if encErr != nil {
		return encErr
	}
	if err := h.store.Put(ctx, id, data); err != nil {
		return fmt.Errorf("hub: save state %s: %w", id, err)
	}

	h.logger.Info("state saved", "state_id", id, "bytes", len(data))
	if h.broadcaster != nil {
		h.broadcaster.BroadcastStateLifecycle("state.saved", id, e.name)
	}
	return nil
}

// Load replaces a state's memory with its persisted snapshot. On any
// decode failure the live state is left untouched.
func (h *StateHub) Load(ctx context.Context, id string) error {
	if h.store == nil {
		return errors.New("hub: no snapshot store configured")
	}
	e, err := h.lookup(id)
	if err != nil {
		return err
	}
	data, err := h.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("hub: load state %s: %w", id, err)
	}

	e.mu.Lock()
	decErr := mind.Decode(e.state, data)
	e.mu.Unlock()
	if decErr != nil {
		return decErr
	}

	h.logger.Info("state loaded", "state_id", id, "bytes", len(data))
	if h.broadcaster != nil {
		h.broadcaster.BroadcastStateLifecycle("state.loaded", id, e.name)
	}
	return nil
}

func (h *StateHub) lookup(id string) (*entry, error) {
	h.mu.RLock()
	e, ok := h.entries[id]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}
	return e, nil
}

// info reads entry fields; callers hold whatever entry lock the call
// site needs.
func (h *StateHub) info(id string, e *entry) StateInfo {
	return StateInfo{
		ID:            id,
		Name:          e.name,
		CreatedAt:     e.createdAt,
		EmbeddingDim:  h.rt.Dim(),
		MaxSlots:      h.rt.MaxSlots(),
		OccupiedSlots: e.state.SlotCount(),
		Plasticity:    e.state.Plasticity(),
		Temporal:      e.state.Temporal(),
	}
}
