package services

import (
	"context"
	"errors"
	"fmt"
	"ga-route-service/internal/domain"
	"ga-route-service/internal/ga"
	"ga-route-service/internal/platform/obs"
	"ga-route-service/internal/ports"
	"log"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultTickInterval = 16 * time.Millisecond
	defaultPublishEvery = 25
	defaultHistoryLimit = 1000
	publishTimeout      = 2 * time.Second
)

type RunManagerConfig struct {
	TickInterval time.Duration
	MaxRuns      int
	MaxPoints    int
	MaxPopSize   int
	Defaults     ga.Params
	// PublishEvery forces a progress update after this many generations
	// even when the best tour has not improved.
	PublishEvery int
	HistoryLimit int
}

type CreateRunRequest struct {
	// Exactly one of PointSetID or Points is set.
	PointSetID string
	Points     []domain.Point
	Params     ParamOverrides
	// MaxGenerations stops the run automatically; 0 runs until paused.
	MaxGenerations int
}

// RunManager owns the live GA runs of the service. Each running run is
// driven by one ticker goroutine; the manager's pool supervises them.
type RunManager struct {
	cfg       RunManagerConfig
	pointSets ports.PointSetRepository
	results   ports.ResultRepository
	publisher ports.ProgressPublisher
	now       func() time.Time

	mu     sync.Mutex
	runs   map[string]*run
	closed bool

	baseCtx context.Context
	cancel  context.CancelFunc
	loops   *pool.Pool
}

func NewRunManager(
	cfg RunManagerConfig,
	pointSets ports.PointSetRepository,
	results ports.ResultRepository,
	publisher ports.ProgressPublisher,
) *RunManager {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultTickInterval
	}
	if cfg.PublishEvery <= 0 {
		cfg.PublishEvery = defaultPublishEvery
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	if cfg.Defaults.PopSize == 0 {
		cfg.Defaults = ga.DefaultParams()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &RunManager{
		cfg:       cfg,
		pointSets: pointSets,
		results:   results,
		publisher: publisher,
		now:       time.Now,
		runs:      make(map[string]*run),
		baseCtx:   ctx,
		cancel:    cancel,
		loops:     pool.New(),
	}
}

// Create registers a paused run. The engine is built on the first Start or Step.
func (m *RunManager) Create(ctx context.Context, req CreateRunRequest) (RunView, error) {
	params, err := req.Params.Apply(m.cfg.Defaults, m.cfg.MaxPopSize)
	if err != nil {
		return RunView{}, fmt.Errorf("create run: %w", err)
	}
	if req.MaxGenerations < 0 {
		return RunView{}, fmt.Errorf("create run: %w: max_generations must not be negative", ErrInvalidInput)
	}

	points, err := m.resolvePoints(ctx, req)
	if err != nil {
		return RunView{}, fmt.Errorf("create run: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return RunView{}, fmt.Errorf("create run: new id: %w", err)
	}

	r := &run{
		id:             id.String(),
		pointSetID:     req.PointSetID,
		points:         points,
		params:         params,
		maxGenerations: req.MaxGenerations,
		createdAt:      m.now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return RunView{}, ErrShutdown
	}
	if m.cfg.MaxRuns > 0 && len(m.runs) >= m.cfg.MaxRuns {
		return RunView{}, fmt.Errorf("create run: %w: limit is %d", ErrTooManyRuns, m.cfg.MaxRuns)
	}
	m.runs[r.id] = r

	log.Printf("run created run_id=%s point_set_id=%s points=%d pop_size=%d selection=%s",
		r.id, r.pointSetID, len(points), params.PopSize, params.Selection)

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view(), nil
}

func (m *RunManager) resolvePoints(ctx context.Context, req CreateRunRequest) ([]domain.Point, error) {
	if (req.PointSetID == "") == (len(req.Points) == 0) {
		return nil, fmt.Errorf("%w: provide either point_set_id or points", ErrInvalidInput)
	}

	points := req.Points
	if req.PointSetID != "" {
		if m.pointSets == nil {
			return nil, fmt.Errorf("point set id=%s: %w", req.PointSetID, ports.ErrNotFound)
		}
		ps, err := m.pointSets.GetPointSet(ctx, req.PointSetID)
		if err != nil {
			return nil, fmt.Errorf("point set id=%s: %w", req.PointSetID, err)
		}
		points = ps.Points
	}

	if err := ValidatePoints(points, m.cfg.MaxPoints); err != nil {
		return nil, err
	}
	return slices.Clone(points), nil
}

func (m *RunManager) lookup(id string) (*run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("run id=%s: %w", id, ErrRunNotFound)
	}
	return r, nil
}

// List returns all runs, oldest first.
func (m *RunManager) List() []RunView {
	m.mu.Lock()
	runs := make([]*run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	m.mu.Unlock()

	views := make([]RunView, 0, len(runs))
	for _, r := range runs {
		r.mu.Lock()
		views = append(views, r.view())
		r.mu.Unlock()
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID < views[j].ID
		}
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views
}

func (m *RunManager) Get(id string) (RunView, error) {
	r, err := m.lookup(id)
	if err != nil {
		return RunView{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view(), nil
}

// History returns the recorded per-generation statistics, oldest first.
func (m *RunManager) History(id string) ([]domain.GenerationStat, error) {
	r, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.history), nil
}

// Start begins ticking. A fresh or reset run is initialised at generation 0.
func (m *RunManager) Start(ctx context.Context, id string) (RunView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return RunView{}, ErrShutdown
	}
	r, ok := m.runs[id]
	if !ok {
		return RunView{}, fmt.Errorf("start run id=%s: %w", id, ErrRunNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return RunView{}, fmt.Errorf("start run id=%s: %w", id, ErrRunRunning)
	}
	if err := r.ensureEngine(m.cfg.HistoryLimit); err != nil {
		return RunView{}, fmt.Errorf("start run id=%s: %w", id, err)
	}
	if r.finished() {
		return RunView{}, fmt.Errorf("start run id=%s: %w", id, ErrRunFinished)
	}

	loopCtx, cancel := context.WithCancel(m.baseCtx)
	done := make(chan struct{})
	r.running = true
	r.stop = cancel
	r.done = done

	obs.ActiveRuns.Inc()
	m.loops.Go(func() { m.loop(loopCtx, r, done) })

	log.Printf("run started run_id=%s generation=%d", r.id, r.engine.Generation())
	return r.view(), nil
}

func (m *RunManager) loop(ctx context.Context, r *run, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stopped := m.tick(r); stopped {
				return
			}
		}
	}
}

// tick evolves one generation. It reports true once the run stopped itself.
func (m *RunManager) tick(r *run) bool {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return true
	}

	if err := r.engine.Evolve(); err != nil {
		// Unreachable with an initialised engine; stop rather than spin.
		log.Printf("run evolve failed run_id=%s err=%v", r.id, err)
		m.markStopped(r)
		r.mu.Unlock()
		return true
	}

	m.afterGeneration(r)

	var (
		progress *domain.Progress
		result   *domain.RunResult
	)
	if r.finished() {
		m.markStopped(r)
		res := r.result(m.now().UTC())
		result = &res
		log.Printf("run finished run_id=%s generation=%d distance_km=%.3f", r.id, res.Generation, res.DistanceKm)
	}
	if p, ok := m.dueProgress(r, result != nil); ok {
		progress = &p
	}
	r.mu.Unlock()

	if progress != nil {
		m.publish(*progress)
	}
	if result != nil {
		m.saveResult(*result)
	}
	return result != nil
}

// afterGeneration records stats and metrics. Must be called with r.mu held.
func (m *RunManager) afterGeneration(r *run) {
	snap, _ := r.engine.Snapshot()
	r.record(generationStat(snap), m.cfg.HistoryLimit)

	obs.GenerationsTotal.Inc()
	obs.BestDistanceKm.WithLabelValues(r.id).Set(snap.Distance)
}

// dueProgress decides whether the current state should be published: on a
// better tour, every PublishEvery generations, or when forced.
// Must be called with r.mu held.
func (m *RunManager) dueProgress(r *run, force bool) (domain.Progress, bool) {
	p := r.progress(m.now().UTC())

	improved := r.publishedBest == 0 || p.Distance < r.publishedBest
	due := p.Generation-r.lastPublished >= m.cfg.PublishEvery
	if !force && !improved && !due {
		return domain.Progress{}, false
	}

	r.lastPublished = p.Generation
	r.publishedBest = p.Distance
	return p, true
}

// markStopped flips a running run to paused. Must be called with r.mu held.
func (m *RunManager) markStopped(r *run) {
	if !r.running {
		return
	}
	r.running = false
	r.stop = nil
	r.done = nil
	obs.ActiveRuns.Dec()
}

func (m *RunManager) publish(p domain.Progress) {
	if m.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(obs.WithRunID(context.Background(), p.RunID), publishTimeout)
	defer cancel()

	if err := m.publisher.Publish(ctx, p); err != nil {
		log.Printf("publish progress failed run_id=%s generation=%d err=%v", p.RunID, p.Generation, err)
	}
}

func (m *RunManager) saveResult(res domain.RunResult) {
	if m.results == nil {
		return
	}

	ctx, cancel := context.WithTimeout(obs.WithRunID(context.Background(), res.RunID), publishTimeout)
	defer cancel()

	if err := m.results.SaveResult(ctx, res); err != nil {
		log.Printf("save result failed run_id=%s err=%v", res.RunID, err)
	}
}

// stopLoop stops a run's ticker goroutine and waits for the in-flight
// generation to complete. It reports whether the run was running.
func (m *RunManager) stopLoop(r *run) bool {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return false
	}
	cancel, done := r.stop, r.done
	m.markStopped(r)
	r.mu.Unlock()

	cancel()
	<-done
	return true
}

// Pause stops ticking and records the best tour. Pausing a paused run is a no-op.
func (m *RunManager) Pause(ctx context.Context, id string) (RunView, error) {
	r, err := m.lookup(id)
	if err != nil {
		return RunView{}, err
	}

	if m.stopLoop(r) {
		m.recordStop(r)
		log.Printf("run paused run_id=%s", r.id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view(), nil
}

// recordStop publishes the final state of a stopped run and saves its result.
func (m *RunManager) recordStop(r *run) {
	r.mu.Lock()
	if r.engine == nil {
		r.mu.Unlock()
		return
	}
	now := m.now().UTC()
	progress := r.progress(now)
	result := r.result(now)
	r.lastPublished = progress.Generation
	r.publishedBest = progress.Distance
	r.mu.Unlock()

	m.publish(progress)
	m.saveResult(result)
}

// Reset discards the population; the next Start begins again at generation 0.
func (m *RunManager) Reset(ctx context.Context, id string) (RunView, error) {
	r, err := m.lookup(id)
	if err != nil {
		return RunView{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return RunView{}, fmt.Errorf("reset run id=%s: %w", id, ErrRunRunning)
	}
	r.engine = nil
	r.history = nil
	r.lastPublished = 0
	r.publishedBest = 0
	obs.BestDistanceKm.DeleteLabelValues(r.id)

	log.Printf("run reset run_id=%s", r.id)
	return r.view(), nil
}

// Step advances a paused run by n generations, stopping early at MaxGenerations.
func (m *RunManager) Step(ctx context.Context, id string, n int) (RunView, error) {
	if n < 1 {
		return RunView{}, fmt.Errorf("step run id=%s: %w: n must be at least 1", id, ErrInvalidInput)
	}

	r, err := m.lookup(id)
	if err != nil {
		return RunView{}, err
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return RunView{}, fmt.Errorf("step run id=%s: %w", id, ErrRunRunning)
	}
	if err := r.ensureEngine(m.cfg.HistoryLimit); err != nil {
		r.mu.Unlock()
		return RunView{}, fmt.Errorf("step run id=%s: %w", id, err)
	}
	if r.finished() {
		r.mu.Unlock()
		return RunView{}, fmt.Errorf("step run id=%s: %w", id, ErrRunFinished)
	}

	for i := 0; i < n && !r.finished(); i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := r.engine.Evolve(); err != nil {
			r.mu.Unlock()
			return RunView{}, fmt.Errorf("step run id=%s: %w", id, err)
		}
		m.afterGeneration(r)
	}
	finished := r.finished()
	r.mu.Unlock()

	if finished {
		m.recordStop(r)
	} else if p, ok := m.dueStep(r); ok {
		m.publish(p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view(), nil
}

func (m *RunManager) dueStep(r *run) (domain.Progress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return m.dueProgress(r, true)
}

// Delete stops a run if needed and forgets it. Its stored results are kept.
// The run leaves the registry before its loop is stopped so a concurrent
// Start cannot restart it.
func (m *RunManager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	r, ok := m.runs[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("delete run id=%s: %w", id, ErrRunNotFound)
	}
	delete(m.runs, id)
	m.mu.Unlock()

	if m.stopLoop(r) {
		m.recordStop(r)
	}

	obs.BestDistanceKm.DeleteLabelValues(id)
	log.Printf("run deleted run_id=%s", id)
	return nil
}

// Shutdown stops every ticking run, records their results and waits for
// the loops to exit or ctx to expire. No run can be started afterwards.
func (m *RunManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	runs := make([]*run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	m.mu.Unlock()

	m.cancel()

	waited := make(chan struct{})
	go func() {
		m.loops.Wait()
		close(waited)
	}()

	select {
	case <-waited:
	case <-ctx.Done():
		return fmt.Errorf("shutdown runs: %w", ctx.Err())
	}

	var stopped int
	for _, r := range runs {
		r.mu.Lock()
		wasRunning := r.running
		m.markStopped(r)
		r.mu.Unlock()

		if wasRunning {
			m.recordStop(r)
			stopped++
		}
	}

	log.Printf("run manager shut down runs=%d stopped=%d", len(runs), stopped)
	return nil
}

// IsConflict reports whether err is a state conflict such as starting a running run.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRunRunning) || errors.Is(err, ErrRunFinished) || errors.Is(err, ErrShutdown)
}
