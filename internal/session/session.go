// Package session owns the selected problem, the editor buffer and the single
// tracked execution job.
package session

import (
	"context"
	"sync"
	"time"

	"ojplay/internal/api"
	"ojplay/internal/catalog"
	"ojplay/internal/result"
	"ojplay/internal/submission"
	appErr "ojplay/pkg/errors"
	"ojplay/pkg/utils/logger"

	"go.uber.org/zap"
)

// DefaultPollInterval is the cadence of job status queries.
const DefaultPollInterval = time.Second

// Backend is the remote side of the session.
type Backend interface {
	catalog.Source
	Execute(ctx context.Context, req submission.Request) (string, error)
	Status(ctx context.Context, jobID string) (api.JobStatus, error)
}

// Options tunes a Session. Zero values fall back to defaults.
type Options struct {
	PollInterval     time.Duration
	DefaultProblemID int64
	Language         string
	Encoder          *submission.Encoder
	// OnUpdate receives a snapshot after every state change, in order, from a
	// single goroutine and outside the session lock.
	OnUpdate func(Snapshot)
}

// Session is the job lifecycle orchestrator. All mutable state is guarded by mu;
// network calls are made without holding it and their results are applied only if
// the job they belong to is still the tracked one.
type Session struct {
	backend          Backend
	catalog          *catalog.Catalog
	encoder          *submission.Encoder
	interval         time.Duration
	defaultProblemID int64
	onUpdate         func(Snapshot)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	language   string
	code       string
	state      State
	jobID      string
	generation uint64
	done       chan struct{}
	summary    *result.Summary
	lastErr    error

	pending []Snapshot
	wake    chan struct{}
}

// New creates an idle session with an empty catalog.
func New(backend Backend, opts Options) *Session {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.DefaultProblemID == 0 {
		opts.DefaultProblemID = catalog.DefaultProblemID
	}
	if opts.Language == "" {
		opts.Language = submission.DefaultLanguage
	}
	if opts.Encoder == nil {
		opts.Encoder = submission.NewEncoder()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		backend:          backend,
		catalog:          catalog.New(),
		encoder:          opts.Encoder,
		interval:         opts.PollInterval,
		defaultProblemID: opts.DefaultProblemID,
		onUpdate:         opts.OnUpdate,
		ctx:              ctx,
		cancel:           cancel,
		language:         opts.Language,
		wake:             make(chan struct{}, 1),
	}
	if s.onUpdate != nil {
		s.wg.Add(1)
		go s.dispatch()
	}
	return s
}

// Catalog exposes the problem list for lookups.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// LoadCatalog fetches the problems and selects the default one when present.
// A failure is logged and recorded; the catalog keeps its previous content.
func (s *Session) LoadCatalog(ctx context.Context) error {
	problems, err := s.catalog.Load(ctx, s.backend)
	if err != nil {
		logger.Error(ctx, "failed to fetch problems", zap.Error(err))
		s.mu.Lock()
		s.lastErr = err
		s.notifyLocked()
		s.mu.Unlock()
		return err
	}
	for i := range problems {
		if problems[i].ID == s.defaultProblemID {
			s.SelectProblem(&problems[i])
			return nil
		}
	}
	s.mu.Lock()
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

// SelectProblem replaces the selection, resets the editor to the stock snippet,
// clears the summary and stops tracking any job.
func (s *Session) SelectProblem(p *catalog.Problem) {
	s.mu.Lock()
	s.catalog.Select(p)
	s.code = catalog.ResolveSnippet(p, s.language)
	s.summary = nil
	s.lastErr = nil
	s.supersedeLocked()
	s.notifyLocked()
	s.mu.Unlock()
	if p != nil {
		logger.Info(logger.WithProblemID(s.ctx, p.ID), "problem selected", zap.String("title", p.Title))
	}
}

// SelectProblemByID selects a problem from the loaded catalog.
func (s *Session) SelectProblemByID(id int64) error {
	p, ok := s.catalog.Find(id)
	if !ok {
		return appErr.Newf(appErr.ProblemNotFound, "problem %d not found", id)
	}
	s.SelectProblem(p)
	return nil
}

// SetLanguage switches language and resets the editor to that language's snippet.
func (s *Session) SetLanguage(lang string) error {
	if _, ok := submission.Lookup(lang); !ok {
		return appErr.Newf(appErr.LanguageNotSupported, "language %q is not supported", lang)
	}
	s.mu.Lock()
	s.language = lang
	s.code = catalog.ResolveSnippet(s.catalog.Selected(), lang)
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

// SetCode replaces the editor buffer.
func (s *Session) SetCode(code string) {
	s.mu.Lock()
	s.code = code
	s.notifyLocked()
	s.mu.Unlock()
}

// Submit sends the editor buffer for execution and starts polling the returned job.
// Any previously tracked job is abandoned first. Without a selected problem it is a no-op.
func (s *Session) Submit(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return "", appErr.New(appErr.SubmitFailed).WithMessage("session is closed")
	}
	p := s.catalog.Selected()
	if p == nil {
		s.mu.Unlock()
		err := appErr.New(appErr.NoProblemSelected)
		logger.Warn(ctx, "submit ignored", zap.Error(err))
		return "", err
	}
	s.summary = nil
	s.lastErr = nil
	s.supersedeLocked()
	gen := s.generation
	s.done = make(chan struct{})
	s.state = Submitting
	req := s.encoder.Encode(p.ID, s.code, s.language)
	s.notifyLocked()
	s.mu.Unlock()

	ctx = logger.WithProblemID(ctx, p.ID)
	logger.Info(ctx, "submitting code", zap.String("language", req.Language), zap.String("extension", req.Extension))
	jobID, err := s.backend.Execute(ctx, req)

	s.mu.Lock()
	if gen != s.generation || s.closed {
		s.mu.Unlock()
		logger.Info(ctx, "submit response arrived after supersession", zap.String("job_id", jobID), zap.Error(err))
		return jobID, err
	}
	if err != nil {
		s.lastErr = err
		s.finishLocked()
		s.notifyLocked()
		s.mu.Unlock()
		logger.Error(ctx, "failed to submit code", zap.Error(err))
		return "", err
	}
	s.jobID = jobID
	s.state = Polling
	s.notifyLocked()
	done := s.done
	s.wg.Add(1)
	go s.poll(jobID, done)
	s.mu.Unlock()

	logger.Info(logger.WithJobID(ctx, jobID), "job accepted")
	return jobID, nil
}

// Wait blocks until the current submission settles (or is superseded).
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     s.state,
		Problem:   s.catalog.Selected(),
		Language:  s.language,
		Code:      s.code,
		JobID:     s.jobID,
		LastError: s.lastErr,
	}
	if s.summary != nil {
		sum := *s.summary
		snap.Summary = &sum
	}
	return snap
}

// Close abandons the tracked job and waits for in-flight queries to return.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.supersedeLocked()
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

func (s *Session) poll(jobID string, done <-chan struct{}) {
	defer s.wg.Done()
	ctx := logger.WithJobID(s.ctx, jobID)
	logger.Debug(ctx, "start polling", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.query(ctx, jobID)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-done:
			logger.Debug(ctx, "stop polling")
			return
		case <-ticker.C:
			if !s.tracking(jobID) {
				return
			}
			s.query(ctx, jobID)
		}
	}
}

// query does not wait for the previous one; responses may arrive out of order.
func (s *Session) query(ctx context.Context, jobID string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		status, err := s.backend.Status(ctx, jobID)
		s.apply(ctx, jobID, status, err)
	}()
}

func (s *Session) apply(ctx context.Context, jobID string, status api.JobStatus, err error) {
	s.mu.Lock()
	if s.jobID != jobID {
		s.mu.Unlock()
		logger.Debug(ctx, "ignoring status of untracked job", zap.String("state", status.State), zap.Error(err))
		return
	}
	if err != nil {
		s.lastErr = err
		s.notifyLocked()
		s.mu.Unlock()
		logger.Warn(ctx, "failed to check job status", zap.Error(err))
		return
	}

	switch status.State {
	case api.StateCompleted:
		s.finishLocked()
		s.lastErr = nil
		if status.Result != nil {
			sum := result.Aggregate(status.Result)
			s.summary = &sum
			logger.Info(ctx, "job completed", zap.Int("passed", sum.Passed), zap.Int("total", sum.Total))
		} else {
			logger.Info(ctx, "job completed without result")
		}
		s.notifyLocked()
		s.mu.Unlock()
	case api.StateFailed:
		s.finishLocked()
		msg := status.Error
		if msg == "" {
			msg = appErr.JobFailed.Message()
		}
		s.lastErr = appErr.New(appErr.JobFailed).WithMessage(msg).WithDetail("job_id", jobID)
		s.notifyLocked()
		s.mu.Unlock()
		logger.Error(ctx, "job failed", zap.String("error", status.Error))
	default:
		s.mu.Unlock()
		logger.Debug(ctx, "job still in progress", zap.String("state", status.State))
	}
}

func (s *Session) tracking(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobID == jobID
}

// supersedeLocked drops the tracked job and invalidates any submit in flight.
func (s *Session) supersedeLocked() {
	if s.jobID != "" {
		logger.Info(logger.WithJobID(s.ctx, s.jobID), "job superseded, polling stopped")
	}
	s.generation++
	s.finishLocked()
}

func (s *Session) finishLocked() {
	s.jobID = ""
	s.state = Idle
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

// notifyLocked queues a snapshot of the state just changed under mu.
func (s *Session) notifyLocked() {
	if s.onUpdate == nil {
		return
	}
	s.pending = append(s.pending, s.snapshotLocked())
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// dispatch delivers queued snapshots in order. Whatever is queued when the
// session closes is still delivered.
func (s *Session) dispatch() {
	defer s.wg.Done()
	for {
		select {
		case <-s.wake:
			s.flush()
		case <-s.ctx.Done():
			s.flush()
			return
		}
	}
}

func (s *Session) flush() {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, snap := range batch {
		s.onUpdate(snap)
	}
}
