// Package session drives search-as-you-type: debounced queries, category selection,
// stale-response discard and "load more" accumulation.
package session

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
	"github.com/kailas-cloud/devindex/internal/logger"
)

// DefaultDebounce coalesces keystrokes into one fetch.
const DefaultDebounce = 300 * time.Millisecond

// State is the phase of the session.
type State int

// Session states.
const (
	Idle State = iota
	Debouncing
	Loading
	Loaded
	LoadingMore
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadingMore:
		return "loading_more"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher executes one planned search call.
type Fetcher interface {
	Search(ctx context.Context, p request.Params) (result.Response, error)
}

// Planner turns a request into engine parameters.
type Planner interface {
	Plan(req request.Request) (request.Params, error)
	PageSize() int
}

// Executor runs a fetch task. The default starts a goroutine.
type Executor func(task func())

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	State      State
	Query      string
	Categories []string
	Hits       []document.Document
	Total      int
	Page       int
	HasMore    bool
	Facets     map[string]int
	Err        error
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = NewDebouncer(d) }
}

// WithExecutor replaces the goroutine-per-fetch executor.
func WithExecutor(exec Executor) Option {
	return func(s *Session) { s.exec = exec }
}

// OnChange registers a listener called after every state change, outside the lock.
func OnChange(fn func(Snapshot)) Option {
	return func(s *Session) { s.listener = fn }
}

// Session owns the query, the category selection and the accumulated results.
// Commands may be called from any goroutine.
type Session struct {
	ctx      context.Context
	planner  Planner
	fetcher  Fetcher
	debounce *Debouncer
	exec     Executor
	listener func(Snapshot)

	mu         sync.Mutex
	state      State
	query      string
	categories []string
	acc        *Accumulator
	err        error
	// gen identifies the current result set; responses tagged with an older gen are stale.
	gen uint64
}

// New creates an idle session. Fetches run with ctx.
func New(ctx context.Context, p Planner, f Fetcher, opts ...Option) *Session {
	s := &Session{
		ctx:      ctx,
		planner:  p,
		fetcher:  f,
		debounce: NewDebouncer(DefaultDebounce),
		exec:     func(task func()) { go task() },
		acc:      NewAccumulator(p.PageSize()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQuery changes the query text. Blank text returns the session to Idle.
func (s *Session) SetQuery(q string) {
	s.mu.Lock()
	if q == s.query {
		s.mu.Unlock()
		return
	}
	s.query = q
	s.changedLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// SetCategories replaces the selection. Order is kept; duplicates are dropped.
func (s *Session) SetCategories(labels ...string) {
	var sel []string
	for _, l := range labels {
		if l != "" && !slices.Contains(sel, l) {
			sel = append(sel, l)
		}
	}
	s.updateSelection(func([]string) []string { return sel })
}

// ToggleCategory makes label the only selected category, or clears the selection
// when it already is.
func (s *Session) ToggleCategory(label string) {
	s.updateSelection(func(cur []string) []string {
		if len(cur) == 1 && cur[0] == label {
			return nil
		}
		return []string{label}
	})
}

// AddCategory extends a multi-selection with label.
func (s *Session) AddCategory(label string) {
	s.updateSelection(func(cur []string) []string {
		if slices.Contains(cur, label) {
			return cur
		}
		return append(slices.Clone(cur), label)
	})
}

// RemoveCategory drops label from the selection.
func (s *Session) RemoveCategory(label string) {
	s.updateSelection(func(cur []string) []string {
		return slices.DeleteFunc(slices.Clone(cur), func(l string) bool { return l == label })
	})
}

func (s *Session) updateSelection(fn func([]string) []string) {
	s.mu.Lock()
	next := fn(s.categories)
	if sameSelection(next, s.categories) {
		s.mu.Unlock()
		return
	}
	s.categories = next
	s.changedLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// sameSelection reports whether a and b select the same categories in any order.
// The loaded pages stay valid when only the order changes.
func sameSelection(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// changedLocked discards the current result set and either idles or restarts the debounce.
func (s *Session) changedLocked() {
	s.gen++
	s.acc.Reset()
	s.err = nil

	if strings.TrimSpace(s.query) == "" {
		s.debounce.Cancel()
		s.state = Idle
		return
	}
	s.state = Debouncing
	s.debounce.Trigger(s.fire)
}

// Flush starts a pending debounced fetch immediately. Reports whether one was pending.
func (s *Session) Flush() bool {
	return s.debounce.Flush()
}

// LoadMore fetches the next page. It is a no-op unless results are loaded, more exist
// and no fetch is in flight. Reports whether a fetch started.
func (s *Session) LoadMore() bool {
	s.mu.Lock()
	if s.state != Loaded || !s.acc.HasMore() {
		s.mu.Unlock()
		return false
	}
	s.state = LoadingMore
	task, ok := s.taskLocked(s.acc.Page() + 1)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	if ok {
		s.exec(task)
	}
	return ok
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels any pending debounce.
func (s *Session) Close() {
	s.debounce.Cancel()
}

// fire runs when the debounce elapses: it starts page 1 of the current result set.
func (s *Session) fire() {
	s.mu.Lock()
	if s.state != Debouncing {
		s.mu.Unlock()
		return
	}
	s.state = Loading
	task, ok := s.taskLocked(1)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	if ok {
		s.exec(task)
	}
}

// taskLocked plans page and returns the fetch task tagged with the current generation.
// A planning error fails the session at once.
func (s *Session) taskLocked(page int) (func(), bool) {
	req, err := request.New(s.query, s.categories, page)
	var params request.Params
	if err == nil {
		params, err = s.planner.Plan(req)
	}
	if err != nil {
		s.failLocked(err)
		return nil, false
	}

	gen := s.gen
	return func() {
		resp, err := s.fetcher.Search(s.ctx, params)
		s.complete(gen, page, resp, err)
	}, true
}

func (s *Session) complete(gen uint64, page int, resp result.Response, err error) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		logger.FromContext(s.ctx).Debug("discarding stale response", zap.Int("page", page))
		return
	}

	switch {
	case err != nil:
		s.failLocked(err)
	case page == 1:
		s.acc.Reset()
		s.acc.Append(resp)
		s.state = Loaded
	default:
		s.acc.Append(resp)
		s.state = Loaded
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// failLocked empties the results and records err; the session waits for the next command.
func (s *Session) failLocked(err error) {
	s.acc.Reset()
	s.err = err
	s.state = Failed
	logger.FromContext(s.ctx).Warn("search failed", zap.String("query", s.query), zap.Error(err))
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:      s.state,
		Query:      s.query,
		Categories: slices.Clone(s.categories),
		Hits:       s.acc.Hits(),
		Total:      s.acc.Total(),
		Page:       s.acc.Page(),
		HasMore:    s.acc.HasMore(),
		Facets:     s.acc.Facets(),
		Err:        s.err,
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.listener != nil {
		s.listener(snap)
	}
}
