package mirror

import (
	"log/slog"
	"sort"
	"sync"
)

// Sink receives actor lifecycle notifications. Created fires once per
// announced handle, Updated once per protocol commit that changed anything,
// Destroyed exactly once when the handle closes.
type Sink interface {
	ActorCreated(a *Actor)
	ActorUpdated(a *Actor, changed Changes)
	ActorDestroyed(a *Actor)
}

// ReleaseFunc frees the protocol-side resources of a closed handle. The
// registry guarantees it runs exactly once per handle.
type ReleaseFunc func(id HandleID)

// ScreenSizeFunc reports the primary display size used to seed placeholder
// geometry for freshly announced windows.
type ScreenSizeFunc func() (width, height int)

// Options configures a Registry. All fields are optional; nil callbacks
// default to no-ops.
type Options struct {
	Sink       Sink
	Release    ReleaseFunc
	ScreenSize ScreenSizeFunc
	Logger     *slog.Logger
}

// pendingBatch accumulates per-handle field events between two protocol
// commits. Nil pointers mean "not touched since the last commit".
type pendingBatch struct {
	title  *string
	appID  *string
	state  *State
	parent *HandleID
}

// Registry is the single writer of all mirrored window state. Protocol
// events arrive on one dispatch goroutine; the mutex only guards concurrent
// readers (the control plane) against that writer.
type Registry struct {
	mu      sync.Mutex
	actors  map[HandleID]*Actor
	pending map[HandleID]*pendingBatch

	sink       Sink
	release    ReleaseFunc
	screenSize ScreenSizeFunc
	logger     *slog.Logger
}

type nopSink struct{}

func (nopSink) ActorCreated(*Actor)          {}
func (nopSink) ActorUpdated(*Actor, Changes) {}
func (nopSink) ActorDestroyed(*Actor)        {}

// NewRegistry creates an empty mirror registry.
func NewRegistry(opts Options) *Registry {
	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	release := opts.Release
	if release == nil {
		release = func(HandleID) {}
	}
	screen := opts.ScreenSize
	if screen == nil {
		screen = func() (int, int) { return 0, 0 }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		actors:     make(map[HandleID]*Actor),
		pending:    make(map[HandleID]*pendingBatch),
		sink:       sink,
		release:    release,
		screenSize: screen,
		logger:     logger,
	}
}

// Announce registers a new handle and returns its actor. The protocol
// guarantees announcement precedes any field event, so the actor is seeded
// with the all-workspaces sentinel and a 1x1 placeholder centered on the
// primary display (paintable before real geometry is known).
func (r *Registry) Announce(id HandleID) *Actor {
	r.mu.Lock()
	if a, ok := r.actors[id]; ok {
		r.mu.Unlock()
		return a
	}
	w, h := r.screenSize()
	a := &Actor{
		id:        id,
		Workspace: WorkspaceAll,
		Geometry:  Geometry{X: w / 2, Y: h / 2, Width: 1, Height: 1},
	}
	r.actors[id] = a
	r.mu.Unlock()

	r.logger.Debug("toplevel announced", "handle", uint32(id))
	r.sink.ActorCreated(a)
	return a
}

// SetTitle buffers a title replacement until the next commit.
func (r *Registry) SetTitle(id HandleID, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.batch(id); b != nil {
		b.title = &title
	}
}

// SetAppID buffers an application id replacement until the next commit.
func (r *Registry) SetAppID(id HandleID, appID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.batch(id); b != nil {
		b.appID = &appID
	}
}

// SetState buffers the four state flags until the next commit.
func (r *Registry) SetState(id HandleID, st State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.batch(id); b != nil {
		b.state = &st
	}
}

// SetParent buffers a parent handle change until the next commit. A zero
// parent clears the relationship.
func (r *Registry) SetParent(id, parent HandleID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.batch(id); b != nil {
		b.parent = &parent
	}
}

// batch returns the pending accumulator for a live handle, nil for unknown
// handles. Callers hold r.mu.
func (r *Registry) batch(id HandleID) *pendingBatch {
	if _, ok := r.actors[id]; !ok {
		return nil
	}
	b, ok := r.pending[id]
	if !ok {
		b = &pendingBatch{}
		r.pending[id] = b
	}
	return b
}

// Commit flushes the pending batch into the actor. All field events since
// the previous commit become one atomic snapshot; the sink is notified once,
// with per-group change flags. Last write wins within a batch.
func (r *Registry) Commit(id HandleID) {
	r.mu.Lock()
	a, ok := r.actors[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	b, ok := r.pending[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.pending, id)

	var ch Changes
	if b.title != nil && *b.title != a.Title {
		a.Title = *b.title
		ch.Title = true
	}
	if b.appID != nil && *b.appID != a.AppID {
		a.AppID = *b.appID
		ch.AppID = true
	}
	if b.state != nil {
		st := *b.state
		if st.Activated != a.Activated || st.Maximized != a.Maximized ||
			st.Minimized != a.Minimized || st.Fullscreen != a.Fullscreen {
			a.Activated = st.Activated
			a.Maximized = st.Maximized
			a.Minimized = st.Minimized
			a.Fullscreen = st.Fullscreen
			ch.State = true
		}
	}
	if b.parent != nil && *b.parent != a.parent {
		a.parent = *b.parent
		ch.Parent = true
	}
	r.mu.Unlock()

	if ch.Any() {
		r.sink.ActorUpdated(a, ch)
	}
}

// Close destroys the actor for a handle and releases the handle's protocol
// resources exactly once. Further calls for the same handle are no-ops, so
// a duplicate close event cannot double-release.
func (r *Registry) Close(id HandleID) {
	r.mu.Lock()
	a, ok := r.actors[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.actors, id)
	delete(r.pending, id)
	r.mu.Unlock()

	r.logger.Debug("toplevel closed", "handle", uint32(id))
	r.sink.ActorDestroyed(a)
	r.release(id)
}

// Lookup returns the live actor for a handle.
func (r *Registry) Lookup(id HandleID) (*Actor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.actors[id]
	return a, ok
}

// ResolveParent returns the actor backing a window's transient parent.
// Absent when no parent was ever reported, or when the reported handle does
// not map to a live actor (not yet announced, or already closed).
func (r *Registry) ResolveParent(a *Actor) (*Actor, bool) {
	if a == nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pid := a.parent
	if pid == 0 {
		return nil, false
	}
	p, ok := r.actors[pid]
	return p, ok
}

// Snapshot returns a copy of all live actors, ordered by handle id.
func (r *Registry) Snapshot() []Actor {
	r.mu.Lock()
	out := make([]Actor, 0, len(r.actors))
	for _, a := range r.actors {
		out = append(out, *a)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Len reports the number of live actors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actors)
}

// TeardownAll destroys every remaining actor, used during shutdown so each
// handle's resources are still released exactly once.
func (r *Registry) TeardownAll() {
	r.mu.Lock()
	ids := make([]HandleID, 0, len(r.actors))
	for id := range r.actors {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		r.Close(id)
	}
}
