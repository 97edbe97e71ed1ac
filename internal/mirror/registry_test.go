package mirror

import (
	"testing"
)

// recordingSink collects lifecycle notifications for assertions.
type recordingSink struct {
	created   []HandleID
	updated   []Changes
	destroyed []HandleID
}

func (s *recordingSink) ActorCreated(a *Actor)              { s.created = append(s.created, a.ID()) }
func (s *recordingSink) ActorUpdated(a *Actor, ch Changes)  { s.updated = append(s.updated, ch) }
func (s *recordingSink) ActorDestroyed(a *Actor)            { s.destroyed = append(s.destroyed, a.ID()) }

func newTestRegistry(sink Sink, release ReleaseFunc) *Registry {
	return NewRegistry(Options{
		Sink:       sink,
		Release:    release,
		ScreenSize: func() (int, int) { return 2560, 1440 },
	})
}

func TestAnnounce_SeedsSentinelWorkspaceAndPlaceholderGeometry(t *testing.T) {
	reg := newTestRegistry(nil, nil)
	a := reg.Announce(7)

	if a.Workspace != WorkspaceAll {
		t.Fatalf("expected workspace sentinel %d, got %d", WorkspaceAll, a.Workspace)
	}
	want := Geometry{X: 1280, Y: 720, Width: 1, Height: 1}
	if a.Geometry != want {
		t.Fatalf("expected placeholder geometry %+v, got %+v", want, a.Geometry)
	}
	if a.Geometry.Width*a.Geometry.Height == 0 {
		t.Fatalf("placeholder geometry must have non-zero area")
	}
}

func TestAnnounce_SameHandleReturnsSameActorOnce(t *testing.T) {
	sink := &recordingSink{}
	reg := newTestRegistry(sink, nil)

	a := reg.Announce(3)
	b := reg.Announce(3)
	if a != b {
		t.Fatalf("expected the same actor for a repeated announcement")
	}
	if len(sink.created) != 1 {
		t.Fatalf("expected exactly one creation notification, got %d", len(sink.created))
	}
}

func TestCommit_LastWriteWinsAndSingleNotification(t *testing.T) {
	sink := &recordingSink{}
	reg := newTestRegistry(sink, nil)
	reg.Announce(1)

	reg.SetTitle(1, "first")
	reg.SetTitle(1, "second")
	reg.SetAppID(1, "org.example.app")
	reg.SetState(1, State{Activated: true})
	reg.SetState(1, State{Activated: true, Fullscreen: true})
	reg.Commit(1)

	a, ok := reg.Lookup(1)
	if !ok {
		t.Fatalf("actor missing after commit")
	}
	if a.Title != "second" {
		t.Fatalf("expected last title write to win, got %q", a.Title)
	}
	if a.AppID != "org.example.app" {
		t.Fatalf("unexpected app id %q", a.AppID)
	}
	if !a.Activated || !a.Fullscreen || a.Maximized || a.Minimized {
		t.Fatalf("unexpected state flags: %+v", a)
	}
	if len(sink.updated) != 1 {
		t.Fatalf("expected one update notification per commit, got %d", len(sink.updated))
	}
	ch := sink.updated[0]
	if !ch.Title || !ch.AppID || !ch.State || ch.Parent {
		t.Fatalf("unexpected change flags: %+v", ch)
	}
}

func TestCommit_EmptyBatchRaisesNoNotification(t *testing.T) {
	sink := &recordingSink{}
	reg := newTestRegistry(sink, nil)
	reg.Announce(1)

	reg.Commit(1)

	// Repeating the current value is valid and simply overwrites; the
	// resulting commit changes nothing and stays silent.
	reg.SetTitle(1, "")
	reg.Commit(1)

	if len(sink.updated) != 0 {
		t.Fatalf("expected no update notifications, got %d", len(sink.updated))
	}
}

func TestCommit_BatchesAreIndependentAcrossCommits(t *testing.T) {
	sink := &recordingSink{}
	reg := newTestRegistry(sink, nil)
	reg.Announce(1)

	reg.SetTitle(1, "one")
	reg.Commit(1)
	reg.SetAppID(1, "app")
	reg.Commit(1)

	if len(sink.updated) != 2 {
		t.Fatalf("expected two update notifications, got %d", len(sink.updated))
	}
	if !sink.updated[0].Title || sink.updated[0].AppID {
		t.Fatalf("first commit should only flag title: %+v", sink.updated[0])
	}
	if sink.updated[1].Title || !sink.updated[1].AppID {
		t.Fatalf("second commit should only flag app id: %+v", sink.updated[1])
	}
}

func TestClose_DestroysAndReleasesExactlyOnce(t *testing.T) {
	sink := &recordingSink{}
	var released []HandleID
	reg := newTestRegistry(sink, func(id HandleID) { released = append(released, id) })

	reg.Announce(9)
	reg.Close(9)
	reg.Close(9) // duplicate close must be a no-op

	if len(sink.destroyed) != 1 || sink.destroyed[0] != 9 {
		t.Fatalf("expected exactly one destruction notification for handle 9, got %v", sink.destroyed)
	}
	if len(released) != 1 || released[0] != 9 {
		t.Fatalf("expected exactly one release for handle 9, got %v", released)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry after close")
	}
}

func TestClose_WithoutAnnounceIsNoOp(t *testing.T) {
	sink := &recordingSink{}
	var released int
	reg := newTestRegistry(sink, func(HandleID) { released++ })

	reg.Close(42)

	if len(sink.destroyed) != 0 || released != 0 {
		t.Fatalf("close for an unknown handle must not destroy or release")
	}
}

func TestClose_DropsPendingBatch(t *testing.T) {
	sink := &recordingSink{}
	reg := newTestRegistry(sink, nil)
	reg.Announce(5)
	reg.SetTitle(5, "in flight")
	reg.Close(5)

	// A commit for the closed handle must not resurrect anything.
	reg.Commit(5)
	if len(sink.updated) != 0 {
		t.Fatalf("expected no update after close, got %d", len(sink.updated))
	}
}

func TestFieldEventsForUnknownHandleAreIgnored(t *testing.T) {
	sink := &recordingSink{}
	reg := newTestRegistry(sink, nil)

	reg.SetTitle(77, "ghost")
	reg.SetState(77, State{Activated: true})
	reg.Commit(77)

	if len(sink.updated) != 0 {
		t.Fatalf("field events for unknown handles must not notify")
	}
}

func TestResolveParent(t *testing.T) {
	reg := newTestRegistry(nil, nil)
	child := reg.Announce(1)

	// Never reported.
	if _, ok := reg.ResolveParent(child); ok {
		t.Fatalf("expected absent parent when none was reported")
	}

	// Reported but not yet announced (forward reference).
	reg.SetParent(1, 2)
	reg.Commit(1)
	if _, ok := reg.ResolveParent(child); ok {
		t.Fatalf("expected absent parent for a not-yet-announced handle")
	}

	// Parent appears.
	parent := reg.Announce(2)
	got, ok := reg.ResolveParent(child)
	if !ok || got != parent {
		t.Fatalf("expected parent actor to resolve once announced")
	}

	// Parent closes; the stale reference goes absent again.
	reg.Close(2)
	if _, ok := reg.ResolveParent(child); ok {
		t.Fatalf("expected absent parent after the parent closed")
	}
}

func TestSnapshotOrderedByHandle(t *testing.T) {
	reg := newTestRegistry(nil, nil)
	reg.Announce(30)
	reg.Announce(10)
	reg.Announce(20)

	snap := reg.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 actors, got %d", len(snap))
	}
	for i, want := range []HandleID{10, 20, 30} {
		if snap[i].ID() != want {
			t.Fatalf("snapshot[%d] = %d, want %d", i, snap[i].ID(), want)
		}
	}
}

func TestTeardownAll_ReleasesEachHandleOnce(t *testing.T) {
	sink := &recordingSink{}
	released := map[HandleID]int{}
	reg := newTestRegistry(sink, func(id HandleID) { released[id]++ })

	reg.Announce(1)
	reg.Announce(2)
	reg.Announce(3)
	reg.Close(2) // closed by the compositor before shutdown
	reg.TeardownAll()

	if reg.Len() != 0 {
		t.Fatalf("expected empty registry after teardown")
	}
	for _, id := range []HandleID{1, 2, 3} {
		if released[id] != 1 {
			t.Fatalf("handle %d released %d times, want 1", id, released[id])
		}
	}
	if len(sink.destroyed) != 3 {
		t.Fatalf("expected 3 destruction notifications, got %d", len(sink.destroyed))
	}
}
