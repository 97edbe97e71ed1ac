package mirror

// HandleID identifies one remote toplevel at the protocol layer. The
// compositor owns the handle; the mirror only stores the numeric id.
type HandleID uint32

// WorkspaceAll marks a window as visible on every workspace. Niri creates
// workspaces dynamically, so a freshly announced window cannot be attributed
// to one; keeping it on all workspaces keeps the dock usable.
const WorkspaceAll = -1

// Geometry is a window position and size in surface coordinates.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Actor mirrors one remote toplevel window. Fields are only written by the
// Registry when a protocol commit lands; everything else reads.
type Actor struct {
	id HandleID

	Title      string
	AppID      string
	Activated  bool
	Maximized  bool
	Minimized  bool
	Fullscreen bool

	// Workspace is a 0-based index or WorkspaceAll.
	Workspace int
	Geometry  Geometry

	// parent is the raw handle id reported by the compositor, 0 when unset.
	// Resolution to an actor happens lazily via Registry.ResolveParent
	// because the parent may not have been announced yet.
	parent HandleID
}

// ID returns the backing handle id. Stable for the actor's lifetime.
func (a *Actor) ID() HandleID { return a.id }

// ParentHandle returns the raw parent handle id, 0 when no parent was
// reported.
func (a *Actor) ParentHandle() HandleID { return a.parent }

// Changes records which attribute groups a commit touched.
type Changes struct {
	Title  bool
	AppID  bool
	State  bool
	Parent bool
}

// Any reports whether the commit changed anything at all.
func (c Changes) Any() bool {
	return c.Title || c.AppID || c.State || c.Parent
}

// State is the four-flag window state derived from one protocol state event.
type State struct {
	Activated  bool
	Maximized  bool
	Minimized  bool
	Fullscreen bool
}
