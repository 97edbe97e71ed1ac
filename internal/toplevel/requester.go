package toplevel

// Requester issues window-control requests on toplevel handles. All requests
// are fire-and-forget: the only confirmation is a later state/done event
// pair on the same handle.
type Requester struct {
	conn Conn
}

// NewRequester creates a requester over a Wayland connection.
func NewRequester(conn Conn) *Requester {
	return &Requester{conn: conn}
}

// Activate focuses the window using the given seat.
func (r *Requester) Activate(handle, seat uint32) error {
	return r.conn.SendRequest(handle, handleReqActivate, seat)
}

// Close asks the window to close gracefully.
func (r *Requester) Close(handle uint32) error {
	return r.conn.SendRequest(handle, handleReqClose)
}

// SetMinimized minimizes the window.
func (r *Requester) SetMinimized(handle uint32) error {
	return r.conn.SendRequest(handle, handleReqSetMinimized)
}

// SetMaximized maximizes or unmaximizes the window.
func (r *Requester) SetMaximized(handle uint32, on bool) error {
	if on {
		return r.conn.SendRequest(handle, handleReqSetMaximized)
	}
	return r.conn.SendRequest(handle, handleReqUnsetMaximized)
}

// SetFullscreen toggles fullscreen. A null output means "current output".
func (r *Requester) SetFullscreen(handle uint32, on bool) error {
	if on {
		return r.conn.SendRequest(handle, handleReqSetFullscreen, nil)
	}
	return r.conn.SendRequest(handle, handleReqUnsetFullscreen)
}

// SetRectangle tells the compositor where the window's dock thumbnail lives
// on the given surface, for minimize animations.
func (r *Requester) SetRectangle(handle, surface uint32, x, y, w, h int32) error {
	return r.conn.SendRequest(handle, handleReqSetRectangle, surface, x, y, w, h)
}

// Destroy releases the client-side handle resources. Called exactly once per
// handle by the mirror's release path.
func (r *Requester) Destroy(handle uint32) error {
	return r.conn.SendRequest(handle, handleReqDestroy)
}
