package toplevel

import "testing"

func TestRequesterOpcodes(t *testing.T) {
	conn := newFakeConn()
	r := NewRequester(conn)

	if err := r.Activate(5, 2); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := r.Close(5); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := r.SetMinimized(5); err != nil {
		t.Fatalf("set minimized: %v", err)
	}
	if err := r.SetMaximized(5, true); err != nil {
		t.Fatalf("set maximized: %v", err)
	}
	if err := r.SetMaximized(5, false); err != nil {
		t.Fatalf("unset maximized: %v", err)
	}
	if err := r.SetFullscreen(5, true); err != nil {
		t.Fatalf("set fullscreen: %v", err)
	}
	if err := r.SetFullscreen(5, false); err != nil {
		t.Fatalf("unset fullscreen: %v", err)
	}
	if err := r.SetRectangle(5, 9, 1, 2, 3, 4); err != nil {
		t.Fatalf("set rectangle: %v", err)
	}
	if err := r.Destroy(5); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	wantOpcodes := []uint16{
		handleReqActivate,
		handleReqClose,
		handleReqSetMinimized,
		handleReqSetMaximized,
		handleReqUnsetMaximized,
		handleReqSetFullscreen,
		handleReqUnsetFullscreen,
		handleReqSetRectangle,
		handleReqDestroy,
	}
	if len(conn.requests) != len(wantOpcodes) {
		t.Fatalf("expected %d requests, got %d", len(wantOpcodes), len(conn.requests))
	}
	for i, want := range wantOpcodes {
		if conn.requests[i].object != 5 {
			t.Fatalf("request %d targeted object %d, want 5", i, conn.requests[i].object)
		}
		if conn.requests[i].opcode != want {
			t.Fatalf("request %d used opcode %d, want %d", i, conn.requests[i].opcode, want)
		}
	}

	// Activate carries the seat object.
	if seat, ok := conn.requests[0].args[0].(uint32); !ok || seat != 2 {
		t.Fatalf("activate must carry the seat id, got %v", conn.requests[0].args)
	}
	// set_fullscreen with "current output" carries a null object.
	if conn.requests[5].args[0] != nil {
		t.Fatalf("set_fullscreen should pass a null output, got %v", conn.requests[5].args)
	}
}
