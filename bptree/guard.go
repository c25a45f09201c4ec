package bptree

import "bpindex/bufpool"

// guard is a scoped pin: it borrows a pool frame and guarantees exactly one
// Unpin call, with whatever dirty flag the caller set before release runs.
// This is the core's answer to spec.md's requirement that every pin
// acquired be released on every exit path, including error paths — callers
// either defer release() immediately after acquiring one or, like the scan
// cursor, release it explicitly, and never call Unpin directly.
type guard struct {
	pool     *bufpool.Pool
	frame    *bufpool.Frame
	dirty    bool
	released bool
}

func newGuard(pool *bufpool.Pool, frame *bufpool.Frame) *guard {
	return &guard{pool: pool, frame: frame}
}

// markDirty records that bytes were mutated while this frame was held.
// release later ORs this onto the frame's dirty bit.
func (g *guard) markDirty() { g.dirty = true }

// pageID returns the page this guard is pinning.
func (g *guard) pageID() Pointer { return Pointer(g.frame.PageID) }

// content returns the page's raw bytes for a node layout to overlay.
func (g *guard) content() []byte { return g.frame.Content() }

// release unpins the frame. It is idempotent: calling it twice only unpins
// once, so a function can both `defer g.release()` and release early on one
// path without double-unpinning.
func (g *guard) release() {
	if g.released {
		return
	}
	g.released = true
	g.pool.Unpin(uint64(g.pageID()), g.dirty)
}
