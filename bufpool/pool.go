// Package bufpool implements the pin-counted page cache the B+ tree core
// pins and unpins through: alloc, read, unpin(dirty), flush. It is the
// concrete form of the buffer manager that spec.md treats as an external
// collaborator. Since the index above it is single-writer (no concurrency
// control, no WAL, no crash recovery beyond flush-on-close), the pool itself
// needs no latches or transaction bookkeeping — pinning alone is enough to
// keep a frame resident while the core holds it.
package bufpool

import (
	"fmt"

	"bpindex/diskfile"
)

// DefaultPoolSize is the number of frames the pool holds when a caller does
// not specify one.
const DefaultPoolSize = 64

// Pool is a fixed-size cache of page frames backed by a diskfile.File.
type Pool struct {
	file     *diskfile.File
	pageSize int // content bytes per frame, excluding the checksum trailer

	frames     []*Frame
	pageMap    map[uint64]int // page id -> frame index
	freeFrames []int
	replacer   *clockReplacer
}

// New wraps file with a pool of poolSize frames.
func New(file *diskfile.File, poolSize int) *Pool {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}

	free := make([]int, poolSize)
	for i := range free {
		free[i] = i
	}

	return &Pool{
		file:       file,
		pageSize:   file.PageSize() - checksumSize,
		frames:     make([]*Frame, poolSize),
		pageMap:    make(map[uint64]int, poolSize),
		freeFrames: free,
		replacer:   newClockReplacer(poolSize),
	}
}

// PageSize returns the content bytes available per page, i.e. what node
// layouts in package bptree size themselves against.
func (p *Pool) PageSize() int { return p.pageSize }

// Alloc grows the backing file by one page and returns it pinned, with pin
// count 1 and zeroed content.
func (p *Pool) Alloc() (*Frame, error) {
	pageID, err := p.file.Alloc()
	if err != nil {
		return nil, err
	}

	frameIdx, err := p.claimFrame()
	if err != nil {
		return nil, err
	}

	f := p.frames[frameIdx]
	for i := range f.raw {
		f.raw[i] = 0
	}
	f.PageID = pageID
	f.dirty = false
	f.pinCount = 0
	f.incrPin()
	p.pageMap[pageID] = frameIdx
	p.replacer.pin(frameIdx)

	return f, nil
}

// Read pins pageID, reading it from disk if it is not already resident.
func (p *Pool) Read(pageID uint64) (*Frame, error) {
	if frameIdx, ok := p.pageMap[pageID]; ok {
		f := p.frames[frameIdx]
		f.incrPin()
		p.replacer.pin(frameIdx)
		return f, nil
	}

	frameIdx, err := p.claimFrame()
	if err != nil {
		return nil, err
	}

	f := p.frames[frameIdx]
	if err := p.file.ReadPage(pageID, f.raw); err != nil {
		p.freeFrames = append(p.freeFrames, frameIdx)
		return nil, err
	}
	if err := verifyChecksum(f.raw); err != nil {
		p.freeFrames = append(p.freeFrames, frameIdx)
		return nil, err
	}

	f.PageID = pageID
	f.dirty = false
	f.pinCount = 0
	f.incrPin()
	p.pageMap[pageID] = frameIdx
	p.replacer.pin(frameIdx)

	return f, nil
}

// Unpin releases one pin on pageID. dirty is ORed onto the frame's dirty
// bit; it must be true whenever the caller mutated the page's bytes while
// holding it. Unpinning a page that is not resident, or whose pin count is
// already zero, is a caller bug and panics rather than returning an error.
func (p *Pool) Unpin(pageID uint64, dirty bool) {
	frameIdx, ok := p.pageMap[pageID]
	if !ok {
		panic(fmt.Sprintf("bufpool: unpin of page %d which is not resident", pageID))
	}

	f := p.frames[frameIdx]
	if dirty {
		f.SetDirty()
	}

	if f.pinCountValue() <= 0 {
		panic(fmt.Sprintf("bufpool: unpin of page %d with pin count %d", pageID, f.pinCountValue()))
	}

	f.decrPin()
	if f.pinCountValue() == 0 {
		p.replacer.unpin(frameIdx)
	}
}

// Flush writes every dirty frame back to disk and clears their dirty bits,
// then syncs the file. It does not evict any frame.
func (p *Pool) Flush() error {
	for pageID, frameIdx := range p.pageMap {
		f := p.frames[frameIdx]
		if !f.IsDirty() {
			continue
		}
		stampChecksum(f.raw)
		if err := p.file.WritePage(pageID, f.raw); err != nil {
			return err
		}
		f.setClean()
	}
	return p.file.Sync()
}

// Close flushes the pool and closes the backing file.
func (p *Pool) Close() error {
	if err := p.Flush(); err != nil {
		return err
	}
	return p.file.Close()
}

// claimFrame returns an empty frame index, evicting a victim if none is
// free.
func (p *Pool) claimFrame() (int, error) {
	if n := len(p.freeFrames); n > 0 {
		idx := p.freeFrames[n-1]
		p.freeFrames = p.freeFrames[:n-1]
		if p.frames[idx] == nil {
			p.frames[idx] = newFrame(p.pageSize + checksumSize)
		}
		return idx, nil
	}

	victimIdx, err := p.replacer.chooseVictim()
	if err != nil {
		return 0, err
	}

	victim := p.frames[victimIdx]
	if victim.IsDirty() {
		stampChecksum(victim.raw)
		if err := p.file.WritePage(victim.PageID, victim.raw); err != nil {
			return 0, err
		}
		victim.setClean()
	}
	delete(p.pageMap, victim.PageID)
	return victimIdx, nil
}
