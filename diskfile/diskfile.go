// Package diskfile implements the page-addressable blob file the buffer
// pool reads and writes through. Page ids are monotonically increasing
// positive integers; page id 0 is reserved to mean "no such page" and is
// never handed out by Alloc.
package diskfile

import (
	"fmt"
	"io"
	"os"
)

// DefaultPageSize is the size of a page on disk, including the checksum
// trailer the buffer pool appends. 4096 matches the common OS page size.
const DefaultPageSize = 4096

// File is a fixed-page-size file on disk. It knows nothing about what the
// pages mean; that is the buffer pool's and the index's job.
type File struct {
	f          *os.File
	name       string
	pageSize   int
	lastPageID uint64
}

// Open opens name if it exists, or creates it if it does not. existed
// reports which branch was taken so callers (the index's lifecycle) know
// whether to read an existing meta page or bootstrap a new one.
func Open(name string, pageSize int) (file *File, existed bool, err error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if _, statErr := os.Stat(name); statErr == nil {
		existed = true
	} else if !os.IsNotExist(statErr) {
		return nil, false, statErr
	}

	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, false, fmt.Errorf("diskfile: open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, false, err
	}

	size := info.Size()
	if size%int64(pageSize) != 0 {
		f.Close()
		return nil, false, fmt.Errorf("diskfile: %s size %d is not a multiple of page size %d", name, size, pageSize)
	}

	return &File{
		f:          f,
		name:       name,
		pageSize:   pageSize,
		lastPageID: uint64(size) / uint64(pageSize),
	}, existed, nil
}

func (d *File) PageSize() int { return d.pageSize }

// Alloc grows the file by one page and returns its id. The new page's bytes
// on disk are zeroed; callers must fill and flush them before relying on
// their content.
func (d *File) Alloc() (pageID uint64, err error) {
	d.lastPageID++
	blank := make([]byte, d.pageSize)
	if err := d.WritePage(d.lastPageID, blank); err != nil {
		d.lastPageID--
		return 0, err
	}
	return d.lastPageID, nil
}

// LastPageID returns the id of the most recently allocated page, or 0 if
// none has been allocated yet.
func (d *File) LastPageID() uint64 { return d.lastPageID }

func (d *File) ReadPage(pageID uint64, dst []byte) error {
	if pageID == 0 {
		return fmt.Errorf("diskfile: page id 0 is reserved")
	}
	if len(dst) != d.pageSize {
		return fmt.Errorf("diskfile: read buffer is %d bytes, want %d", len(dst), d.pageSize)
	}

	off := int64(pageID-1) * int64(d.pageSize)
	n, err := d.f.ReadAt(dst, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("diskfile: read page %d: %w", pageID, err)
	}
	if n != d.pageSize {
		return fmt.Errorf("diskfile: short read on page %d: got %d of %d bytes", pageID, n, d.pageSize)
	}
	return nil
}

func (d *File) WritePage(pageID uint64, src []byte) error {
	if pageID == 0 {
		return fmt.Errorf("diskfile: page id 0 is reserved")
	}
	if len(src) != d.pageSize {
		return fmt.Errorf("diskfile: write buffer is %d bytes, want %d", len(src), d.pageSize)
	}

	off := int64(pageID-1) * int64(d.pageSize)
	n, err := d.f.WriteAt(src, off)
	if err != nil {
		return fmt.Errorf("diskfile: write page %d: %w", pageID, err)
	}
	if n != d.pageSize {
		return fmt.Errorf("diskfile: short write on page %d: wrote %d of %d bytes", pageID, n, d.pageSize)
	}
	return nil
}

func (d *File) Sync() error {
	return d.f.Sync()
}

func (d *File) Close() error {
	return d.f.Close()
}

func (d *File) Name() string { return d.name }
