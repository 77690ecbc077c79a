package console

import (
	"io"
	"sync"
)

// OSFile is a subset of the functionality implemented by os.File.
type OSFile interface {
	Fd() uintptr
}

// Writer syncs writes to stdout and stderr with a mutex shared by the
// Console, so lines from both never interleave mid-write.
type Writer struct {
	// RawOut is where the bytes end up, e.g. a colorable wrapper of os.Stdout.
	RawOut io.Writer
	// File, if set, is the underlying terminal file, used to query its size.
	File  OSFile
	IsTTY bool

	mutex *sync.Mutex
}

// NewWriter returns a Writer over out. file may be nil when out is not backed
// by a file descriptor.
func NewWriter(out io.Writer, file OSFile, isTTY bool) *Writer {
	return &Writer{RawOut: out, File: file, IsTTY: isTTY, mutex: &sync.Mutex{}}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.RawOut.Write(p)
}
