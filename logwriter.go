package main

import (
	"bytes"
	"io"
	"sync"
)

// deferredWriter buffers writes until Attach names the real destination
type deferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	out io.Writer
}

func (d *deferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.out != nil {
		return d.out.Write(p)
	}
	return d.buf.Write(p)
}

// Attach flushes the buffered lines to w and sends later writes straight to it
func (d *deferredWriter) Attach(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = w
	_, err := w.Write(d.buf.Bytes())
	d.buf.Reset()
	return err
}

// String returns what is buffered and not yet attached
func (d *deferredWriter) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.String()
}
