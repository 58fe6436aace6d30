package diagnostics

import (
	"fmt"
	"io"
	"sync"
)

type Reporter interface {
	Report(err *Error)
}

type ReporterFunc func(err *Error)

func (f ReporterFunc) Report(err *Error) {
	f(err)
}

// Discard drops every report.
var Discard Reporter = ReporterFunc(func(*Error) {})

type Collector struct {
	mu     sync.Mutex
	errors List
}

func (c *Collector) Report(err *Error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

func (c *Collector) HadError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) != 0
}

func (c *Collector) Errors() List {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(List(nil), c.errors...)
}

// Err returns nil when nothing was reported.
func (c *Collector) Err() error {
	if errs := c.Errors(); len(errs) != 0 {
		return errs
	}
	return nil
}

type WriterReporter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) Report(err *Error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.w, err.Error())
}

type multiReporter []Reporter

func (m multiReporter) Report(err *Error) {
	for _, r := range m {
		r.Report(err)
	}
}

func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}
