// Package progress provides sinks observing the progress of an import.
package progress

import (
	"sync"
)

// Sink is notified about import progress.
// Implementations must be safe for concurrent use.
type Sink interface {
	Pass(n int)
	Processed(typ string)
	Created(kind string)
	Diagnostic(severity string)
}

type nop struct{}

func (nop) Pass(int)          {}
func (nop) Processed(string)  {}
func (nop) Created(string)    {}
func (nop) Diagnostic(string)  {}

var Nop Sink = nop{}

////////////////////////////////////////////////////////////////////////////////

// Counter is a Sink keeping the counts in memory.
type Counter struct {
	lock        sync.Mutex
	pass        int
	processed   map[string]int
	created     map[string]int
	diagnostics map[string]int
}

var _ Sink = (*Counter)(nil)

func NewCounter() *Counter {
	return &Counter{
		processed:   map[string]int{},
		created:     map[string]int{},
		diagnostics: map[string]int{},
	}
}

func (c *Counter) Pass(n int) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.pass = n
}

func (c *Counter) Processed(typ string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.processed[typ]++
}

func (c *Counter) Created(kind string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.created[kind]++
}

func (c *Counter) Diagnostic(severity string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.diagnostics[severity]++
}

func (c *Counter) CurrentPass() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.pass
}

func (c *Counter) ProcessedCount(typ string) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.processed[typ]
}

func (c *Counter) CreatedCount(kind string) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.created[kind]
}

func (c *Counter) DiagnosticCount(severity string) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.diagnostics[severity]
}

// TotalCreated provides the number of created elements of all kinds.
func (c *Counter) TotalCreated() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	n := 0
	for _, v := range c.created {
		n += v
	}
	return n
}

////////////////////////////////////////////////////////////////////////////////

type multi []Sink

// Multi forwards to all given sinks. Nil sinks are ignored.
func Multi(sinks ...Sink) Sink {
	var m multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	switch len(m) {
	case 0:
		return Nop
	case 1:
		return m[0]
	}
	return m
}

func (m multi) Pass(n int) {
	for _, s := range m {
		s.Pass(n)
	}
}

func (m multi) Processed(typ string) {
	for _, s := range m {
		s.Processed(typ)
	}
}

func (m multi) Created(kind string) {
	for _, s := range m {
		s.Created(kind)
	}
}

func (m multi) Diagnostic(severity string) {
	for _, s := range m {
		s.Diagnostic(severity)
	}
}
