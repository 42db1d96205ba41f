// Package report collects the diagnostics of an import run.
package report

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/mandelsoft/logging"
)

type Severity int

const (
	INFO Severity = iota
	WARNING
	ERROR
)

func (s Severity) String() string {
	switch s {
	case INFO:
		return "info"
	case WARNING:
		return "warning"
	case ERROR:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic is a message related to an entity. Entity is zero for
// file level messages.
type Diagnostic struct {
	Severity Severity
	Entity   int
	Type     string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Entity == 0 {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: #%d(%s): %s", d.Severity, d.Entity, d.Type, d.Message)
}

// Listener is notified about every diagnostic.
type Listener interface {
	Diagnostic(d Diagnostic)
}

// Report collects diagnostics and forwards them to a logger.
type Report struct {
	lock        sync.Mutex
	logger      logging.Logger
	listener    Listener
	diagnostics []Diagnostic
	counts      map[Severity]int
	once        map[string]struct{}
}

func New(logger logging.Logger, l ...Listener) *Report {
	r := &Report{
		logger: logger,
		counts: map[Severity]int{},
		once:   map[string]struct{}{},
	}
	if len(l) > 0 {
		r.listener = l[0]
	}
	return r
}

func (r *Report) Info(entity int, typ string, msg string, args ...interface{}) {
	r.add(Diagnostic{INFO, entity, typ, fmt.Sprintf(msg, args...)})
}

func (r *Report) Warn(entity int, typ string, msg string, args ...interface{}) {
	r.add(Diagnostic{WARNING, entity, typ, fmt.Sprintf(msg, args...)})
}

func (r *Report) Error(entity int, typ string, msg string, args ...interface{}) {
	r.add(Diagnostic{ERROR, entity, typ, fmt.Sprintf(msg, args...)})
}

// Once reports a diagnostic only for the first use of a key.
// It returns whether the diagnostic has been reported.
func (r *Report) Once(key string, sev Severity, entity int, typ string, msg string, args ...interface{}) bool {
	r.lock.Lock()
	_, ok := r.once[key]
	r.once[key] = struct{}{}
	r.lock.Unlock()

	if !ok {
		r.add(Diagnostic{sev, entity, typ, fmt.Sprintf(msg, args...)})
	}
	return !ok
}

func (r *Report) add(d Diagnostic) {
	r.lock.Lock()
	r.diagnostics = append(r.diagnostics, d)
	r.counts[d.Severity]++
	r.lock.Unlock()

	if r.logger != nil {
		keys := []interface{}{"message", d.Message}
		if d.Entity != 0 {
			keys = append(keys, "entity", d.Entity, "type", d.Type)
		}
		switch d.Severity {
		case ERROR:
			r.logger.Error("{{message}}", keys...)
		case WARNING:
			r.logger.Warn("{{message}}", keys...)
		default:
			r.logger.Info("{{message}}", keys...)
		}
	}
	if r.listener != nil {
		r.listener.Diagnostic(d)
	}
}

func (r *Report) Errors() int {
	return r.Count(ERROR)
}

func (r *Report) Warnings() int {
	return r.Count(WARNING)
}

func (r *Report) Count(s Severity) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.counts[s]
}

func (r *Report) Diagnostics() []Diagnostic {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Diagnostic(nil), r.diagnostics...)
}

// ForEntity provides the diagnostics of an entity.
func (r *Report) ForEntity(id int) []Diagnostic {
	r.lock.Lock()
	defer r.lock.Unlock()

	var result []Diagnostic
	for _, d := range r.diagnostics {
		if d.Entity == id {
			result = append(result, d)
		}
	}
	return result
}

// Write prints the summary and all warnings and errors ordered
// by entity.
func (r *Report) Write(w io.Writer) error {
	list := r.Diagnostics()
	sort.SliceStable(list, func(i, j int) bool { return list[i].Entity < list[j].Entity })

	_, err := fmt.Fprintf(w, "errors: %d, warnings: %d\n", r.Errors(), r.Warnings())
	if err != nil {
		return err
	}
	for _, d := range list {
		if d.Severity == INFO {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s\n", d); err != nil {
			return err
		}
	}
	return nil
}
