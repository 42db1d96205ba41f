package importer

import (
	"fmt"

	"github.com/mandelsoft/goutils/errors"
)

var (
	ErrNoProject        = errors.New("no project found")
	ErrMissingAttribute = errors.New("missing required attribute")
)

type ResultKind int

const (
	IMPORTED ResultKind = iota
	SKIPPED
	FAILED
)

func (k ResultKind) String() string {
	switch k {
	case IMPORTED:
		return "imported"
	case SKIPPED:
		return "skipped"
	case FAILED:
		return "failed"
	}
	return fmt.Sprintf("result(%d)", int(k))
}

// Result is the outcome of the materialization of a record.
type Result struct {
	Kind   ResultKind
	Reason string
	Err    error
}

var Imported = Result{Kind: IMPORTED}

func Skipped(reason string, args ...interface{}) Result {
	return Result{Kind: SKIPPED, Reason: fmt.Sprintf(reason, args...)}
}

func Failed(err error) Result {
	return Result{Kind: FAILED, Reason: err.Error(), Err: err}
}

func (r Result) IsImported() bool {
	return r.Kind == IMPORTED
}

func (r Result) IsSkipped() bool {
	return r.Kind == SKIPPED
}

func (r Result) IsFailed() bool {
	return r.Kind == FAILED
}

func (r Result) String() string {
	if r.Reason == "" {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Reason)
}
