package schema

import (
	"fmt"
)

var ErrInvalidDowngrade = fmt.Errorf("invalid schema downgrade")

// AmbiguousLow and AmbiguousHigh bound the tier of IFC4 dialects
// which cannot always be distinguished by the file header.
const (
	AmbiguousLow  = IFC4Obsolete
	AmbiguousHigh = IFC4
)

// Tracker keeps the effective schema version of one import run.
// It starts with the version detected from the header and may only
// be moved backwards inside the ambiguous IFC4 tier.
type Tracker struct {
	detected Version
	current  Version
}

func NewTracker(v Version) *Tracker {
	return &Tracker{detected: v, current: v}
}

func (t *Tracker) Version() Version {
	return t.current
}

func (t *Tracker) Detected() Version {
	return t.detected
}

func (t *Tracker) AtLeast(v Version) bool {
	return t.current.AtLeast(v)
}

// Downgraded reports whether a runtime downgrade happened.
func (t *Tracker) Downgraded() bool {
	return t.current != t.detected
}

// CanDowngrade reports whether the current version is still
// inside the ambiguous tier and an older dialect is left.
func (t *Tracker) CanDowngrade() bool {
	return t.current > AmbiguousLow && t.current <= AmbiguousHigh
}

// DowngradeTo moves the effective version to an older dialect.
func (t *Tracker) DowngradeTo(v Version) error {
	if t.current < AmbiguousLow || t.current > AmbiguousHigh {
		return fmt.Errorf("%w: current version %s is outside of the ambiguous tier", ErrInvalidDowngrade, t.current)
	}
	if v >= t.current {
		return fmt.Errorf("%w: %s is not older than %s", ErrInvalidDowngrade, v, t.current)
	}
	if v < AmbiguousLow {
		return fmt.Errorf("%w: %s is outside of the ambiguous tier", ErrInvalidDowngrade, v)
	}
	t.current = v
	return nil
}

// Previous returns the next older dialect inside the ambiguous tier.
func (t *Tracker) Previous() (Version, bool) {
	if !t.CanDowngrade() {
		return t.current, false
	}
	return t.current - 1, true
}
