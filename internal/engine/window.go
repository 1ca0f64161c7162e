package engine

import (
	"fmt"

	"github.com/tartampluch/go-daycalendar/internal/config"
)

// Window decides whether a milestone is close enough to be shown.
// The zero value is not usable; build one with NewWindow or DefaultWindow.
type Window struct {
	showDays int
}

// NewWindow returns a Window showing milestones at most showDays days ahead.
// showDays must lie in [1,1000]; anything else makes the predicate degenerate.
func NewWindow(showDays int) (Window, error) {
	if showDays < config.MinShowDays || showDays > config.MaxShowDays {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidShowDays, showDays)
	}
	return Window{showDays: showDays}, nil
}

// DefaultWindow returns the Window for config.DefaultShowDays.
func DefaultWindow() Window {
	return Window{showDays: config.DefaultShowDays}
}

// ShowDays returns the configured look-ahead.
func (w Window) ShowDays() int {
	return w.showDays
}

// IsDue reports whether a milestone is due for someone ageInDays old: either
// today is a multiple of the interval, or the next multiple is strictly less
// than showDays away. Negative ages are never due.
func (w Window) IsDue(ageInDays int) bool {
	if ageInDays < 0 {
		return false
	}
	r := ageInDays % config.MilestoneInterval
	return r == 0 || r > config.MilestoneInterval-w.showDays
}
