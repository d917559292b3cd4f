package engine

import "github.com/WeRecCover/WeRecCover/internal/cover"

// chain is the common piece of every postprocessor: it holds the previous
// provider (an algorithm or another postprocessor), materializes its cover
// and forwards timeout state. Postprocessors compose as an owned linked
// list, outermost last.
type chain struct {
	previous cover.Provider
}

// TimedOut forwards the underlying provider's timeout state.
func (c chain) TimedOut() bool { return c.previous.TimedOut() }
