// Package inference fills in missing chapter indices from the surrounding records.
//
// Mainline chapters take whole numbers; special chapters (bonus chapters, side stories)
// take fractional indices between their mainline neighbours: a lone special chapter
// between two mainline chapters lands on the midpoint (.5), and runs of special chapters
// step by tenths (.1, .2, ...).
package inference

import (
	"errors"
	"fmt"
	"math"

	"github.com/jackzampolin/chapterbrainz/internal/types"
)

// Sentinel errors for the inference package.
var (
	// ErrUnresolvableIndex is returned when an index cannot be placed strictly between
	// its neighbours, or an explicit index is not a finite number.
	ErrUnresolvableIndex = errors.New("unresolvable index")

	// ErrOutOfOrder is returned when explicit indices are not strictly increasing.
	ErrOutOfOrder = errors.New("explicit indices out of order")
)

const (
	mainlineStep     = 1.0
	midpointStep     = 0.5
	interstitialStep = 0.1
)

// Infer returns a copy of chapters with every index resolved. Records keep their order;
// explicit indices are never changed.
//
// Records after the first known index resolve left to right from their predecessor.
// A leading run of unknown records resolves right to left from the first known index,
// so every record in the run is derived from a resolved successor. When no record
// carries an index the first one is numbered 1.
func Infer(chapters []types.Chapter) ([]types.Chapter, error) {
	out := make([]types.Chapter, len(chapters))
	for i, ch := range chapters {
		out[i] = ch.Clone()
	}
	if len(out) == 0 {
		return out, nil
	}

	if err := validateExplicit(out); err != nil {
		return nil, err
	}

	first := -1
	for i, ch := range out {
		if ch.HasIndex() {
			first = i
			break
		}
	}
	if first < 0 {
		out[0] = out[0].WithIndex(1)
		first = 0
	}

	for i := first - 1; i >= 0; i-- {
		out[i] = out[i].WithIndex(before(out[i], out[i+1]))
	}

	for i := first + 1; i < len(out); i++ {
		if out[i].HasIndex() {
			continue
		}
		var next *types.Chapter
		if i+1 < len(out) {
			next = &out[i+1]
		}
		out[i] = out[i].WithIndex(after(out[i-1], out[i], next))
	}

	for i := 1; i < len(out); i++ {
		if out[i].IndexValue() <= out[i-1].IndexValue() {
			return nil, fmt.Errorf("%w: record %d (%s) resolved to %s, which does not follow %s",
				ErrUnresolvableIndex, i, out[i].Category, out[i].IndexString(), out[i-1].IndexString())
		}
	}

	return out, nil
}

// validateExplicit checks that the indices supplied by the source are usable.
func validateExplicit(chapters []types.Chapter) error {
	prev := -1
	for i, ch := range chapters {
		if !ch.HasIndex() {
			continue
		}
		v := ch.IndexValue()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: record %d has non-finite index %v", ErrUnresolvableIndex, i, v)
		}
		if prev >= 0 && v <= chapters[prev].IndexValue() {
			return fmt.Errorf("%w: record %d has index %s after record %d with index %s",
				ErrOutOfOrder, i, ch.IndexString(), prev, chapters[prev].IndexString())
		}
		prev = i
	}
	return nil
}

// after resolves current from its resolved predecessor. The category of the adjacent
// record decides whether a special chapter sits on the midpoint or starts a run.
func after(previous, current types.Chapter, next *types.Chapter) float64 {
	p := previous.IndexValue()
	if previous.Category.IsMainline() {
		if current.Category.IsMainline() {
			return round(p + mainlineStep)
		}
		if next != nil && next.Category.IsMainline() {
			return round(p + midpointStep)
		}
		return round(p + interstitialStep)
	}

	if current.Category.IsMainline() {
		return math.Ceil(p)
	}
	return round(p + interstitialStep)
}

// before resolves current from its resolved successor.
func before(current, next types.Chapter) float64 {
	n := next.IndexValue()
	switch {
	case current.Category.IsMainline() && next.Category.IsMainline():
		return round(n - mainlineStep)
	case current.Category.IsMainline():
		return math.Floor(n)
	case next.Category.IsMainline():
		return round(n - midpointStep)
	default:
		return round(n - interstitialStep)
	}
}

// round rounds to one decimal place.
func round(v float64) float64 {
	return math.Round(v*10) / 10
}
