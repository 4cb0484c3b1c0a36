package timeline

import "sort"

// Interval is anything that occupies a month range.
type Interval interface {
	Bounds() Bounds
}

// Row holds intervals that never overlap, in the order they were assigned.
type Row[T Interval] []T

// Fits reports whether b overlaps no member of the row.
func (r Row[T]) Fits(b Bounds) bool {
	for _, member := range r {
		if member.Bounds().Overlaps(b) {
			return false
		}
	}
	return true
}

// Order selects the sequence intervals are offered to the packer in.
type Order int

const (
	// InputOrder packs intervals in the order given (creation order for
	// stored features). This is first-fit over an arbitrary order and may use
	// more rows than the minimum.
	InputOrder Order = iota
	// StartOrder stable-sorts intervals by start month first. First-fit over
	// start order uses the minimum number of rows for interval graphs.
	StartOrder
)

func (o Order) String() string {
	switch o {
	case StartOrder:
		return "start"
	default:
		return "input"
	}
}

// Option customises Pack behaviour.
type Option func(*packOptions)

// WithOrder selects the order intervals are packed in.
func WithOrder(o Order) Option {
	return func(opts *packOptions) {
		opts.order = o
	}
}

type packOptions struct {
	order Order
}

// Pack assigns every interval to the first row it does not overlap, opening a
// new row when none fits. Rows are returned in order of first use. The input
// slice is never modified.
func Pack[T Interval](items []T, opts ...Option) []Row[T] {
	if len(items) == 0 {
		return nil
	}
	config := &packOptions{}
	for _, opt := range opts {
		opt(config)
	}

	ordered := items
	if config.order == StartOrder {
		ordered = make([]T, len(items))
		copy(ordered, items)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Bounds().Start < ordered[j].Bounds().Start
		})
	}

	var rows []Row[T]
	for _, item := range ordered {
		b := item.Bounds()
		placed := false
		for i := range rows {
			if rows[i].Fits(b) {
				rows[i] = append(rows[i], item)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, Row[T]{item})
		}
	}
	return rows
}
