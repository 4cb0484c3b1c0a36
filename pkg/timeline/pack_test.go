package timeline

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct {
	id string
	b  Bounds
}

func (s span) Bounds() Bounds { return s.b }

func ids(rows []Row[span]) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		names := make([]string, 0, len(row))
		for _, s := range row {
			names = append(names, s.id)
		}
		out = append(out, names)
	}
	return out
}

func TestPackScenario(t *testing.T) {
	items := []span{
		{"A", Bounds{1, 3}},
		{"B", Bounds{2, 5}},
		{"C", Bounds{6, 8}},
	}
	rows := Pack(items)
	assert.Equal(t, [][]string{{"A", "C"}, {"B"}}, ids(rows))
}

func TestPackEmptyAndSingle(t *testing.T) {
	assert.Empty(t, Pack[span](nil))

	rows := Pack([]span{{"only", Bounds{4, 4}}})
	assert.Equal(t, [][]string{{"only"}}, ids(rows))
}

func TestPackTouchingMonthsOverlap(t *testing.T) {
	// inclusive ranges sharing an end month cannot share a row
	rows := Pack([]span{{"A", Bounds{1, 4}}, {"B", Bounds{4, 6}}})
	assert.Equal(t, [][]string{{"A"}, {"B"}}, ids(rows))
}

func TestPackDoesNotModifyInput(t *testing.T) {
	items := []span{{"late", Bounds{9, 10}}, {"early", Bounds{1, 2}}}
	_ = Pack(items, WithOrder(StartOrder))
	assert.Equal(t, "late", items[0].id)
}

func TestPackStartOrderIsTighter(t *testing.T) {
	items := []span{
		{"I1", Bounds{1, 1}},
		{"I2", Bounds{4, 4}},
		{"I3", Bounds{1, 3}},
		{"I4", Bounds{3, 5}},
	}
	input := Pack(items)
	assert.Equal(t, [][]string{{"I1", "I2"}, {"I3"}, {"I4"}}, ids(input))

	sorted := Pack(items, WithOrder(StartOrder))
	assert.Equal(t, [][]string{{"I1", "I4"}, {"I3", "I2"}}, ids(sorted))
}

func randomSpans(r *rand.Rand, n int) []span {
	out := make([]span, 0, n)
	for i := 0; i < n; i++ {
		start := r.Intn(LastMonth) + 1
		end := start + r.Intn(LastMonth-start+1)
		out = append(out, span{id: string(rune('a' + i%26)), b: Bounds{start, end}})
	}
	return out
}

func TestPackRowsNeverOverlap(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 500; round++ {
		items := randomSpans(r, r.Intn(40))
		for _, order := range []Order{InputOrder, StartOrder} {
			rows := Pack(items, WithOrder(order))

			total := 0
			for ri, row := range rows {
				require.NotEmpty(t, row, "round %d: row %d empty", round, ri)
				total += len(row)
				for i := 0; i < len(row); i++ {
					for j := i + 1; j < len(row); j++ {
						require.False(t, row[i].b.Overlaps(row[j].b),
							"round %d order %s: %v overlaps %v in row %d", round, order, row[i].b, row[j].b, ri)
					}
				}
			}
			require.Equal(t, len(items), total, "every interval is placed exactly once")
		}
	}
}

func TestPackIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 100; round++ {
		items := randomSpans(r, 25)
		require.Equal(t, Pack(items), Pack(items))
		require.Equal(t, Pack(items, WithOrder(StartOrder)), Pack(items, WithOrder(StartOrder)))
	}
}

func TestPackStartOrderMatchesMaxDepth(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for round := 0; round < 200; round++ {
		items := randomSpans(r, 30)
		depth := 0
		for m := FirstMonth; m <= LastMonth; m++ {
			n := 0
			for _, s := range items {
				if s.b.Contains(m) {
					n++
				}
			}
			if n > depth {
				depth = n
			}
		}
		assert.Len(t, Pack(items, WithOrder(StartOrder)), depth, "round %d", round)
	}
}
