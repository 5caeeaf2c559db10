package rangeset

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/engine/tz"
)

var day = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

// iv строит интервал из смещений в минутах от полуночи тестового дня
func iv(startMin, endMin int) domain.TimeInterval {
	return domain.TimeInterval{
		Start: day.Add(time.Duration(startMin) * time.Minute),
		End:   day.Add(time.Duration(endMin) * time.Minute),
	}
}

func hm(h, m int) int { return h*60 + m }

// overlaps проверяет общий момент, касание концами не считается
func overlaps(a, b domain.TimeInterval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func TestGroupByDate(t *testing.T) {
	zone, err := tz.Load("America/New_York")
	require.NoError(t, err)

	// 03:00 UTC в Нью-Йорке еще предыдущий день
	intervals := []domain.TimeInterval{
		iv(hm(3, 0), hm(4, 0)),
		iv(hm(15, 0), hm(15, 0)),
		iv(hm(16, 0), hm(17, 0)),
	}

	buckets := GroupByDate(intervals, zone)

	require.Len(t, buckets, 2)
	assert.Len(t, buckets["2025-03-02"], 1)
	assert.Len(t, buckets["2025-03-03"], 2, "zero-length interval must keep its date bucket")
}

func TestMerge_OverrideReplacesRecurringForItsDate(t *testing.T) {
	monday := iv(hm(9, 0), hm(17, 0))
	tuesday := domain.TimeInterval{Start: monday.Start.AddDate(0, 0, 1), End: monday.End.AddDate(0, 0, 1)}
	override := iv(hm(12, 0), hm(13, 0))

	recurring := GroupByDate([]domain.TimeInterval{tuesday, monday}, tz.UTC())
	overrides := GroupByDate([]domain.TimeInterval{override}, tz.UTC())

	merged := Merge(recurring, overrides)

	require.Len(t, merged, 2)
	assert.Equal(t, override, merged[0])
	assert.Equal(t, tuesday, merged[1])
}

func TestMerge_EmptyOverrideBlocksDate(t *testing.T) {
	recurring := GroupByDate([]domain.TimeInterval{iv(hm(9, 0), hm(17, 0))}, tz.UTC())
	overrides := GroupByDate([]domain.TimeInterval{iv(0, 0)}, tz.UTC())

	assert.Empty(t, Merge(recurring, overrides))
}

func TestIntersect(t *testing.T) {
	a := []domain.TimeInterval{iv(hm(9, 0), hm(12, 0)), iv(hm(13, 0), hm(17, 0))}
	b := []domain.TimeInterval{iv(hm(11, 0), hm(14, 0)), iv(hm(16, 0), hm(18, 0))}

	got := Intersect(a, b)

	assert.Equal(t, []domain.TimeInterval{
		iv(hm(11, 0), hm(12, 0)),
		iv(hm(13, 0), hm(14, 0)),
		iv(hm(16, 0), hm(17, 0)),
	}, got)
}

func TestIntersect_SingleListIdentity(t *testing.T) {
	a := []domain.TimeInterval{iv(hm(13, 0), hm(17, 0)), iv(hm(9, 0), hm(12, 0))}

	assert.Equal(t, Normalize(a), Intersect(a))
}

func TestIntersect_ShortCircuitsOnEmpty(t *testing.T) {
	a := []domain.TimeInterval{iv(hm(9, 0), hm(10, 0))}
	b := []domain.TimeInterval{iv(hm(11, 0), hm(12, 0))}
	c := []domain.TimeInterval{iv(hm(0, 0), hm(23, 0))}

	assert.Empty(t, Intersect(a, b, c))
	assert.Empty(t, Intersect())
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name     string
		source   []domain.TimeInterval
		excluded []domain.TimeInterval
		want     []domain.TimeInterval
	}{
		{
			name:     "busy in the middle",
			source:   []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
			excluded: []domain.TimeInterval{iv(hm(10, 0), hm(11, 0))},
			want:     []domain.TimeInterval{iv(hm(9, 0), hm(10, 0)), iv(hm(11, 0), hm(17, 0))},
		},
		{
			name:     "busy covers the start",
			source:   []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
			excluded: []domain.TimeInterval{iv(hm(8, 0), hm(9, 30))},
			want:     []domain.TimeInterval{iv(hm(9, 30), hm(17, 0))},
		},
		{
			name:     "busy covers everything",
			source:   []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
			excluded: []domain.TimeInterval{iv(hm(8, 0), hm(18, 0))},
			want:     []domain.TimeInterval{},
		},
		{
			name:   "unsorted overlapping busy",
			source: []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
			excluded: []domain.TimeInterval{
				iv(hm(15, 0), hm(16, 0)),
				iv(hm(10, 0), hm(12, 0)),
				iv(hm(11, 0), hm(13, 0)),
			},
			want: []domain.TimeInterval{
				iv(hm(9, 0), hm(10, 0)),
				iv(hm(13, 0), hm(15, 0)),
				iv(hm(16, 0), hm(17, 0)),
			},
		},
		{
			name:     "touching busy leaves source intact",
			source:   []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
			excluded: []domain.TimeInterval{iv(hm(8, 0), hm(9, 0)), iv(hm(17, 0), hm(18, 0))},
			want:     []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
		},
		{
			name:     "zero-length busy is ignored",
			source:   []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
			excluded: []domain.TimeInterval{iv(hm(12, 0), hm(12, 0))},
			want:     []domain.TimeInterval{iv(hm(9, 0), hm(17, 0))},
		},
		{
			name:     "inverted source is dropped",
			source:   []domain.TimeInterval{iv(hm(17, 0), hm(9, 0))},
			excluded: nil,
			want:     []domain.TimeInterval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(tt.source, tt.excluded))
		})
	}
}

func TestCoalesce(t *testing.T) {
	in := []domain.TimeInterval{
		iv(hm(0, 0), hm(9, 0)),
		iv(hm(9, 0), hm(12, 0)),
		iv(hm(12, 0), hm(13, 0)),
		iv(hm(14, 0), hm(15, 0)),
		iv(hm(14, 30), hm(16, 0)),
	}

	got := Coalesce(in)

	assert.Equal(t, []domain.TimeInterval{
		iv(hm(0, 0), hm(13, 0)),
		iv(hm(14, 0), hm(15, 0)),
		iv(hm(14, 30), hm(16, 0)),
	}, got)
}

func TestClamp(t *testing.T) {
	window := iv(hm(10, 0), hm(12, 0))
	in := []domain.TimeInterval{
		iv(hm(9, 0), hm(11, 0)),
		iv(hm(11, 30), hm(13, 0)),
		iv(hm(13, 0), hm(14, 0)),
	}

	assert.Equal(t, []domain.TimeInterval{
		iv(hm(10, 0), hm(11, 0)),
		iv(hm(11, 30), hm(12, 0)),
	}, Clamp(in, window))
}

// randomIntervals генерирует интервалы на минутной сетке, включая вырожденные
func randomIntervals(r *rand.Rand, n int) []domain.TimeInterval {
	out := make([]domain.TimeInterval, n)
	for i := range out {
		a := r.Intn(24 * 60)
		b := r.Intn(24 * 60)
		out[i] = iv(a, b)
	}
	return out
}

// covered возвращает множество покрытых минут
func covered(intervals []domain.TimeInterval) map[int]bool {
	set := make(map[int]bool)
	for _, x := range intervals {
		for t := x.Start; t.Before(x.End); t = t.Add(time.Minute) {
			set[int(t.Sub(day)/time.Minute)] = true
		}
	}
	return set
}

func TestSubtract_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		source := randomIntervals(r, 1+r.Intn(5))
		excluded := randomIntervals(r, r.Intn(6))

		assert.Equal(t, Normalize(source), Normalize(Subtract(source, nil)), "identity")

		for _, out := range Subtract(source, excluded) {
			require.True(t, out.Start.Before(out.End))
			for _, e := range excluded {
				if e.IsValid() {
					require.False(t, overlaps(out, e), "output %s overlaps excluded %s", out, e)
				}
			}
		}
	}
}

func TestIntersect_CommutativeOverCoveredInstants(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		a := randomIntervals(r, 1+r.Intn(4))
		b := randomIntervals(r, 1+r.Intn(4))

		// каждый список: непересекающиеся интервалы одного участника
		a = disjoint(Normalize(a))
		b = disjoint(Normalize(b))

		assert.Equal(t, covered(Intersect(a, b)), covered(Intersect(b, a)))
	}
}

// disjoint сливает пересекающиеся интервалы отсортированного списка
func disjoint(sorted []domain.TimeInterval) []domain.TimeInterval {
	out := make([]domain.TimeInterval, 0, len(sorted))
	for _, x := range sorted {
		if n := len(out); n > 0 && !x.Start.After(out[n-1].End) {
			if x.End.After(out[n-1].End) {
				out[n-1].End = x.End
			}
			continue
		}
		out = append(out, x)
	}
	return out
}

func FuzzSubtract(f *testing.F) {
	f.Add(540, 1020, 600, 660)
	f.Add(0, 1439, 0, 1439)
	f.Add(600, 500, 100, 200)

	f.Fuzz(func(t *testing.T, s1, s2, e1, e2 int) {
		source := []domain.TimeInterval{iv(s1%2000, s2%2000)}
		excluded := []domain.TimeInterval{iv(e1%2000, e2%2000)}

		for _, out := range Subtract(source, excluded) {
			if !out.IsValid() {
				t.Fatalf("invalid output %s", out)
			}
			if excluded[0].IsValid() && overlaps(out, excluded[0]) {
				t.Fatalf("output %s overlaps %s", out, excluded[0])
			}
			if !source[0].Contains(out) {
				t.Fatalf("output %s escapes source %s", out, source[0])
			}
		}
	})
}
