package routing

import (
	"testing"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/slogtest"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	return NewRouter(Options{
		GridSpacing: 20,
		Logger:      slogtest.Make(t, nil).Leveled(slog.LevelDebug),
	})
}

func box(x, y float64) Fixed {
	return Fixed{CenterX: x, CenterY: y, Width: 120, Height: 60, Category: CategoryProcess}
}

func diamond(x, y float64) Fixed {
	return Fixed{CenterX: x, CenterY: y, Width: 120, Height: 60, Category: CategoryDecision}
}

func pts(coords ...float64) []Point {
	out := make([]Point, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, Point{coords[i], coords[i+1]})
	}
	return out
}

// unplaced is a node that has not been given a position yet.
type unplaced struct{}

func (unplaced) Geometry() (Geometry, bool) {
	return Geometry{Width: 120, Height: 60}, false
}

func orthogonal(route []Point) bool {
	for i := 1; i < len(route); i++ {
		a, b := route[i-1], route[i]
		if (a.X == b.X) == (a.Y == b.Y) {
			return false
		}
	}
	return true
}
