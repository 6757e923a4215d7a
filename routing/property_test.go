package routing

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// layout builds a pair of grid aligned nodes from generated integers.
type layout struct {
	from, to Fixed
}

func genLayout() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(-40, 40), gen.IntRange(-40, 40), gen.IntRange(2, 16), gen.IntRange(2, 8), gen.Bool(),
		gen.IntRange(-40, 40), gen.IntRange(-40, 40), gen.IntRange(2, 16), gen.IntRange(2, 8),
	).Map(func(v []interface{}) layout {
		from := Fixed{
			CenterX:  float64(v[0].(int) * 10),
			CenterY:  float64(v[1].(int) * 10),
			Width:    float64(v[2].(int) * 10),
			Height:   float64(v[3].(int) * 10),
			Category: CategoryProcess,
		}
		if v[4].(bool) {
			from.Category = CategoryDecision
		}
		to := Fixed{
			CenterX:  float64(v[5].(int) * 10),
			CenterY:  float64(v[6].(int) * 10),
			Width:    float64(v[7].(int) * 10),
			Height:   float64(v[8].(int) * 10),
			Category: CategoryProcess,
		}
		return layout{from, to}
	})
}

func newPropertyEdge(l layout, sides int) *Edge {
	e := NewEdge(l.from, l.to, "label")
	pair := rotationCycle[sides%len(rotationCycle)]
	e.FromSide, e.ToSide = pair.From, pair.To
	return e
}

func TestRoutingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	r := NewRouter(Options{})

	properties.Property("recomputing a route is deterministic", prop.ForAll(
		func(l layout, sides int) bool {
			e := newPropertyEdge(l, sides)
			first := r.ComputeRoute(e).Clone()
			return reflect.DeepEqual(first, r.ComputeRoute(e))
		},
		genLayout(), gen.IntRange(0, 16),
	))

	properties.Property("routes are orthogonal without zero length segments", prop.ForAll(
		func(l layout, sides int, margin int) bool {
			e := newPropertyEdge(l, sides)
			if margin > 0 {
				e.SetWrapMargin(float64(margin))
			}
			route := r.ComputeRoute(e)
			if route.Case.Direct {
				return len(route.Points) == 2 &&
					route.Points[0] == Geometry(l.from).Center() &&
					route.Points[1] == Geometry(l.to).Center()
			}
			n := len(route.Points)
			return n >= 2 && n <= 5 && orthogonal(route.Points)
		},
		genLayout(), gen.IntRange(0, 16), gen.IntRange(0, 600),
	))

	properties.Property("side rotation reaches auto within one cycle", prop.ForAll(
		func(l layout, sides int, forward bool) bool {
			e := newPropertyEdge(l, sides)
			r.ComputeRoute(e)
			for i := 0; i < len(rotationCycle); i++ {
				r.RotateConnectionSides(e, forward)
				if e.FromSide == Auto && e.ToSide == Auto {
					return true
				}
			}
			return false
		},
		genLayout(), gen.IntRange(0, 16), gen.Bool(),
	))

	properties.Property("label rotation returns to its start", prop.ForAll(
		func(l layout, sides int, start int, forward bool) bool {
			e := newPropertyEdge(l, sides)
			route := r.ComputeRoute(e)
			n := LabelCycleLength(len(route.Points))
			e.LabelPosition = LabelPositions[start%n]
			begin := e.LabelPosition
			for i := 0; i < n; i++ {
				r.RotateLabelPosition(e, forward)
			}
			return e.LabelPosition == begin
		},
		genLayout(), gen.IntRange(0, 16), gen.IntRange(0, 20), gen.Bool(),
	))

	properties.Property("stored routing state reproduces the route", prop.ForAll(
		func(l layout, sides int, steps int, increase bool) bool {
			e := newPropertyEdge(l, sides)
			r.ComputeRoute(e)
			for i := 0; i < steps; i++ {
				r.ChangeWrapMargin(e, increase)
			}
			r.RotateLabelPosition(e, true)
			edited := e.Route().Clone()

			restored := NewEdge(l.from, l.to, e.Label)
			restored.FromSide, restored.ToSide = e.FromSide, e.ToSide
			if e.WrapMargin != nil {
				restored.SetWrapMargin(*e.WrapMargin)
			}
			restored.LabelPosition = e.LabelPosition

			return reflect.DeepEqual(edited, r.ComputeRoute(restored)) &&
				r.LabelPlacement(e) == r.LabelPlacement(restored)
		},
		genLayout(), gen.IntRange(0, 16), gen.IntRange(0, 8), gen.Bool(),
	))

	properties.TestingRun(t)
}
