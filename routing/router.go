package routing

import (
	"context"

	"cdr.dev/slog"
)

const (
	// DefaultGridSpacing is the canvas grid in pixels.
	DefaultGridSpacing = 20.0

	// maxMarginSteps bounds a detour offset that sits outside both nodes.
	maxMarginSteps = 50
)

type Options struct {
	// GridSpacing drives the wrap margin step (half a grid) and the
	// close-below band used when classifying (two grids).
	GridSpacing float64
	Logger      slog.Logger
}

// Router holds the configuration shared by every routing operation.
// It keeps no per-edge state, all of it lives on the Edge.
type Router struct {
	grid float64
	log  slog.Logger
}

func NewRouter(opts Options) *Router {
	grid := opts.GridSpacing
	if grid <= 0 {
		grid = DefaultGridSpacing
	}
	return &Router{
		grid: grid,
		log:  opts.Logger.Named("routing"),
	}
}

func (r *Router) GridSpacing() float64 {
	return r.grid
}

// Step is the wrap margin increment.
func (r *Router) Step() float64 {
	return r.grid / 2
}

func (r *Router) debug(msg string, fields ...slog.Field) {
	r.log.Debug(context.Background(), msg, fields...)
}
