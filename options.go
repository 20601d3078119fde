package outline

import "github.com/gogpu/outline/model"

// DefaultTolerance is the default curve flattening tolerance, in model
// units (millimeters for plate outlines).
const DefaultTolerance = 0.01

// Option configures Generate.
//
// Example:
//
//	// Default settings
//	res, err := outline.Generate(cfg, points, u)
//
//	// Finer arcs for export
//	res, err := outline.Generate(cfg, points, u, outline.WithTolerance(0.001))
type Option func(*options)

// options holds the geometric settings shared by all generators.
type options struct {
	tolerance  float64
	miterLimit float64
	farPoint   model.Point
}

// defaultOptions returns the default generation options.
func defaultOptions() options {
	return options{
		tolerance:  DefaultTolerance,
		miterLimit: 4,
		farPoint:   model.DefaultFarPoint,
	}
}

// WithTolerance sets the maximum distance between a curve (circle, fillet,
// rounded corner) and the line segments approximating it.
// Non-positive values are ignored.
func WithTolerance(tolerance float64) Option {
	return func(o *options) {
		if tolerance > 0 {
			o.tolerance = tolerance
		}
	}
}

// WithMiterLimit bounds pointed offset joints. Corners sharper than the
// limit are beveled instead. Non-positive values are ignored.
func WithMiterLimit(limit float64) Option {
	return func(o *options) {
		if limit > 0 {
			o.miterLimit = limit
		}
	}
}

// WithFarPoint sets a point known to lie outside all geometry. Offsets use
// it to classify degenerate boundaries.
func WithFarPoint(p model.Point) Option {
	return func(o *options) {
		o.farPoint = p
	}
}

func (o options) offset() model.OffsetOptions {
	return model.OffsetOptions{
		Tolerance:  o.tolerance,
		MiterLimit: o.miterLimit,
		FarPoint:   o.farPoint,
	}
}
