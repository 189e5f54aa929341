package feature

import (
	"github.com/railwayhistory/railmap/internal/canvas"
	"github.com/railwayhistory/railmap/internal/geo"
)

// kappa is the Bézier-circle approximation constant (4*(sqrt(2)-1)/3),
// used to draw dots and marker discs as four cubic arcs.
const kappa = 0.5522847498

// circlePath appends a four-arc circle of the given radius centred on
// center to sk and returns it, ready for Fill or Stroke.
func circlePath(sk canvas.Sketch, center geo.Point, radius float64) canvas.Sketch {
	k := radius * kappa
	top := geo.Point{X: center.X, Y: center.Y - radius}
	right := geo.Point{X: center.X + radius, Y: center.Y}
	bottom := geo.Point{X: center.X, Y: center.Y + radius}
	left := geo.Point{X: center.X - radius, Y: center.Y}

	sk = sk.MoveTo(top)
	sk = sk.CubicTo(geo.Point{X: top.X + k, Y: top.Y}, geo.Point{X: right.X, Y: right.Y - k}, right)
	sk = sk.CubicTo(geo.Point{X: right.X, Y: right.Y + k}, geo.Point{X: bottom.X + k, Y: bottom.Y}, bottom)
	sk = sk.CubicTo(geo.Point{X: bottom.X - k, Y: bottom.Y}, geo.Point{X: left.X, Y: left.Y + k}, left)
	sk = sk.CubicTo(geo.Point{X: left.X, Y: left.Y - k}, geo.Point{X: top.X - k, Y: top.Y}, top)
	return sk.ClosePath()
}

// rectPath appends an axis-aligned rectangle centred on center to sk.
func rectPath(sk canvas.Sketch, center geo.Point, w, h float64) canvas.Sketch {
	hw, hh := w/2, h/2
	sk = sk.MoveTo(geo.Point{X: center.X - hw, Y: center.Y - hh})
	sk = sk.LineTo(geo.Point{X: center.X + hw, Y: center.Y - hh})
	sk = sk.LineTo(geo.Point{X: center.X + hw, Y: center.Y + hh})
	sk = sk.LineTo(geo.Point{X: center.X - hw, Y: center.Y + hh})
	return sk.ClosePath()
}
