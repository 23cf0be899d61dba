package raster

import (
	"math"

	"github.com/gitrdm/lsysmcts/pkg/lsystem"
)

// segment is one drawn stroke: a line from (X0,Y0) to (X1,Y1) of the given
// width, in the turtle's own coordinate units (pre-scale).
type segment struct {
	X0, Y0, X1, Y1 float64
	Width          float64
}

// turtleState is the model-matrix state rendering maintains: position and
// heading in degrees, 0 pointing along the positive X axis.
type turtleState struct {
	X, Y, Heading float64
}

// walk interprets derivation's symbol yield as turtle-graphics commands and
// returns the sequence of strokes it draws (spec.md §6): "F" draws a
// segment of the current heading and advances, "[" / "]" push and pop the
// model-matrix stack, and "+" / "-" rotate the heading by the symbol's
// resolved angle. "/" , "\" (twist) and "#" (jitter) are folded into the
// same heading rotation since this is a 2D projection of what the grammar
// models as a 3D turtle.
func walk(derivation lsystem.Derivation) []segment {
	state := turtleState{Heading: 90}
	var stack []turtleState
	var segs []segment

	for _, sym := range derivation.Symbols {
		switch sym.Name {
		case lsystem.SymF:
			length, radius := fParams(sym)
			rad := state.Heading * math.Pi / 180
			nx := state.X + length*math.Cos(rad)
			ny := state.Y + length*math.Sin(rad)
			segs = append(segs, segment{X0: state.X, Y0: state.Y, X1: nx, Y1: ny, Width: radius})
			state.X, state.Y = nx, ny
		case lsystem.SymPush:
			stack = append(stack, state)
		case lsystem.SymPop:
			if len(stack) > 0 {
				state = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		case lsystem.SymPlus:
			state.Heading += angleOf(sym)
		case lsystem.SymMinus:
			state.Heading -= angleOf(sym)
		case lsystem.SymSlash, lsystem.SymBackslash, lsystem.SymHash:
			state.Heading += angleOf(sym)
		}
	}
	return segs
}

func fParams(sym *lsystem.Symbol) (length, radius float64) {
	if len(sym.Parameters) > 0 {
		length = sym.Parameters[0]
	}
	if len(sym.Parameters) > 1 {
		radius = sym.Parameters[1]
	}
	return length, radius
}

func angleOf(sym *lsystem.Symbol) float64 {
	if len(sym.Parameters) > 0 {
		return sym.Parameters[0]
	}
	return 0
}

// bounds returns the minimum and maximum X coordinate spanned by segs,
// needed to center the rendered derivation horizontally (spec.md §6).
func bounds(segs []segment) (minX, maxX float64) {
	if len(segs) == 0 {
		return 0, 0
	}
	minX, maxX = segs[0].X0, segs[0].X0
	for _, s := range segs {
		for _, x := range []float64{s.X0, s.X1} {
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
		}
	}
	return minX, maxX
}
