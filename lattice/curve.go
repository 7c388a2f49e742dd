// Package lattice builds the finite bundle of one-dimensional motion primitives the planner
// combines into candidate trajectories. Curve1D is a closed tagged variant — QuarticCurve,
// QuinticCurve, NumericCurve — rather than an open interface hierarchy: the set of curve
// families is fixed, so a type switch on the concrete type is enough for any consumer (e.g.
// logging which end condition produced a curve) and no reflection-based downcasting is needed.
package lattice

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Curve1D is a continuously differentiable scalar function of one parameter, supporting
// derivatives up to second order. Evaluate is defined for any param >= 0; beyond ParamLength
// the curve extrapolates linearly rather than being undefined.
type Curve1D interface {
	// Evaluate returns the order-th derivative (0, 1, or 2) at param.
	Evaluate(order int, param float64) float64
	// ParamLength returns the curve's domain length L.
	ParamLength() float64
}

// QuarticCurve is a degree-4 polynomial fit from a full initial triple and a free-position,
// fixed-velocity/acceleration end condition — the cruise profile, where the target station is
// not fixed.
type QuarticCurve struct {
	coeffs         [5]float64
	length         float64
	TargetVelocity float64
	TargetTime     float64
}

// NewQuarticCurve fits a quartic polynomial p(t) with p(0)=x0, p'(0)=dx0, p''(0)=ddx0,
// p'(T)=dx1, p''(T)=ddx1.
func NewQuarticCurve(x0, dx0, ddx0, dx1, ddx1, t float64) QuarticCurve {
	a0 := x0
	a1 := dx0
	a2 := ddx0 / 2

	t2 := t * t
	t3 := t2 * t

	// [3T^2  4T^3] [a3]   [dx1 - a1 - 2 a2 T  ]
	// [6T   12T^2] [a4] = [ddx1 - 2 a2         ]
	a := mat.NewDense(2, 2, []float64{
		3 * t2, 4 * t3,
		6 * t, 12 * t2,
	})
	b := mat.NewVecDense(2, []float64{
		dx1 - a1 - 2*a2*t,
		ddx1 - 2*a2,
	})
	var x mat.VecDense
	var coeffs [5]float64
	if err := x.SolveVec(a, b); err != nil {
		// A singular system only arises for t == 0, which callers must not request; fall
		// back to a constant-acceleration curve rather than propagating NaNs silently
		// through the rest of the pipeline undetected.
		coeffs = [5]float64{a0, a1, a2, 0, 0}
	} else {
		coeffs = [5]float64{a0, a1, a2, x.AtVec(0), x.AtVec(1)}
	}

	return QuarticCurve{coeffs: coeffs, length: t, TargetVelocity: dx1, TargetTime: t}
}

// Evaluate implements Curve1D.
func (c QuarticCurve) Evaluate(order int, param float64) float64 {
	return evalPolynomial(c.coeffs[:], order, param, c.length)
}

// ParamLength implements Curve1D.
func (c QuarticCurve) ParamLength() float64 { return c.length }

// QuinticCurve is a degree-5 polynomial fit from a full initial triple and a full end triple —
// the stop/follow/lateral profile, where the target position at T is fixed.
type QuinticCurve struct {
	coeffs         [6]float64
	length         float64
	TargetPosition float64
	TargetVelocity float64
	TargetTime     float64
}

// NewQuinticCurve fits a quintic polynomial p(t) with p(0)=x0, p'(0)=dx0, p''(0)=ddx0,
// p(T)=x1, p'(T)=dx1, p''(T)=ddx1.
func NewQuinticCurve(x0, dx0, ddx0, x1, dx1, ddx1, t float64) QuinticCurve {
	a0 := x0
	a1 := dx0
	a2 := ddx0 / 2

	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	t5 := t4 * t

	a := mat.NewDense(3, 3, []float64{
		t3, t4, t5,
		3 * t2, 4 * t3, 5 * t4,
		6 * t, 12 * t2, 20 * t3,
	})
	b := mat.NewVecDense(3, []float64{
		x1 - a0 - a1*t - a2*t2,
		dx1 - a1 - 2*a2*t,
		ddx1 - 2*a2,
	})
	var x mat.VecDense
	var coeffs [6]float64
	if err := x.SolveVec(a, b); err != nil {
		coeffs = [6]float64{a0, a1, a2, 0, 0, 0}
	} else {
		coeffs = [6]float64{a0, a1, a2, x.AtVec(0), x.AtVec(1), x.AtVec(2)}
	}

	return QuinticCurve{coeffs: coeffs, length: t, TargetPosition: x1, TargetVelocity: dx1, TargetTime: t}
}

// Evaluate implements Curve1D.
func (c QuinticCurve) Evaluate(order int, param float64) float64 {
	return evalPolynomial(c.coeffs[:], order, param, c.length)
}

// ParamLength implements Curve1D.
func (c QuinticCurve) ParamLength() float64 { return c.length }

// NumericCurve wraps discretely observed (param, value) samples with piecewise-linear
// interpolation, used by the offline auto-tuning hook's EvaluatePerLonLat where the input is an
// observed trajectory rather than an analytic fit.
type NumericCurve struct {
	params []float64
	values []float64
}

// NewNumericCurve builds a NumericCurve from parallel params/values slices. The slices are used
// as given and are not sorted here; params must already be in ascending order.
func NewNumericCurve(params, values []float64) NumericCurve {
	return NumericCurve{params: params, values: values}
}

// Evaluate implements Curve1D. Order 0 is piecewise-linear interpolation, order 1 is the slope of
// the bracketing segment, and order 2 is always 0. Beyond the last sample, the value
// extrapolates linearly using the final segment's slope.
func (c NumericCurve) Evaluate(order int, param float64) float64 {
	n := len(c.params)
	if n == 0 {
		return 0
	}
	if n == 1 {
		if order == 0 {
			return c.values[0]
		}
		return 0
	}

	i := sort.SearchFloat64s(c.params, param)
	if i == 0 {
		i = 1
	}
	if i >= n {
		i = n - 1
	}
	lo, hi := i-1, i
	dParam := c.params[hi] - c.params[lo]
	if dParam == 0 {
		dParam = 1e-9
	}
	slope := (c.values[hi] - c.values[lo]) / dParam

	switch order {
	case 0:
		return c.values[lo] + slope*(param-c.params[lo])
	case 1:
		return slope
	default:
		return 0
	}
}

// ParamLength implements Curve1D.
func (c NumericCurve) ParamLength() float64 {
	if len(c.params) == 0 {
		return 0
	}
	return c.params[len(c.params)-1] - c.params[0]
}

// evalPolynomial evaluates a polynomial (or its 1st/2nd derivative) given ascending-degree
// coefficients, extrapolating linearly past length using the curve's own endpoint
// velocity/acceleration rather than the raw polynomial.
func evalPolynomial(coeffs []float64, order int, param, length float64) float64 {
	if param > length {
		// Linear extrapolation: hold the endpoint's higher derivatives constant per the
		// order requested, using the curve's true values at `length`.
		switch order {
		case 0:
			p0 := evalPolynomial(coeffs, 0, length, length)
			v0 := evalPolynomial(coeffs, 1, length, length)
			return p0 + v0*(param-length)
		case 1:
			return evalPolynomial(coeffs, 1, length, length)
		case 2:
			return evalPolynomial(coeffs, 2, length, length)
		}
	}
	switch order {
	case 0:
		var sum float64
		p := 1.0
		for _, c := range coeffs {
			sum += c * p
			p *= param
		}
		return sum
	case 1:
		var sum float64
		p := 1.0
		for i := 1; i < len(coeffs); i++ {
			sum += float64(i) * coeffs[i] * p
			p *= param
		}
		return sum
	case 2:
		var sum float64
		p := 1.0
		for i := 2; i < len(coeffs); i++ {
			sum += float64(i*(i-1)) * coeffs[i] * p
			p *= param
		}
		return sum
	default:
		return math.NaN()
	}
}
