package numeric

import "math"

// Residual is the objective for LevenbergMarquardt: given the current
// parameter vector, return the weighted residual vector (length = number of
// observations). LevenbergMarquardt minimises the sum of squares of this
// vector.
type Residual func(params []float64) []float64

// LMOptions configures the solver.
type LMOptions struct {
	MaxIterations int
	// StepTolerance terminates the solve when the step's Euclidean norm
	// falls below this value.
	StepTolerance float64
	// InitialLambda is the starting Levenberg-Marquardt damping factor.
	InitialLambda float64
	// FiniteDiffStep is the relative step used for the numerical Jacobian.
	FiniteDiffStep float64
}

// DefaultLMOptions returns sane defaults for a handful of parameters and a
// few hundred residuals, which is the scale post-refinement operates at.
func DefaultLMOptions() LMOptions {
	return LMOptions{
		MaxIterations:  50,
		StepTolerance:  1e-8,
		InitialLambda:  1e-3,
		FiniteDiffStep: 1e-6,
	}
}

// LMResult summarises the outcome of a LevenbergMarquardt solve.
type LMResult struct {
	Params     []float64
	Iterations int
	Improved   bool // whether the final residual norm is below the initial one
}

// jacobian computes the residual's Jacobian at params by central finite
// differences.
func jacobian(res Residual, params []float64, r0 []float64, opts LMOptions) *Dense {
	m, n := len(r0), len(params)
	J, _ := NewDense(m, n)
	for j := 0; j < n; j++ {
		h := opts.FiniteDiffStep * (math.Abs(params[j]) + opts.FiniteDiffStep)
		trial := append([]float64{}, params...)
		trial[j] += h
		rPlus := res(trial)
		trial[j] -= 2 * h
		rMinus := res(trial)
		for i := 0; i < m; i++ {
			J.Set(i, j, (rPlus[i]-rMinus[i])/(2*h))
		}
	}
	return J
}

func sumSquares(v []float64) float64 {
	sq := make([]float64, len(v))
	for i, x := range v {
		sq[i] = x * x
	}
	return PairwiseSum(sq)
}

// LevenbergMarquardt minimises ||res(params)||^2 starting from init, using
// the standard damped Gauss-Newton update
//
//	(J^T J + lambda I) delta = -J^T r
//
// with step acceptance by residual decrease: a step is kept only if it
// reduces the sum of squared residuals, otherwise lambda grows and the step
// is retried. Terminates on step-size tolerance or the iteration cap.
func LevenbergMarquardt(res Residual, init []float64, opts LMOptions) LMResult {
	params := append([]float64{}, init...)
	r := res(params)
	cost := sumSquares(r)
	initialCost := cost
	lambda := opts.InitialLambda
	n := len(params)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		J := jacobian(res, params, r, opts)
		Jt := J.Transpose()
		JtJ, err := Jt.Mul(J)
		if err != nil {
			return LMResult{Params: params, Iterations: iter, Improved: cost < initialCost}
		}
		Jtr, err := Jt.MulVec(r)
		if err != nil {
			return LMResult{Params: params, Iterations: iter, Improved: cost < initialCost}
		}
		negJtr := make([]float64, n)
		for i := range Jtr {
			negJtr[i] = -Jtr[i]
		}

		accepted := false
		for try := 0; try < 10; try++ {
			damped := JtJ.Clone()
			for i := 0; i < n; i++ {
				damped.Set(i, i, damped.At(i, i)+lambda)
			}
			delta, err := LinearSolve(damped, negJtr)
			if err != nil {
				lambda *= 10
				continue
			}

			stepNorm := math.Sqrt(sumSquares(delta))
			trial := make([]float64, n)
			for i := range params {
				trial[i] = params[i] + delta[i]
			}
			trialR := res(trial)
			trialCost := sumSquares(trialR)

			if trialCost < cost {
				params = trial
				r = trialR
				cost = trialCost
				lambda = math.Max(lambda/10, 1e-12)
				accepted = true
				if stepNorm < opts.StepTolerance {
					return LMResult{Params: params, Iterations: iter + 1, Improved: cost < initialCost}
				}
				break
			}
			lambda *= 10
		}
		if !accepted {
			return LMResult{Params: params, Iterations: iter, Improved: cost < initialCost}
		}
	}
	return LMResult{Params: params, Iterations: opts.MaxIterations, Improved: cost < initialCost}
}
