package arima

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var errSingularFilter = errors.New("arima: prediction variance collapsed")

// stateSpace is the Harvey representation of an ARMA(p,q) process:
//
//	y[t]   = Z a[t]
//	a[t+1] = T a[t] + R e[t+1]
//
// with Z = (1, 0, ..., 0), T holding phi in its first column and ones on
// the superdiagonal, and R = (1, theta_1, ..., theta_{r-1}).
type stateSpace struct {
	r   int
	T   *mat.Dense
	RRt *mat.SymDense
}

func newStateSpace(ar, ma []float64) *stateSpace {
	r := max(len(ar), len(ma)+1)

	T := mat.NewDense(r, r, nil)
	for i, phi := range ar {
		T.Set(i, 0, phi)
	}
	for i := 0; i < r-1; i++ {
		T.Set(i, i+1, 1)
	}

	R := mat.NewVecDense(r, nil)
	R.SetVec(0, 1)
	for i, theta := range ma {
		R.SetVec(i+1, theta)
	}

	RRt := mat.NewSymDense(r, nil)
	RRt.SymOuterK(1, R)

	return &stateSpace{r: r, T: T, RRt: RRt}
}

// initialCovariance solves P = T P T' + R R' for the stationary state
// covariance using the row-major vec identity vec(T P T') = (T⊗T) vec(P).
func (ss *stateSpace) initialCovariance() (*mat.Dense, error) {
	r := ss.r

	var kron mat.Dense
	kron.Kronecker(ss.T, ss.T)

	A := mat.NewDense(r*r, r*r, nil)
	A.Scale(-1, &kron)
	for i := 0; i < r*r; i++ {
		A.Set(i, i, A.At(i, i)+1)
	}

	q := mat.NewVecDense(r*r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			q.SetVec(i*r+j, ss.RRt.At(i, j))
		}
	}

	var vecP mat.VecDense
	if err := vecP.SolveVec(A, q); err != nil {
		return nil, err
	}

	P := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			P.Set(i, j, vecP.AtVec(i*r+j))
		}
	}
	return P, nil
}

// filterResult holds the output of a Kalman filter pass with unit
// innovation variance.
type filterResult struct {
	innovations []float64 // v[t] = y[t] - E[y[t] | y[<t]]
	predictions []float64
	sumLogF     float64
	sumSq       float64   // sum of v[t]^2 / F[t]
	state       []float64 // a[n+1|n]
}

// filter runs the Kalman filter over y. The innovation variance is
// concentrated out of the likelihood, so the filter runs with sigma^2 = 1.
func (ss *stateSpace) filter(y []float64) (*filterResult, error) {
	r := ss.r

	P, err := ss.initialCovariance()
	if err != nil {
		return nil, err
	}

	a := mat.NewVecDense(r, nil)
	next := mat.NewVecDense(r, nil)
	K := mat.NewVecDense(r, nil)
	col := mat.NewVecDense(r, nil)
	var TP, kk mat.Dense

	res := &filterResult{
		innovations: make([]float64, len(y)),
		predictions: make([]float64, len(y)),
	}

	for t, obs := range y {
		pred := a.AtVec(0)
		v := obs - pred
		F := P.At(0, 0)
		if F <= 0 || math.IsNaN(F) {
			return nil, errSingularFilter
		}

		res.predictions[t] = pred
		res.innovations[t] = v
		res.sumLogF += math.Log(F)
		res.sumSq += v * v / F

		// K = T P Z' / F
		col.CopyVec(P.ColView(0))
		K.MulVec(ss.T, col)
		K.ScaleVec(1/F, K)

		// a = T a + K v
		next.MulVec(ss.T, a)
		next.AddScaledVec(next, v, K)
		a.CopyVec(next)

		// P = T P T' + R R' - F K K'
		TP.Mul(ss.T, P)
		P.Mul(&TP, ss.T.T())
		P.Add(P, ss.RRt)
		kk.Outer(F, K, K)
		P.Sub(P, &kk)
	}

	res.state = make([]float64, r)
	for i := range res.state {
		res.state[i] = a.AtVec(i)
	}
	return res, nil
}

// logLikelihood returns the concentrated Gaussian log-likelihood and the
// maximum likelihood estimate of sigma^2.
func (fr *filterResult) logLikelihood() (float64, float64) {
	n := float64(len(fr.innovations))
	sigma2 := fr.sumSq / n
	ll := -0.5*n*(math.Log(2*math.Pi)+math.Log(sigma2)+1) - 0.5*fr.sumLogF
	return ll, sigma2
}
