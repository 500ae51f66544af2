package engine

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ============================================================================
// TREND ESTIMATOR — OLS of count on year + t-interval for the mean count
// ============================================================================
// The two computations are independent:
//   (a) OLS with intercept, solved by QR on the design matrix [1, ano].
//       p-values are two-sided Student-t with n-2 residual degrees of freedom.
//   (b) mean ± t(n-1) · sd/√n where n is the number of year buckets.
// ============================================================================

// FitTrend fits the yearly counts. At least two distinct years are required.
func FitTrend(counts []YearCount, opts ...Option) (*TrendResult, error) {
	cfg := applyOptions(opts)

	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		return nil, fmt.Errorf("%w: confidence level %v outside (0, 1)", ErrPrecondition, cfg.Confidence)
	}
	if d := distinctYears(counts); d < 2 {
		return nil, fmt.Errorf("%w: regression needs at least 2 distinct years, got %d", ErrPrecondition, d)
	}

	n := len(counts)
	x := make([]float64, n)
	y := make([]float64, n)
	for i, c := range counts {
		x[i] = float64(c.Ano)
		y[i] = float64(c.QuantidadeProjetos)
	}

	fit, err := fitOLS(x, y)
	if err != nil {
		return nil, err
	}

	mean, ci := MeanInterval(y, cfg.Confidence)

	return &TrendResult{
		Intercept:          fit.intercept,
		Slope:              fit.slope,
		RSquared:           fit.rSquared,
		PValues:            PValues{Intercept: fit.pIntercept, Slope: fit.pSlope},
		ConfidenceInterval: ci,
		Confidence:         cfg.Confidence,
		Mean:               mean,
		N:                  n,
	}, nil
}

type olsFit struct {
	intercept, slope   float64
	rSquared           float64
	pIntercept, pSlope float64
}

func fitOLS(x, y []float64) (*olsFit, error) {
	n := len(x)
	design := mat.NewDense(n, 2, nil)
	for i := range x {
		design.Set(i, 0, 1)
		design.Set(i, 1, x[i])
	}
	obs := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, obs); err != nil {
		return nil, fmt.Errorf("%w: solving least squares: %v", ErrPrecondition, err)
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(design, &beta)
	resid.SubVec(obs, &fitted)
	ssr := mat.Dot(&resid, &resid)

	mean := stat.Mean(y, nil)
	var sst float64
	for _, v := range y {
		sst += (v - mean) * (v - mean)
	}

	fit := &olsFit{
		intercept:  beta.AtVec(0),
		slope:      beta.AtVec(1),
		rSquared:   1 - ssr/sst,
		pIntercept: math.NaN(),
		pSlope:     math.NaN(),
	}

	dfResid := n - 2
	if dfResid <= 0 {
		return fit, nil
	}
	sigma2 := ssr / float64(dfResid)

	// cov(β) = σ² (XᵀX)⁻¹ = σ² R⁻¹ R⁻ᵀ
	var rFull mat.Dense
	qr.RTo(&rFull)
	r := rFull.Slice(0, 2, 0, 2)

	var rInv mat.Dense
	if err := rInv.Inverse(r); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: inverting R: %v", ErrPrecondition, err)
		}
	}
	var cov mat.Dense
	cov.Mul(&rInv, rInv.T())
	cov.Scale(sigma2, &cov)

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}
	fit.pIntercept = twoSidedP(tdist, fit.intercept, math.Sqrt(cov.At(0, 0)))
	fit.pSlope = twoSidedP(tdist, fit.slope, math.Sqrt(cov.At(1, 1)))
	return fit, nil
}

func twoSidedP(dist distuv.StudentsT, coef, se float64) float64 {
	t := coef / se
	switch {
	case math.IsNaN(t):
		return math.NaN()
	case math.IsInf(t, 0):
		return 0
	}
	return 2 * dist.Survival(math.Abs(t))
}

// MeanInterval returns the sample mean of values and the two-sided
// t-interval for the population mean at the given level, using len(values)-1
// degrees of freedom. Needs at least two values.
func MeanInterval(values []float64, level float64) (float64, Interval) {
	n := len(values)
	mean := stat.Mean(values, nil)
	if n < 2 {
		return mean, Interval{Low: math.NaN(), High: math.NaN()}
	}
	sem := stat.StdDev(values, nil) / math.Sqrt(float64(n))
	q := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(1 - (1-level)/2)
	return mean, Interval{Low: mean - q*sem, High: mean + q*sem}
}

func distinctYears(counts []YearCount) int {
	seen := make(map[int]struct{}, len(counts))
	for _, c := range counts {
		seen[c.Ano] = struct{}{}
	}
	return len(seen)
}
