// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package algorithms contains the factorization algorithms behind the
// recommendation engine. ALS is the only implementation today.
package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/shopstream/recommender/internal/recommend"
)

// ALSConfig contains configuration for the ALS algorithm.
type ALSConfig struct {
	// NumFactors is the dimension of the latent factor vectors.
	NumFactors int

	// NumIterations is the number of alternating passes to run.
	NumIterations int

	// Regularization is the L2 regularization parameter lambda. Must be
	// positive so every per-row solve has a unique solution.
	Regularization float64

	// Alpha scales the confidence transformation for implicit feedback:
	// c = 1 + alpha * r, where r is the accumulated interaction weight.
	Alpha float64

	// Seed drives factor initialization. Identical seed, matrix, and
	// hyperparameters reproduce identical factors.
	Seed int64

	// NumWorkers is the number of parallel workers for the per-row
	// solves. If <= 0, defaults to runtime.NumCPU().
	NumWorkers int
}

// DefaultALSConfig returns the default hyperparameters.
func DefaultALSConfig() ALSConfig {
	return ALSConfig{
		NumFactors:     32,
		NumIterations:  10,
		Regularization: 0.01,
		Alpha:          10.0,
		Seed:           42,
		NumWorkers:     0,
	}
}

// ALS implements Alternating Least Squares for implicit feedback.
// Reference: "Collaborative Filtering for Implicit Feedback Datasets"
// (Hu, Koren, Volinsky, 2008).
//
// The objective function minimizes:
// sum_{u,i} c_ui * (p_ui - x_u' * y_i)^2 + lambda * (||x_u||^2 + ||y_i||^2)
//
// where p_ui = 1 if user u interacted with item i, 0 otherwise,
// and c_ui = 1 + alpha * r_ui is the confidence.
type ALS struct {
	config ALSConfig
}

// NewALS creates an ALS factorizer with the given configuration,
// filling in defaults for unset fields.
func NewALS(cfg ALSConfig) *ALS {
	if cfg.NumFactors <= 0 {
		cfg.NumFactors = 32
	}
	if cfg.NumIterations <= 0 {
		cfg.NumIterations = 10
	}
	if cfg.Regularization <= 0 {
		cfg.Regularization = 0.01
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = 10.0
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}
	return &ALS{config: cfg}
}

// Factorize fits user and item factor matrices to the confidence matrix
// by alternating regularized least-squares solves. Factors are seeded
// deterministically, so repeat runs over the same matrix are identical.
// A non-finite value in either factor matrix aborts the run with
// TrainingDivergedError.
//
//nolint:gocyclo // training loops are inherently branchy
func (a *ALS) Factorize(ctx context.Context, m *recommend.ConfidenceMatrix) ([][]float64, [][]float64, error) {
	numUsers := m.NumUsers()
	numItems := m.NumItems()
	numFactors := a.config.NumFactors

	if numUsers == 0 || numItems == 0 {
		return [][]float64{}, [][]float64{}, nil
	}

	// Confidence in sparse form: c_ui = 1 + alpha * r_ui.
	userItems := make(map[int]map[int]float64, numUsers)
	for u := 0; u < numUsers; u++ {
		row := m.Row(u)
		if len(row) == 0 {
			continue
		}
		conf := make(map[int]float64, len(row))
		for i, r := range row {
			conf[i] = 1.0 + a.config.Alpha*r
		}
		userItems[u] = conf
	}

	itemUsers := make(map[int]map[int]float64, numItems)
	for i, col := range m.Transpose() {
		conf := make(map[int]float64, len(col))
		for u, r := range col {
			conf[u] = 1.0 + a.config.Alpha*r
		}
		itemUsers[i] = conf
	}

	// Seeded initialization, single-threaded so it is reproducible.
	rng := rand.New(rand.NewSource(a.config.Seed))
	X := make([][]float64, numUsers)
	for u := range X {
		X[u] = make([]float64, numFactors)
		for f := range X[u] {
			X[u][f] = 0.1 * (rng.Float64() - 0.5)
		}
	}
	Y := make([][]float64, numItems)
	for i := range Y {
		Y[i] = make([]float64, numFactors)
		for f := range Y[i] {
			Y[i][f] = 0.1 * (rng.Float64() - 0.5)
		}
	}

	lambda := a.config.Regularization

	for iter := 0; iter < a.config.NumIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		// Fix Y, solve for X; then fix X, solve for Y.
		a.updateFactors(X, Y, userItems, lambda)
		a.updateFactors(Y, X, itemUsers, lambda)

		if err := checkFinite(X, iter, "user factors"); err != nil {
			return nil, nil, err
		}
		if err := checkFinite(Y, iter, "item factors"); err != nil {
			return nil, nil, err
		}
	}

	return X, Y, nil
}

// updateFactors solves the regularized normal equations for every row of
// target, holding fixed constant. rows maps each target row to its
// confidence-weighted entries over fixed's rows.
func (a *ALS) updateFactors(target, fixed [][]float64, rows map[int]map[int]float64, lambda float64) {
	numFactors := a.config.NumFactors

	// Precompute F'F once per pass; each row solve only adds the
	// (c-1)-weighted rank-one terms for its observed entries.
	FtF := make([][]float64, numFactors)
	for f := range FtF {
		FtF[f] = make([]float64, numFactors)
	}
	for _, vec := range fixed {
		for f1 := 0; f1 < numFactors; f1++ {
			for f2 := f1; f2 < numFactors; f2++ {
				FtF[f1][f2] += vec[f1] * vec[f2]
				if f1 != f2 {
					FtF[f2][f1] = FtF[f1][f2]
				}
			}
		}
	}

	numRows := len(target)
	workers := a.config.NumWorkers
	chunkSize := (numRows + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > numRows {
			end = numRows
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(rStart, rEnd int) {
			defer wg.Done()
			for r := rStart; r < rEnd; r++ {
				target[r] = solveRow(rows[r], fixed, FtF, numFactors, lambda)
			}
		}(start, end)
	}
	wg.Wait()
}

// solveRow computes one factor vector from the regularized normal
// equations A*x = b where A = F'C F + lambda*I and b = F'C p.
//
//nolint:gocritic // A, FtF follow standard linear algebra notation
func solveRow(entries map[int]float64, fixed [][]float64, FtF [][]float64, numFactors int, lambda float64) []float64 {
	// Start from F'F + lambda*I.
	A := make([][]float64, numFactors)
	for f := range A {
		A[f] = make([]float64, numFactors)
		copy(A[f], FtF[f])
		A[f][f] += lambda
	}

	// Accumulate in ascending index order so float rounding is identical
	// across runs.
	indices := make([]int, 0, len(entries))
	for idx := range entries {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	b := make([]float64, numFactors)
	for _, idx := range indices {
		// A += (c - 1) * v * v', b += c * v   (p = 1 for observed cells)
		v := fixed[idx]
		conf := entries[idx]
		cMinus1 := conf - 1.0

		for f1 := 0; f1 < numFactors; f1++ {
			for f2 := f1; f2 < numFactors; f2++ {
				delta := cMinus1 * v[f1] * v[f2]
				A[f1][f2] += delta
				if f1 != f2 {
					A[f2][f1] += delta
				}
			}
			b[f1] += conf * v[f1]
		}
	}

	return solveLinearSystem(A, b)
}

// solveLinearSystem solves A*x = b using Cholesky decomposition.
//
//nolint:gocritic // A, L follow standard linear algebra notation
func solveLinearSystem(A [][]float64, b []float64) []float64 {
	n := len(b)

	// Cholesky decomposition: A = L * L'
	L := make([][]float64, n)
	for i := range L {
		L[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := A[i][j]
			for k := 0; k < j; k++ {
				sum -= L[i][k] * L[j][k]
			}

			if i == j {
				if sum <= 0 {
					// Keep the factorization alive when A is not
					// numerically positive definite.
					sum = 1e-10
				}
				L[i][j] = math.Sqrt(sum)
			} else if L[j][j] != 0 {
				L[i][j] = sum / L[j][j]
			}
		}
	}

	// Forward substitution: L * z = b
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= L[i][j] * z[j]
		}
		if L[i][i] != 0 {
			z[i] = sum / L[i][i]
		}
	}

	// Back substitution: L' * x = z
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := z[i]
		for j := i + 1; j < n; j++ {
			sum -= L[j][i] * x[j]
		}
		if L[i][i] != 0 {
			x[i] = sum / L[i][i]
		}
	}

	return x
}

// checkFinite fails with TrainingDivergedError on the first NaN or Inf
// in the factor matrix.
func checkFinite(factors [][]float64, iteration int, which string) error {
	for r, vec := range factors {
		for _, v := range vec {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &recommend.TrainingDivergedError{
					Iteration: iteration,
					Detail:    fmt.Sprintf("non-finite value in %s row %d", which, r),
				}
			}
		}
	}
	return nil
}

// Ensure interface compliance.
var _ recommend.Factorizer = (*ALS)(nil)
