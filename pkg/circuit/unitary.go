// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package circuit

import (
	"math"
	"math/cmplx"
)

// Matrix is a square complex matrix in row-major order.  For a two-qubit gate
// the first operand is the most significant bit of the row (resp. column)
// index.
type Matrix [][]complex128

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := zero(n)
	//
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	//
	return m
}

// Mul returns the matrix product p * o.
func (p Matrix) Mul(o Matrix) Matrix {
	n := len(p)
	r := zero(n)
	//
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum complex128
			//
			for k := 0; k < n; k++ {
				sum += p[i][k] * o[k][j]
			}
			//
			r[i][j] = sum
		}
	}
	//
	return r
}

// EqualsUpToPhase determines whether p = e^{iα}·o for some global phase α,
// within a given tolerance.
func (p Matrix) EqualsUpToPhase(o Matrix, tolerance float64) bool {
	if len(p) != len(o) {
		return false
	}
	// Find a reference entry to fix the phase
	var phase complex128
	//
	for i := range p {
		for j := range p[i] {
			if phase == 0 && cmplx.Abs(o[i][j]) > tolerance {
				phase = p[i][j] / o[i][j]
			}
		}
	}
	//
	if math.Abs(cmplx.Abs(phase)-1) > tolerance {
		return false
	}
	//
	for i := range p {
		for j := range p[i] {
			if cmplx.Abs(p[i][j]-phase*o[i][j]) > tolerance {
				return false
			}
		}
	}
	//
	return true
}

// Unitary returns the matrix of a one or two qubit gate, or false if the
// operation is not such a gate.
func Unitary(op Operation) (Matrix, bool) {
	var (
		θ = op.Param(0)
		c = complex(math.Cos(θ/2), 0)
		s = complex(math.Sin(θ/2), 0)
	)
	//
	switch op.Kind {
	case ID:
		return Identity(2), true
	case X:
		return Matrix{{0, 1}, {1, 0}}, true
	case Y:
		return Matrix{{0, -1i}, {1i, 0}}, true
	case Z:
		return Matrix{{1, 0}, {0, -1}}, true
	case H:
		r := complex(1/math.Sqrt2, 0)
		return Matrix{{r, r}, {r, -r}}, true
	case S:
		return Matrix{{1, 0}, {0, 1i}}, true
	case SDG:
		return Matrix{{1, 0}, {0, -1i}}, true
	case T:
		return Matrix{{1, 0}, {0, expi(math.Pi / 4)}}, true
	case TDG:
		return Matrix{{1, 0}, {0, expi(-math.Pi / 4)}}, true
	case SX:
		return Matrix{{(1 + 1i) / 2, (1 - 1i) / 2}, {(1 - 1i) / 2, (1 + 1i) / 2}}, true
	case SXDG:
		return Matrix{{(1 - 1i) / 2, (1 + 1i) / 2}, {(1 + 1i) / 2, (1 - 1i) / 2}}, true
	case RX:
		return Matrix{{c, -1i * s}, {-1i * s, c}}, true
	case RY:
		return Matrix{{c, -s}, {s, c}}, true
	case RZ:
		return Matrix{{expi(-θ / 2), 0}, {0, expi(θ / 2)}}, true
	case P:
		return Matrix{{1, 0}, {0, expi(θ)}}, true
	case U:
		φ, λ := op.Param(1), op.Param(2)
		return Matrix{{c, -expi(λ) * s}, {expi(φ) * s, expi(φ+λ) * c}}, true
	case PRX:
		φ := op.Param(1)
		return Matrix{{c, -1i * expi(-φ) * s}, {-1i * expi(φ) * s, c}}, true
	case CX:
		return Matrix{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}, {0, 0, 1, 0}}, true
	case CY:
		return Matrix{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 0, -1i}, {0, 0, 1i, 0}}, true
	case CZ:
		return diagonal(1, 1, 1, -1), true
	case SWAP:
		return Matrix{{1, 0, 0, 0}, {0, 0, 1, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}}, true
	case CP:
		return diagonal(1, 1, 1, expi(θ)), true
	case CRZ:
		return diagonal(1, 1, expi(-θ/2), expi(θ/2)), true
	case RZZ:
		return diagonal(expi(-θ/2), expi(θ/2), expi(θ/2), expi(-θ/2)), true
	}
	//
	return nil, false
}

func expi(θ float64) complex128 {
	return cmplx.Exp(complex(0, θ))
}

func diagonal(entries ...complex128) Matrix {
	m := zero(len(entries))
	//
	for i, e := range entries {
		m[i][i] = e
	}
	//
	return m
}

func zero(n int) Matrix {
	m := make(Matrix, n)
	//
	for i := range m {
		m[i] = make([]complex128, n)
	}
	//
	return m
}
