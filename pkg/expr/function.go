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
package expr

import "math"

const (
	// SIN indicates the sine function
	SIN uint8 = 0
	// COS indicates the cosine function
	COS uint8 = 1
	// TAN indicates the tangent function
	TAN uint8 = 2
	// LN indicates the natural logarithm
	LN uint8 = 3
	// EXP indicates the natural exponential
	EXP uint8 = 4
	// SQRT indicates the square root
	SQRT uint8 = 5
	// ABS indicates the absolute value
	ABS uint8 = 6
)

// Func represents the application of a built-in unary function to an
// argument.
type Func struct {
	Op  uint8
	Arg Expr
}

// Sin constructs the sine of an expression.
func Sin(arg Expr) Expr { return &Func{SIN, arg} }

// Cos constructs the cosine of an expression.
func Cos(arg Expr) Expr { return &Func{COS, arg} }

// Tan constructs the tangent of an expression.
func Tan(arg Expr) Expr { return &Func{TAN, arg} }

// Ln constructs the natural logarithm of an expression.
func Ln(arg Expr) Expr { return &Func{LN, arg} }

// Exp constructs the natural exponential of an expression.
func Exp(arg Expr) Expr { return &Func{EXP, arg} }

// Sqrt constructs the square root of an expression.
func Sqrt(arg Expr) Expr { return &Func{SQRT, arg} }

// Abs constructs the absolute value of an expression.
func Abs(arg Expr) Expr { return &Func{ABS, arg} }

// Complexity implementation for Expr interface.
func (p *Func) Complexity() uint {
	return 1 + p.Arg.Complexity()
}

// Eval implementation for Expr interface.
func (p *Func) Eval(env Environment) (float64, error) {
	arg, err := p.Arg.Eval(env)
	if err != nil {
		return 0, err
	}
	//
	switch p.Op {
	case SIN:
		return math.Sin(arg), nil
	case COS:
		return math.Cos(arg), nil
	case TAN:
		return math.Tan(arg), nil
	case LN:
		if arg <= 0 {
			return 0, logNonPositive()
		}
		//
		return math.Log(arg), nil
	case EXP:
		return math.Exp(arg), nil
	case SQRT:
		if arg < 0 {
			return 0, sqrtNegative()
		}
		//
		return math.Sqrt(arg), nil
	case ABS:
		return math.Abs(arg), nil
	}
	// failure
	panic("unreachable")
}

// Substitute implementation for Expr interface.
func (p *Func) Substitute(sym Symbol, with Expr) Expr {
	return &Func{p.Op, p.Arg.Substitute(sym, with)}
}

func (p *Func) String() string {
	return funcName(p.Op) + "(" + p.Arg.String() + ")"
}

func (p *Func) canon(depth uint, st *canonState) Expr {
	if depth >= maxCanonDepth {
		return p
	}
	//
	arg := p.Arg.canon(depth+1, st)
	//
	if c, ok := AsConstant(arg); ok {
		switch {
		case p.Op == ABS:
			// Absolute value is exact arithmetic, so it folds.
			return Const(c.Abs())
		case p.Op == LN && !c.IsPositive():
			st.record(logNonPositive())
		case p.Op == SQRT && c.IsNegative():
			st.record(sqrtNegative())
		}
	}
	// Transcendental values are never folded here; rewrite rules decide
	// identities such as sin(0) = 0.
	return &Func{p.Op, arg}
}

func (p *Func) vars(bound map[Symbol]bool, out map[Symbol]bool) {
	p.Arg.vars(bound, out)
}

func funcName(op uint8) string {
	switch op {
	case SIN:
		return "sin"
	case COS:
		return "cos"
	case TAN:
		return "tan"
	case LN:
		return "ln"
	case EXP:
		return "exp"
	case SQRT:
		return "sqrt"
	case ABS:
		return "abs"
	}
	// failure
	panic("unreachable")
}
