// Package rpn evaluates reverse-Polish expressions over bignum.Int.
package rpn

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"bigcalc/internal/bignum"
	"bigcalc/internal/trace"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownToken   = errors.New("unknown token")
	// ErrDomain reports an operand outside an operator's domain, such as
	// a negative factorial or a missing modular inverse.
	ErrDomain = errors.New("operand out of range")
	// ErrTooLarge reports a result that would exceed Options.MaxBits.
	ErrTooLarge = errors.New("result too large")
)

// DefaultMaxBits bounds results of pow, shifts, fib and factorial.
const DefaultMaxBits = 1 << 24

// Options tunes evaluation.
type Options struct {
	Mul bignum.MulConfig
	// MaxBits bounds the estimated size of expensive results; 0 selects
	// DefaultMaxBits.
	MaxBits int
}

// engineErrors are the sentinels the engine panics with on bad operands.
var engineErrors = []error{
	bignum.ErrDivisionByZero,
	bignum.ErrArithmeticUnderflow,
	bignum.ErrDivisionOverflow,
	bignum.ErrShiftTooLarge,
	bignum.ErrNegative,
}

type machine struct {
	stack   []bignum.Int
	mul     bignum.MulConfig
	maxBits int
}

// Eval runs tokens left to right and returns the final stack, bottom
// first.
func Eval(ctx context.Context, tokens []string, opts Options) ([]bignum.Int, error) {
	m := &machine{mul: opts.Mul, maxBits: opts.MaxBits}
	if m.maxBits <= 0 {
		m.maxBits = DefaultMaxBits
	}
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID
	for i, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		trace.Point(tracer, trace.ScopeStep, "rpn", tok, parent)
		if err := m.step(tok); err != nil {
			return nil, fmt.Errorf("token %d %q: %w", i+1, tok, err)
		}
	}
	return m.stack, nil
}

// step applies one token. Engine panics for invalid operands become errors.
func (m *machine) step(tok string) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			for _, want := range engineErrors {
				if errors.Is(e, want) {
					err = e
					return
				}
			}
		}
		panic(r)
	}()

	if x, ok, err := parseNumber(tok); ok {
		if err != nil {
			return err
		}
		m.push(x)
		return nil
	}

	name := strings.ToLower(tok)
	if op, ok := stackOps[name]; ok {
		return op(m)
	}
	if op, ok := unaryOps[name]; ok {
		x, err := m.pop1()
		if err != nil {
			return err
		}
		r, err := op(m, x)
		if err != nil {
			return err
		}
		m.push(r)
		return nil
	}
	if op, ok := binaryOps[name]; ok {
		x, y, err := m.pop2()
		if err != nil {
			return err
		}
		r, err := op(m, x, y)
		if err != nil {
			return err
		}
		m.push(r)
		return nil
	}
	if name == "powmod" {
		if len(m.stack) < 3 {
			return ErrStackUnderflow
		}
		n := len(m.stack)
		x, e, mod := m.stack[n-3], m.stack[n-2], m.stack[n-1]
		m.stack = m.stack[:n-3]
		m.push(x.ExpModWithConfig(e, mod, m.mul))
		return nil
	}
	return ErrUnknownToken
}

func (m *machine) push(x bignum.Int) { m.stack = append(m.stack, x) }

func (m *machine) pop1() (bignum.Int, error) {
	n := len(m.stack)
	if n < 1 {
		return bignum.Int{}, ErrStackUnderflow
	}
	x := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return x, nil
}

func (m *machine) pop2() (bignum.Int, bignum.Int, error) {
	n := len(m.stack)
	if n < 2 {
		return bignum.Int{}, bignum.Int{}, ErrStackUnderflow
	}
	x, y := m.stack[n-2], m.stack[n-1]
	m.stack = m.stack[:n-2]
	return x, y, nil
}

// smallInt converts x to an int within [lo, hi].
func smallInt(x bignum.Int, lo, hi int64) (int, error) {
	v, ok := x.Int64()
	if !ok || v < lo || v > hi {
		return 0, fmt.Errorf("%w: %s not in [%d, %d]", ErrDomain, x, lo, hi)
	}
	return int(v), nil
}

func (m *machine) checkBits(est float64) error {
	if est > float64(m.maxBits) {
		return fmt.Errorf("%w: about %.0f bits exceeds %d", ErrTooLarge, est, m.maxBits)
	}
	return nil
}

var stackOps = map[string]func(m *machine) error{
	"dup": func(m *machine) error {
		x, err := m.pop1()
		if err != nil {
			return err
		}
		m.push(x)
		m.push(x)
		return nil
	},
	"swap": func(m *machine) error {
		x, y, err := m.pop2()
		if err != nil {
			return err
		}
		m.push(y)
		m.push(x)
		return nil
	},
	"drop": func(m *machine) error {
		_, err := m.pop1()
		return err
	},
}

var unaryOps = map[string]func(m *machine, x bignum.Int) (bignum.Int, error){
	"neg":  func(_ *machine, x bignum.Int) (bignum.Int, error) { return x.Neg(), nil },
	"abs":  func(_ *machine, x bignum.Int) (bignum.Int, error) { return x.Abs(), nil },
	"not":  func(_ *machine, x bignum.Int) (bignum.Int, error) { return x.Not(), nil },
	"sqrt": func(_ *machine, x bignum.Int) (bignum.Int, error) { return x.Sqrt(), nil },
	"isprime": func(_ *machine, x bignum.Int) (bignum.Int, error) {
		if x.IsPrime() {
			return bignum.IntFromInt64(1), nil
		}
		return bignum.Int{}, nil
	},
	"fib": func(m *machine, x bignum.Int) (bignum.Int, error) {
		n, err := smallInt(x, 0, math.MaxInt32)
		if err != nil {
			return bignum.Int{}, err
		}
		if err := m.checkBits(0.695 * float64(n)); err != nil {
			return bignum.Int{}, err
		}
		return bignum.IntFromNat(bignum.Plus, bignum.Fibonacci(n)), nil
	},
	"!": func(m *machine, x bignum.Int) (bignum.Int, error) {
		n, err := smallInt(x, 0, math.MaxInt32)
		if err != nil {
			return bignum.Int{}, err
		}
		if n > 1 {
			if err := m.checkBits(float64(n) * math.Log2(float64(n))); err != nil {
				return bignum.Int{}, err
			}
		}
		return bignum.IntFromNat(bignum.Plus, bignum.Factorial(n)), nil
	},
}

var binaryOps = map[string]func(m *machine, x, y bignum.Int) (bignum.Int, error){
	"+": func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.Add(y), nil },
	"-": func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.Sub(y), nil },
	"*": func(m *machine, x, y bignum.Int) (bignum.Int, error) {
		return x.MulWithConfig(y, m.mul), nil
	},
	"/":   func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.Quo(y), nil },
	"%":   func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.Rem(y), nil },
	"mod": func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.Mod(y), nil },
	"**":  pow,
	"^":   pow,
	"&":   func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.And(y), nil },
	"|":   func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.Or(y), nil },
	"xor": func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.Xor(y), nil },
	"<<": func(m *machine, x, y bignum.Int) (bignum.Int, error) {
		if y.Signum() > 0 && !x.IsZero() {
			if s, ok := y.Int64(); !ok || m.checkBits(float64(x.BitLen())+float64(s)) != nil {
				return bignum.Int{}, fmt.Errorf("%w: shift by %s", ErrTooLarge, y)
			}
		}
		return x.MaskingLsh(y)
	},
	">>": func(m *machine, x, y bignum.Int) (bignum.Int, error) {
		if y.Signum() < 0 && !x.IsZero() {
			if s, ok := y.Int64(); !ok || m.checkBits(float64(x.BitLen())-float64(s)) != nil {
				return bignum.Int{}, fmt.Errorf("%w: shift by %s", ErrTooLarge, y)
			}
		}
		return x.MaskingRsh(y)
	},
	"gcd": func(_ *machine, x, y bignum.Int) (bignum.Int, error) { return x.GCD(y), nil },
	"inv": func(_ *machine, x, y bignum.Int) (bignum.Int, error) {
		r, ok := x.Inverse(y)
		if !ok {
			return bignum.Int{}, fmt.Errorf("%w: %s has no inverse modulo %s", ErrDomain, x, y)
		}
		return r, nil
	},
}

func pow(m *machine, x, y bignum.Int) (bignum.Int, error) {
	e, err := smallInt(y, math.MinInt32, math.MaxInt32)
	if err != nil {
		return bignum.Int{}, err
	}
	if e > 0 && x.Magnitude().BitLen() > 1 {
		if err := m.checkBits(float64(x.Magnitude().BitLen()) * float64(e)); err != nil {
			return bignum.Int{}, err
		}
	}
	return x.PowWithConfig(e, m.mul), nil
}
