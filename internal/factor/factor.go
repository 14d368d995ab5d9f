// Package factor splits natural numbers into prime factors using trial
// division for small primes and Pollard's rho for the rest. Primality of
// cofactors is decided by Nat.IsPrime (Miller-Rabin).
package factor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"bigcalc/internal/bignum"
	"bigcalc/internal/trace"
)

// Defaults for Options fields left at zero.
const (
	DefaultTrialLimit    = 1 << 14
	DefaultMaxIterations = 1 << 22
	defaultAttempts      = 16
	batch                = 64
)

// ErrGaveUp reports a composite cofactor that rho could not split within
// Options.MaxIterations.
var ErrGaveUp = errors.New("factor search gave up")

// Options tunes the search.
type Options struct {
	// TrialLimit bounds trial divisors; 0 selects DefaultTrialLimit.
	TrialLimit int
	// MaxIterations bounds rho steps per attempt; 0 selects
	// DefaultMaxIterations.
	MaxIterations int
	Mul           bignum.MulConfig
}

// Factor returns the prime factors of n in ascending order, repeated by
// multiplicity. 0 and 1 have no factors. When a cofactor resists rho the
// factors found so far are returned together with an error wrapping
// ErrGaveUp.
func Factor(ctx context.Context, n bignum.Nat, opts Options) ([]bignum.Nat, error) {
	if opts.TrialLimit <= 0 {
		opts.TrialLimit = DefaultTrialLimit
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeJob, "factor", trace.CurrentSpan(ctx).SpanID)
	defer span.End(n.String())

	one := bignum.NatFromWord(1)
	if n.Cmp(one) <= 0 {
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	factors, rest, err := trialDivide(ctx, n, opts.TrialLimit)
	if err != nil {
		return nil, err
	}

	pending := []bignum.Nat{}
	if rest.Cmp(one) > 0 {
		pending = append(pending, rest)
	}
	for len(pending) > 0 {
		m := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if m.IsPrime() {
			factors = append(factors, m)
			continue
		}
		d, err := split(ctx, m, opts, span.ID())
		if err != nil {
			sortNats(factors)
			return factors, err
		}
		pending = append(pending, d, m.Quo(d))
	}
	sortNats(factors)
	return factors, nil
}

// trialDivide removes every prime factor below limit and returns the
// cofactor.
func trialDivide(ctx context.Context, n bignum.Nat, limit int) ([]bignum.Nat, bignum.Nat, error) {
	var out []bignum.Nat
	for d := 2; d <= limit; d++ {
		if d > 2 && d%2 == 0 {
			continue
		}
		if d%1024 == 1 {
			if err := ctx.Err(); err != nil {
				return nil, bignum.Nat{}, err
			}
		}
		w := bignum.Word(d)
		if n.Cmp(bignum.NatFromWord(w).Mul(bignum.NatFromWord(w))) < 0 {
			break
		}
		for n.RemWord(w) == 0 {
			n, _ = n.QuoRemWord(w)
			out = append(out, bignum.NatFromWord(w))
		}
	}
	// n may still be composite when the loop ran out of divisors
	return out, n, nil
}

// split finds a non-trivial divisor of the composite m.
func split(ctx context.Context, m bignum.Nat, opts Options, parent uint64) (bignum.Nat, error) {
	if !m.IsOdd() {
		return bignum.NatFromWord(2), nil
	}
	if r := m.Sqrt(); r.Mul(r).Equal(m) {
		return r, nil
	}
	tracer := trace.FromContext(ctx)
	for c := bignum.Word(1); c <= defaultAttempts; c++ {
		trace.Point(tracer, trace.ScopeStep, "rho", "c="+strconv.FormatUint(uint64(c), 10), parent)
		d, ok, err := rho(ctx, m, bignum.NatFromWord(c), opts)
		if err != nil {
			return bignum.Nat{}, err
		}
		if ok {
			return d, nil
		}
	}
	return bignum.Nat{}, fmt.Errorf("%w: cofactor %s", ErrGaveUp, m)
}

// rho runs Floyd's cycle search on x -> x*x + c (mod n), batching the
// gcd over runs of differences. ok is false when the cycle closed without
// exposing a factor.
func rho(ctx context.Context, n, c bignum.Nat, opts Options) (bignum.Nat, bool, error) {
	one := bignum.NatFromWord(1)
	f := func(x bignum.Nat) bignum.Nat {
		return x.MulWithConfig(x, opts.Mul).Add(c).Rem(n)
	}
	x, y := bignum.NatFromWord(2), bignum.NatFromWord(2)
	for steps := 0; steps < opts.MaxIterations; steps += batch {
		if err := ctx.Err(); err != nil {
			return bignum.Nat{}, false, err
		}
		xs, ys := x, y
		q := one
		for range batch {
			x = f(x)
			y = f(f(y))
			q = q.MulWithConfig(distance(x, y), opts.Mul).Rem(n)
		}
		if q.GCD(n).Equal(one) {
			continue
		}
		// replay the batch one step at a time
		x, y = xs, ys
		for range batch {
			x = f(x)
			y = f(f(y))
			d := distance(x, y).GCD(n)
			if d.Equal(one) {
				continue
			}
			if d.Equal(n) {
				return bignum.Nat{}, false, nil
			}
			return d, true, nil
		}
		return bignum.Nat{}, false, nil
	}
	return bignum.Nat{}, false, nil
}

func distance(x, y bignum.Nat) bignum.Nat {
	if x.Cmp(y) >= 0 {
		return x.Sub(y)
	}
	return y.Sub(x)
}

func sortNats(s []bignum.Nat) {
	slices.SortFunc(s, func(a, b bignum.Nat) int { return a.Cmp(b) })
}
