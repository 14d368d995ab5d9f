// Package scan tests many candidates for primality in parallel, reporting
// progress through a Sink and consulting a verdict cache.
package scan

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"bigcalc/internal/bignum"
	"bigcalc/internal/primecache"
	"bigcalc/internal/trace"
)

// Limits on the size of a single scan.
const (
	MaxMersenneExponent = 1 << 16
	MaxRangeLen         = 1 << 20
)

// DefaultTrialLimit bounds the trial divisors tried to find a factor of a
// composite candidate.
const DefaultTrialLimit = 1 << 12

var (
	ErrEmptyRange    = errors.New("scan range is empty")
	ErrRangeTooLarge = errors.New("scan range is too large")
)

// Store is a verdict cache. *primecache.Cache and *primecache.Memo
// implement it.
type Store interface {
	Get(x bignum.Nat) (primecache.Verdict, bool, error)
	Put(x bignum.Nat, v primecache.Verdict) error
}

// Candidate is one number to test.
type Candidate struct {
	Label string
	Value bignum.Nat
	// Exponent is p for a Mersenne candidate 2**p - 1, zero otherwise.
	Exponent int
}

// Result is the verdict for one candidate.
type Result struct {
	Index  int
	Label  string
	Value  bignum.Nat
	Prime  bool
	Factor bignum.Nat // zero when prime or when no small factor was found
	Cached bool
}

// Request configures a scan. From is inclusive, To exclusive.
type Request struct {
	From, To bignum.Nat
	// Jobs bounds the worker count; <= 0 means GOMAXPROCS.
	Jobs int
	// TrialLimit bounds factor search for composites; 0 selects
	// DefaultTrialLimit, negative disables it.
	TrialLimit int
	Cache      Store
	Sink       Sink
}

// MersenneCandidates returns 2**p - 1 for p in [from, to).
func MersenneCandidates(from, to int) ([]Candidate, error) {
	if from < 0 {
		from = 0
	}
	if to <= from {
		return nil, ErrEmptyRange
	}
	if to > MaxMersenneExponent+1 {
		return nil, fmt.Errorf("%w: exponent %d exceeds %d", ErrRangeTooLarge, to-1, MaxMersenneExponent)
	}
	out := make([]Candidate, 0, to-from)
	one := bignum.NatFromWord(1)
	for p := from; p < to; p++ {
		out = append(out, Candidate{
			Label:    "M" + strconv.Itoa(p),
			Value:    one.Lsh(p).SubWord(1),
			Exponent: p,
		})
	}
	return out, nil
}

// RangeCandidates returns every integer in [from, to).
func RangeCandidates(from, to bignum.Nat) ([]Candidate, error) {
	if to.Cmp(from) <= 0 {
		return nil, ErrEmptyRange
	}
	n, ok := to.Sub(from).Int()
	if !ok || n > MaxRangeLen {
		return nil, fmt.Errorf("%w: more than %d numbers", ErrRangeTooLarge, MaxRangeLen)
	}
	out := make([]Candidate, 0, n)
	x := from.Clone()
	for range n {
		out = append(out, Candidate{Label: x.String(), Value: x.Clone()})
		x.Increment()
	}
	return out, nil
}

// Mersenne tests 2**p - 1 for every exponent p in [req.From, req.To).
func Mersenne(ctx context.Context, req Request) ([]Result, error) {
	from, okFrom := req.From.Int()
	to, okTo := req.To.Int()
	if !okFrom || !okTo {
		return nil, fmt.Errorf("%w: exponent exceeds %d", ErrRangeTooLarge, MaxMersenneExponent)
	}
	cands, err := MersenneCandidates(from, to)
	if err != nil {
		return nil, err
	}
	return Run(ctx, cands, req)
}

// Range tests every integer in [req.From, req.To).
func Range(ctx context.Context, req Request) ([]Result, error) {
	cands, err := RangeCandidates(req.From, req.To)
	if err != nil {
		return nil, err
	}
	return Run(ctx, cands, req)
}

// Run tests cands in parallel and returns results in input order. The
// first failure cancels the remaining work.
func Run(ctx context.Context, cands []Candidate, req Request) ([]Result, error) {
	if len(cands) == 0 {
		return nil, nil
	}
	sink := req.Sink
	if sink == nil {
		sink = Discard
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	trialLimit := req.TrialLimit
	if trialLimit == 0 {
		trialLimit = DefaultTrialLimit
	}

	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx).SpanID

	for i, c := range cands {
		sink.Emit(Event{Index: i, Label: c.Label, Status: StatusQueued})
	}

	// each goroutine writes only its own slot
	results := make([]Result, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(cands)))

	for i, c := range cands {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			span := trace.Begin(tracer, trace.ScopeJob, "candidate", parent)
			sink.Emit(Event{Index: i, Label: c.Label, Status: StatusWorking})

			res, err := check(c, req.Cache, trialLimit)
			if err != nil {
				span.WithExtra("error", err.Error()).End(c.Label)
				sink.Emit(Event{Index: i, Label: c.Label, Status: StatusError})
				return fmt.Errorf("%s: %w", c.Label, err)
			}
			res.Index = i
			results[i] = res

			span.WithExtra("prime", strconv.FormatBool(res.Prime)).
				WithExtra("cached", strconv.FormatBool(res.Cached)).
				End(c.Label)
			status := StatusComposite
			if res.Prime {
				status = StatusPrime
			}
			sink.Emit(Event{Index: i, Label: c.Label, Status: status, Cached: res.Cached})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func check(c Candidate, cache Store, trialLimit int) (Result, error) {
	res := Result{Label: c.Label, Value: c.Value}
	if cache != nil {
		v, ok, err := cache.Get(c.Value)
		if err != nil {
			return res, err
		}
		if ok {
			res.Prime, res.Factor, res.Cached = v.Prime, v.Factor, true
			return res, nil
		}
	}

	res.Prime = c.Value.IsPrime()
	if !res.Prime {
		res.Factor = findFactor(c, trialLimit)
	}

	if cache != nil {
		if err := cache.Put(c.Value, primecache.Verdict{Prime: res.Prime, Factor: res.Factor}); err != nil {
			return res, err
		}
	}
	return res, nil
}

// findFactor looks for a non-trivial divisor of a composite candidate.
// 2**ab - 1 is divisible by 2**a - 1, so Mersenne candidates with a
// composite exponent need no search.
func findFactor(c Candidate, trialLimit int) bignum.Nat {
	if c.Exponent >= 4 {
		if d := smallestDivisor(c.Exponent); d != c.Exponent {
			return bignum.NatFromWord(1).Lsh(d).SubWord(1)
		}
	}
	if trialLimit < 0 {
		return bignum.Nat{}
	}
	x := c.Value
	if x.Cmp(bignum.NatFromWord(4)) < 0 {
		return bignum.Nat{}
	}
	if !x.IsOdd() {
		return bignum.NatFromWord(2)
	}
	for d := 3; d <= trialLimit; d += 2 {
		w := bignum.Word(d)
		if x.Cmp(bignum.NatFromWord(w)) <= 0 {
			break
		}
		if x.RemWord(w) == 0 {
			return bignum.NatFromWord(w)
		}
	}
	return bignum.Nat{}
}

func smallestDivisor(n int) int {
	if n%2 == 0 {
		return 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return d
		}
	}
	return n
}
