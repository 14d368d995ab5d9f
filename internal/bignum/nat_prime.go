package bignum

// smallPrimes are used for trial division and as strong-probable-prime bases.
var smallPrimes = []Word{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67,
	71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149,
	151, 157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
	233, 239, 241, 251,
}

// pseudoPrimes[i] is the smallest odd composite that passes the strong
// probable prime test for every base in smallPrimes[:i+1]. Below the last
// entry the test sequence is exact.
var pseudoPrimes = func() []Nat {
	texts := []string{
		"2047",
		"1373653",
		"25326001",
		"3215031751",
		"2152302898747",
		"3474749660383",
		"341550071728321",
		"341550071728321",
		"3825123056546413051",
		"3825123056546413051",
		"3825123056546413051",
		"318665857834031151167461",
		"3317044064679887385961981",
	}
	out := make([]Nat, len(texts))
	for i, s := range texts {
		n, err := ParseNat(s, 10)
		if err != nil {
			panic(err)
		}
		out[i] = n
	}
	return out
}()

// millerRabinRounds is the number of leading smallPrimes used as bases above
// the exact range.
const millerRabinRounds = 24

// IsStrongProbablePrime reports whether x passes the Miller-Rabin round
// with the given base. Values below 2 fail; 2 passes.
func (x Nat) IsStrongProbablePrime(base Nat) bool {
	switch {
	case x.Cmp(NatFromWord(2)) < 0:
		return false
	case x.Equal(NatFromWord(2)):
		return true
	case !x.IsOdd():
		return false
	}
	dec := x.Sub(natOne)
	r := dec.TrailingZeros()
	d := dec.Rsh(r)

	test := base.ExpMod(d, x)
	if test.Equal(natOne) || test.Equal(dec) {
		return true
	}
	if r == 0 {
		return false
	}

	shift := x.LeadingZeros()
	norm := x.Lsh(shift)
	for range r - 1 {
		test = test.Mul(test)
		test.FormRemainder(norm, shift)
		if test.Equal(natOne) {
			return false
		}
		if test.Equal(dec) {
			return true
		}
	}
	return false
}

// IsPrime reports whether x is prime. Below 3317044064679887385961981 the
// answer is exact; above it a fixed battery of prime bases is used.
func (x Nat) IsPrime() bool {
	if x.Cmp(NatFromWord(2)) < 0 {
		return false
	}
	if x.Count() == 1 {
		w := x.Word(0)
		for _, p := range smallPrimes {
			if w == p {
				return true
			}
		}
	}
	for _, p := range smallPrimes {
		if x.RemWord(p) == 0 {
			return false
		}
	}
	last := pseudoPrimes[len(pseudoPrimes)-1]
	if x.Cmp(last) < 0 {
		for i, p := range smallPrimes[:len(pseudoPrimes)] {
			if !x.IsStrongProbablePrime(NatFromWord(p)) {
				return false
			}
			if x.Cmp(pseudoPrimes[i]) < 0 {
				return true
			}
		}
		return true
	}
	for _, p := range smallPrimes[:millerRabinRounds] {
		if !x.IsStrongProbablePrime(NatFromWord(p)) {
			return false
		}
	}
	return true
}
