package bignum

// DefaultDirectMulLimit is the operand size in words at or below which
// multiplication uses the schoolbook algorithm.
const DefaultDirectMulLimit = 1024

// MulConfig tunes the multiplication tiers.
type MulConfig struct {
	// DirectLimit is the smaller operand's word count at or below which the
	// quadratic algorithm runs. Zero forces Karatsuba for every multi-word
	// operand.
	DirectLimit int
}

// DefaultMulConfig returns the configuration used by Mul.
func DefaultMulConfig() MulConfig {
	return MulConfig{DirectLimit: DefaultDirectMulLimit}
}

func (c MulConfig) limit() int {
	if c.DirectLimit < 0 {
		return 0
	}
	return c.DirectLimit
}
