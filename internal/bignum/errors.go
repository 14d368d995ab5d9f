package bignum

import "errors"

var (
	// ErrParse indicates a malformed textual or encoded integer.
	ErrParse = errors.New("invalid numeric format")
	// ErrInvalidRadix indicates a radix outside 2..36.
	ErrInvalidRadix = errors.New("radix must be between 2 and 36")
	// ErrInexact indicates a conversion that would lose information.
	ErrInexact = errors.New("value is not exactly representable")
	// ErrNegative indicates a negative value where a magnitude was required.
	ErrNegative = errors.New("unsigned integer cannot hold a negative value")
	// ErrNotFinite indicates a NaN or infinite floating-point input.
	ErrNotFinite = errors.New("floating-point value is not finite")
	// ErrShiftTooLarge indicates a masking shift whose count does not fit a machine int.
	ErrShiftTooLarge = errors.New("shift amount too large")
)

// The following values are raised with panic because they are caller
// precondition violations, mirroring integer division in the language.
// Callers that evaluate untrusted input recover them with errors.Is.
var (
	ErrDivisionByZero      = errors.New("division by zero")
	ErrArithmeticUnderflow = errors.New("unsigned subtraction underflow")
	ErrDivisionOverflow    = errors.New("quotient does not fit in a word")
)
