package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is wrapped by every conversion that would truncate or wrap.
var ErrOverflow = errors.New("integer overflow")

// Uint64ToInt narrows a decoded length or count to int.
func Uint64ToInt(v uint64) (int, error) {
	if v > math.MaxInt {
		return 0, fmt.Errorf("%w: %d does not fit in int", ErrOverflow, v)
	}
	return int(v), nil
}

// AddInt returns a+b for non-negative operands.
func AddInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative operand in %d + %d", ErrOverflow, a, b)
	}
	if a > math.MaxInt-b {
		return 0, fmt.Errorf("%w: %d + %d exceeds int", ErrOverflow, a, b)
	}
	return a + b, nil
}

// SumLen returns the total byte length of strs, the exact size of an arena
// holding all of them.
func SumLen(strs []string) (int, error) {
	total := 0
	for _, s := range strs {
		var err error
		if total, err = AddInt(total, len(s)); err != nil {
			return 0, err
		}
	}
	return total, nil
}
