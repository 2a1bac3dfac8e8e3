package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WinstonPerAR is the number of winston in one AR token.
const WinstonPerAR = 1_000_000_000_000

// arDecimals is the number of fractional digits an AR amount can carry.
const arDecimals = 12

// Winston is the atomic currency unit. All fee and quantity fields on the
// wire are winston amounts as decimal strings; conversions to AR are exact
// integer arithmetic, never floating point.
type Winston uint64

// FromAR parses a decimal AR amount such as "1.5" into winston. At most
// twelve fractional digits are accepted since smaller amounts do not exist.
func FromAR(amount string) (Winston, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("currency: empty amount")
	}

	wholePart := amount
	fracPart := ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		wholePart, fracPart = amount[:i], amount[i+1:]
		if fracPart == "" {
			return 0, fmt.Errorf("currency: invalid amount %q", amount)
		}
	}

	whole, err := strconv.ParseUint(wholePart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("currency: invalid amount %q: %w", amount, err)
	}

	var frac uint64
	if fracPart != "" {
		if len(fracPart) > arDecimals {
			return 0, fmt.Errorf("currency: amount %q has more than %d decimal places", amount, arDecimals)
		}
		padded := fracPart + strings.Repeat("0", arDecimals-len(fracPart))
		frac, err = strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("currency: invalid amount %q: %w", amount, err)
		}
	}

	if whole > math.MaxUint64/WinstonPerAR {
		return 0, fmt.Errorf("currency: amount %q overflows", amount)
	}
	winston := whole * WinstonPerAR
	if winston > math.MaxUint64-frac {
		return 0, fmt.Errorf("currency: amount %q overflows", amount)
	}
	return Winston(winston + frac), nil
}

// ParseWinston parses a decimal winston string, the format used by wire
// fields and gateway responses.
func ParseWinston(amount string) (Winston, error) {
	winston, err := strconv.ParseUint(strings.TrimSpace(amount), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("currency: invalid winston amount %q: %w", amount, err)
	}
	return Winston(winston), nil
}

// String returns the winston amount as a decimal string.
func (w Winston) String() string {
	return strconv.FormatUint(uint64(w), 10)
}

// AR returns the amount as a decimal AR string with trailing zeros trimmed.
func (w Winston) AR() string {
	whole := uint64(w) / WinstonPerAR
	frac := uint64(w) % WinstonPerAR
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fracStr := strings.TrimRight(fmt.Sprintf("%0*d", arDecimals, frac), "0")
	return fmt.Sprintf("%d.%s", whole, fracStr)
}
