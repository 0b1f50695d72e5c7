// FILE: lixenwraith/valconfig/duration.go
package config

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// durationUnits lists the accepted unit spellings.
var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond, "nsec": time.Nanosecond, "nanos": time.Nanosecond,
	"us": time.Microsecond, "µs": time.Microsecond, "μs": time.Microsecond, "usec": time.Microsecond, "micros": time.Microsecond,
	"ms": time.Millisecond, "msec": time.Millisecond, "millis": time.Millisecond,
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
}

// ParseDuration parses human-readable durations such as "400ms", "1h 30min", "2days" or
// Go's own "1h0m0s". A bare number is a count of seconds and may be fractional.
// Arithmetic is exact down to the nanosecond; totals beyond time.Duration are rejected.
func ParseDuration(s string) (time.Duration, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDuration)
	}
	if secs, err := strconv.ParseFloat(in, 64); err == nil {
		exact, ok := new(big.Rat).SetString(in)
		if !ok {
			return DurationFromSeconds(secs)
		}
		if exact.Sign() < 0 {
			return 0, fmt.Errorf("%w: %v seconds", ErrInvalidDuration, secs)
		}
		d, ok := roundNanos(exact.Mul(exact, big.NewRat(int64(time.Second), 1)))
		if !ok {
			return 0, fmt.Errorf("%w: %q overflows", ErrInvalidDuration, in)
		}
		return d, nil
	}

	total := new(big.Rat)
	rest := in
	for rest != "" {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}

		n := strings.IndexFunc(rest, func(r rune) bool { return !(r >= '0' && r <= '9' || r == '.') })
		if n == 0 {
			return 0, fmt.Errorf("%w: expected number at %q", ErrInvalidDuration, rest)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: missing unit after %q", ErrInvalidDuration, rest)
		}
		value, ok := new(big.Rat).SetString(rest[:n])
		if !ok {
			return 0, fmt.Errorf("%w: bad number %q", ErrInvalidDuration, rest[:n])
		}
		rest = strings.TrimLeftFunc(rest[n:], unicode.IsSpace)

		u := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsLetter(r) })
		if u < 0 {
			u = len(rest)
		}
		unit, ok := durationUnits[rest[:u]]
		if !ok {
			return 0, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidDuration, rest[:u], in)
		}
		rest = rest[u:]
		total.Add(total, value.Mul(value, big.NewRat(int64(unit), 1)))
	}

	d, ok := roundNanos(total)
	if !ok {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidDuration, in)
	}
	return d, nil
}

// DurationFromSeconds converts a numeric seconds value, rejecting negatives and overflow.
func DurationFromSeconds(secs float64) (time.Duration, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, fmt.Errorf("%w: %v seconds", ErrInvalidDuration, secs)
	}
	exact := new(big.Rat).SetFloat64(secs)
	d, ok := roundNanos(exact.Mul(exact, big.NewRat(int64(time.Second), 1)))
	if !ok {
		return 0, fmt.Errorf("%w: %v seconds overflows", ErrInvalidDuration, secs)
	}
	return d, nil
}

// roundNanos rounds a non-negative nanosecond count half away from zero. It reports
// false when the result does not fit in a time.Duration.
func roundNanos(ns *big.Rat) (time.Duration, bool) {
	q, m := new(big.Int).QuoRem(ns.Num(), ns.Denom(), new(big.Int))
	if m.Lsh(m, 1).Cmp(ns.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if q.Sign() < 0 || !q.IsInt64() {
		return 0, false
	}
	return time.Duration(q.Int64()), true
}

// FormatDuration renders d in a form ParseDuration reads back, e.g. "400ms" or "1h0m0s".
func FormatDuration(d time.Duration) string {
	return d.String()
}
