// Package numerology computes the deterministic numerology figures that
// accompany the AI-generated book content.
package numerology

import (
	"fmt"
	"strconv"
	"time"
	"unicode"
)

// Result holds the derived numbers for one intake.
type Result struct {
	LifePath   int `json:"life_path"`
	Expression int `json:"expression"`
}

// CalculationError reports a malformed birth date. The normalizer should
// have rejected the date already; this is a defensive boundary.
type CalculationError struct {
	Input string
	Cause error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("numerology: cannot parse birth date %q: %v", e.Input, e.Cause)
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}

// pythagorean letter values for the expression number.
var letterValues = map[rune]int{
	'a': 1, 'b': 2, 'c': 3, 'd': 4, 'e': 5, 'f': 6, 'g': 7, 'h': 8, 'i': 9,
	'j': 1, 'k': 2, 'l': 3, 'm': 4, 'n': 5, 'o': 6, 'p': 7, 'q': 8, 'r': 9,
	's': 1, 't': 2, 'u': 3, 'v': 4, 'w': 5, 'x': 6, 'y': 7, 'z': 8,
}

// Calculate derives the full Result from a birth date and full name.
func Calculate(birthDate, name string) (Result, error) {
	lifePath, err := LifePath(birthDate)
	if err != nil {
		return Result{}, err
	}
	return Result{
		LifePath:   lifePath,
		Expression: Expression(name),
	}, nil
}

// LifePath computes the life-path number: the digits of the birth year,
// month and day are summed, then reduced to a single digit unless the
// total is a master number (11, 22, 33).
func LifePath(birthDate string) (int, error) {
	date, err := parseDate(birthDate)
	if err != nil {
		return 0, &CalculationError{Input: birthDate, Cause: err}
	}

	total := digitSum(date.Year()) + digitSum(int(date.Month())) + digitSum(date.Day())
	return reduce(total), nil
}

// Expression computes the expression (destiny) number from the letters of
// the full name using pythagorean values. Non-letter runes are ignored.
func Expression(name string) int {
	total := 0
	for _, r := range name {
		total += letterValues[unicode.ToLower(r)]
	}
	return reduce(total)
}

// IsMasterNumber reports whether n is one of the numbers that are never
// reduced further.
func IsMasterNumber(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// parseDate accepts ISO dates ("1990-07-15") and long-form dates
// ("July 15, 1990"), the two shapes the intake layer emits or passes
// through.
func parseDate(birthDate string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", birthDate); err == nil {
		return date, nil
	}
	return time.Parse("January 2, 2006", birthDate)
}

func digitSum(n int) int {
	sum := 0
	for _, d := range strconv.Itoa(n) {
		sum += int(d - '0')
	}
	return sum
}

func reduce(total int) int {
	for total > 9 && !IsMasterNumber(total) {
		total = digitSum(total)
	}
	return total
}
