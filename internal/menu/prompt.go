// Package menu runs the numbered text menus that drive each tracker. A Menu
// reads choices through a Prompter and dispatches to the controller that
// owns one record store.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformedInput is returned when a line cannot be parsed as the
// requested kind of value.
var ErrMalformedInput = errors.New("malformed input")

// MaxLineBytes bounds one input line. Longer lines are discarded and the
// prompt is repeated.
const MaxLineBytes = 64 << 10

var errLineTooLong = fmt.Errorf("%w: line exceeds %d bytes", ErrMalformedInput, MaxLineBytes)

// Value kinds named in re-prompt messages.
const (
	kindInteger = "integer"
	kindDecimal = "decimal number"
	kindNumber  = "number"
)

// Prompter reads one line of input per prompt and writes prompts and
// results to an output stream.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from r and writing to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w}
}

// Printf writes formatted text to the output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints label and returns the next input line with surrounding
// whitespace removed. A line longer than MaxLineBytes is discarded and the
// label is printed again. It returns io.EOF when input is exhausted.
func (p *Prompter) Line(label string) (string, error) {
	for {
		if label != "" {
			fmt.Fprint(p.out, label)
		}
		line, err := p.readLine()
		if errors.Is(err, errLineTooLong) {
			p.Println("Invalid input! Line is too long.")
			continue
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

// readLine returns the next line without its terminator. A final line with
// no newline is returned before io.EOF. An oversized line is consumed in
// full and reported as errLineTooLong.
func (p *Prompter) readLine() (string, error) {
	var (
		buf     []byte
		tooLong bool
	)
	for {
		frag, isPrefix, err := p.in.ReadLine()
		if errors.Is(err, io.EOF) {
			if tooLong {
				return "", errLineTooLong
			}
			if len(buf) > 0 {
				return string(buf), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if !tooLong {
			buf = append(buf, frag...)
			if len(buf) > MaxLineBytes {
				tooLong = true
				buf = nil
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return string(buf), nil
}

// Int prompts for a base-10 integer.
func (p *Prompter) Int(label string) (int, error) {
	s, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an %s", ErrMalformedInput, s, kindInteger)
	}
	return n, nil
}

// Decimal prompts for an arbitrary-precision decimal number.
func (p *Prompter) Decimal(label string) (decimal.Decimal, error) {
	s, err := p.Line(label)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a %s", ErrMalformedInput, s, kindDecimal)
	}
	return d, nil
}

// Float prompts for a finite floating-point number.
func (p *Prompter) Float(label string) (float64, error) {
	s, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a %s", ErrMalformedInput, s, kindNumber)
	}
	return f, nil
}

// retry calls read until it returns something other than ErrMalformedInput,
// printing the invalid-input notice for kind after each failure.
func retry[T any](p *Prompter, kind string, read func() (T, error)) (T, error) {
	for {
		v, err := read()
		if errors.Is(err, ErrMalformedInput) {
			p.Printf("Invalid input! Please enter a valid %s.\n", kind)
			continue
		}
		return v, err
	}
}

// IntRetry prompts for an integer until one is entered or input ends.
func (p *Prompter) IntRetry(label string) (int, error) {
	return retry(p, kindInteger, func() (int, error) { return p.Int(label) })
}

// DecimalRetry prompts for a decimal until one is entered or input ends.
func (p *Prompter) DecimalRetry(label string) (decimal.Decimal, error) {
	return retry(p, kindDecimal, func() (decimal.Decimal, error) { return p.Decimal(label) })
}

// FloatRetry prompts for a number until one is entered or input ends.
func (p *Prompter) FloatRetry(label string) (float64, error) {
	return retry(p, kindNumber, func() (float64, error) { return p.Float(label) })
}

// NonBlank prompts until a non-blank line is entered or input ends.
func (p *Prompter) NonBlank(label string) (string, error) {
	for {
		s, err := p.Line(label)
		if err != nil || s != "" {
			return s, err
		}
	}
}
