package validate

import (
	"errors"
	"fmt"
	"strings"

	"format-generator/internal/kind"
	"format-generator/internal/seq"
)

var (
	// ErrArgumentCountMismatch is matched when the number of verbs and arguments differ.
	ErrArgumentCountMismatch = errors.New("argument count mismatch")
	// ErrArgumentTypeMismatch is matched when an argument's key differs from its verb's key.
	ErrArgumentTypeMismatch = errors.New("argument type mismatch")
	// ErrUnsupportedDirective is matched when a directive reads its operand,
	// width or precision through an argument index or '*'.
	ErrUnsupportedDirective = errors.New("unsupported directive")
)

// ArgumentCountMismatchError reports differing verb and argument counts.
type ArgumentCountMismatchError struct {
	Specifiers []rune
	Arguments  int
}

func (e *ArgumentCountMismatchError) Error() string {
	return fmt.Sprintf("argument count mismatch: format has %d specifiers %q, got %d arguments",
		len(e.Specifiers), string(e.Specifiers), e.Arguments)
}

func (e *ArgumentCountMismatchError) Unwrap() error { return ErrArgumentCountMismatch }

// ArgumentTypeMismatchError reports a positional disagreement between a verb and an argument.
type ArgumentTypeMismatchError struct {
	Position  int
	Specifier rune
	Expected  kind.Key
	Actual    kind.Key
}

func (e *ArgumentTypeMismatchError) Error() string {
	return fmt.Sprintf("argument type mismatch at position %d: %%%c expects %s, got %s",
		e.Position, e.Specifier, e.Expected, e.Actual)
}

func (e *ArgumentTypeMismatchError) Unwrap() error { return ErrArgumentTypeMismatch }

// UnsupportedDirectiveError reports a directive whose arguments cannot be
// paired positionally with the verbs, such as "%*d" or "%[2]d".
type UnsupportedDirectiveError struct {
	Offset    int // rune offset of the '%'
	Directive string
}

func (e *UnsupportedDirectiveError) Error() string {
	return fmt.Sprintf("unsupported directive %q at offset %d: argument indexes and '*' are not checked",
		e.Directive, e.Offset)
}

func (e *UnsupportedDirectiveError) Unwrap() error { return ErrUnsupportedDirective }

// Arg is one supplied argument together with its classification key.
type Arg[V any] struct {
	Value V
	Key   kind.Key
}

// A returns an Arg classified by v's dynamic type.
func A(v any) Arg[any] {
	return Arg[any]{Value: v, Key: kind.Of(v)}
}

// Validator checks format strings against argument sequences.
type Validator struct {
	specifiers *kind.Specifiers
}

// New returns a Validator for the given specifier table.
func New(specifiers *kind.Specifiers) *Validator {
	return &Validator{specifiers: specifiers}
}

// Specifiers returns, in order, the verbs of format that are keys of the
// specifier table. A verb is the character following a '%'; "%%" is a literal
// percent sign and is skipped.
func (v *Validator) Specifiers(format string) []rune {
	return seq.Filter(Verbs(format), v.specifiers.Contains)
}

// Covers reports whether every verb of format is a key of the specifier table.
func (v *Validator) Covers(format string) bool {
	return len(seq.Remove(Verbs(format), v.specifiers.Contains)) == 0
}

// Verbs returns the verb of every unescaped '%' directive. Flags, width,
// precision, '*' and argument indexes between the '%' and the verb are
// skipped.
func Verbs(format string) []rune {
	return seq.Map(scan(format), func(d directive) rune { return d.verb })
}

// Directives reports every directive of format that takes an argument index
// or a '*' width or precision. Such formats cannot be checked positionally.
func Directives(format string) error {
	var errs []error

	for _, d := range scan(format) {
		if d.dynamic {
			errs = append(errs, &UnsupportedDirectiveError{Offset: d.offset, Directive: d.text})
		}
	}

	return errors.Join(errs...)
}

// directive is one '%' directive other than "%%".
type directive struct {
	offset  int
	text    string
	verb    rune
	dynamic bool // uses '*' or an [n] argument index
}

const directiveModifiers = "+-# 0123456789."

func scan(format string) []directive {
	var out []directive

	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			continue
		}

		start := i
		dynamic := false

		for i++; i < len(runes); i++ {
			r := runes[i]

			if r == '*' {
				dynamic = true
				continue
			}

			if r == '[' {
				dynamic = true

				for i < len(runes) && runes[i] != ']' {
					i++
				}

				continue
			}

			if !strings.ContainsRune(directiveModifiers, r) {
				break
			}
		}

		if i >= len(runes) {
			break
		}

		if runes[i] == '%' && !dynamic {
			continue
		}

		out = append(out, directive{
			offset:  start,
			text:    string(runes[start : i+1]),
			verb:    runes[i],
			dynamic: dynamic,
		})
	}

	return out
}

// Check validates args against format: the verb count must equal the argument
// count and every argument's key must equal the key bound to its verb.
// Formats with '*' or argument indexes fail with ErrUnsupportedDirective.
func Check[V any](v *Validator, format string, args []Arg[V]) error {
	if err := Directives(format); err != nil {
		return err
	}

	specs := v.Specifiers(format)

	pairs, err := seq.Zip(specs, args)
	if err != nil {
		return &ArgumentCountMismatchError{Specifiers: specs, Arguments: len(args)}
	}

	var errs []error

	seq.ForEach(pairs, func(i int, p seq.Zipped[rune, Arg[V]]) {
		expected, err := v.specifiers.Lookup(p.First)
		if err != nil {
			errs = append(errs, err)
			return
		}

		if expected != p.Second.Key {
			errs = append(errs, &ArgumentTypeMismatchError{
				Position:  i,
				Specifier: p.First,
				Expected:  expected,
				Actual:    p.Second.Key,
			})
		}
	})

	return errors.Join(errs...)
}

// Forward validates format and args, then passes them unchanged to sink.
func Forward[V any](v *Validator, format string, args []Arg[V], sink func(format string, args ...V) error) error {
	if err := Check(v, format, args); err != nil {
		return err
	}

	values := seq.Map(args, func(a Arg[V]) V { return a.Value })

	return sink(format, values...)
}
