package stream

import (
	"errors"
	"fmt"
	"io"

	"format-generator/internal/kind"
	"format-generator/internal/seq"
)

// ErrFinalizedStateReuse is matched by errors returned when a finished builder is used again.
var ErrFinalizedStateReuse = errors.New("builder already finalized")

// FinalizedStateReuseError reports an operation attempted on a finished builder.
type FinalizedStateReuseError struct {
	Op    string
	Token string // set when the operation was a push
}

func (e *FinalizedStateReuseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s %s: builder already finalized", e.Op, e.Token)
	}

	return e.Op + ": builder already finalized"
}

func (e *FinalizedStateReuseError) Unwrap() error { return ErrFinalizedStateReuse }

// UnresolvedSubstitutionError reports a substitution whose key has no format fragment.
type UnresolvedSubstitutionError struct {
	Position int // token position in the stream
	Value    string
	Key      kind.Key
	Err      error
}

func (e *UnresolvedSubstitutionError) Error() string {
	return fmt.Sprintf("token %d: no format for value %s of type %s: %v", e.Position, e.Value, e.Key, e.Err)
}

func (e *UnresolvedSubstitutionError) Unwrap() error { return e.Err }

// Sink receives the assembled format string and the substituted values.
type Sink[V any] func(format string, args ...V) error

// WriterSink returns a Sink that writes with fmt.Fprintf.
func WriterSink(w io.Writer) Sink[any] {
	return func(format string, args ...any) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}
}

// Call is the product of assembling a token stream.
type Call[V any] struct {
	Format string
	Args   []V
}

// Builder accumulates tokens in call order until it is finished.
//
// A Builder is either accumulating or finalized. Once finalized every further
// Push, Assemble or Finish fails with ErrFinalizedStateReuse.
type Builder[V any] struct {
	formats   *kind.Formats
	tokens    []Token[V]
	finalized bool
	err       error // first error from a chained Lit/Sub call
}

// New returns an accumulating builder resolving substitutions through formats.
func New[V any](formats *kind.Formats) *Builder[V] {
	return &Builder[V]{formats: formats}
}

// Push appends tok to the stream.
func (b *Builder[V]) Push(tok Token[V]) error {
	if b.finalized {
		return &FinalizedStateReuseError{Op: "push", Token: tok.String()}
	}

	if tok.Kind() == TokenUnknown {
		return errors.New("push: zero token")
	}

	b.tokens = append(b.tokens, tok)

	return nil
}

// Lit pushes a literal and returns b for chaining. Errors surface from Err
// and, while accumulating, from Finish.
func (b *Builder[V]) Lit(text string) *Builder[V] {
	b.chain(Literal[V](text))
	return b
}

// Sub pushes a substitution and returns b for chaining. Errors surface from
// Err and, while accumulating, from Finish.
func (b *Builder[V]) Sub(value V, key kind.Key) *Builder[V] {
	b.chain(Substitution(value, key))
	return b
}

func (b *Builder[V]) chain(tok Token[V]) {
	if err := b.Push(tok); err != nil && b.err == nil {
		b.err = err
	}
}

// Err returns the first error recorded by a chained Lit or Sub call,
// including a push rejected because the builder was already finalized.
func (b *Builder[V]) Err() error {
	return b.err
}

// Tokens returns a copy of the accumulated tokens.
func (b *Builder[V]) Tokens() []Token[V] {
	return append([]Token[V](nil), b.tokens...)
}

// Finalized reports whether the builder has been finished.
func (b *Builder[V]) Finalized() bool {
	return b.finalized
}

// Assemble finalizes the builder and returns the format string and values
// without calling a sink.
func (b *Builder[V]) Assemble() (Call[V], error) {
	if b.finalized {
		return Call[V]{}, &FinalizedStateReuseError{Op: "assemble"}
	}

	b.finalized = true

	if b.err != nil {
		return Call[V]{}, b.err
	}

	return assemble(b.formats, b.tokens)
}

// Finish finalizes the builder, assembles the call and invokes sink exactly once.
func (b *Builder[V]) Finish(sink Sink[V]) error {
	if b.finalized {
		return &FinalizedStateReuseError{Op: "finish"}
	}

	call, err := b.Assemble()
	if err != nil {
		return err
	}

	return sink(call.Format, call.Args...)
}

func assemble[V any](formats *kind.Formats, tokens []Token[V]) (Call[V], error) {
	fragments := make([]string, len(tokens))

	var errs []error

	seq.ForEach(tokens, func(i int, tok Token[V]) {
		if tok.IsLiteral() {
			fragments[i] = tok.Text()
			return
		}

		frag, err := formats.Lookup(tok.Key())
		if err != nil {
			errs = append(errs, &UnresolvedSubstitutionError{
				Position: i,
				Value:    fmt.Sprint(tok.Value()),
				Key:      tok.Key(),
				Err:      err,
			})

			return
		}

		fragments[i] = frag
	})

	if len(errs) > 0 {
		return Call[V]{}, errors.Join(errs...)
	}

	subs := seq.Filter(tokens, Token[V].IsSubstitution)

	return Call[V]{
		Format: seq.Concat(fragments),
		Args:   seq.Map(subs, Token[V].Value),
	}, nil
}
