package coord

import (
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrIO matches any error whose input could not be obtained.
	ErrIO = zerr.New("input could not be read")

	// ErrDecode matches any error whose input did not fit the expected schema.
	ErrDecode = zerr.New("input does not match schema")
)

// Kind tells callers how to react to a failure.
type Kind int

const (
	// KindIO means the input could not be obtained (missing, unreadable).
	KindIO Kind = iota + 1
	// KindDecode means the input was obtained but is malformed.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) verb() string {
	if k == KindIO {
		return "reading"
	}
	return "decoding"
}

// Error is the single error type returned by the manifest and maven
// packages. Err always holds the originating diagnostic.
type Error struct {
	Kind   Kind
	Source string // file path or document name
	Path   string // key or element path inside the document, if known
	Line   int    // 1-based; zero when the format library gave no position
	Column int
	Err    error
}

// NewIOError wraps err as an I/O failure on source.
func NewIOError(source string, err error) *Error {
	return &Error{Kind: KindIO, Source: source, Err: err}
}

// NewDecodeError wraps err as a decode failure on source.
func NewDecodeError(source string, err error) *Error {
	return &Error{Kind: KindDecode, Source: source, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.verb())
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&b, ":%d", e.Column)
			}
		}
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches ErrIO or ErrDecode according to the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindIO:
		return errors.Is(ErrIO, target)
	case KindDecode:
		return errors.Is(ErrDecode, target)
	default:
		return false
	}
}

// KindOf reports the kind carried by err, or zero if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
