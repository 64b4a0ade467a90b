package subobject

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestParsingErrorFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       *ParsingError
		highlight bool
		want      string
	}{
		{
			name: "plain",
			err:  NewParsingError(5, 3, "bad token"),
			want: "ParsingError: bad token (position: 5, length: 3)",
		},
		{
			name:      "highlight_without_pattern",
			err:       NewParsingError(5, 3, "bad token"),
			highlight: true,
			want:      "ParsingError: bad token (position: 5, length: 3)",
		},
		{
			name: "pattern_without_highlight",
			err:  NewParsingError(2, 2, "oops").WithPattern("abcdef"),
			want: "ParsingError: oops (position: 2, length: 2)",
		},
		{
			name:      "highlight",
			err:       NewParsingError(2, 2, "oops").WithPattern("abcdef"),
			highlight: true,
			want:      "ParsingError: oops (position: 2, length: 2)\nab\x1b[31;47mcd\x1b[0mef",
		},
		{
			name:      "span_past_end",
			err:       NewParsingError(4, 10, "oops").WithPattern("abcdef"),
			highlight: true,
			want:      "ParsingError: oops (position: 4, length: 10)\nabcd\x1b[31;47mef\x1b[0m",
		},
		{
			name:      "position_past_end",
			err:       NewParsingError(9, 1, "oops").WithPattern("abc"),
			highlight: true,
			want:      "ParsingError: oops (position: 9, length: 1)\nabc\x1b[31;47m\x1b[0m",
		},
		{
			name:      "zero_length",
			err:       NewParsingError(0, 0, "selector is empty").WithPattern(""),
			highlight: true,
			want:      "ParsingError: selector is empty (position: 0, length: 0)\n\x1b[31;47m\x1b[0m",
		},
		{
			name:      "multibyte_pattern",
			err:       NewParsingError(1, 1, "oops").WithPattern("äöü"),
			highlight: true,
			want:      "ParsingError: oops (position: 1, length: 1)\nä\x1b[31;47mö\x1b[0mü",
		},
		{
			name: "negative_values_clamped",
			err:  NewParsingError(-1, -4, "oops"),
			want: "ParsingError: oops (position: 0, length: 0)",
		},
		{
			name:      "huge_position",
			err:       NewParsingError(math.MaxInt, 1, "x").WithPattern("abc"),
			highlight: true,
			want:      fmt.Sprintf("ParsingError: x (position: %d, length: 1)\nabc\x1b[31;47m\x1b[0m", math.MaxInt),
		},
		{
			name:      "huge_length",
			err:       NewParsingError(1, math.MaxInt, "x").WithPattern("abc"),
			highlight: true,
			want:      fmt.Sprintf("ParsingError: x (position: 1, length: %d)\na\x1b[31;47mbc\x1b[0m", math.MaxInt),
		},
		{
			name:      "negative_fields_in_literal",
			err:       &ParsingError{position: -2, length: -5, message: "x", pattern: "abc", hasPattern: true},
			highlight: true,
			want:      "ParsingError: x (position: -2, length: -5)\n\x1b[31;47m\x1b[0mabc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.highlight)
			if got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.highlight, got, tt.want)
			}
			if again := tt.err.Format(tt.highlight); again != got {
				t.Errorf("Format(%v) not deterministic: %q then %q", tt.highlight, got, again)
			}
		})
	}
}

func TestParsingErrorIsError(t *testing.T) {
	t.Parallel()

	var err error = NewParsingError(5, 3, "bad token").WithPattern("pattern")
	want := "ParsingError: bad token (position: 5, length: 3)"

	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if s := fmt.Sprint(err); s != want {
		t.Errorf("fmt.Sprint() = %q, want %q", s, want)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Error("errors.Is(err, ErrSyntax) = false, want true")
	}

	wrapped := fmt.Errorf("loading selector: %w", err)
	var perr *ParsingError
	if !errors.As(wrapped, &perr) {
		t.Fatal("errors.As() = false, want true")
	}
	if perr.Position() != 5 || perr.Length() != 3 {
		t.Errorf("errors.As() = %+v", perr)
	}
}

func TestParsingErrorWithPatternCopies(t *testing.T) {
	t.Parallel()

	base := NewParsingError(1, 1, "oops")
	withPattern := base.WithPattern("abc")

	if _, ok := base.Pattern(); ok {
		t.Error("WithPattern() modified the receiver")
	}
	if p, ok := withPattern.Pattern(); !ok || p != "abc" {
		t.Errorf("Pattern() = %q, %v, want %q, true", p, ok, "abc")
	}
}
