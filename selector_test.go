package subobject

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		selectors []Selector
		want      string
	}{
		{
			name:      "flat",
			selectors: []Selector{{Key: "foo"}, {Key: "bar"}},
			want:      "foo,bar",
		},
		{
			name: "nested",
			selectors: []Selector{
				{Key: "foo", Children: []Selector{{Key: "bar", Children: []Selector{{Key: "baz"}}}}},
				{Key: "top"},
			},
			want: "foo(bar(baz)),top",
		},
		{
			name:      "empty_children",
			selectors: []Selector{{Key: "a", Children: []Selector{}}, {Key: "b", Children: []Selector{{Key: "c", Children: []Selector{}}}}},
			want:      "a(),b(c())",
		},
		{
			name:      "quoted",
			selectors: []Selector{{Key: "display name"}, {Key: `a"b`}, {Key: `c\d`}, {Key: "x,y", Children: []Selector{{Key: "it's"}}}},
			want:      `"display name","a\"b","c\\d","x,y"("it's")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Format(tt.selectors)
			if got != tt.want {
				t.Fatalf("Format() = %q, want %q", got, tt.want)
			}

			parsed, err := Parse(got)
			if err != nil {
				t.Fatalf("Parse(Format()) unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.selectors, parsed); diff != "" {
				t.Errorf("Parse(Format()) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectorString(t *testing.T) {
	t.Parallel()

	s := Selector{Key: "owner", Children: []Selector{{Key: "name"}}}
	if got := s.String(); got != "owner(name)" {
		t.Errorf("String() = %q, want %q", got, "owner(name)")
	}
	if !s.HasChildren() {
		t.Error("HasChildren() = false, want true")
	}
	if (Selector{Key: "id"}).HasChildren() {
		t.Error("HasChildren() = true, want false")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		selectors []Selector
		wantErr   error
	}{
		{
			name:      "valid",
			selectors: []Selector{{Key: "a", Children: []Selector{{Key: "a"}}}, {Key: "b"}},
		},
		{
			name:      "empty_list",
			selectors: nil,
		},
		{
			name:      "empty_key",
			selectors: []Selector{{Key: ""}},
			wantErr:   ErrEmptyKey,
		},
		{
			name:      "nested_empty_key",
			selectors: []Selector{{Key: "a", Children: []Selector{{Key: "b", Children: []Selector{{}}}}}},
			wantErr:   ErrEmptyKey,
		},
		{
			name:      "duplicate",
			selectors: []Selector{{Key: "a"}, {Key: "a", Children: []Selector{{Key: "b"}}}},
			wantErr:   ErrDuplicateKey,
		},
		{
			name:      "nested_duplicate",
			selectors: []Selector{{Key: "a", Children: []Selector{{Key: "b"}, {Key: "b"}}}},
			wantErr:   ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.selectors)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateErrorNamesPath(t *testing.T) {
	t.Parallel()

	err := Validate([]Selector{{Key: "a", Children: []Selector{{Key: "b", Children: []Selector{{Key: "c"}, {Key: "c"}}}}}})
	want := `subobject: duplicate selector key: "c" under a.b`
	if err == nil || err.Error() != want {
		t.Errorf("Validate() error = %v, want %q", err, want)
	}
}
