package subobject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/subobject/internal/stack"
)

var (
	// ErrEmptyKey indicates a selector without a key.
	ErrEmptyKey = errors.New("subobject: empty selector key")

	// ErrDuplicateKey indicates two selectors with the same key in one list.
	ErrDuplicateKey = errors.New("subobject: duplicate selector key")
)

// Selector names one field to keep at the current depth.
//
// A nil Children copies the field value verbatim. A non-nil Children,
// even an empty one, projects the field value with that list.
type Selector struct {
	Key      string
	Children []Selector
}

// HasChildren reports whether the value at Key is projected further.
func (s Selector) HasChildren() bool {
	return s.Children != nil
}

// String renders the selector in the syntax accepted by Parse.
func (s Selector) String() string {
	var b strings.Builder
	writeSelector(&b, s)
	return b.String()
}

// Format renders a selector list in the syntax accepted by Parse.
func Format(selectors []Selector) string {
	var b strings.Builder
	writeList(&b, selectors)
	return b.String()
}

func writeList(b *strings.Builder, selectors []Selector) {
	for i, s := range selectors {
		if i > 0 {
			b.WriteByte(',')
		}
		writeSelector(b, s)
	}
}

func writeSelector(b *strings.Builder, s Selector) {
	writeKey(b, s.Key)
	if s.Children != nil {
		b.WriteByte('(')
		writeList(b, s.Children)
		b.WriteByte(')')
	}
}

func writeKey(b *strings.Builder, key string) {
	bare := key != ""
	for _, r := range key {
		if !isBareRune(r) {
			bare = false
			break
		}
	}
	if bare {
		b.WriteString(key)
		return
	}

	b.WriteByte('"')
	for _, r := range key {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
}

// Validate checks that every key in the tree is non-empty and unique within
// its list. Parse already guarantees both for the trees it returns. The walk
// uses an explicit stack, so arbitrarily deep trees are safe to validate.
func Validate(selectors []Selector) error {
	type frame struct {
		list []Selector
		path string
	}

	pending := stack.New[frame]()
	pending.Push(frame{list: selectors})

	for !pending.IsEmpty() {
		f, _ := pending.Pop()
		seen := make(map[string]struct{}, len(f.list))
		for _, s := range f.list {
			if s.Key == "" {
				return withPath(ErrEmptyKey, "", f.path)
			}
			if _, ok := seen[s.Key]; ok {
				return withPath(ErrDuplicateKey, fmt.Sprintf("%q", s.Key), f.path)
			}
			seen[s.Key] = struct{}{}

			if s.Children != nil {
				childPath := s.Key
				if f.path != "" {
					childPath = f.path + "." + s.Key
				}
				pending.Push(frame{list: s.Children, path: childPath})
			}
		}
	}
	return nil
}

func withPath(err error, detail, path string) error {
	switch {
	case detail == "" && path == "":
		return err
	case detail == "":
		return fmt.Errorf("%w under %s", err, path)
	case path == "":
		return fmt.Errorf("%w: %s", err, detail)
	}
	return fmt.Errorf("%w: %s under %s", err, detail, path)
}
