package stack

import "testing"

func TestStack(t *testing.T) {
	t.Parallel()

	s := New[string]()
	if !s.IsEmpty() {
		t.Fatal("New() stack is not empty")
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop() on empty stack returned ok")
	}

	s.Push("a", "b")
	s.Push("c")
	if s.IsEmpty() {
		t.Fatal("IsEmpty() = true after Push")
	}

	for _, want := range []string{"c", "b", "a"} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %q, %v, want %q, true", got, ok, want)
		}
	}
	if !s.IsEmpty() {
		t.Error("stack not empty after popping every element")
	}
}
