package codeowners

// stack is a growable last-in-first-out sequence. Both the shunting-yard
// conversion and the postfix evaluation use it instead of recursion; pop and
// peek report underflow through their second return value.
type stack[T any] struct {
	items []T
}

func (s *stack[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *stack[T]) pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

func (s *stack[T]) peek() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

func (s *stack[T]) empty() bool {
	return len(s.items) == 0
}

func (s *stack[T]) len() int {
	return len(s.items)
}
