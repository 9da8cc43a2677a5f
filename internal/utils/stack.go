package utils

type Stack[T any] struct {
	slice []T
	Size  int
}

func (s *Stack[T]) Push(val T) {
	s.slice = append(s.slice, val)
	s.Size++
}

func (s *Stack[T]) Pop() (T, bool) {
	if len(s.slice) == 0 {
		var none T
		return none, false
	}

	val := s.slice[len(s.slice)-1]
	s.slice = s.slice[:len(s.slice)-1]

	s.Size--

	return val, true
}
