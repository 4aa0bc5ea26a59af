package engine

import "golang.org/x/exp/constraints"

func maxOf[T constraints.Ordered](a T, b T) T {
	if a > b {
		return a
	}
	return b
}

func minOf[T constraints.Ordered](a T, b T) T {
	if a < b {
		return a
	}
	return b
}
