package utils

// Unique returns the distinct values of in, keeping first occurrences in order.
func Unique[T comparable](in []T) []T {
	return UniqueFunc(in, func(v T) T { return v })
}

// UniqueFunc is like Unique but treats two values as equal when key returns the same result.
func UniqueFunc[T any, K comparable](in []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
