package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Find returns the first element satisfying match.
func Find[T any](slice []T, match func(T) bool) (T, bool) {
	for _, v := range slice {
		if match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
