package api

// nonNil returns an empty slice for nil so JSON renders [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
