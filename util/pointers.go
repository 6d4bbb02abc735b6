package util

// Ptr returns a pointer to v. Used for the pointer-typed optional fields on
// update inputs and search filters, where nil means "not set".
func Ptr[T any](v T) *T {
	return &v
}
