package ptr

// Ptr возвращает указатель на v
func Ptr[T any](v T) *T {
	return &v
}

// Value разыменовывает p или возвращает def, если p == nil
func Value[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
