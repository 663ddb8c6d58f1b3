package chain

// Codec converts one element to and from a brace-delimited text fragment.
// Implementations must not retain dst or src after returning.
type Codec[T any] interface {
	// Encode writes the fragment for v into dst and returns the number of
	// bytes written. It returns ErrShortBuffer when the fragment does not
	// fit in len(dst); dst may have been modified in that case.
	Encode(v T, dst []byte) (int, error)

	// Decode parses exactly one brace-balanced fragment into a new element.
	// Field miscounts and malformed numbers are reported as errors wrapping
	// ErrDecode.
	Decode(src []byte) (T, error)
}

// CodecFuncs adapts a pair of functions to the Codec interface.
type CodecFuncs[T any] struct {
	EncodeFunc func(v T, dst []byte) (int, error)
	DecodeFunc func(src []byte) (T, error)
}

// Encode calls f.EncodeFunc.
func (f CodecFuncs[T]) Encode(v T, dst []byte) (int, error) {
	return f.EncodeFunc(v, dst)
}

// Decode calls f.DecodeFunc.
func (f CodecFuncs[T]) Decode(src []byte) (T, error) {
	return f.DecodeFunc(src)
}
