package chain

import (
	"errors"
	"fmt"
)

// Encoder defaults. DefaultInitialSize leaves headroom for a few typical
// records before the first reallocation.
const (
	DefaultInitialSize  = 2048
	DefaultFragmentSize = 512
)

// Encoder writes a List as a bracketed, comma-separated sequence of
// fragments produced by Codec.
type Encoder[T any] struct {
	Codec Codec[T]

	// InitialSize is the starting capacity of the output buffer.
	InitialSize int

	// FragmentSize is the starting size of the per-element scratch buffer.
	// It doubles whenever the codec reports ErrShortBuffer.
	FragmentSize int

	// MaxSize caps both buffers. Zero means unbounded.
	MaxSize int
}

// Marshal encodes l with codec using the default buffer sizes.
func Marshal[T any](l *List[T], codec Codec[T]) ([]byte, error) {
	enc := Encoder[T]{Codec: codec}
	return enc.Encode(l)
}

// Encode returns the text form of l. The result length is exactly the sum of
// the fragment lengths plus one separator between each pair and the two
// brackets; an empty list encodes to "[]". On failure the partial output is
// dropped and a nil slice is returned.
func (e *Encoder[T]) Encode(l *List[T]) ([]byte, error) {
	initial := e.InitialSize
	if initial <= 0 {
		initial = DefaultInitialSize
	}
	fragSize := e.FragmentSize
	if fragSize <= 0 {
		fragSize = DefaultFragmentSize
	}
	if e.MaxSize > 0 {
		initial = min(initial, e.MaxSize)
		fragSize = min(fragSize, e.MaxSize)
	}

	out := textBuffer{buf: make([]byte, 0, initial), max: e.MaxSize}
	frag := make([]byte, fragSize)

	if err := out.ensure(1); err != nil {
		return nil, err
	}
	out.appendByte('[')

	i := 0
	for n := l.Head(); n != nil; n = n.Next() {
		size, grown, err := e.fragment(n.value, frag)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		frag = grown

		need := size
		if n.Next() != nil {
			need++
		}
		if err := out.ensure(need); err != nil {
			return nil, err
		}
		out.append(frag[:size])
		if n.Next() != nil {
			out.appendByte(',')
		}
		i++
	}

	if err := out.ensure(1); err != nil {
		return nil, err
	}
	out.appendByte(']')
	return out.buf, nil
}

// fragment encodes v into frag, doubling frag until the codec's output fits.
// It returns the fragment length and the buffer actually used.
func (e *Encoder[T]) fragment(v T, frag []byte) (int, []byte, error) {
	for {
		size, err := e.Codec.Encode(v, frag)
		if errors.Is(err, ErrShortBuffer) {
			next := len(frag) * 2
			if e.MaxSize > 0 && next > e.MaxSize {
				return 0, nil, ErrOutOfMemory
			}
			frag = make([]byte, next)
			continue
		}
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		if size < 0 || size > len(frag) {
			return 0, nil, fmt.Errorf("%w: codec reported %d bytes for a %d byte buffer", ErrEncode, size, len(frag))
		}
		return size, frag, nil
	}
}

// textBuffer is an output buffer whose capacity doubles on demand.
type textBuffer struct {
	buf []byte
	max int
}

// ensure guarantees room for n more bytes, doubling the capacity as many
// times as needed. It returns ErrOutOfMemory when the required capacity
// exceeds max.
func (t *textBuffer) ensure(n int) error {
	need := len(t.buf) + n
	if need <= cap(t.buf) {
		return nil
	}
	if t.max > 0 && need > t.max {
		return ErrOutOfMemory
	}

	size := max(cap(t.buf), 1)
	for size < need {
		size *= 2
	}
	if t.max > 0 {
		size = min(size, t.max)
	}

	grown := make([]byte, len(t.buf), size)
	copy(grown, t.buf)
	t.buf = grown
	return nil
}

func (t *textBuffer) append(p []byte) {
	t.buf = append(t.buf, p...)
}

func (t *textBuffer) appendByte(b byte) {
	t.buf = append(t.buf, b)
}
