package chain

import (
	"bytes"
	"fmt"
)

// Decoder reads the text form produced by Encoder back into a List.
type Decoder[T any] struct {
	Codec Codec[T]
}

// Unmarshal decodes text into a fresh list and returns it with the number of
// records read. On failure the returned list is nil; nothing the caller
// already holds is modified.
func Unmarshal[T any](text []byte, codec Codec[T]) (*List[T], int, error) {
	l := New[T]()
	dec := Decoder[T]{Codec: codec}
	count, err := dec.DecodeInto(text, l)
	if err != nil {
		l.Free(nil)
		return nil, count, err
	}
	return l, count, nil
}

// DecodeInto scans text for brace-delimited objects and appends each decoded
// element to l as a new tail. It returns the number of elements appended.
//
// Text before the first '{' and between objects is skipped, so "[]", "" and
// whitespace all decode to nothing. Decoding is incremental: when an object
// fails, the elements appended before it stay in l. Unbalanced braces report
// ErrParse and a codec failure reports ErrDecode; both stop the scan.
func (d *Decoder[T]) DecodeInto(text []byte, l *List[T]) (int, error) {
	count := 0
	pos := 0
	for pos < len(text) {
		open := bytes.IndexByte(text[pos:], '{')
		if open < 0 {
			break
		}
		start := pos + open

		end, ok := objectEnd(text, start)
		if !ok {
			return count, fmt.Errorf("%w: unbalanced braces in object starting at offset %d", ErrParse, start)
		}

		v, err := d.Codec.Decode(text[start:end])
		if err != nil {
			return count, fmt.Errorf("%w: object %d at offset %d: %w", ErrDecode, count, start, err)
		}
		if _, err := l.PushBack(v); err != nil {
			return count, fmt.Errorf("object %d: %w", count, err)
		}

		count++
		pos = end
	}
	return count, nil
}

// objectEnd returns the offset just past the '}' that balances the '{' at
// start. ok is false when the input ends first.
func objectEnd(text []byte, start int) (end int, ok bool) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}
