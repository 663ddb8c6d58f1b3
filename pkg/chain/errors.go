package chain

import "errors"

// Sentinel errors. Callers match them with errors.Is; the encoder and
// decoder wrap them with position details.
var (
	// ErrOutOfMemory reports that a node or buffer could not be allocated
	// within the configured limit. The list or buffer is left unchanged.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrParse reports structurally malformed text such as unbalanced braces.
	ErrParse = errors.New("parse error")

	// ErrDecode reports a well-formed object whose fields do not match the
	// codec's record shape.
	ErrDecode = errors.New("decode error")

	// ErrEncode reports that a codec failed to produce a fragment.
	ErrEncode = errors.New("encode error")

	// ErrShortBuffer is returned by Codec.Encode when the fragment does not
	// fit in the destination buffer.
	ErrShortBuffer = errors.New("fragment does not fit buffer")

	// ErrForeignNode reports a node that belongs to a different list.
	ErrForeignNode = errors.New("node belongs to another list")
)
