package store

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/mesh-intelligence/diary/pkg/chain"
	"github.com/mesh-intelligence/diary/pkg/types"
)

// ErrDecompress reports a backup that is not valid zstd data.
var ErrDecompress = errors.New("decompression failed")

// Shared encoder/decoder; both are safe for concurrent use and expensive to
// build.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Backup writes a zstd-compressed copy of the encoded diary to path.
func (d *Diary) Backup(path string) error {
	text, err := d.Text()
	if err != nil {
		return fmt.Errorf("encoding diary: %w", err)
	}
	compressed := zstdEncoder.EncodeAll(text, nil)
	if err := WriteAll(path, compressed); err != nil {
		return err
	}
	d.log.Info("backup written", "path", path, "records", d.list.Len(),
		"bytes", len(text), "compressed", len(compressed))
	return nil
}

// Restore replaces the diary content with the backup at path and saves it.
// The current records are kept when the backup cannot be read or decoded.
func (d *Diary) Restore(path string) (int, error) {
	compressed, err := ReadAll(path)
	if err != nil {
		return 0, err
	}
	text, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrDecompress, path, err)
	}

	list, count, err := chain.Unmarshal(text, types.RecordCodec{})
	if err != nil {
		return 0, fmt.Errorf("loading backup %s: %w", path, err)
	}

	d.list.Free(nil)
	d.reset(list)
	d.log.Info("backup restored", "path", path, "records", count)
	return count, d.Save()
}
