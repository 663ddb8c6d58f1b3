package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/mesh-intelligence/diary/pkg/chain"
	"github.com/mesh-intelligence/diary/pkg/types"
)

// ErrNoRecord reports a position that does not name a record, or an
// operation on the current record of an empty diary.
var ErrNoRecord = errors.New("no such record")

// ErrUnsupportedNote reports a note the diary file format cannot hold. The
// loader finds records by counting braces, so '{' and '}' are refused.
var ErrUnsupportedNote = errors.New("note contains '{' or '}'")

// Options tunes how a Diary encodes itself. Zero values use the chain
// defaults and slog.Default.
type Options struct {
	InitialSize  int
	FragmentSize int
	Logger       *slog.Logger
}

// Diary is an open diary file: the record list, a cursor into it, and the
// checksum of the text last written to or read from disk. A Diary is not
// safe for concurrent use.
type Diary struct {
	path    string
	list    *chain.List[types.Record]
	cursor  *chain.Cursor[types.Record]
	encoder chain.Encoder[types.Record]
	log     *slog.Logger

	// checksum is the xxh3 hash of the on-disk text; valid when onDisk.
	checksum uint64
	onDisk   bool
}

// Open loads the diary at path. A missing file yields an empty diary that is
// created on the first Save. The cursor starts at the newest (last) record.
func Open(path string, opts Options) (*Diary, error) {
	d := &Diary{
		path: path,
		encoder: chain.Encoder[types.Record]{
			Codec:        types.RecordCodec{},
			InitialSize:  opts.InitialSize,
			FragmentSize: opts.FragmentSize,
		},
		log: opts.Logger,
	}
	if d.log == nil {
		d.log = slog.Default()
	}

	data, err := ReadAll(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		d.log.Debug("diary file not found, starting empty", "path", path)
		d.reset(chain.New[types.Record]())
		return d, nil
	case err != nil:
		return nil, err
	}

	list, count, err := chain.Unmarshal(data, types.RecordCodec{})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	d.reset(list)
	d.checksum = xxh3.Hash(data)
	d.onDisk = true
	d.warnInvalid()
	d.log.Debug("diary loaded", "path", path, "records", count, "bytes", len(data))
	return d, nil
}

// warnInvalid logs every loaded record whose date fails validation. Such
// records are kept as they are.
func (d *Diary) warnInvalid() {
	pos := 0
	for r := range d.list.All() {
		pos++
		if err := r.Validate(); err != nil {
			d.log.Warn("record has an invalid date", "path", d.path, "position", pos, "date", r.Date.String())
		}
	}
}

// reset installs list as the diary content with the cursor at its tail.
func (d *Diary) reset(list *chain.List[types.Record]) {
	d.list = list
	d.cursor = list.Last()
}

// Path returns the diary file path.
func (d *Diary) Path() string {
	return d.path
}

// Len returns the number of records.
func (d *Diary) Len() int {
	return d.list.Len()
}

// Records returns the records in file order.
func (d *Diary) Records() []types.Record {
	return d.list.Values()
}

// List exposes the underlying list for read-only traversal.
func (d *Diary) List() *chain.List[types.Record] {
	return d.list
}

// Current returns the record under the cursor; ok is false for an empty
// diary.
func (d *Diary) Current() (types.Record, bool) {
	return d.cursor.Value()
}

// Position returns the 1-based position of the cursor, or 0 when empty.
func (d *Diary) Position() int {
	return d.cursor.Index()
}

// Prev moves the cursor to the previous record, staying put at the first.
func (d *Diary) Prev() bool {
	return d.cursor.Prev()
}

// Next moves the cursor to the next record, staying put at the last.
func (d *Diary) Next() bool {
	return d.cursor.Next()
}

// Seek moves the cursor to the 1-based position pos.
func (d *Diary) Seek(pos int) error {
	if pos < 1 || pos > d.list.Len() {
		return fmt.Errorf("%w: position %d of %d", ErrNoRecord, pos, d.list.Len())
	}
	n := d.list.Head()
	for i := 1; i < pos; i++ {
		n = n.Next()
	}
	d.cursor.Set(n)
	return nil
}

// Add validates rec, inserts it after the cursor (or as the first record of
// an empty diary), moves the cursor onto it, and saves. A note containing a
// brace fails with ErrUnsupportedNote and leaves the diary unchanged.
func (d *Diary) Add(rec types.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if strings.ContainsAny(rec.Note, "{}") {
		return ErrUnsupportedNote
	}

	var (
		n   *chain.Node[types.Record]
		err error
	)
	if d.cursor.Empty() {
		n, err = d.list.PushBack(rec)
	} else {
		n, err = d.list.InsertAfter(d.cursor.Node(), rec)
	}
	if err != nil {
		return fmt.Errorf("adding record: %w", err)
	}
	d.cursor.Set(n)
	d.log.Debug("record added", "date", rec.Date.String(), "position", d.cursor.Index())
	return d.Save()
}

// Remove deletes the record under the cursor, saves, and returns the
// removed record. The cursor moves to the following record, or the
// preceding one when the last record was removed.
func (d *Diary) Remove() (types.Record, error) {
	if d.cursor.Empty() {
		return types.Record{}, ErrNoRecord
	}

	var removed types.Record
	d.list.Delete(d.cursor, func(r types.Record) { removed = r })
	d.log.Debug("record removed", "date", removed.Date.String(), "remaining", d.list.Len())
	return removed, d.Save()
}

// Text returns the encoded diary.
func (d *Diary) Text() ([]byte, error) {
	return d.encoder.Encode(d.list)
}

// Save writes the diary to its path. The write is skipped when the encoded
// text hashes to the same value as the text already on disk.
func (d *Diary) Save() error {
	text, err := d.Text()
	if err != nil {
		return fmt.Errorf("encoding diary: %w", err)
	}

	sum := xxh3.Hash(text)
	if d.onDisk && sum == d.checksum {
		d.log.Debug("diary unchanged, skipping write", "path", d.path)
		return nil
	}
	if err := WriteAll(d.path, text); err != nil {
		return err
	}
	d.checksum = sum
	d.onDisk = true
	d.log.Debug("diary saved", "path", d.path, "records", d.list.Len(), "bytes", len(text))
	return nil
}

// Close releases every record. The diary must not be used afterwards.
func (d *Diary) Close() {
	d.list.Free(nil)
	d.cursor.Set(nil)
}
