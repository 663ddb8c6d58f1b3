package store

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/diary/pkg/chain"
	"github.com/mesh-intelligence/diary/pkg/types"
)

func rec(day, month, year int, note string) types.Record {
	return types.Record{Date: types.Date{Day: day, Month: month, Year: year}, Note: note}
}

func TestWriteAllReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "diary.json")

	require.NoError(t, WriteAll(path, []byte("[]")))
	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, WriteAll(path, []byte("[1]")))
	got, err = ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestReadAllMissing(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	d, err := Open(path, Options{})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, 0, d.Len())
	_, ok := d.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Position())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "open must not create the file")
}

func TestOpenLoadsAndPositionsAtLast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	text := `[{"day": 1, "month": 2, "year": 2024, "note": "a"},{"day": 2, "month": 2, "year": 2024, "note": "b"}]`
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	d, err := Open(path, Options{})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, 2, d.Len())
	cur, ok := d.Current()
	require.True(t, ok)
	assert.Equal(t, "b", cur.Note)
	assert.Equal(t, 2, d.Position())
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"day": 1`), 0o644))

	_, err := Open(path, Options{})
	assert.ErrorIs(t, err, chain.ErrParse)
}

func TestAddInsertsAfterCursorAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	d, err := Open(path, Options{})
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Add(rec(1, 1, 2024, "first")))
	require.NoError(t, d.Add(rec(3, 1, 2024, "third")))
	require.True(t, d.Prev())
	require.NoError(t, d.Add(rec(2, 1, 2024, "second")))

	cur, _ := d.Current()
	assert.Equal(t, "second", cur.Note)
	assert.Equal(t, 2, d.Position())

	var notes []string
	for _, r := range d.Records() {
		notes = append(notes, r.Note)
	}
	assert.Equal(t, []string{"first", "second", "third"}, notes)

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, d.Records(), reopened.Records())
}

func TestAddRejectsInvalidDate(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "diary.json"), Options{})
	require.NoError(t, err)
	defer d.Close()

	err = d.Add(rec(30, 2, 2024, "nope"))
	assert.ErrorIs(t, err, types.ErrInvalidDate)
	assert.Equal(t, 0, d.Len())
}

func TestAddRejectsBraces(t *testing.T) {
	for _, note := range []string{"smile :-}\n", "set {a\n"} {
		t.Run(note, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "diary.json")
			d, err := Open(path, Options{})
			require.NoError(t, err)
			defer d.Close()

			require.NoError(t, d.Add(rec(1, 1, 2024, "first")))
			err = d.Add(rec(2, 1, 2024, note))
			assert.ErrorIs(t, err, ErrUnsupportedNote)
			assert.Equal(t, 1, d.Len())

			reopened, err := Open(path, Options{})
			require.NoError(t, err, "the saved diary must stay loadable")
			defer reopened.Close()
			assert.Equal(t, []types.Record{rec(1, 1, 2024, "first")}, reopened.Records())
		})
	}
}

func TestOpenWarnsAboutInvalidDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	text := `[{"day": 1, "month": 2, "year": 2024, "note": "ok"},{"day": 31, "month": 2, "year": 2024, "note": "edited"}]`
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))

	d, err := Open(path, Options{Logger: logger})
	require.NoError(t, err)
	defer d.Close()

	assert.Equal(t, 2, d.Len(), "invalid records are still loaded")
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("invalid date")))
	assert.Contains(t, logs.String(), "position=2")
	assert.Contains(t, logs.String(), "date=31.2.2024")
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	d, err := Open(path, Options{})
	require.NoError(t, err)
	defer d.Close()

	for i := 1; i <= 3; i++ {
		require.NoError(t, d.Add(rec(i, 1, 2024, "")))
	}

	require.NoError(t, d.Seek(2))
	removed, err := d.Remove()
	require.NoError(t, err)
	assert.Equal(t, 2, removed.Day)

	cur, _ := d.Current()
	assert.Equal(t, 3, cur.Day, "cursor moves forward after delete")

	removed, err = d.Remove()
	require.NoError(t, err)
	assert.Equal(t, 3, removed.Day)
	cur, _ = d.Current()
	assert.Equal(t, 1, cur.Day, "cursor falls back at the end")

	_, err = d.Remove()
	require.NoError(t, err)
	_, err = d.Remove()
	assert.ErrorIs(t, err, ErrNoRecord)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSeek(t *testing.T) {
	d, err := Open(filepath.Join(t.TempDir(), "diary.json"), Options{})
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Add(rec(1, 1, 2024, "a")))
	require.NoError(t, d.Add(rec(2, 1, 2024, "b")))

	require.NoError(t, d.Seek(1))
	cur, _ := d.Current()
	assert.Equal(t, "a", cur.Note)

	assert.ErrorIs(t, d.Seek(0), ErrNoRecord)
	assert.ErrorIs(t, d.Seek(3), ErrNoRecord)
}

func TestSaveSkipsUnchangedText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	d, err := Open(path, Options{})
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Add(rec(1, 1, 2024, "a")))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, d.Save())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "unchanged diary was rewritten")
}

func TestSaveEmptyDiaryCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	d, err := Open(path, Options{})
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSmallBuffersStillEncodeEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diary.json")
	d, err := Open(path, Options{InitialSize: 8, FragmentSize: 8})
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Add(rec(1, 1, 2024, "a fairly long note that needs several doublings")))
	require.NoError(t, d.Add(rec(2, 1, 2024, "b")))

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, d.Records(), reopened.Records())
}

func TestBackupRestore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diary.json")
	backup := filepath.Join(dir, "diary.json.zst")

	d, err := Open(path, Options{})
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Add(rec(1, 1, 2024, "kept")))
	require.NoError(t, d.Add(rec(2, 1, 2024, "also kept")))
	require.NoError(t, d.Backup(backup))
	want := d.Records()

	_, err = d.Remove()
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())

	count, err := d.Restore(backup)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, want, d.Records())

	reopened, err := Open(path, Options{})
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, want, reopened.Records())
}

func TestRestoreBadBackupKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	d, err := Open(filepath.Join(dir, "diary.json"), Options{})
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Add(rec(1, 1, 2024, "kept")))

	bad := filepath.Join(dir, "bad.zst")
	require.NoError(t, os.WriteFile(bad, []byte("not zstd"), 0o644))
	_, err = d.Restore(bad)
	assert.ErrorIs(t, err, ErrDecompress)

	_, err = d.Restore(filepath.Join(dir, "missing.zst"))
	assert.ErrorIs(t, err, ErrIO)

	assert.Equal(t, 1, d.Len())
}
