// Package shell runs the interactive diary session: it redraws the current
// record, reads a localized command per line, and applies it to an open
// diary.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/diary/internal/i18n"
	"github.com/mesh-intelligence/diary/internal/store"
	"github.com/mesh-intelligence/diary/pkg/types"
)

const (
	separator   = "------------------------------------------------------"
	clearScreen = "\x1b[1;1H\x1b[2J"
)

// Options configures a Session.
type Options struct {
	// NoClear suppresses the clear-screen sequence before each redraw.
	NoClear bool
	Logger  *slog.Logger
}

// Session is one interactive run against an open diary.
type Session struct {
	diary *store.Diary
	cat   *i18n.Catalog
	in    *bufio.Reader
	out   io.Writer
	opts  Options
	log   *slog.Logger

	// status is shown once, on the next redraw.
	status string

	rule   lipgloss.Style
	label  lipgloss.Style
	notice lipgloss.Style
}

// New returns a session reading commands from in and drawing to out. The
// catalog may be nil, in which case the raw keys serve as commands.
func New(d *store.Diary, cat *i18n.Catalog, in io.Reader, out io.Writer, opts Options) *Session {
	r := lipgloss.NewRenderer(out)
	s := &Session{
		diary:  d,
		cat:    cat,
		in:     bufio.NewReader(in),
		out:    out,
		opts:   opts,
		log:    opts.Logger,
		rule:   r.NewStyle().Faint(true),
		label:  r.NewStyle().Bold(true),
		notice: r.NewStyle().Foreground(lipgloss.Color("9")),
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Run processes commands until the close command or end of input. Failed
// diary operations are reported on the screen and the loop continues; only
// a read error other than io.EOF is returned.
func (s *Session) Run() error {
	for {
		s.draw()
		s.printf("%s: ", s.t("enter_command"))

		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case s.matches(line, "cmd_prev"):
			s.diary.Prev()
		case s.matches(line, "cmd_next"):
			s.diary.Next()
		case s.matches(line, "cmd_new"):
			if err := s.newEntry(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case s.matches(line, "cmd_save"):
			s.save()
		case s.matches(line, "cmd_delete"):
			if err := s.deleteEntry(); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		case s.matches(line, "cmd_close"):
			return nil
		}
	}
}

// newEntry prompts for a date and a note, then inserts the record after the
// cursor. An invalid date returns to the command prompt without changes.
func (s *Session) newEntry() error {
	s.draw()
	s.printf("\n%s: ", s.t("enter_date"))
	line, err := s.readLine()
	if err != nil {
		return err
	}
	date, err := types.ParseDate(line)
	if err != nil {
		s.log.Debug("rejected date", "input", strings.TrimSpace(line), "err", err)
		s.status = s.t("invalid_date")
		return nil
	}

	s.printf("%s:\n", s.t("enter_note"))
	var note strings.Builder
	for {
		line, err := s.readLine()
		if err != nil {
			return err
		}
		if s.matches(line, "cmd_save") {
			break
		}
		note.WriteString(line)
	}

	if err := s.diary.Add(types.Record{Date: date, Note: note.String()}); err != nil {
		s.report("add entry", err)
		return nil
	}
	s.status = s.t("saved")
	return nil
}

// deleteEntry shows the current record and removes it when the answer is the
// confirm command or starts with its first character.
func (s *Session) deleteEntry() error {
	rec, ok := s.diary.Current()
	if !ok {
		return nil
	}

	s.clear()
	s.printf("\n")
	s.drawRecord(rec)
	s.printf("%s: ", s.t("delete_confirm"))

	line, err := s.readLine()
	if err != nil {
		return err
	}

	if s.confirmed(line) {
		if _, err := s.diary.Remove(); err != nil {
			s.report("delete entry", err)
		}
		return nil
	}
	s.save()
	return nil
}

func (s *Session) confirmed(line string) bool {
	if s.matches(line, "cmd_confirm") {
		return true
	}
	confirm := s.t("cmd_confirm")
	return confirm != "" && line != "" && line[0] == confirm[0]
}

func (s *Session) save() {
	if err := s.diary.Save(); err != nil {
		s.report("save", err)
		return
	}
	s.status = s.t("saved")
	s.log.Debug("saved from session", "path", s.diary.Path())
}

func (s *Session) report(op string, err error) {
	s.log.Error("session operation failed", "op", op, "err", err)
	s.status = fmt.Sprintf("%s: %v", op, err)
}

// draw clears the screen and prints the help block and the current record.
func (s *Session) draw() {
	s.clear()
	rule := s.rule.Render(separator)
	s.printf("%s\n%s\n%s\n\n%s: %d\n", rule, s.t("help"), rule, s.t("record_num"), s.diary.Len())
	if s.status != "" {
		s.printf("%s\n", s.notice.Render(s.status))
		s.status = ""
	}
	if rec, ok := s.diary.Current(); ok {
		s.drawRecord(rec)
	}
}

func (s *Session) drawRecord(rec types.Record) {
	s.printf("%s: %s\n\n%s\n%s\n\n", s.label.Render(s.t("date")), rec.Date.String(), rec.Note, s.rule.Render(separator))
}

func (s *Session) clear() {
	if !s.opts.NoClear {
		s.printf("%s", clearScreen)
	}
}

// readLine returns the next input line including its newline. A final line
// without a newline is returned before io.EOF.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// matches reports whether input, without trailing whitespace, equals the
// localized command for key.
func (s *Session) matches(input, key string) bool {
	return strings.TrimRight(input, " \t\r\n") == s.t(key)
}

func (s *Session) t(key string) string {
	return s.cat.Lookup(key)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
