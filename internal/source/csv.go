package source

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"paramrun/internal/domain"
)

const (
	// DefaultDelimiter separates fields when none is configured
	DefaultDelimiter = ","
	// DefaultQuote encloses fields that must keep whitespace or delimiters
	DefaultQuote     = '\''
	commentPrefix    = "#"
)

// CSV splits literal rows into positional text fields.
//
// Unquoted fields are trimmed and an unquoted empty field is null. Quoted
// fields keep their content, '' is empty text and a doubled quote inside a
// quoted field is a literal quote. Every row must have the same number of
// fields.
type CSV struct {
	Rows           []string
	TextBlock      string // newline separated rows; blank and # lines are skipped
	Delimiter      string
	Quote          rune
	NullValues     []string // unquoted fields equal to one of these become null
	KeepWhitespace bool
}

// Build implements Spec
func (c CSV) Build(Env) (Source, error) {
	p := c.parser()
	desc := c.describe()

	var lines []csvLine
	for i, row := range c.Rows {
		lines = append(lines, csvLine{no: i + 1, text: row})
	}
	if c.TextBlock != "" {
		for i, row := range splitLines(c.TextBlock) {
			if isSkippable(row) {
				continue
			}
			lines = append(lines, csvLine{no: len(c.Rows) + i + 1, text: row})
		}
	}

	tuples, err := p.parseAll(desc, lines)
	if err != nil {
		return nil, err
	}
	return NewList(desc, tuples), nil
}

func (c CSV) describe() string {
	switch {
	case c.TextBlock == "":
		return fmt.Sprintf("csv(%d rows)", len(c.Rows))
	case len(c.Rows) == 0:
		return "csv(text block)"
	default:
		return fmt.Sprintf("csv(%d rows + text block)", len(c.Rows))
	}
}

func (c CSV) parser() rowParser {
	p := rowParser{
		delim: c.Delimiter,
		quote: c.Quote,
		trim:  !c.KeepWhitespace,
		nulls: make(map[string]bool, len(c.NullValues)),
	}
	if p.delim == "" {
		p.delim = DefaultDelimiter
	}
	if p.quote == 0 {
		p.quote = DefaultQuote
	}
	for _, n := range c.NullValues {
		p.nulls[n] = true
	}
	return p
}

type csvLine struct {
	no   int
	text string
}

type rowParser struct {
	delim string
	quote rune
	trim  bool
	nulls map[string]bool
}

// parseAll parses every line and enforces a single field count
func (p rowParser) parseAll(desc string, lines []csvLine) ([]domain.Tuple, error) {
	tuples := make([]domain.Tuple, 0, len(lines))
	width := -1
	for _, l := range lines {
		t, err := p.parseRow(l.text)
		if err != nil {
			return nil, domain.FormatErrorf(desc, "row %d: %v", l.no, err)
		}
		if width >= 0 && len(t) != width {
			return nil, domain.FormatErrorf(desc, "row %d has %d fields, previous rows have %d", l.no, len(t), width)
		}
		width = len(t)
		tuples = append(tuples, t)
	}
	return tuples, nil
}

// parseRow splits one row into values
func (p rowParser) parseRow(row string) (domain.Tuple, error) {
	var tuple domain.Tuple
	rest := row
	for {
		v, remaining, more, err := p.nextField(rest)
		if err != nil {
			return nil, err
		}
		tuple = append(tuple, v)
		if !more {
			return tuple, nil
		}
		rest = remaining
	}
}

// nextField consumes one field and reports whether a delimiter followed it
func (p rowParser) nextField(s string) (domain.Value, string, bool, error) {
	if p.trim {
		s = strings.TrimLeftFunc(s, p.isBlank)
	}

	if r, size := utf8.DecodeRuneInString(s); size > 0 && r == p.quote {
		return p.quotedField(s[size:])
	}

	raw, rest, more := s, "", false
	if i := strings.Index(s, p.delim); i >= 0 {
		raw, rest, more = s[:i], s[i+len(p.delim):], true
	}
	if p.trim {
		raw = strings.TrimRightFunc(raw, p.isBlank)
	}
	if raw == "" || p.nulls[raw] {
		return domain.Null(), rest, more, nil
	}
	return domain.Text(raw), rest, more, nil
}

func (p rowParser) quotedField(s string) (domain.Value, string, bool, error) {
	var b strings.Builder
	q := string(p.quote)
	for {
		i := strings.Index(s, q)
		if i < 0 {
			return domain.Value{}, "", false, fmt.Errorf("unterminated quote")
		}
		b.WriteString(s[:i])
		s = s[i+len(q):]
		if strings.HasPrefix(s, q) {
			b.WriteString(q)
			s = s[len(q):]
			continue
		}
		break
	}

	after := s
	if p.trim {
		after = strings.TrimLeftFunc(after, p.isBlank)
	}
	switch {
	case after == "":
		return domain.Text(b.String()), "", false, nil
	case strings.HasPrefix(after, p.delim):
		return domain.Text(b.String()), after[len(p.delim):], true, nil
	default:
		return domain.Value{}, "", false, fmt.Errorf("unexpected characters after closing quote: %q", after)
	}
}

// isBlank reports trimmable whitespace; delimiter runes are never trimmed
func (p rowParser) isBlank(r rune) bool {
	return unicode.IsSpace(r) && !strings.ContainsRune(p.delim, r)
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

func isSkippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, commentPrefix)
}
