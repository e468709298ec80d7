package source

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/pkg/errors"

	"paramrun/internal/domain"
)

// CSVFile reads rows from named resources under Env.Resources. The first
// NumLinesToSkip lines of every resource are discarded before parsing;
// blank lines and lines starting with # are ignored after that.
//
// Resources are read once at build time. The built source holds the parsed
// rows only, so iterating never touches the filesystem.
type CSVFile struct {
	Resources      []string
	NumLinesToSkip int
	Delimiter      string
	Quote          rune
	NullValues     []string
	KeepWhitespace bool
}

// Build implements Spec
func (c CSVFile) Build(env Env) (Source, error) {
	desc := fmt.Sprintf("csv_file(%s)", strings.Join(c.Resources, ","))
	if len(c.Resources) == 0 {
		return nil, domain.FormatErrorf(desc, "no resources given")
	}
	if c.NumLinesToSkip < 0 {
		return nil, domain.FormatErrorf(desc, "num_lines_to_skip must not be negative")
	}
	if env.Resources == nil {
		return nil, domain.IOError(desc, errors.New("no resource root configured"))
	}

	p := CSV{
		Delimiter:      c.Delimiter,
		Quote:          c.Quote,
		NullValues:     c.NullValues,
		KeepWhitespace: c.KeepWhitespace,
	}.parser()

	var lines []csvLine
	for _, name := range c.Resources {
		// resource names are rooted at Env.Resources, "/x.csv" and "x.csv" are the same file
		data, err := fs.ReadFile(env.Resources, strings.TrimPrefix(name, "/"))
		if err != nil {
			return nil, domain.IOError(desc, errors.Wrapf(err, "read resource %s", name))
		}
		for i, line := range splitLines(string(data)) {
			if i < c.NumLinesToSkip || isSkippable(line) {
				continue
			}
			lines = append(lines, csvLine{no: i + 1, text: line})
		}
	}

	tuples, err := p.parseAll(desc, lines)
	if err != nil {
		return nil, err
	}
	return NewList(desc, tuples), nil
}
