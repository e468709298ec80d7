// Package suitefile loads declarative suite files written in HCL. Each
// case names a registered test function and lists its parameter sources as
// blocks; the blocks are concatenated in file order.
package suitefile

import (
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"paramrun/internal/domain"
	"paramrun/internal/logger"
	"paramrun/internal/source"
	"paramrun/internal/suite"
)

// Loader turns suite files into suites bound to a registry
type Loader struct {
	registry  *suite.Registry
	resources fs.FS
	parser    *hclparse.Parser
	log       *logger.Logger
}

// NewLoader creates a Loader. resources is the root csv_file blocks read from.
func NewLoader(registry *suite.Registry, resources fs.FS, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		registry:  registry,
		resources: resources,
		parser:    hclparse.NewParser(),
		log:       log,
	}
}

// LoadFiles loads every file in order. The first parse error aborts.
func (l *Loader) LoadFiles(paths []string) ([]*suite.Suite, error) {
	var suites []*suite.Suite
	for _, p := range paths {
		s, err := l.LoadFile(p)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s...)
	}
	return suites, nil
}

// LoadFile parses and decodes a single suite file
func (l *Loader) LoadFile(path string) ([]*suite.Suite, error) {
	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", path, diags)
	}
	return l.decode(path, file.Body)
}

// Parse decodes suite source held in memory; filename is used in diagnostics
func (l *Loader) Parse(filename string, src []byte) ([]*suite.Suite, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse suite file %s: %w", filename, diags)
	}
	return l.decode(filename, file.Body)
}

func (l *Loader) decode(filename string, body hcl.Body) ([]*suite.Suite, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode suite file %s: %w", filename, diags)
	}

	env := l.registry.Env(l.resources)
	suites := make([]*suite.Suite, 0, len(parsed.Suites))
	for _, hs := range parsed.Suites {
		s := suite.New(hs.Name, env)
		for _, hc := range hs.Cases {
			if err := l.addCase(s, hc); err != nil {
				return nil, fmt.Errorf("failed to decode suite file %s: %w", filename, err)
			}
		}
		l.log.Debug().
			Str("file", filename).
			Str("suite", hs.Name).
			Int("cases", len(hs.Cases)).
			Msg("suite loaded")
		suites = append(suites, s)
	}
	return suites, nil
}

// addCase registers one case. HCL diagnostics are returned; source
// construction problems are recorded on the case.
func (l *Loader) addCase(s *suite.Suite, hc *hclCase) error {
	content, diags := hc.Remain.Content(sourceSchema)
	if diags.HasErrors() {
		return diags
	}

	specs := make(source.Concat, 0, len(content.Blocks))
	var caseErr error
	for _, block := range content.Blocks {
		spec, diags, err := decodeSource(block)
		if diags.HasErrors() {
			return diags
		}
		if err != nil && caseErr == nil {
			caseErr = err
		}
		specs = append(specs, spec)
	}

	fn, err := l.registry.Test(hc.Test)
	switch {
	case err != nil:
		s.AddError(hc.Name, err)
	case caseErr != nil:
		s.AddError(hc.Name, caseErr)
	case len(specs) == 0:
		s.AddError(hc.Name, domain.FormatErrorf("case("+hc.Name+")", "no parameter source declared"))
	case len(specs) == 1:
		s.Add(hc.Name, fn, specs[0])
	default:
		s.Add(hc.Name, fn, specs)
	}
	return nil
}

// decodeSource turns one source block into a spec
func decodeSource(block *hcl.Block) (source.Spec, hcl.Diagnostics, error) {
	switch block.Type {
	case blockValues:
		var b valuesBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags, nil
		}
		var all []domain.Value
		for _, part := range []struct {
			expr hcl.Expression
			want cty.Type
		}{
			{b.Ints, cty.Number},
			{b.Strings, cty.String},
			{b.Bools, cty.Bool},
			{b.Items, cty.DynamicPseudoType},
		} {
			vals, diags, err := listValues(block.Type, part.expr, part.want)
			if diags.HasErrors() || err != nil {
				return nil, diags, err
			}
			all = append(all, vals...)
		}
		return source.Values{Values: all}, nil, nil

	case blockTuples:
		var b tuplesBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags, nil
		}
		rows, diags, err := tupleRows(block.Type, b.Rows)
		if diags.HasErrors() || err != nil {
			return nil, diags, err
		}
		return source.Literal{Tuples: rows}, nil, nil

	case blockEnum:
		var b enumBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags, nil
		}
		mode, err := source.ParseMode(b.Mode)
		if err != nil {
			return nil, nil, domain.FormatErrorf(block.Type, "%v", err)
		}
		return source.EnumFilter{Type: b.Type, Names: b.Names, Mode: mode}, nil, nil

	case blockCSV:
		var b csvBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags, nil
		}
		quote, err := quoteRune(block.Type, b.Quote)
		if err != nil {
			return nil, nil, err
		}
		return source.CSV{
			Rows:           b.Rows,
			TextBlock:      b.Text,
			Delimiter:      b.Delimiter,
			Quote:          quote,
			NullValues:     b.NullValues,
			KeepWhitespace: b.KeepWhitespace,
		}, nil, nil

	case blockCSVFile:
		var b csvFileBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags, nil
		}
		quote, err := quoteRune(block.Type, b.Quote)
		if err != nil {
			return nil, nil, err
		}
		return source.CSVFile{
			Resources:      b.Resources,
			NumLinesToSkip: b.NumLinesToSkip,
			Delimiter:      b.Delimiter,
			Quote:          quote,
			NullValues:     b.NullValues,
			KeepWhitespace: b.KeepWhitespace,
		}, nil, nil

	case blockMethod:
		var b methodBlock
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return nil, diags, nil
		}
		return source.Method{Name: b.Name}, nil, nil

	default:
		if _, diags := block.Body.Content(&hcl.BodySchema{}); diags.HasErrors() {
			return nil, diags, nil
		}
		switch block.Type {
		case blockNull:
			return source.Null{}, nil, nil
		case blockEmpty:
			return source.Empty{}, nil, nil
		default:
			return source.NullAndEmpty{}, nil, nil
		}
	}
}

func quoteRune(desc, q string) (rune, error) {
	if q == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(q)
	if size != len(q) {
		return 0, domain.FormatErrorf(desc, "quote must be a single character, got %q", q)
	}
	return r, nil
}
