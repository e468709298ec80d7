package suitefile

import "github.com/hashicorp/hcl/v2"

// hclFile is the top-level structure of a suite file
type hclFile struct {
	Suites []*hclSuite `hcl:"suite,block"`
}

type hclSuite struct {
	Name  string     `hcl:"name,label"`
	Cases []*hclCase `hcl:"case,block"`
}

// hclCase keeps its source blocks undecoded so their order survives
type hclCase struct {
	Name   string   `hcl:"name,label"`
	Test   string   `hcl:"test"`
	Remain hcl.Body `hcl:",remain"`
}

const (
	blockValues       = "values"
	blockTuples       = "tuples"
	blockEnum         = "enum"
	blockCSV          = "csv"
	blockCSVFile      = "csv_file"
	blockMethod       = "method"
	blockNull         = "null"
	blockEmpty        = "empty"
	blockNullAndEmpty = "null_and_empty"
)

var sourceSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockValues},
		{Type: blockTuples},
		{Type: blockEnum},
		{Type: blockCSV},
		{Type: blockCSVFile},
		{Type: blockMethod},
		{Type: blockNull},
		{Type: blockEmpty},
		{Type: blockNullAndEmpty},
	},
}

type valuesBlock struct {
	Ints    hcl.Expression `hcl:"ints,optional"`
	Strings hcl.Expression `hcl:"strings,optional"`
	Bools   hcl.Expression `hcl:"bools,optional"`
	Items   hcl.Expression `hcl:"items,optional"`
}

type tuplesBlock struct {
	Rows hcl.Expression `hcl:"rows"`
}

type enumBlock struct {
	Type  string   `hcl:"type"`
	Names []string `hcl:"names,optional"`
	Mode  string   `hcl:"mode,optional"`
}

type csvBlock struct {
	Rows           []string `hcl:"rows,optional"`
	Text           string   `hcl:"text,optional"`
	Delimiter      string   `hcl:"delimiter,optional"`
	Quote          string   `hcl:"quote,optional"`
	NullValues     []string `hcl:"null_values,optional"`
	KeepWhitespace bool     `hcl:"keep_whitespace,optional"`
}

type csvFileBlock struct {
	Resources      []string `hcl:"resources"`
	NumLinesToSkip int      `hcl:"num_lines_to_skip,optional"`
	Delimiter      string   `hcl:"delimiter,optional"`
	Quote          string   `hcl:"quote,optional"`
	NullValues     []string `hcl:"null_values,optional"`
	KeepWhitespace bool     `hcl:"keep_whitespace,optional"`
}

type methodBlock struct {
	Name string `hcl:"name"`
}
