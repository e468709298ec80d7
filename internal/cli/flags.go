package cli

import "paramrun/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workers      int
	SuitePath    string
	NameFilter   string
	FailFast     bool
	OnlyFailed   bool
	OpenFailures bool
	NoBuiltin    bool
	ShowTuples   bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:      f.Workers,
		SuitePath:    f.SuitePath,
		NameFilter:   f.NameFilter,
		FailFast:     f.FailFast,
		OnlyFailed:   f.OnlyFailed,
		OpenFailures: f.OpenFailures,
		NoBuiltin:    f.NoBuiltin,
		ShowTuples:   f.ShowTuples,
	}
}
