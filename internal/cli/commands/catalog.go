package commands

import (
	"fmt"
	"os"

	"paramrun/internal/config"
	"paramrun/internal/demo"
	"paramrun/internal/discovery"
	"paramrun/internal/logger"
	"paramrun/internal/suite"
	"paramrun/internal/suitefile"
)

// Catalog collects the cases a command works on: the built-in suite plus
// every suite file under the suite path, filtered by name
type Catalog struct {
	config   *config.Config
	scanner  *discovery.Scanner
	filter   *discovery.Filter
	registry *suite.Registry
	log      *logger.Logger
}

// NewCatalog creates a Catalog. Suite files resolve test names against registry.
func NewCatalog(cfg *config.Config, scanner *discovery.Scanner, filter *discovery.Filter, registry *suite.Registry, log *logger.Logger) *Catalog {
	return &Catalog{
		config:   cfg,
		scanner:  scanner,
		filter:   filter,
		registry: registry,
		log:      log,
	}
}

// Entries returns the selected cases in registration order
func (c *Catalog) Entries() ([]suite.Entry, error) {
	var suites []*suite.Suite
	if !c.config.Flags.NoBuiltin {
		suites = append(suites, demo.Suite(c.registry))
	}

	fromFiles, err := c.loadSuiteFiles()
	if err != nil {
		return nil, err
	}
	suites = append(suites, fromFiles...)

	entries := suite.Flatten(suites...)
	entries = c.filter.FilterByName(entries, c.config.Flags.NameFilter)
	c.log.Debug().Int("suites", len(suites)).Int("cases", len(entries)).Msg("catalog built")
	return entries, nil
}

// loadSuiteFiles loads the suite path. A missing default path is not an
// error; a path given with --suite-path must exist.
func (c *Catalog) loadSuiteFiles() ([]*suite.Suite, error) {
	path := c.config.GetSuitePath()
	if _, err := os.Stat(path); err != nil {
		if c.config.Flags.SuitePath == "" && os.IsNotExist(err) {
			c.log.Debug().Str("path", path).Msg("no suite directory")
			return nil, nil
		}
		return nil, fmt.Errorf("suite path %s: %w", path, err)
	}

	files, err := c.scanner.Scan(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	loader := suitefile.NewLoader(c.registry, os.DirFS(c.config.GetResourceDir()), c.log)
	return loader.LoadFiles(files)
}
