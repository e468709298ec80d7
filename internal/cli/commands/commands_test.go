package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramrun/internal/config"
	"paramrun/internal/demo"
	"paramrun/internal/discovery"
	"paramrun/internal/logger"
	"paramrun/internal/storage"
)

const failingSuite = `
suite "extra" {
  case "evens_are_not_odd" {
    test = "is_odd"
    values { ints = [1, 2] }
  }
  case "upper_from_file" {
    test = "to_upper_case"
    csv_file {
      resources         = ["words.csv"]
      num_lines_to_skip = 1
    }
  }
}
`

func newProject(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.DefaultSuitePath), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.DefaultResourceDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultSuitePath, "extra.hcl"), []byte(failingSuite), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultResourceDir, "words.csv"), []byte("in,out\ngo,GO\n"), 0644))

	cfg := config.New()
	cfg.ProjectPath = dir
	cfg.Workers = 2
	return cfg
}

func newCatalog(cfg *config.Config) *Catalog {
	return NewCatalog(cfg, discovery.NewScanner(cfg.PathsToIgnore), discovery.NewFilter(), demo.NewRegistry(), logger.Nop())
}

func TestCatalog_Entries(t *testing.T) {
	cfg := newProject(t)

	entries, err := newCatalog(cfg).Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 13)
	assert.Equal(t, "demo", entries[0].Suite)
	assert.Equal(t, "extra/upper_from_file", entries[12].FullName())
	for _, e := range entries {
		assert.NoError(t, e.Err, e.FullName())
	}

	cfg.Flags.NoBuiltin = true
	entries, err = newCatalog(cfg).Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	cfg.Flags.NameFilter = "*evens*"
	entries, err = newCatalog(cfg).Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "evens_are_not_odd", entries[0].Name)
}

func TestCatalog_SuitePath(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	// missing default directory only yields the built-in suite
	entries, err := newCatalog(cfg).Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 11)

	cfg.ApplyFlags(config.Flags{SuitePath: "nowhere"})
	_, err = newCatalog(cfg).Entries()
	assert.Error(t, err)
}

func TestCommands_Run(t *testing.T) {
	cfg := newProject(t)
	cmds, err := NewCommands(cfg)
	require.NoError(t, err)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	// built-in suite only: everything passes
	cfg.Flags = config.Flags{NoBuiltin: false, NameFilter: "demo/*"}
	require.NoError(t, cmds.Run.Execute(cmd, nil))

	st := storage.NewJSONStorage(cfg)
	out, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 11, out.Meta.TotalCases)
	assert.Equal(t, 11, out.Meta.PassedCases)
	assert.Empty(t, out.Details)

	// the suite file has one failing tuple
	cfg.Flags = config.Flags{NoBuiltin: true}
	assert.ErrorIs(t, cmds.Run.Execute(cmd, nil), ErrCasesFailed)

	out, err = st.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, out.Meta.TotalCases)
	assert.Equal(t, 1, out.Meta.FailedCases)
	require.Len(t, out.Details, 1)
	assert.Equal(t, "extra/evens_are_not_odd", out.Details[0].CaseName)
	assert.Equal(t, 1, out.Details[0].Index)
	assert.Equal(t, "(2)", out.Details[0].Input)

	// --failed reruns only that case
	cfg.Flags = config.Flags{OnlyFailed: true}
	assert.ErrorIs(t, cmds.Run.Execute(cmd, nil), ErrCasesFailed)
	out, err = st.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, out.Meta.TotalCases)
}

func TestCommands_List(t *testing.T) {
	cfg := newProject(t)
	cmds, err := NewCommands(cfg)
	require.NoError(t, err)

	cfg.Flags = config.Flags{ShowTuples: true}
	assert.NoError(t, cmds.List.Execute(&cobra.Command{}, nil))
}
