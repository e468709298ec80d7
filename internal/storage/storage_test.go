package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramrun/internal/config"
	"paramrun/internal/domain"
)

func sampleOutput() *domain.RunOutput {
	return &domain.RunOutput{
		Meta: domain.RunMeta{
			RunID:       "3f0c9f2e-0000-4000-8000-000000000001",
			TotalCases:  2,
			PassedCases: 1,
			FailedCases: 1,
			Invocations: 5,
			Passed:      4,
			Failed:      1,
			Workers:     2,
		},
		Details: []domain.TestFailure{
			{CaseName: "demo/is_odd", Source: "values(6)", Index: 2, Input: "(5)", Status: domain.StatusFail, Message: "expected true"},
			{CaseName: "demo/broken", Source: "csv_file(missing.csv)", Index: -1, Status: domain.StatusError, Message: "io error"},
		},
	}
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	s := NewJSONStorage(cfg)

	out := sampleOutput()
	require.NoError(t, s.Save(out))

	_, err := os.Stat(filepath.Join(cfg.ProjectPath, config.DefaultOutputJSONDir, config.DefaultOutputJSONFile))
	require.NoError(t, err)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, out, loaded)
	assert.Equal(t, []string{"demo/is_odd", "demo/broken"}, loaded.FailedCaseNames())

	// resolved flags survive a second save
	loaded.Details[0].Resolved = true
	require.NoError(t, s.Save(loaded))
	again, err := s.Load()
	require.NoError(t, err)
	assert.True(t, again.Details[0].Resolved)
	assert.False(t, again.Details[1].Resolved)
}

func TestJSONStorage_EmptyDetails(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	s := NewJSONStorage(cfg)

	require.NoError(t, s.Save(&domain.RunOutput{Meta: domain.RunMeta{RunID: "x"}}))
	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"details": []`)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	_, err := NewJSONStorage(cfg).Load()
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		dsn     string
		wantErr bool
	}{
		{"json", "json", "", false},
		{"default", "", "", false},
		{"mysql", "mysql", "root:secret@tcp(127.0.0.1:3306)/paramrun", false},
		{"mysql without database", "mysql", "root@tcp(127.0.0.1:3306)/", true},
		{"mysql malformed dsn", "mysql", "root@tcp(127.0.0.1:3306", true},
		{"mysql empty dsn", "mysql", "", true},
		{"unknown", "redis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Store = tt.store
			cfg.MySQLDSN = tt.dsn
			s, err := New(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestMySQLStorage_SaveLoad(t *testing.T) {
	dsn := os.Getenv("PARAMRUN_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("PARAMRUN_TEST_MYSQL_DSN not set")
	}

	s, err := NewMySQLStorage(dsn)
	require.NoError(t, err)
	defer s.Close()

	out := sampleOutput()
	require.NoError(t, s.Save(out))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, out.Meta.RunID, loaded.Meta.RunID)
	assert.Equal(t, out.Details, loaded.Details)

	loaded.Details[1].Resolved = true
	require.NoError(t, s.Save(loaded))
	again, err := s.Load()
	require.NoError(t, err)
	assert.True(t, again.Details[1].Resolved)
}
