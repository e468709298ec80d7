package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"paramrun/internal/domain"
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS `runs` (" +
		"`run_id` VARCHAR(36) NOT NULL PRIMARY KEY," +
		"`total_cases` INT NOT NULL," +
		"`passed_cases` INT NOT NULL," +
		"`failed_cases` INT NOT NULL," +
		"`skipped_cases` INT NOT NULL," +
		"`invocations` INT NOT NULL," +
		"`passed` INT NOT NULL," +
		"`failed` INT NOT NULL," +
		"`errored` INT NOT NULL," +
		"`duration` VARCHAR(64) NOT NULL," +
		"`duration_seconds` DOUBLE NOT NULL," +
		"`workers` INT NOT NULL," +
		"`timestamp` VARCHAR(64) NOT NULL," +
		"`created_at` TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6))",
	"CREATE TABLE IF NOT EXISTS `run_failures` (" +
		"`run_id` VARCHAR(36) NOT NULL," +
		"`position` INT NOT NULL," +
		"`case_name` VARCHAR(255) NOT NULL," +
		"`source` TEXT NOT NULL," +
		"`tuple_index` INT NOT NULL," +
		"`input` TEXT NOT NULL," +
		"`status` VARCHAR(16) NOT NULL," +
		"`message` TEXT NOT NULL," +
		"`resolved` BOOLEAN NOT NULL DEFAULT FALSE," +
		"PRIMARY KEY (`run_id`, `position`))",
}

// MySQLStorage keeps every run in MySQL; Load returns the most recent one
type MySQLStorage struct {
	dsn string
	db  *sql.DB
}

// NewMySQLStorage validates dsn. The connection is opened lazily.
func NewMySQLStorage(dsn string) (*MySQLStorage, error) {
	if dsn == "" {
		return nil, errors.New("mysql store requires a DSN")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql DSN: %w", err)
	}
	if cfg.DBName == "" {
		return nil, errors.New("mysql DSN must name a database")
	}
	return &MySQLStorage{dsn: dsn}, nil
}

func (s *MySQLStorage) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("mysql", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create tables: %w", err)
		}
	}
	s.db = db
	return db, nil
}

// Close releases the connection pool
func (s *MySQLStorage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Save inserts the run, replacing any stored run with the same id
func (s *MySQLStorage) Save(output *domain.RunOutput) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	m := output.Meta
	if _, err := tx.Exec("DELETE FROM `run_failures` WHERE `run_id` = ?", m.RunID); err != nil {
		return fmt.Errorf("clear failures: %w", err)
	}
	_, err = tx.Exec(
		"REPLACE INTO `runs` (`run_id`, `total_cases`, `passed_cases`, `failed_cases`, `skipped_cases`, "+
			"`invocations`, `passed`, `failed`, `errored`, `duration`, `duration_seconds`, `workers`, `timestamp`) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		m.RunID, m.TotalCases, m.PassedCases, m.FailedCases, m.SkippedCases,
		m.Invocations, m.Passed, m.Failed, m.Errored, m.Duration, m.DurationSeconds, m.Workers, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, f := range output.Details {
		_, err := tx.Exec(
			"INSERT INTO `run_failures` (`run_id`, `position`, `case_name`, `source`, `tuple_index`, `input`, `status`, `message`, `resolved`) "+
				"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			m.RunID, i, f.CaseName, f.Source, f.Index, f.Input, f.Status.String(), f.Message, f.Resolved,
		)
		if err != nil {
			return fmt.Errorf("insert failure %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load reads the most recently saved run
func (s *MySQLStorage) Load() (*domain.RunOutput, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	var m domain.RunMeta
	err = db.QueryRow(
		"SELECT `run_id`, `total_cases`, `passed_cases`, `failed_cases`, `skipped_cases`, `invocations`, "+
			"`passed`, `failed`, `errored`, `duration`, `duration_seconds`, `workers`, `timestamp` "+
			"FROM `runs` ORDER BY `created_at` DESC LIMIT 1",
	).Scan(&m.RunID, &m.TotalCases, &m.PassedCases, &m.FailedCases, &m.SkippedCases, &m.Invocations,
		&m.Passed, &m.Failed, &m.Errored, &m.Duration, &m.DurationSeconds, &m.Workers, &m.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("no stored runs")
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	rows, err := db.Query(
		"SELECT `case_name`, `source`, `tuple_index`, `input`, `status`, `message`, `resolved` "+
			"FROM `run_failures` WHERE `run_id` = ? ORDER BY `position`", m.RunID)
	if err != nil {
		return nil, fmt.Errorf("load failures: %w", err)
	}
	defer rows.Close()

	output := &domain.RunOutput{Meta: m, Details: []domain.TestFailure{}}
	for rows.Next() {
		var f domain.TestFailure
		var status string
		if err := rows.Scan(&f.CaseName, &f.Source, &f.Index, &f.Input, &status, &f.Message, &f.Resolved); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		if err := f.Status.UnmarshalText([]byte(status)); err != nil {
			return nil, err
		}
		output.Details = append(output.Details, f)
	}
	return output, rows.Err()
}
