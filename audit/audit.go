// Package audit persists pattern-execution telemetry: the pattern's
// cache digest, the envelope root's digest, the match count and the
// elapsed time of each Paths call. It is strictly outside the matching
// engine's core — the engine never imports it — so a caller that never
// wires up a Log pays nothing beyond the cost of the match itself.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glebarez/sqlite"

	"github.com/blockchaincommons/bc-envelope-pattern-go/envelope"
	"github.com/blockchaincommons/bc-envelope-pattern-go/path"
	"github.com/blockchaincommons/bc-envelope-pattern-go/pattern"
)

// Execution is one recorded Paths invocation.
type Execution struct {
	ID uint `gorm:"primaryKey"`

	PatternDigest string `gorm:"type:varchar(64);index;not null"`
	RootDigest    string `gorm:"type:varchar(64);index;not null"`

	MatchCount int           `gorm:"not null"`
	Elapsed    time.Duration `gorm:"not null"`

	RanAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName keeps the table name stable regardless of Go type renames.
func (Execution) TableName() string { return "executions" }

// Log records pattern-execution telemetry into a GORM-backed store.
type Log struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path (created if absent,
// including parent directories) and runs migrations. A pure-Go driver
// (glebarez/sqlite) is used so the audit log, like the rest of this
// module, never requires cgo.
func Open(path string, debug bool) (*Log, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: failed to create directory: %w", err)
		}
	}
	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to connect: %w", err)
	}
	if err := db.AutoMigrate(&Execution{}); err != nil {
		return nil, fmt.Errorf("audit: migration failed: %w", err)
	}
	return &Log{db: db}, nil
}

// Record runs pat against root, recording the cache digest, root digest,
// match count and elapsed time before returning the matched paths.
func (l *Log) Record(pat pattern.Pattern, root *envelope.Envelope) ([]path.Path, error) {
	start := time.Now()
	paths := pat.Paths(root)
	elapsed := time.Since(start)

	exec := Execution{
		PatternDigest: pattern.Digest(pat),
		RootDigest:    root.Digest().Hex(),
		MatchCount:    len(paths),
		Elapsed:       elapsed,
	}
	if err := l.db.Create(&exec).Error; err != nil {
		return nil, fmt.Errorf("audit: failed to record execution: %w", err)
	}

	return paths, nil
}

// Recent returns the n most recently recorded executions, newest first.
func (l *Log) Recent(n int) ([]Execution, error) {
	var execs []Execution
	if err := l.db.Order("ran_at desc").Limit(n).Find(&execs).Error; err != nil {
		return nil, fmt.Errorf("audit: failed to query executions: %w", err)
	}
	return execs, nil
}

// Close releases the underlying database connection.
func (l *Log) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
