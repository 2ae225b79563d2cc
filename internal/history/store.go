package history

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JOBrien987/ProcessRoaster/internal/monitor"
)

// AlertRecord is one persisted overuse alert.
type AlertRecord struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	PID          int32     `json:"pid"`
	Name         string    `json:"name"`
	CPUPercent   float64   `json:"cpu_percent"`
	WorkingSetMB float64   `json:"working_set_mb"`
	CreatedAt    time.Time `json:"-"`
}

// Store keeps alert history in a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the history database at dbPath and migrates the
// schema.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := db.AutoMigrate(&AlertRecord{}); err != nil {
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Notify persists one alert. It implements monitor.AlertSink.
func (s *Store) Notify(ev monitor.AlertEvent) error {
	return s.db.Create(&AlertRecord{
		Timestamp:    ev.Timestamp,
		PID:          ev.PID,
		Name:         ev.Name,
		CPUPercent:   ev.CPUPercent,
		WorkingSetMB: ev.WorkingSetMB(),
	}).Error
}

// Recent returns the most recent alerts, newest first.
func (s *Store) Recent(limit int) ([]AlertRecord, error) {
	var records []AlertRecord
	err := s.db.Order("timestamp DESC").Limit(limit).Find(&records).Error
	return records, err
}

// ByName returns alerts for processes whose name contains the given
// substring, newest first.
func (s *Store) ByName(name string, limit int) ([]AlertRecord, error) {
	var records []AlertRecord
	err := s.db.Where("name LIKE ?", "%"+name+"%").
		Order("timestamp DESC").Limit(limit).Find(&records).Error
	return records, err
}

// Count returns the total number of persisted alerts.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.Model(&AlertRecord{}).Count(&count).Error
	return count, err
}
