package scraper

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"otecli/pkg/contracts/domain"
)

// PriceRow is the local storage row for one scraped delivery hour, keyed
// (date, hour) so re-scraping a day replaces it instead of duplicating it.
type PriceRow struct {
	Date   string   `gorm:"column:date;primaryKey"`
	Hour   int      `gorm:"column:hour;primaryKey"`
	Price  *float64 `gorm:"column:price_eur"`
	Volume *float64 `gorm:"column:volume_mwh"`
	Saldo  *float64 `gorm:"column:saldo_mwh"`
	Export *float64 `gorm:"column:export_mwh"`
	Import *float64 `gorm:"column:import_mwh"`
}

// TableName implements the gorm table naming convention.
func (PriceRow) TableName() string { return "electricity_prices" }

// Store is the scraper's resumable local database.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (or creates) the SQLite database at path and ensures the
// prices table exists.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&PriceRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Upsert inserts or replaces the given records.
func (s *Store) Upsert(records []domain.DAMPrice) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]PriceRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, PriceRow{
			Date:   r.Date,
			Hour:   r.Hour,
			Price:  r.Price,
			Volume: r.Volume,
			Saldo:  r.Saldo,
			Export: r.Export,
			Import: r.Import,
		})
	}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "hour"}},
		UpdateAll: true,
	}).Create(&rows)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert records: %w", result.Error)
	}
	return nil
}

// ScrapedDates returns the set of dates that already have data, used by
// resume mode to skip them.
func (s *Store) ScrapedDates() (map[string]bool, error) {
	var dates []string
	if err := s.db.Model(&PriceRow{}).Distinct().Pluck("date", &dates).Error; err != nil {
		return nil, fmt.Errorf("failed to query scraped dates: %w", err)
	}
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[d] = true
	}
	return seen, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
