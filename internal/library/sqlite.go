package library

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type bookRow struct {
	ID       uint64 `gorm:"primaryKey"`
	Position int    `gorm:"index"`
	Title    string
	Author   string
	Year     int
	Genre    string
	Read     bool
}

func (bookRow) TableName() string {
	return "books"
}

// SQLiteStore keeps the collection in a "books" table of a SQLite file. Rows
// carry their position so that insertion order survives a round trip.
type SQLiteStore struct {
	db *gorm.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite library: %w", err)
	}

	err = db.AutoMigrate(&bookRow{})
	if err != nil {
		return nil, fmt.Errorf("migrating sqlite library: %w", err)
	}

	return &SQLiteStore{
		db: db,
	}, nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) Collection {
	var rows []bookRow
	err := s.db.WithContext(ctx).Order("position").Find(&rows).Error
	if err != nil {
		slog.Warn("could not query library, starting empty", "error", err)
		return Collection{}
	}

	books := make(Collection, 0, len(rows))
	for _, row := range rows {
		books = append(books, Book{
			Title:  row.Title,
			Author: row.Author,
			Year:   row.Year,
			Genre:  row.Genre,
			Read:   row.Read,
		})
	}
	return books
}

// Save replaces the table contents with books in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, books Collection) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("1 = 1").Delete(&bookRow{}).Error
		if err != nil {
			return err
		}

		if len(books) == 0 {
			return nil
		}

		rows := make([]bookRow, 0, len(books))
		for i, b := range books {
			rows = append(rows, bookRow{
				Position: i,
				Title:    b.Title,
				Author:   b.Author,
				Year:     b.Year,
				Genre:    b.Genre,
				Read:     b.Read,
			})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	return nil
}
