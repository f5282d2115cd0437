package history

import (
	"errors"

	"github.com/relkit/release/internal/exception"
	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteRepo is our repo implementation for sqlite
type SqliteRepo struct {
	db *gorm.DB
}

// NewSqliteRepo returns a new release history repo for an existing db
// connection
func NewSqliteRepo(db *gorm.DB) *SqliteRepo {
	return &SqliteRepo{db: db}
}

// NewSqliteDatabase opens the history database at the path shared via
// viper and returns a repo for it
func NewSqliteDatabase() (*SqliteRepo, error) {
	filepath := viper.Get("database-file")

	dbFile, ok := filepath.(string)

	if !ok {
		return nil, errors.New("failed to find database file path config")
	}

	db, err := gorm.Open(sqlite.Open(dbFile), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		return nil, err
	}

	db.AutoMigrate(&Release{})

	return &SqliteRepo{db: db}, nil
}

// GetAll returns all recorded releases, newest first
func (r *SqliteRepo) GetAll() ([]*Release, error) {
	releases := []*Release{}

	if result := r.db.Order("created_at desc").Find(&releases); result.Error != nil {
		return nil, result.Error
	}

	return releases, nil
}

// Latest returns the most recently recorded release
func (r *SqliteRepo) Latest() (*Release, error) {
	release := Release{}

	if result := r.db.Order("created_at desc").First(&release); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, exception.ErrRecordNotFound
		}

		return nil, result.Error
	}

	return &release, nil
}

// Add records a release
func (r *SqliteRepo) Add(release *Release) (*Release, error) {
	if release.Version == "" {
		return nil, errors.New("release version cannot be empty")
	}

	if result := r.db.Create(release); result.Error != nil {
		return nil, result.Error
	}

	return release, nil
}
