package history

import (
	"time"

	"gorm.io/datatypes"
)

//go:generate mockgen -destination=../mock/history/mock_history.go -package=mock_history . Repo,Service

// Release represents a single recorded release
type Release struct {
	ID              int `gorm:"primaryKey;autoIncrement"`
	PreviousVersion string
	Version         string
	Tag             string
	Branch          string
	Remote          string
	Files           datatypes.JSON
	CreatedAt       time.Time
}

// Repo interface representing access to stored releases
type Repo interface {
	GetAll() ([]*Release, error)
	Latest() (*Release, error)
	Add(release *Release) (*Release, error)
}

// Service interface for recording and listing releases
type Service interface {
	List() ([]*Release, error)
	Latest() (*Release, error)
	Record(release *Release) error
}
