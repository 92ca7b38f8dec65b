package stores

import (
	"context"
	"time"

	"petfinder-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GormAlertStore struct {
	db *gorm.DB
}

func NewAlertStore(db *gorm.DB) *GormAlertStore {
	return &GormAlertStore{db: db}
}

// Create appends one found-report. The location payload is persisted
// verbatim; the caller has already resolved petID to an existing pet.
func (s *GormAlertStore) Create(ctx context.Context, petID string, location datatypes.JSON, now time.Time) (*models.Alert, error) {
	alert := models.Alert{
		PetId:      petID,
		Location:   location,
		Status:     models.AlertStatusReported,
		ReportedAt: now.UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (s *GormAlertStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := s.db.WithContext(ctx).
		Joins("JOIN pets ON pets.id = alerts.pet_id").
		Where("pets.owner_id = ?", ownerID).
		Order("alerts.reported_at DESC").
		Find(&alerts).Error
	return alerts, err
}
