package stores

import (
	"context"
	"errors"

	"petfinder-backend/models"

	"gorm.io/gorm"
)

type GormPetStore struct {
	db *gorm.DB
}

func NewPetStore(db *gorm.DB) *GormPetStore {
	return &GormPetStore{db: db}
}

func (s *GormPetStore) Create(ctx context.Context, pet *models.Pet) error {
	return s.db.WithContext(ctx).Create(pet).Error
}

func (s *GormPetStore) FindByID(ctx context.Context, id string) (*models.Pet, error) {
	var pet models.Pet
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pet, nil
}

// FindByScanToken resolves the opaque tag identifier to its pet. Unknown
// tokens come back as ErrNotFound, never as a storage fault.
func (s *GormPetStore) FindByScanToken(ctx context.Context, token string) (*models.Pet, error) {
	var pet models.Pet
	err := s.db.WithContext(ctx).Where("scan_token = ?", token).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &pet, nil
}

func (s *GormPetStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	var pets []models.Pet
	err := s.db.WithContext(ctx).
		Preload("Alerts").
		Where("owner_id = ?", ownerID).
		Find(&pets).Error
	return pets, err
}

func (s *GormPetStore) Delete(ctx context.Context, id string) error {
	// Alerts are removed by the FK cascade.
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Pet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
