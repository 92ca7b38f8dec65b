package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	Id          string `json:"id" gorm:"primaryKey"`
	OwnerId     string `json:"-" gorm:"not null;index"`
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"not null"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	// ScanToken is the opaque identifier printed on the physical QR tag.
	// It is assigned once at creation and never reused.
	ScanToken string  `json:"scan_token" gorm:"uniqueIndex;not null"`
	Alerts    []Alert `json:"alerts,omitempty" gorm:"foreignKey:PetId;references:Id"`
}

func (pet *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	pet.Id = uuid.NewString()
	if pet.ScanToken == "" {
		pet.ScanToken = uuid.NewString()
	}
	return
}
