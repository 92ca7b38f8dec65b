package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AlertStatusReported is the only status an alert ever carries: a found
// report is terminal on creation, never transitioned or deleted.
const AlertStatusReported = "reported"

// Alert is the immutable record of one found-report: who reported what,
// where and when. Rows are append-only.
type Alert struct {
	Id    string `json:"id" gorm:"primaryKey"`
	PetId string `json:"pet_id" gorm:"not null;index"`
	// Location is stored verbatim as submitted by the finder; no geocoding
	// or validation happens on the way in.
	Location   datatypes.JSON `json:"location"`
	Status     string         `json:"status" gorm:"not null"`
	ReportedAt time.Time      `json:"reported_at" gorm:"not null"`
}

func (alert *Alert) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	alert.Id = uuid.NewString()
	return
}
