package stores

import (
	"context"
	"errors"
	"time"

	"petfinder-backend/models"

	"gorm.io/datatypes"
)

// ErrNotFound is the first-class "no such record" outcome. Callers branch on
// it; any other error from a store is a storage fault.
var ErrNotFound = errors.New("record not found")

// PetResolver maps an opaque scan token to its pet. Resolution is exact
// match, total-or-fail.
type PetResolver interface {
	FindByScanToken(ctx context.Context, token string) (*models.Pet, error)
}

// PetStore is the full pet data-access surface used by the owner endpoints.
type PetStore interface {
	PetResolver
	Create(ctx context.Context, pet *models.Pet) error
	FindByID(ctx context.Context, id string) (*models.Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error)
	Delete(ctx context.Context, id string) error
}

// AlertLedger appends found-reports. There is no update or delete: the
// ledger is append-only.
type AlertLedger interface {
	Create(ctx context.Context, petID string, location datatypes.JSON, now time.Time) (*models.Alert, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Alert, error)
}

// UserStore reads and mutates owner records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetPushToken(ctx context.Context, userID, token string) error
}
