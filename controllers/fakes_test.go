package controllers

import (
	"context"
	"sync"
	"time"

	"petfinder-backend/models"
	"petfinder-backend/stores"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// memDB backs the in-memory store fakes shared by controller tests.
type memDB struct {
	mu     sync.Mutex
	users  map[string]*models.User
	pets   map[string]*models.Pet
	alerts []models.Alert

	alertCreateErr error // forces a ledger fault when set
}

func newMemDB() *memDB {
	return &memDB{
		users: make(map[string]*models.User),
		pets:  make(map[string]*models.Pet),
	}
}

func (db *memDB) alertCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.alerts)
}

type memUserStore struct{ db *memDB }

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if user.Id == "" {
		user.Id = uuid.NewString()
	}
	cp := *user
	s.db.users[user.Id] = &cp
	return nil
}

func (s *memUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (s *memUserStore) SetPushToken(ctx context.Context, userID, token string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[userID]
	if !ok {
		return stores.ErrNotFound
	}
	u.PushToken = token
	return nil
}

type memPetStore struct{ db *memDB }

func (s *memPetStore) Create(ctx context.Context, pet *models.Pet) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if pet.Id == "" {
		pet.Id = uuid.NewString()
	}
	if pet.ScanToken == "" {
		pet.ScanToken = uuid.NewString()
	}
	cp := *pet
	s.db.pets[pet.Id] = &cp
	return nil
}

func (s *memPetStore) FindByID(ctx context.Context, id string) (*models.Pet, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.pets[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memPetStore) FindByScanToken(ctx context.Context, token string) (*models.Pet, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.pets {
		if p.ScanToken == token {
			cp := *p
			return &cp, nil
		}
	}
	return nil, stores.ErrNotFound
}

func (s *memPetStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Pet
	for _, p := range s.db.pets {
		if p.OwnerId != ownerID {
			continue
		}
		cp := *p
		for _, a := range s.db.alerts {
			if a.PetId == p.Id {
				cp.Alerts = append(cp.Alerts, a)
			}
		}
		out = append(out, cp)
	}
	return out, nil
}

func (s *memPetStore) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.pets[id]; !ok {
		return stores.ErrNotFound
	}
	delete(s.db.pets, id)
	kept := s.db.alerts[:0]
	for _, a := range s.db.alerts {
		if a.PetId != id {
			kept = append(kept, a)
		}
	}
	s.db.alerts = kept
	return nil
}

type memAlertStore struct{ db *memDB }

func (s *memAlertStore) Create(ctx context.Context, petID string, location datatypes.JSON, now time.Time) (*models.Alert, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.alertCreateErr != nil {
		return nil, s.db.alertCreateErr
	}
	alert := models.Alert{
		Id:         uuid.NewString(),
		PetId:      petID,
		Location:   location,
		Status:     models.AlertStatusReported,
		ReportedAt: now.UTC(),
	}
	s.db.alerts = append(s.db.alerts, alert)
	return &alert, nil
}

func (s *memAlertStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Alert, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Alert
	for _, a := range s.db.alerts {
		if p, ok := s.db.pets[a.PetId]; ok && p.OwnerId == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}
