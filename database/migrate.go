package database

import (
	"fmt"

	"petfinder-backend/models"

	"gorm.io/gorm"
)

// Migrate applies (idempotent) schema migrations:
//   - AutoMigrate (tables/columns)
//   - Indexes (pets.scan_token unique, alerts by pet and time)
//   - Foreign keys: pets.owner_id → users.id (RESTRICT),
//     alerts.pet_id → pets.id (CASCADE: alerts die with their pet)
//   - Idempotency keys table + unique index
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Pet{},
			&models.Alert{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_pets_scan_token ON pets (scan_token)`,
			`CREATE INDEX IF NOT EXISTS idx_alerts_pet_reported_at ON alerts (pet_id, reported_at)`,
			`CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets (owner_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Foreign key: pets.owner_id -> users.id (RESTRICT) ---
		fkOwner := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'pets'::regclass
		  AND conname  = 'fk_pets_owner'
	) THEN
		ALTER TABLE pets
		ADD CONSTRAINT fk_pets_owner
		FOREIGN KEY (owner_id)
		REFERENCES users(id)
		ON UPDATE RESTRICT
		ON DELETE RESTRICT;
	END IF;
END $$;`
		if err := tx.Exec(fkOwner).Error; err != nil {
			return fmt.Errorf("foreign key migration failed: %w", err)
		}

		// --- Foreign key: alerts.pet_id -> pets.id (CASCADE) ---
		fkPet := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1
		FROM pg_constraint
		WHERE conrelid = 'alerts'::regclass
		  AND conname  = 'fk_alerts_pet'
	) THEN
		ALTER TABLE alerts
		ADD CONSTRAINT fk_alerts_pet
		FOREIGN KEY (pet_id)
		REFERENCES pets(id)
		ON UPDATE RESTRICT
		ON DELETE CASCADE;
	END IF;
END $$;`
		if err := tx.Exec(fkPet).Error; err != nil {
			return fmt.Errorf("foreign key migration failed: %w", err)
		}

		// --- Basic CHECK constraint: alerts.status non-empty ---
		check := `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint
		WHERE conrelid = 'alerts'::regclass
		  AND conname  = 'chk_alerts_status_nonempty'
	) THEN
		ALTER TABLE alerts
		ADD CONSTRAINT chk_alerts_status_nonempty
		CHECK (status <> '');
	END IF;
END $$;`
		if err := tx.Exec(check).Error; err != nil {
			return fmt.Errorf("check constraint migration failed: %w", err)
		}

		return nil
	})
}
