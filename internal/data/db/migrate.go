package db

import (
	"fmt"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Taxonomy
		&types.TaxonomyCategory{},
		&types.Taxonomy{},

		// Personas
		&types.Persona{},
		&types.PersonaTaxonomy{},

		// Debates
		&types.Debate{},
		&types.DebateParticipant{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
