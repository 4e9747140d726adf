package repos

import (
	"github.com/nukigor/ai-voxarena/internal/data/repos/debates"
	"github.com/nukigor/ai-voxarena/internal/data/repos/personas"
	"github.com/nukigor/ai-voxarena/internal/data/repos/taxonomy"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
	"gorm.io/gorm"
)

type PersonaRepo = personas.PersonaRepo
type PersonaTaxonomyRepo = personas.PersonaTaxonomyRepo

type TaxonomyRepo = taxonomy.TaxonomyRepo
type TaxonomyCategoryRepo = taxonomy.TaxonomyCategoryRepo

type DebateRepo = debates.DebateRepo
type DebateParticipantRepo = debates.DebateParticipantRepo
type DebateFilter = debates.DebateFilter

func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	return personas.NewPersonaRepo(db, baseLog)
}
func NewPersonaTaxonomyRepo(db *gorm.DB, baseLog *logger.Logger) PersonaTaxonomyRepo {
	return personas.NewPersonaTaxonomyRepo(db, baseLog)
}

func NewTaxonomyRepo(db *gorm.DB, baseLog *logger.Logger) TaxonomyRepo {
	return taxonomy.NewTaxonomyRepo(db, baseLog)
}
func NewTaxonomyCategoryRepo(db *gorm.DB, baseLog *logger.Logger) TaxonomyCategoryRepo {
	return taxonomy.NewTaxonomyCategoryRepo(db, baseLog)
}

func NewDebateRepo(db *gorm.DB, baseLog *logger.Logger) DebateRepo {
	return debates.NewDebateRepo(db, baseLog)
}
func NewDebateParticipantRepo(db *gorm.DB, baseLog *logger.Logger) DebateParticipantRepo {
	return debates.NewDebateParticipantRepo(db, baseLog)
}
