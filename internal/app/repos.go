package app

import (
	"gorm.io/gorm"

	"github.com/nukigor/ai-voxarena/internal/data/repos"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type Repos struct {
	Persona         repos.PersonaRepo
	PersonaTaxonomy repos.PersonaTaxonomyRepo

	Taxonomy         repos.TaxonomyRepo
	TaxonomyCategory repos.TaxonomyCategoryRepo

	Debate            repos.DebateRepo
	DebateParticipant repos.DebateParticipantRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Persona:           repos.NewPersonaRepo(db, log),
		PersonaTaxonomy:   repos.NewPersonaTaxonomyRepo(db, log),
		Taxonomy:          repos.NewTaxonomyRepo(db, log),
		TaxonomyCategory:  repos.NewTaxonomyCategoryRepo(db, log),
		Debate:            repos.NewDebateRepo(db, log),
		DebateParticipant: repos.NewDebateParticipantRepo(db, log),
	}
}
