package app

import (
	"gorm.io/gorm"

	"github.com/nukigor/ai-voxarena/internal/modules/debates"
	"github.com/nukigor/ai-voxarena/internal/modules/personas"
	"github.com/nukigor/ai-voxarena/internal/modules/taxonomy"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type Services struct {
	Personas personas.Usecases
	Debates  debates.Usecases
	Taxonomy taxonomy.Usecases
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")

	var describer *personas.Describer
	if c.OpenAI != nil {
		describer = personas.NewDescriber(c.OpenAI, log)
	}

	return Services{
		Personas: personas.New(personas.UsecasesDeps{
			DB:           db,
			Log:          log.With("usecases", "Personas"),
			Personas:     r.Persona,
			PersonaLinks: r.PersonaTaxonomy,
			Taxonomies:   r.Taxonomy,
			Participants: r.DebateParticipant,
			Describer:    describer,
		}),
		Debates: debates.New(debates.UsecasesDeps{
			DB:           db,
			Log:          log.With("usecases", "Debates"),
			Debates:      r.Debate,
			Participants: r.DebateParticipant,
			Personas:     r.Persona,
		}),
		Taxonomy: taxonomy.New(taxonomy.UsecasesDeps{
			DB:           db,
			Log:          log.With("usecases", "Taxonomy"),
			Terms:        r.Taxonomy,
			Categories:   r.TaxonomyCategory,
			PersonaLinks: r.PersonaTaxonomy,
			Cache:        c.Cache,
			CacheTTL:     cfg.TermsCacheTTL,
		}),
	}
}
