package personas

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type PersonaTaxonomyRepo interface {
	GetByPersonaID(dbc dbctx.Context, personaID uuid.UUID) ([]*types.PersonaTaxonomy, error)
	// Replace makes the persona's link set equal to taxonomyIDs and reports whether anything changed.
	Replace(dbc dbctx.Context, personaID uuid.UUID, taxonomyIDs []uuid.UUID) (bool, error)
	DeleteByPersonaID(dbc dbctx.Context, personaID uuid.UUID) error
	DeleteByTaxonomyID(dbc dbctx.Context, taxonomyID uuid.UUID) error
}

type personaTaxonomyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonaTaxonomyRepo(db *gorm.DB, baseLog *logger.Logger) PersonaTaxonomyRepo {
	return &personaTaxonomyRepo{db: db, log: baseLog.With("repo", "PersonaTaxonomyRepo")}
}

func (r *personaTaxonomyRepo) GetByPersonaID(dbc dbctx.Context, personaID uuid.UUID) ([]*types.PersonaTaxonomy, error) {
	var out []*types.PersonaTaxonomy
	if personaID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Preload("Taxonomy").
		Where("persona_id = ?", personaID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *personaTaxonomyRepo) Replace(dbc dbctx.Context, personaID uuid.UUID, taxonomyIDs []uuid.UUID) (bool, error) {
	if personaID == uuid.Nil {
		return false, nil
	}
	t := dbc.DB(r.db)

	want := make(map[uuid.UUID]bool, len(taxonomyIDs))
	desired := make([]uuid.UUID, 0, len(taxonomyIDs))
	for _, id := range taxonomyIDs {
		if id == uuid.Nil || want[id] {
			continue
		}
		want[id] = true
		desired = append(desired, id)
	}

	var existing []uuid.UUID
	if err := t.Model(&types.PersonaTaxonomy{}).
		Where("persona_id = ?", personaID).
		Pluck("taxonomy_id", &existing).Error; err != nil {
		return false, err
	}
	have := make(map[uuid.UUID]bool, len(existing))
	stale := 0
	for _, id := range existing {
		have[id] = true
		if !want[id] {
			stale++
		}
	}

	if stale > 0 {
		q := t.Where("persona_id = ?", personaID)
		if len(desired) > 0 {
			q = q.Where("taxonomy_id NOT IN ?", desired)
		}
		if err := q.Delete(&types.PersonaTaxonomy{}).Error; err != nil {
			return false, err
		}
	}

	var missing []*types.PersonaTaxonomy
	for _, id := range desired {
		if !have[id] {
			missing = append(missing, &types.PersonaTaxonomy{PersonaID: personaID, TaxonomyID: id})
		}
	}
	if len(missing) > 0 {
		if err := t.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "persona_id"}, {Name: "taxonomy_id"}},
			DoNothing: true,
		}).Create(&missing).Error; err != nil {
			return false, err
		}
	}

	return stale > 0 || len(missing) > 0, nil
}

func (r *personaTaxonomyRepo) DeleteByPersonaID(dbc dbctx.Context, personaID uuid.UUID) error {
	if personaID == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("persona_id = ?", personaID).Delete(&types.PersonaTaxonomy{}).Error
}

func (r *personaTaxonomyRepo) DeleteByTaxonomyID(dbc dbctx.Context, taxonomyID uuid.UUID) error {
	if taxonomyID == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("taxonomy_id = ?", taxonomyID).Delete(&types.PersonaTaxonomy{}).Error
}
