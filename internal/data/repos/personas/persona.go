package personas

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type PersonaRepo interface {
	Create(dbc dbctx.Context, p *types.Persona) (*types.Persona, error)
	List(dbc dbctx.Context) ([]*types.Persona, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Persona, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Persona, error)
	GetByName(dbc dbctx.Context, name string) (*types.Persona, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type personaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	return &personaRepo{db: db, log: baseLog.With("repo", "PersonaRepo")}
}

func withLinks(q *gorm.DB) *gorm.DB {
	return q.Preload("Taxonomies.Taxonomy")
}

func (r *personaRepo) Create(dbc dbctx.Context, p *types.Persona) (*types.Persona, error) {
	if p == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Omit("Taxonomies").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *personaRepo) List(dbc dbctx.Context) ([]*types.Persona, error) {
	var out []*types.Persona
	if err := withLinks(dbc.DB(r.db)).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *personaRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Persona, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *personaRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Persona, error) {
	var out []*types.Persona
	if len(ids) == 0 {
		return out, nil
	}
	if err := withLinks(dbc.DB(r.db)).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *personaRepo) GetByName(dbc dbctx.Context, name string) (*types.Persona, error) {
	if name == "" {
		return nil, nil
	}
	var out []*types.Persona
	if err := withLinks(dbc.DB(r.db)).
		Where("name = ?", name).
		Order("created_at ASC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *personaRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return dbc.DB(r.db).
		Model(&types.Persona{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *personaRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("id = ?", id).Delete(&types.Persona{}).Error
}
