package debates

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

// DebateFilter narrows List. Empty fields match everything.
type DebateFilter struct {
	Status string
	Format string
}

type DebateRepo interface {
	Create(dbc dbctx.Context, d *types.Debate) (*types.Debate, error)
	List(dbc dbctx.Context, filter DebateFilter) ([]*types.Debate, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Debate, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type debateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDebateRepo(db *gorm.DB, baseLog *logger.Logger) DebateRepo {
	return &debateRepo{db: db, log: baseLog.With("repo", "DebateRepo")}
}

func withParticipants(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC, created_at ASC")
		}).
		Preload("Participants.Persona")
}

func (r *debateRepo) Create(dbc dbctx.Context, d *types.Debate) (*types.Debate, error) {
	if d == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Omit("Participants").Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (r *debateRepo) List(dbc dbctx.Context, filter DebateFilter) ([]*types.Debate, error) {
	var out []*types.Debate
	q := withParticipants(dbc.DB(r.db))
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Format != "" {
		q = q.Where("format = ?", filter.Format)
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *debateRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Debate, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Debate
	if err := withParticipants(dbc.DB(r.db)).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *debateRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Debate{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *debateRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("id = ?", id).Delete(&types.Debate{}).Error
}
