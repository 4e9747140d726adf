package debates

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type DebateParticipantRepo interface {
	Create(dbc dbctx.Context, rows []*types.DebateParticipant) ([]*types.DebateParticipant, error)
	GetByDebateID(dbc dbctx.Context, debateID uuid.UUID) ([]*types.DebateParticipant, error)
	CountByPersonaID(dbc dbctx.Context, personaID uuid.UUID) (int64, error)
	DeleteByDebateID(dbc dbctx.Context, debateID uuid.UUID) error
}

type debateParticipantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDebateParticipantRepo(db *gorm.DB, baseLog *logger.Logger) DebateParticipantRepo {
	return &debateParticipantRepo{db: db, log: baseLog.With("repo", "DebateParticipantRepo")}
}

func (r *debateParticipantRepo) Create(dbc dbctx.Context, rows []*types.DebateParticipant) ([]*types.DebateParticipant, error) {
	if len(rows) == 0 {
		return []*types.DebateParticipant{}, nil
	}
	if err := dbc.DB(r.db).Omit("Persona").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *debateParticipantRepo) GetByDebateID(dbc dbctx.Context, debateID uuid.UUID) ([]*types.DebateParticipant, error) {
	var out []*types.DebateParticipant
	if debateID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("debate_id = ?", debateID).
		Order("order_index ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *debateParticipantRepo) CountByPersonaID(dbc dbctx.Context, personaID uuid.UUID) (int64, error) {
	if personaID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.DebateParticipant{}).
		Where("persona_id = ?", personaID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *debateParticipantRepo) DeleteByDebateID(dbc dbctx.Context, debateID uuid.UUID) error {
	if debateID == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("debate_id = ?", debateID).Delete(&types.DebateParticipant{}).Error
}
