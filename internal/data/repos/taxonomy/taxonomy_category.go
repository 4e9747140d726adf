package taxonomy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type TaxonomyCategoryRepo interface {
	Create(dbc dbctx.Context, row *types.TaxonomyCategory) (*types.TaxonomyCategory, error)
	UpsertByFullName(dbc dbctx.Context, rows []*types.TaxonomyCategory) (int, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.TaxonomyCategory, error)
	GetByKey(dbc dbctx.Context, key string) (*types.TaxonomyCategory, error)
	List(dbc dbctx.Context, offset, limit int) ([]*types.TaxonomyCategory, error)
	Count(dbc dbctx.Context) (int64, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type taxonomyCategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaxonomyCategoryRepo(db *gorm.DB, baseLog *logger.Logger) TaxonomyCategoryRepo {
	return &taxonomyCategoryRepo{db: db, log: baseLog.With("repo", "TaxonomyCategoryRepo")}
}

func (r *taxonomyCategoryRepo) Create(dbc dbctx.Context, row *types.TaxonomyCategory) (*types.TaxonomyCategory, error) {
	if row == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *taxonomyCategoryRepo) UpsertByFullName(dbc dbctx.Context, rows []*types.TaxonomyCategory) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "full_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"category_key", "description", "updated_at"}),
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *taxonomyCategoryRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.TaxonomyCategory, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.TaxonomyCategory
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *taxonomyCategoryRepo) GetByKey(dbc dbctx.Context, key string) (*types.TaxonomyCategory, error) {
	if key == "" {
		return nil, nil
	}
	var out []*types.TaxonomyCategory
	if err := dbc.DB(r.db).Where("category_key = ?", key).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *taxonomyCategoryRepo) List(dbc dbctx.Context, offset, limit int) ([]*types.TaxonomyCategory, error) {
	out := []*types.TaxonomyCategory{}
	q := dbc.DB(r.db).Order("full_name ASC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taxonomyCategoryRepo) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := dbc.DB(r.db).Model(&types.TaxonomyCategory{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *taxonomyCategoryRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.TaxonomyCategory{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *taxonomyCategoryRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("id = ?", id).Delete(&types.TaxonomyCategory{}).Error
}
