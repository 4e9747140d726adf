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

type TaxonomyRepo interface {
	Create(dbc dbctx.Context, row *types.Taxonomy) (*types.Taxonomy, error)
	// UpsertTerms inserts rows, leaving existing (category, term) pairs untouched. Returns rows inserted.
	UpsertTerms(dbc dbctx.Context, rows []*types.Taxonomy) (int, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Taxonomy, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Taxonomy, error)
	ListByCategory(dbc dbctx.Context, category string, offset, limit int) ([]*types.Taxonomy, error)
	CountByCategory(dbc dbctx.Context, category string) (int64, error)
	ListActiveByCategory(dbc dbctx.Context, category string) ([]*types.Taxonomy, error)
	ListCategories(dbc dbctx.Context) ([]string, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	RenameCategory(dbc dbctx.Context, from, to string) (int64, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type taxonomyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaxonomyRepo(db *gorm.DB, baseLog *logger.Logger) TaxonomyRepo {
	return &taxonomyRepo{db: db, log: baseLog.With("repo", "TaxonomyRepo")}
}

func (r *taxonomyRepo) Create(dbc dbctx.Context, row *types.Taxonomy) (*types.Taxonomy, error) {
	if row == nil {
		return nil, nil
	}
	if err := dbc.DB(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *taxonomyRepo) UpsertTerms(dbc dbctx.Context, rows []*types.Taxonomy) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category"}, {Name: "term"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *taxonomyRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Taxonomy, error) {
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

func (r *taxonomyRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Taxonomy, error) {
	var out []*types.Taxonomy
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taxonomyRepo) ListByCategory(dbc dbctx.Context, category string, offset, limit int) ([]*types.Taxonomy, error) {
	out := []*types.Taxonomy{}
	if category == "" {
		return out, nil
	}
	q := dbc.DB(r.db).
		Where("category = ?", category).
		Order("term ASC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taxonomyRepo) CountByCategory(dbc dbctx.Context, category string) (int64, error) {
	if category == "" {
		return 0, nil
	}
	var n int64
	if err := dbc.DB(r.db).
		Model(&types.Taxonomy{}).
		Where("category = ?", category).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *taxonomyRepo) ListActiveByCategory(dbc dbctx.Context, category string) ([]*types.Taxonomy, error) {
	out := []*types.Taxonomy{}
	if category == "" {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("category = ? AND is_active = ?", category, true).
		Order("term ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taxonomyRepo) ListCategories(dbc dbctx.Context) ([]string, error) {
	out := []string{}
	if err := dbc.DB(r.db).
		Model(&types.Taxonomy{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *taxonomyRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Taxonomy{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *taxonomyRepo) RenameCategory(dbc dbctx.Context, from, to string) (int64, error) {
	if from == "" || to == "" || from == to {
		return 0, nil
	}
	res := dbc.DB(r.db).
		Model(&types.Taxonomy{}).
		Where("category = ?", from).
		Updates(map[string]interface{}{
			"category":   to,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *taxonomyRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	return dbc.DB(r.db).Where("id = ?", id).Delete(&types.Taxonomy{}).Error
}
