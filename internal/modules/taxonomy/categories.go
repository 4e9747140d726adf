package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/apierr"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
)

func (u Usecases) ListCategories(ctx context.Context, rawPage, rawSize string) (*Page[*types.TaxonomyCategory], error) {
	page, size := pageParams(rawPage, rawSize)
	dbc := dbctx.Context{Ctx: ctx}

	total, err := u.deps.Categories.Count(dbc)
	if err != nil {
		return nil, apierr.Internal("list_categories_failed", fmt.Errorf("count categories: %w", err))
	}
	rows, err := u.deps.Categories.List(dbc, (page-1)*size, size)
	if err != nil {
		return nil, apierr.Internal("list_categories_failed", fmt.Errorf("list categories: %w", err))
	}
	return &Page[*types.TaxonomyCategory]{Items: rows, Total: total, Page: page, PageSize: size}, nil
}

func (u Usecases) GetCategory(ctx context.Context, rawID string) (*types.TaxonomyCategory, error) {
	return u.loadCategory(ctx, rawID)
}

func (u Usecases) CreateCategory(ctx context.Context, body map[string]any) (*types.TaxonomyCategory, error) {
	fullName := categoryName(body)
	if fullName == "" {
		return nil, apierr.BadRequest("name_required", "fullName is required")
	}
	row := &types.TaxonomyCategory{FullName: fullName}
	if k := text(body["key"]); k != "" {
		row.Key = &k
	}
	if d := text(body["description"]); d != "" {
		row.Description = &d
	}

	if _, err := u.deps.Categories.Create(dbctx.Context{Ctx: ctx}, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("category_exists", "a category with this name or key already exists")
		}
		return nil, apierr.Internal("create_category_failed", fmt.Errorf("create category: %w", err))
	}
	return row, nil
}

// UpdateCategory edits category metadata. Changing the key renames the category of its terms too.
func (u Usecases) UpdateCategory(ctx context.Context, rawID string, body map[string]any) (*types.TaxonomyCategory, error) {
	existing, err := u.loadCategory(ctx, rawID)
	if err != nil {
		return nil, err
	}
	fullName := categoryName(body)
	if fullName == "" {
		return nil, apierr.BadRequest("name_required", "fullName is required")
	}

	patch := map[string]interface{}{"full_name": fullName}
	if _, ok := body["description"]; ok {
		if d := text(body["description"]); d != "" {
			patch["description"] = d
		} else {
			patch["description"] = nil
		}
	}

	oldKey := ""
	if existing.Key != nil {
		oldKey = *existing.Key
	}
	newKey := oldKey
	if _, ok := body["key"]; ok {
		newKey = text(body["key"])
		if newKey == "" {
			patch["category_key"] = nil
		} else {
			patch["category_key"] = newKey
		}
	}

	renamed := false
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if oldKey != "" && newKey != oldKey {
			if newKey == "" {
				n, err := u.deps.Terms.CountByCategory(dbc, oldKey)
				if err != nil {
					return fmt.Errorf("count terms: %w", err)
				}
				if n > 0 {
					return apierr.Conflict("category_in_use", fmt.Sprintf(
						"category key %q is used by %d term(s); it cannot be cleared", oldKey, n))
				}
			} else {
				n, err := u.deps.Terms.RenameCategory(dbc, oldKey, newKey)
				if err != nil {
					return fmt.Errorf("rename terms: %w", err)
				}
				renamed = n > 0
			}
		}
		if err := u.deps.Categories.UpdateFields(dbc, existing.ID, patch); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("category_exists", "a category with this name or key already exists")
		}
		return nil, apierr.Internal("update_category_failed", fmt.Errorf("update category: %w", err))
	}
	if renamed {
		u.invalidateTermPages(ctx)
		u.deps.Log.Info("Category key renamed", "from", oldKey, "to", newKey)
	}
	return u.loadCategory(ctx, rawID)
}

// DeleteCategory refuses while terms still use the category key.
func (u Usecases) DeleteCategory(ctx context.Context, rawID string) error {
	existing, err := u.loadCategory(ctx, rawID)
	if err != nil {
		return err
	}
	dbc := dbctx.Context{Ctx: ctx}
	if existing.Key != nil && *existing.Key != "" {
		n, err := u.deps.Terms.CountByCategory(dbc, *existing.Key)
		if err != nil {
			return apierr.Internal("delete_category_failed", fmt.Errorf("count terms: %w", err))
		}
		if n > 0 {
			return apierr.Conflict("category_in_use", fmt.Sprintf(
				"category %q still has %d term(s); delete or move them first", *existing.Key, n))
		}
	}
	if err := u.deps.Categories.DeleteByID(dbc, existing.ID); err != nil {
		return apierr.Internal("delete_category_failed", fmt.Errorf("delete category: %w", err))
	}
	return nil
}

func (u Usecases) loadCategory(ctx context.Context, rawID string) (*types.TaxonomyCategory, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, apierr.NotFound("category_not_found", "category not found")
	}
	row, err := u.deps.Categories.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_category_failed", fmt.Errorf("load category: %w", err))
	}
	if row == nil {
		return nil, apierr.NotFound("category_not_found", "category not found")
	}
	return row, nil
}

// categoryName accepts fullName or the older name key.
func categoryName(body map[string]any) string {
	if s := text(body["fullName"]); s != "" {
		return s
	}
	return text(body["name"])
}
