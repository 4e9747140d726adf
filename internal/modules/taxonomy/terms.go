package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/observability"
	"github.com/nukigor/ai-voxarena/internal/platform/apierr"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
)

const termPageCachePrefix = "terms:"

// ListTerms returns one page of a category's terms ordered by term.
func (u Usecases) ListTerms(ctx context.Context, category, rawPage, rawSize string) (*Page[*types.Taxonomy], error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apierr.BadRequest("category_required", "missing category")
	}
	page, size := pageParams(rawPage, rawSize)

	key := fmt.Sprintf("%s%s:%d:%d", termPageCachePrefix, category, page, size)
	var cached Page[*types.Taxonomy]
	hit, err := u.deps.Cache.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		observability.Current().IncCacheLookup("error")
		u.deps.Log.Warn("term page cache read failed", "key", key, "error", err)
	case hit:
		observability.Current().IncCacheLookup("hit")
		return &cached, nil
	default:
		observability.Current().IncCacheLookup("miss")
	}

	out := &Page[*types.Taxonomy]{Page: page, PageSize: size}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := u.deps.Terms.CountByCategory(dbctx.Context{Ctx: gctx}, category)
		if err != nil {
			return fmt.Errorf("count terms: %w", err)
		}
		out.Total = n
		return nil
	})
	g.Go(func() error {
		rows, err := u.deps.Terms.ListByCategory(dbctx.Context{Ctx: gctx}, category, (page-1)*size, size)
		if err != nil {
			return fmt.Errorf("list terms: %w", err)
		}
		out.Items = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Internal("list_terms_failed", err)
	}

	if err := u.deps.Cache.SetJSON(ctx, key, out, u.deps.CacheTTL); err != nil {
		u.deps.Log.Warn("term page cache write failed", "key", key, "error", err)
	}
	return out, nil
}

func (u Usecases) ListActive(ctx context.Context, category string) ([]*types.Taxonomy, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apierr.BadRequest("category_required", "missing category")
	}
	rows, err := u.deps.Terms.ListActiveByCategory(dbctx.Context{Ctx: ctx}, category)
	if err != nil {
		return nil, apierr.Internal("list_terms_failed", fmt.Errorf("list active terms: %w", err))
	}
	return rows, nil
}

func (u Usecases) ListCategoryKeys(ctx context.Context) ([]string, error) {
	keys, err := u.deps.Terms.ListCategories(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Internal("list_categories_failed", fmt.Errorf("list category keys: %w", err))
	}
	return keys, nil
}

func (u Usecases) CreateTerm(ctx context.Context, body map[string]any) (*types.Taxonomy, error) {
	category := text(body["category"])
	term := text(body["term"])
	if category == "" || term == "" {
		return nil, apierr.BadRequest("term_invalid", "category and term are required")
	}
	row := &types.Taxonomy{
		Category:    category,
		Term:        term,
		Description: text(body["description"]),
		IsActive:    true,
	}
	s := text(body["slug"])
	if s == "" {
		s = slug.Make(term)
	}
	row.Slug = &s
	if active, ok := body["isActive"].(bool); ok {
		row.IsActive = active
	}

	if _, err := u.deps.Terms.Create(dbctx.Context{Ctx: ctx}, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("term_exists", fmt.Sprintf("term %q already exists in %q", term, category))
		}
		return nil, apierr.Internal("create_term_failed", fmt.Errorf("create term: %w", err))
	}
	u.invalidateTermPages(ctx)
	return row, nil
}

func (u Usecases) UpdateTerm(ctx context.Context, rawID string, body map[string]any) (*types.Taxonomy, error) {
	existing, err := u.loadTerm(ctx, rawID)
	if err != nil {
		return nil, err
	}

	patch := map[string]interface{}{}
	for _, key := range []string{"category", "term"} {
		if raw, ok := body[key]; ok {
			v := text(raw)
			if v == "" {
				return nil, apierr.BadRequest("term_invalid", key+" cannot be empty")
			}
			patch[key] = v
		}
	}
	if raw, ok := body["slug"]; ok {
		if s := text(raw); s != "" {
			patch["slug"] = s
		} else {
			patch["slug"] = nil
		}
	} else if t, ok := patch["term"].(string); ok && t != existing.Term {
		patch["slug"] = slug.Make(t)
	}
	if _, ok := body["description"]; ok {
		patch["description"] = text(body["description"])
	}
	if active, ok := body["isActive"].(bool); ok {
		patch["is_active"] = active
	}

	if len(patch) > 0 {
		if err := u.deps.Terms.UpdateFields(dbctx.Context{Ctx: ctx}, existing.ID, patch); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apierr.Conflict("term_exists", "a term with this name already exists in the category")
			}
			return nil, apierr.Internal("update_term_failed", fmt.Errorf("update term: %w", err))
		}
		u.invalidateTermPages(ctx)
	}
	return u.loadTerm(ctx, rawID)
}

// DeleteTerm removes the term and every persona link to it.
func (u Usecases) DeleteTerm(ctx context.Context, rawID string) error {
	existing, err := u.loadTerm(ctx, rawID)
	if err != nil {
		return err
	}
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := u.deps.PersonaLinks.DeleteByTaxonomyID(dbc, existing.ID); err != nil {
			return fmt.Errorf("delete persona links: %w", err)
		}
		if err := u.deps.Terms.DeleteByID(dbc, existing.ID); err != nil {
			return fmt.Errorf("delete term: %w", err)
		}
		return nil
	})
	if err != nil {
		return apierr.Internal("delete_term_failed", err)
	}
	u.invalidateTermPages(ctx)
	return nil
}

func (u Usecases) loadTerm(ctx context.Context, rawID string) (*types.Taxonomy, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, apierr.NotFound("term_not_found", "term not found")
	}
	row, err := u.deps.Terms.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_term_failed", fmt.Errorf("load term: %w", err))
	}
	if row == nil {
		return nil, apierr.NotFound("term_not_found", "term not found")
	}
	return row, nil
}

func (u Usecases) invalidateTermPages(ctx context.Context) {
	if err := u.deps.Cache.DeletePrefix(ctx, termPageCachePrefix); err != nil {
		u.deps.Log.Warn("term page cache invalidation failed", "error", err)
	}
}

func text(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func parseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
