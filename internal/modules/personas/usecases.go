package personas

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nukigor/ai-voxarena/internal/data/repos"
	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/observability"
	"github.com/nukigor/ai-voxarena/internal/platform/apierr"
	"github.com/nukigor/ai-voxarena/internal/platform/ctxutil"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Personas     repos.PersonaRepo
	PersonaLinks repos.PersonaTaxonomyRepo
	Taxonomies   repos.TaxonomyRepo
	Participants repos.DebateParticipantRepo

	// Optional: without it descriptions come from the local template.
	Describer *Describer
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) List(ctx context.Context) ([]*PersonaView, error) {
	rows, err := u.deps.Personas.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Internal("list_personas_failed", fmt.Errorf("list personas: %w", err))
	}
	return newPersonaViews(rows), nil
}

func (u Usecases) Get(ctx context.Context, rawID string) (*PersonaView, error) {
	p, err := u.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return newPersonaView(p), nil
}

func (u Usecases) Create(ctx context.Context, body map[string]any) (*PersonaView, error) {
	patch, ok := normalizePersona(body, true)
	if !ok {
		return nil, apierr.BadRequest("name_required", "name is required")
	}
	plan := resolveTaxonomyLinks(body)
	if err := u.ensureTaxonomies(ctx, plan.IDs); err != nil {
		return nil, err
	}

	p := &types.Persona{Name: patch["name"].(string)}
	drafted := false
	err := u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := u.deps.Personas.Create(dbc, p); err != nil {
			return fmt.Errorf("create persona: %w", err)
		}
		if err := u.deps.Personas.UpdateFields(dbc, p.ID, patch); err != nil {
			return fmt.Errorf("write persona fields: %w", err)
		}
		if _, err := u.deps.PersonaLinks.Replace(dbc, p.ID, plan.IDs); err != nil {
			return fmt.Errorf("link taxonomies: %w", err)
		}
		if !hasText(body["description"]) {
			if err := u.draftDescription(dbc, p.ID); err != nil {
				return err
			}
			drafted = true
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Internal("create_persona_failed", err)
	}

	created, err := u.deps.Personas.GetByID(dbctx.Context{Ctx: ctx}, p.ID)
	if err != nil || created == nil {
		return nil, apierr.Internal("load_persona_failed", fmt.Errorf("reload persona %s: %v", p.ID, err))
	}
	if drafted {
		u.enrich(ctx, created)
	}

	u.deps.Log.Info("Persona created", "persona_id", created.ID, "links", len(created.Taxonomies))
	return newPersonaView(created), nil
}

func (u Usecases) Update(ctx context.Context, rawID string, body map[string]any) (*PersonaView, error) {
	existing, err := u.load(ctx, rawID)
	if err != nil {
		return nil, err
	}

	patch, _ := normalizePersona(body, false)
	plan := resolveTaxonomyLinks(body)
	if plan.Rewrite() {
		if err := u.ensureTaxonomies(ctx, plan.IDs); err != nil {
			return nil, err
		}
	}
	descriptive := touchesDescriptive(patch)

	regenerate, _ := body["regenerateDescription"].(bool)
	keepsDescription := hasText(body["description"])

	linksChanged := false
	drafted := false
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if plan.Rewrite() {
			changed, err := u.deps.PersonaLinks.Replace(dbc, existing.ID, plan.IDs)
			if err != nil {
				return fmt.Errorf("replace taxonomy links: %w", err)
			}
			linksChanged = changed
		}
		if len(patch) > 0 || linksChanged {
			if err := u.deps.Personas.UpdateFields(dbc, existing.ID, patch); err != nil {
				return fmt.Errorf("update persona: %w", err)
			}
		}
		if keepsDescription {
			return nil
		}
		blank := deref(existing.Description) == ""
		if v, ok := patch["description"]; ok {
			blank = v == nil
		}
		if regenerate || descriptive || linksChanged || blank {
			if err := u.draftDescription(dbc, existing.ID); err != nil {
				return err
			}
			drafted = true
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Internal("update_persona_failed", err)
	}

	updated, err := u.deps.Personas.GetByID(dbctx.Context{Ctx: ctx}, existing.ID)
	if err != nil || updated == nil {
		return nil, apierr.Internal("load_persona_failed", fmt.Errorf("reload persona %s: %v", existing.ID, err))
	}
	if drafted {
		u.enrich(ctx, updated)
	}
	return newPersonaView(updated), nil
}

func (u Usecases) Delete(ctx context.Context, rawID string) error {
	p, err := u.load(ctx, rawID)
	if err != nil {
		return err
	}

	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		n, err := u.deps.Participants.CountByPersonaID(dbc, p.ID)
		if err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if n > 0 {
			return apierr.Conflict("persona_in_use", fmt.Sprintf(
				"persona is used by %d debate participant(s); remove it from those debates first", n))
		}
		if err := u.deps.PersonaLinks.DeleteByPersonaID(dbc, p.ID); err != nil {
			return fmt.Errorf("delete taxonomy links: %w", err)
		}
		if err := u.deps.Personas.DeleteByID(dbc, p.ID); err != nil {
			return fmt.Errorf("delete persona: %w", err)
		}
		return nil
	})
	if err != nil {
		if apierr.StatusOf(err) != http.StatusInternalServerError {
			return err
		}
		return apierr.Internal("delete_persona_failed", err)
	}
	u.deps.Log.Info("Persona deleted", "persona_id", p.ID)
	return nil
}

func (u Usecases) load(ctx context.Context, rawID string) (*types.Persona, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, apierr.NotFound("persona_not_found", "persona not found")
	}
	p, err := u.deps.Personas.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_persona_failed", fmt.Errorf("load persona: %w", err))
	}
	if p == nil {
		return nil, apierr.NotFound("persona_not_found", "persona not found")
	}
	return p, nil
}

// ensureTaxonomies rejects ids that parse but name no taxonomy row.
func (u Usecases) ensureTaxonomies(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := u.deps.Taxonomies.GetByIDs(dbctx.Context{Ctx: ctx}, ids)
	if err != nil {
		return apierr.Internal("load_taxonomies_failed", fmt.Errorf("load taxonomies: %w", err))
	}
	found := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		found[r.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return apierr.BadRequest("unknown_taxonomy", "unknown taxonomy id(s): "+strings.Join(missing, ", "))
	}
	return nil
}

// draftDescription writes the template description inside the caller's
// transaction, so a committed persona always carries one.
func (u Usecases) draftDescription(dbc dbctx.Context, id uuid.UUID) error {
	p, err := u.deps.Personas.GetByID(dbc, id)
	if err != nil {
		return fmt.Errorf("reload persona: %w", err)
	}
	if p == nil {
		return fmt.Errorf("persona %s not found in transaction", id)
	}
	text := Draft(p)
	if err := u.deps.Personas.UpdateFields(dbc, id, map[string]interface{}{"description": text}); err != nil {
		return fmt.Errorf("write description: %w", err)
	}
	return nil
}

// enrich replaces the drafted description with provider text after commit.
// Failures keep the draft and are only logged.
func (u Usecases) enrich(ctx context.Context, p *types.Persona) {
	m := observability.Current()
	text, err := u.deps.Describer.Generate(ctx, p)
	if err != nil {
		m.IncDescription("fallback")
		return
	}
	err = u.deps.Personas.UpdateFields(dbctx.Context{Ctx: ctx}, p.ID, map[string]interface{}{"description": text})
	if err != nil {
		fields := append([]interface{}{"persona_id", p.ID, "error", err}, ctxutil.LogFields(ctx)...)
		u.deps.Log.Warn("store generated description failed, keeping draft", fields...)
		m.IncDescription("fallback")
		return
	}
	p.Description = &text
	m.IncDescription("ai")
}

func hasText(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}
