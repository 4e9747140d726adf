package debates

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nukigor/ai-voxarena/internal/data/repos"
	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/apierr"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Debates      repos.DebateRepo
	Participants repos.DebateParticipantRepo
	Personas     repos.PersonaRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

func (u Usecases) List(ctx context.Context, status, format string) ([]*DebateView, error) {
	filter := repos.DebateFilter{
		Status: strings.ToUpper(strings.TrimSpace(status)),
		Format: strings.ToLower(strings.TrimSpace(format)),
	}
	if filter.Status != "" {
		if _, ok := types.DebateStatusOrder[filter.Status]; !ok {
			return nil, apierr.BadRequest("invalid_status", "unknown status filter")
		}
	}
	if filter.Format != "" && !types.IsDebateFormat(filter.Format) {
		return nil, apierr.BadRequest("invalid_format", "unknown format filter")
	}
	rows, err := u.deps.Debates.List(dbctx.Context{Ctx: ctx}, filter)
	if err != nil {
		return nil, apierr.Internal("list_debates_failed", fmt.Errorf("list debates: %w", err))
	}
	return newDebateViews(rows), nil
}

func (u Usecases) Get(ctx context.Context, rawID string) (*DebateView, error) {
	d, err := u.load(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return newDebateView(d), nil
}

func (u Usecases) Create(ctx context.Context, body map[string]any) (*DebateView, error) {
	patch, err := normalizeDebate(body, true)
	if err != nil {
		return nil, err
	}
	format := patch["format"].(string)
	parts := normalizeParticipants(body["participants"])
	personaIDs, err := u.checkParticipants(ctx, format, parts)
	if err != nil {
		return nil, err
	}

	status := types.DebateStatusDraft
	if s, ok := patch["status"].(string); ok {
		status = s
	}
	d := &types.Debate{
		Title:  patch["title"].(string),
		Topic:  patch["topic"].(string),
		Format: format,
		Status: status,
		Config: defaultConfig(format),
	}
	if desc, ok := patch["description"].(string); ok {
		d.Description = &desc
	}
	if raw, ok := patch["config"]; ok {
		cfg, _ := raw.(datatypes.JSON)
		d.Config = cfg
	}

	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if _, err := u.deps.Debates.Create(dbc, d); err != nil {
			return fmt.Errorf("create debate: %w", err)
		}
		return u.writeParticipants(dbc, d.ID, parts, personaIDs)
	})
	if err != nil {
		return nil, apierr.Internal("create_debate_failed", err)
	}

	u.deps.Log.Info("Debate created", "debate_id", d.ID, "format", d.Format, "participants", len(parts))
	return u.reload(ctx, d.ID)
}

func (u Usecases) Update(ctx context.Context, rawID string, body map[string]any) (*DebateView, error) {
	existing, err := u.load(ctx, rawID)
	if err != nil {
		return nil, err
	}

	patch, err := normalizeDebate(body, false)
	if err != nil {
		return nil, err
	}

	format := existing.Format
	if f, ok := patch["format"].(string); ok {
		format = f
		if _, hasConfig := patch["config"]; !hasConfig && f != existing.Format {
			patch["config"] = defaultConfig(f)
		}
	}

	if s, ok := patch["status"].(string); ok {
		if err := validateTransition(existing.Status, s); err != nil {
			return nil, err
		}
		if s == existing.Status {
			delete(patch, "status")
		}
	}

	parts := normalizeParticipants(body["participants"])
	personaIDs, err := u.checkParticipants(ctx, format, parts)
	if err != nil {
		return nil, err
	}

	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if len(patch) > 0 || len(parts) > 0 {
			if err := u.deps.Debates.UpdateFields(dbc, existing.ID, patch); err != nil {
				return fmt.Errorf("update debate: %w", err)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		if err := u.deps.Participants.DeleteByDebateID(dbc, existing.ID); err != nil {
			return fmt.Errorf("clear participants: %w", err)
		}
		return u.writeParticipants(dbc, existing.ID, parts, personaIDs)
	})
	if err != nil {
		return nil, apierr.Internal("update_debate_failed", err)
	}
	return u.reload(ctx, existing.ID)
}

func (u Usecases) Delete(ctx context.Context, rawID string) error {
	d, err := u.load(ctx, rawID)
	if err != nil {
		return err
	}
	err = u.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := u.deps.Participants.DeleteByDebateID(dbc, d.ID); err != nil {
			return fmt.Errorf("delete participants: %w", err)
		}
		if err := u.deps.Debates.DeleteByID(dbc, d.ID); err != nil {
			return fmt.Errorf("delete debate: %w", err)
		}
		return nil
	})
	if err != nil {
		return apierr.Internal("delete_debate_failed", err)
	}
	u.deps.Log.Info("Debate deleted", "debate_id", d.ID)
	return nil
}

// checkParticipants validates a non-empty participant list against format and
// returns the parsed persona id for each entry.
func (u Usecases) checkParticipants(ctx context.Context, format string, parts []participantInput) ([]uuid.UUID, error) {
	if len(parts) == 0 {
		return nil, nil
	}
	if err := validateRoles(parts); err != nil {
		return nil, err
	}
	if err := validateComposition(format, parts); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(parts))
	for i, p := range parts {
		id, err := uuid.Parse(p.PersonaID)
		if err != nil {
			return nil, apierr.BadRequest("unknown_persona", fmt.Sprintf("unknown persona %q", p.PersonaID))
		}
		ids[i] = id
	}
	rows, err := u.deps.Personas.GetByIDs(dbctx.Context{Ctx: ctx}, ids)
	if err != nil {
		return nil, apierr.Internal("load_personas_failed", fmt.Errorf("load personas: %w", err))
	}
	found := make(map[uuid.UUID]bool, len(rows))
	for _, r := range rows {
		found[r.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apierr.BadRequest("unknown_persona", fmt.Sprintf("unknown persona %q", id))
		}
	}
	return ids, nil
}

func (u Usecases) writeParticipants(dbc dbctx.Context, debateID uuid.UUID, parts []participantInput, personaIDs []uuid.UUID) error {
	if len(parts) == 0 {
		return nil
	}
	rows := make([]*types.DebateParticipant, 0, len(parts))
	for i, p := range parts {
		rows = append(rows, p.toModel(debateID, personaIDs[i]))
	}
	if _, err := u.deps.Participants.Create(dbc, rows); err != nil {
		return fmt.Errorf("create participants: %w", err)
	}
	return nil
}

func (u Usecases) load(ctx context.Context, rawID string) (*types.Debate, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, apierr.NotFound("debate_not_found", "debate not found")
	}
	d, err := u.deps.Debates.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, apierr.Internal("load_debate_failed", fmt.Errorf("load debate: %w", err))
	}
	if d == nil {
		return nil, apierr.NotFound("debate_not_found", "debate not found")
	}
	return d, nil
}

func (u Usecases) reload(ctx context.Context, id uuid.UUID) (*DebateView, error) {
	d, err := u.deps.Debates.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil || d == nil {
		return nil, apierr.Internal("load_debate_failed", fmt.Errorf("reload debate %s: %v", id, err))
	}
	return newDebateView(d), nil
}
