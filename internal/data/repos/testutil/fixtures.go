package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	types "github.com/nukigor/ai-voxarena/internal/domain"
	"gorm.io/gorm"
)

func SeedTaxonomy(tb testing.TB, ctx context.Context, tx *gorm.DB, category, term string) *types.Taxonomy {
	tb.Helper()
	row := &types.Taxonomy{
		ID:       uuid.New(),
		Category: category,
		Term:     term,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed taxonomy: %v", err)
	}
	return row
}

func SeedPersona(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Persona {
	tb.Helper()
	p := &types.Persona{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed persona: %v", err)
	}
	return p
}

func LinkPersona(tb testing.TB, ctx context.Context, tx *gorm.DB, personaID uuid.UUID, taxonomyIDs ...uuid.UUID) {
	tb.Helper()
	for _, tid := range taxonomyIDs {
		row := &types.PersonaTaxonomy{PersonaID: personaID, TaxonomyID: tid}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed persona link: %v", err)
		}
	}
}

func SeedDebate(tb testing.TB, ctx context.Context, tx *gorm.DB, format string) *types.Debate {
	tb.Helper()
	d := &types.Debate{
		ID:     uuid.New(),
		Title:  "debate",
		Topic:  "topic",
		Format: format,
		Status: types.DebateStatusDraft,
	}
	if err := tx.WithContext(ctx).Omit("Participants").Create(d).Error; err != nil {
		tb.Fatalf("seed debate: %v", err)
	}
	return d
}

func SeedParticipant(tb testing.TB, ctx context.Context, tx *gorm.DB, debateID, personaID uuid.UUID, role string, order int) *types.DebateParticipant {
	tb.Helper()
	p := &types.DebateParticipant{
		ID:         uuid.New(),
		DebateID:   debateID,
		PersonaID:  personaID,
		Role:       role,
		OrderIndex: order,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed participant: %v", err)
	}
	return p
}
