package debates

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nukigor/ai-voxarena/internal/data/repos/testutil"
	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
)

func TestDebateRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewDebateRepo(db, testutil.Logger(t))
	parts := NewDebateParticipantRepo(db, testutil.Logger(t))

	mod := testutil.SeedPersona(t, ctx, tx, "Moderator")
	a := testutil.SeedPersona(t, ctx, tx, "A")
	b := testutil.SeedPersona(t, ctx, tx, "B")

	d := &types.Debate{Title: "AI", Topic: "Should AI vote?", Format: types.DebateFormatStructured, Status: types.DebateStatusDraft}
	if _, err := repo.Create(dbc, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID == uuid.Nil {
		t.Fatalf("Create: expected id")
	}
	podcast := testutil.SeedDebate(t, ctx, tx, types.DebateFormatPodcast)

	if _, err := parts.Create(dbc, []*types.DebateParticipant{
		{DebateID: d.ID, PersonaID: b.ID, Role: types.RoleDebater, OrderIndex: 2},
		{DebateID: d.ID, PersonaID: mod.ID, Role: types.RoleModerator, OrderIndex: 0},
		{DebateID: d.ID, PersonaID: a.ID, Role: types.RoleDebater, OrderIndex: 1},
	}); err != nil {
		t.Fatalf("participants Create: %v", err)
	}

	got, err := repo.GetByID(dbc, d.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if len(got.Participants) != 3 {
		t.Fatalf("GetByID: expected 3 participants, got %d", len(got.Participants))
	}
	for i, want := range []uuid.UUID{mod.ID, a.ID, b.ID} {
		p := got.Participants[i]
		if p.PersonaID != want || p.Persona == nil || p.Persona.ID != want {
			t.Fatalf("participant %d: persona=%s preloaded=%v", i, p.PersonaID, p.Persona)
		}
	}

	if rows, err := repo.List(dbc, DebateFilter{}); err != nil || len(rows) != 2 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.List(dbc, DebateFilter{Format: types.DebateFormatPodcast}); err != nil || len(rows) != 1 || rows[0].ID != podcast.ID {
		t.Fatalf("List(format): err=%v rows=%v", err, rows)
	}
	if rows, err := repo.List(dbc, DebateFilter{Status: types.DebateStatusActive}); err != nil || len(rows) != 0 {
		t.Fatalf("List(status): err=%v len=%d", err, len(rows))
	}

	if n, err := parts.CountByPersonaID(dbc, a.ID); err != nil || n != 1 {
		t.Fatalf("CountByPersonaID: n=%d err=%v", n, err)
	}

	if err := repo.UpdateFields(dbc, d.ID, map[string]interface{}{"status": types.DebateStatusActive}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if rows, err := repo.List(dbc, DebateFilter{Status: types.DebateStatusActive}); err != nil || len(rows) != 1 {
		t.Fatalf("List(after status update): err=%v len=%d", err, len(rows))
	}

	if err := parts.DeleteByDebateID(dbc, d.ID); err != nil {
		t.Fatalf("DeleteByDebateID: %v", err)
	}
	if rows, err := parts.GetByDebateID(dbc, d.ID); err != nil || len(rows) != 0 {
		t.Fatalf("after DeleteByDebateID: err=%v len=%d", err, len(rows))
	}
	if err := repo.DeleteByID(dbc, d.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if gone, err := repo.GetByID(dbc, d.ID); err != nil || gone != nil {
		t.Fatalf("after DeleteByID: got=%v err=%v", gone, err)
	}
	if n, _ := parts.CountByPersonaID(dbc, a.ID); n != 0 {
		t.Fatalf("expected no participants left, got %d", n)
	}
}
