package personas

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nukigor/ai-voxarena/internal/data/repos/testutil"
	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
)

func TestPersonaRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewPersonaRepo(db, testutil.Logger(t))

	p1 := &types.Persona{Name: "Ada"}
	if _, err := repo.Create(dbc, p1); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p1.ID == uuid.Nil {
		t.Fatalf("Create: expected id to be assigned")
	}
	p2 := testutil.SeedPersona(t, ctx, tx, "Grace")

	culture := testutil.SeedTaxonomy(t, ctx, tx, "culture", "Nordic")
	testutil.LinkPersona(t, ctx, tx, p1.ID, culture.ID)

	got, err := repo.GetByID(dbc, p1.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if len(got.Taxonomies) != 1 || got.Taxonomies[0].Taxonomy == nil || got.Taxonomies[0].Taxonomy.Term != "Nordic" {
		t.Fatalf("GetByID: expected preloaded link, got %+v", got.Taxonomies)
	}
	if missing, err := repo.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID(missing): got=%v err=%v", missing, err)
	}

	if rows, err := repo.List(dbc); err != nil || len(rows) != 2 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByIDs(dbc, []uuid.UUID{p1.ID, p2.ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}
	if byName, err := repo.GetByName(dbc, "Grace"); err != nil || byName == nil || byName.ID != p2.ID {
		t.Fatalf("GetByName: got=%v err=%v", byName, err)
	}

	if err := repo.UpdateFields(dbc, p1.ID, map[string]interface{}{"nickname": "Countess", "confidence": 7}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, _ = repo.GetByID(dbc, p1.ID)
	if got.Nickname == nil || *got.Nickname != "Countess" || got.Confidence == nil || *got.Confidence != 7 {
		t.Fatalf("UpdateFields: nickname=%v confidence=%v", got.Nickname, got.Confidence)
	}
	if err := repo.UpdateFields(dbc, p1.ID, map[string]interface{}{"nickname": nil}); err != nil {
		t.Fatalf("UpdateFields(nil): %v", err)
	}
	got, _ = repo.GetByID(dbc, p1.ID)
	if got.Nickname != nil {
		t.Fatalf("UpdateFields(nil): expected nickname cleared, got %q", *got.Nickname)
	}

	if err := repo.DeleteByID(dbc, p2.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if gone, err := repo.GetByID(dbc, p2.ID); err != nil || gone != nil {
		t.Fatalf("after DeleteByID: got=%v err=%v", gone, err)
	}
}
