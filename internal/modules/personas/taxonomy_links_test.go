package personas

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func TestResolveTaxonomyLinks(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	t.Run("union of granular fields", func(t *testing.T) {
		plan := resolveTaxonomyLinks(map[string]any{
			"archetypeIds":    []any{a.String(), "not-a-uuid"},
			"cultureIds":      []any{b.String(), a.String()},
			"politicalId":     c.String(),
			"employerId":      d.String(),
			"unknownIds":      []any{uuid.NewString()},
			"communityTypeId": "",
		})
		if plan.Explicit {
			t.Fatalf("expected derived plan")
		}
		if diff := cmp.Diff([]uuid.UUID{a, b, c, d}, plan.IDs); diff != "" {
			t.Fatalf("ids mismatch (-want +got):\n%s", diff)
		}
		if !plan.Rewrite() {
			t.Fatalf("expected rewrite")
		}
	})

	t.Run("taxonomyIds is authoritative", func(t *testing.T) {
		plan := resolveTaxonomyLinks(map[string]any{
			"taxonomyIds":  []any{c.String(), c.String()},
			"archetypeIds": []any{a.String()},
		})
		if !plan.Explicit {
			t.Fatalf("expected explicit plan")
		}
		if diff := cmp.Diff([]uuid.UUID{c}, plan.IDs); diff != "" {
			t.Fatalf("ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty taxonomyIds clears", func(t *testing.T) {
		plan := resolveTaxonomyLinks(map[string]any{"taxonomyIds": []any{}})
		if !plan.Explicit || !plan.Rewrite() || len(plan.IDs) != 0 {
			t.Fatalf("unexpected plan %+v", plan)
		}
	})

	t.Run("legacy create shape", func(t *testing.T) {
		plan := resolveTaxonomyLinks(map[string]any{
			"taxonomies": map[string]any{"create": []any{
				map[string]any{"taxonomyId": b.String()},
				map[string]any{"other": "x"},
			}},
		})
		if !plan.Explicit {
			t.Fatalf("expected explicit plan")
		}
		if diff := cmp.Diff([]uuid.UUID{b}, plan.IDs); diff != "" {
			t.Fatalf("ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("region alias", func(t *testing.T) {
		plan := resolveTaxonomyLinks(map[string]any{"cultureId": "", "regionId": a.String()})
		if diff := cmp.Diff([]uuid.UUID{a}, plan.IDs); diff != "" {
			t.Fatalf("ids mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nothing granular means no rewrite", func(t *testing.T) {
		plan := resolveTaxonomyLinks(map[string]any{"name": "x", "archetypeIds": []any{"bad"}})
		if plan.Rewrite() {
			t.Fatalf("expected no rewrite, got %+v", plan)
		}
	})
}
