package personas

import (
	"strings"

	"github.com/google/uuid"
)

var multiSelectKeys = []string{
	"archetypeIds",
	"philosophyIds",
	"fillerPhraseIds",
	"metaphorIds",
	"debateHabitIds",
	"cultureIds",
}

// Each group names the current and legacy keys for one concept; the first usable id wins.
var singleSelectKeys = [][]string{
	{"cultureId", "regionId"},
	{"communityTypeId"},
	{"politicalId"},
	{"religionId"},
	{"accentId"},
	{"universityId"},
	{"organizationId", "employerId"},
}

type linkPlan struct {
	IDs []uuid.UUID
	// Explicit is set when the body carried taxonomyIds (or the legacy create shape).
	Explicit bool
}

// Rewrite reports whether the persona's link set should be replaced by IDs.
func (p linkPlan) Rewrite() bool { return p.Explicit || len(p.IDs) > 0 }

func resolveTaxonomyLinks(body map[string]any) linkPlan {
	if ids, ok := explicitTaxonomyIDs(body); ok {
		return linkPlan{IDs: dedupeIDs(ids), Explicit: true}
	}

	var ids []uuid.UUID
	for _, key := range multiSelectKeys {
		arr, ok := body[key].([]any)
		if !ok {
			continue
		}
		for _, item := range arr {
			if id, ok := parseID(item); ok {
				ids = append(ids, id)
			}
		}
	}
	for _, keys := range singleSelectKeys {
		for _, key := range keys {
			if id, ok := parseID(body[key]); ok {
				ids = append(ids, id)
				break
			}
		}
	}
	return linkPlan{IDs: dedupeIDs(ids)}
}

func explicitTaxonomyIDs(body map[string]any) ([]uuid.UUID, bool) {
	if arr, ok := body["taxonomyIds"].([]any); ok {
		out := make([]uuid.UUID, 0, len(arr))
		for _, item := range arr {
			if id, ok := parseID(item); ok {
				out = append(out, id)
			}
		}
		return out, true
	}

	tax, ok := body["taxonomies"].(map[string]any)
	if !ok {
		return nil, false
	}
	create, ok := tax["create"].([]any)
	if !ok {
		return nil, false
	}
	var out []uuid.UUID
	for _, item := range create {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := parseID(m["taxonomyId"]); ok {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func parseID(v any) (uuid.UUID, bool) {
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
