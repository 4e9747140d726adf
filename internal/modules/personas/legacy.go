package personas

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/nukigor/ai-voxarena/internal/domain"
)

// PersonaView is the persona as served over the API, including single-value
// fields older clients still read. Those fields are derived on every read.
type PersonaView struct {
	*types.Persona

	UniversityID   *uuid.UUID  `json:"universityId"`
	OrganizationID *uuid.UUID  `json:"organizationId"`
	EmployerID     *uuid.UUID  `json:"employerId"`
	RegionID       *uuid.UUID  `json:"regionId"`
	CultureIDs     []uuid.UUID `json:"cultureIds"`
}

func newPersonaView(p *types.Persona) *PersonaView {
	if p == nil {
		return nil
	}
	if p.Taxonomies == nil {
		p.Taxonomies = []types.PersonaTaxonomy{}
	}
	sortLinks(p.Taxonomies)
	for _, list := range []*datatypes.JSONSlice[string]{&p.DebateApproach, &p.EmotionMap, &p.Quirks} {
		if *list == nil {
			*list = datatypes.JSONSlice[string]{}
		}
	}

	v := &PersonaView{Persona: p, CultureIDs: []uuid.UUID{}}
	v.UniversityID = firstLinkIn(p.Taxonomies, "university")
	v.OrganizationID = firstLinkIn(p.Taxonomies, "organization", "employer")
	v.EmployerID = v.OrganizationID
	v.RegionID = firstLinkIn(p.Taxonomies, "region")
	for _, l := range p.Taxonomies {
		if categoryContains(l, "culture") {
			v.CultureIDs = append(v.CultureIDs, l.TaxonomyID)
		}
	}
	return v
}

func newPersonaViews(rows []*types.Persona) []*PersonaView {
	out := make([]*PersonaView, 0, len(rows))
	for _, p := range rows {
		out = append(out, newPersonaView(p))
	}
	return out
}

func firstLinkIn(links []types.PersonaTaxonomy, needles ...string) *uuid.UUID {
	for _, l := range links {
		if categoryContains(l, needles...) {
			id := l.TaxonomyID
			return &id
		}
	}
	return nil
}

func categoryContains(l types.PersonaTaxonomy, needles ...string) bool {
	if l.Taxonomy == nil {
		return false
	}
	cat := strings.ToLower(l.Taxonomy.Category)
	for _, n := range needles {
		if strings.Contains(cat, n) {
			return true
		}
	}
	return false
}

func sortLinks(links []types.PersonaTaxonomy) {
	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i].Taxonomy, links[j].Taxonomy
		if a == nil || b == nil {
			return a != nil
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Term < b.Term
	})
}

// termsIn collects the terms of links whose category matches any needle.
func termsIn(links []types.PersonaTaxonomy, needles ...string) []string {
	var out []string
	for _, l := range links {
		if categoryContains(l, needles...) {
			out = append(out, l.Taxonomy.Term)
		}
	}
	return out
}
