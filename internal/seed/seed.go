// Package seed loads the bundled taxonomy vocabulary and demo personas.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/nukigor/ai-voxarena/internal/data/repos"
	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/modules/personas"
	"github.com/nukigor/ai-voxarena/internal/platform/dbctx"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

//go:embed taxonomy.yaml
var bundled []byte

type File struct {
	Categories []Category `yaml:"categories"`
	Personas   []Persona  `yaml:"personas"`
}

type Category struct {
	Key         string   `yaml:"key"`
	FullName    string   `yaml:"fullName"`
	Description string   `yaml:"description"`
	Terms       []string `yaml:"terms"`
}

type TermRef struct {
	Category string `yaml:"category"`
	Term     string `yaml:"term"`
}

type Persona struct {
	Name            string    `yaml:"name"`
	Nickname        string    `yaml:"nickname"`
	Profession      string    `yaml:"profession"`
	Temperament     string    `yaml:"temperament"`
	Confidence      int       `yaml:"confidence"`
	Verbosity       int       `yaml:"verbosity"`
	Tone            string    `yaml:"tone"`
	VocabularyStyle string    `yaml:"vocabularyStyle"`
	AgeGroup        string    `yaml:"ageGroup"`
	GenderIdentity  string    `yaml:"genderIdentity"`
	DebateApproach  []string  `yaml:"debateApproach"`
	Quirks          []string  `yaml:"quirks"`
	Links           []TermRef `yaml:"links"`
}

func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, c := range f.Categories {
		if c.Key == "" || c.FullName == "" {
			return nil, fmt.Errorf("seed category #%d: key and fullName are required", i)
		}
	}
	return &f, nil
}

// Bundled returns the seed file compiled into the binary.
func Bundled() (*File, error) { return Parse(bundled) }

type Deps struct {
	DB         *gorm.DB
	Log        *logger.Logger
	Terms      repos.TaxonomyRepo
	Categories repos.TaxonomyCategoryRepo
	Personas   repos.PersonaRepo
	// PersonaUsecases creates demo personas through the normal create path.
	PersonaUsecases personas.Usecases
}

type Result struct {
	CategoriesUpserted int
	TermsInserted      int
	PersonasCreated    int
}

// Run applies f. Re-running it inserts nothing new.
func Run(ctx context.Context, deps Deps, f *File) (Result, error) {
	var res Result
	log := deps.Log.With("component", "Seed")

	err := deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		cats := make([]*types.TaxonomyCategory, 0, len(f.Categories))
		var terms []*types.Taxonomy
		for _, c := range f.Categories {
			key := c.Key
			row := &types.TaxonomyCategory{Key: &key, FullName: c.FullName}
			if c.Description != "" {
				desc := c.Description
				row.Description = &desc
			}
			cats = append(cats, row)
			for _, t := range c.Terms {
				terms = append(terms, &types.Taxonomy{Category: c.Key, Term: t, IsActive: true})
			}
		}
		n, err := deps.Categories.UpsertByFullName(dbc, cats)
		if err != nil {
			return fmt.Errorf("upsert categories: %w", err)
		}
		res.CategoriesUpserted = n
		if res.TermsInserted, err = deps.Terms.UpsertTerms(dbc, terms); err != nil {
			return fmt.Errorf("upsert terms: %w", err)
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	for _, p := range f.Personas {
		created, err := seedPersona(ctx, deps, p)
		if err != nil {
			return res, err
		}
		if created {
			res.PersonasCreated++
		}
	}

	log.Info("Seed complete",
		"categories", res.CategoriesUpserted,
		"terms_inserted", res.TermsInserted,
		"personas_created", res.PersonasCreated,
	)
	return res, nil
}

func seedPersona(ctx context.Context, deps Deps, p Persona) (bool, error) {
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := deps.Personas.GetByName(dbc, p.Name)
	if err != nil {
		return false, fmt.Errorf("lookup persona %q: %w", p.Name, err)
	}
	if existing != nil {
		return false, nil
	}

	ids, err := resolveLinks(dbc, deps.Terms, p.Links)
	if err != nil {
		return false, err
	}
	if _, err := deps.PersonaUsecases.Create(ctx, p.body(ids)); err != nil {
		return false, fmt.Errorf("create persona %q: %w", p.Name, err)
	}
	return true, nil
}

func resolveLinks(dbc dbctx.Context, terms repos.TaxonomyRepo, refs []TermRef) ([]any, error) {
	byCategory := map[string][]*types.Taxonomy{}
	var out []any
	for _, ref := range refs {
		rows, ok := byCategory[ref.Category]
		if !ok {
			var err error
			rows, err = terms.ListActiveByCategory(dbc, ref.Category)
			if err != nil {
				return nil, fmt.Errorf("list %s terms: %w", ref.Category, err)
			}
			byCategory[ref.Category] = rows
		}
		for _, t := range rows {
			if t.Term == ref.Term {
				out = append(out, t.ID.String())
				break
			}
		}
	}
	return out, nil
}

// body renders the persona the way the API receives it.
func (p Persona) body(taxonomyIDs []any) map[string]any {
	body := map[string]any{"name": p.Name}
	set := func(k, v string) {
		if v != "" {
			body[k] = v
		}
	}
	set("nickname", p.Nickname)
	set("profession", p.Profession)
	set("temperament", p.Temperament)
	set("tone", p.Tone)
	set("vocabularyStyle", p.VocabularyStyle)
	set("ageGroup", p.AgeGroup)
	set("genderIdentity", p.GenderIdentity)
	if p.Confidence != 0 {
		body["confidence"] = float64(p.Confidence)
	}
	if p.Verbosity != 0 {
		body["verbosity"] = float64(p.Verbosity)
	}
	if len(p.DebateApproach) > 0 {
		body["debateApproach"] = toAny(p.DebateApproach)
	}
	if len(p.Quirks) > 0 {
		body["quirks"] = toAny(p.Quirks)
	}
	if len(taxonomyIDs) > 0 {
		body["taxonomyIds"] = taxonomyIDs
	}
	return body
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
