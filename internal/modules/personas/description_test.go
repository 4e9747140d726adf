package personas

import (
	"context"
	"errors"
	"strings"
	"testing"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
)

type fakeAI struct {
	text  string
	err   error
	calls int
	user  string
}

func (f *fakeAI) GenerateText(ctx context.Context, system string, user string) (string, error) {
	f.calls++
	f.user = user
	return f.text, f.err
}

func strPtr(s string) *string { return &s }

func TestFallbackDescription(t *testing.T) {
	p := &types.Persona{
		Name:           "Ada",
		Nickname:       strPtr("Countess"),
		Profession:     strPtr("mathematician"),
		Temperament:    strPtr("Analytical"),
		DebateApproach: []string{"Logical", "Socratic"},
		Quirks:         []string{"hums"},
		Taxonomies: []types.PersonaTaxonomy{
			link("culture", "Victorian"),
			link("religion", "Anglican"),
			link("archetype", "Sage"),
		},
	}
	got := fallbackDescription(profileOf(p))
	for _, want := range []string{
		`Ada ("Countess") is a mathematician, rooted in Victorian, guided by a Anglican worldview.`,
		"In debates, they tend to Logical, Socratic.",
		"Temperament: Analytical.",
		"Quirks: hums.",
		"Areas of focus: Sage.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("fallback %q missing %q", got, want)
		}
	}
	if again := fallbackDescription(profileOf(p)); again != got {
		t.Fatalf("fallback is not deterministic:\n%s\n%s", got, again)
	}
}

func TestFallbackDescriptionMinimal(t *testing.T) {
	got := fallbackDescription(profile{Name: "Bo"})
	want := "Bo is a debate persona. In debates, they balance clarity with curiosity."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestDescriberUsesProvider(t *testing.T) {
	ai := &fakeAI{text: "  A luminous mind.  "}
	d := NewDescriber(ai, logger.NewNop())
	p := &types.Persona{Name: "Ada", Temperament: strPtr("Analytical")}

	got, err := d.Generate(context.Background(), p)
	if err != nil || got != "A luminous mind." {
		t.Fatalf("got %q err=%v", got, err)
	}
	if ai.calls != 1 {
		t.Fatalf("calls=%d want 1", ai.calls)
	}
	if !strings.Contains(ai.user, "Temperament: Analytical") {
		t.Fatalf("prompt missing temperament: %q", ai.user)
	}
}

func TestDescriberGenerateErrors(t *testing.T) {
	p := &types.Persona{Name: "Ada", DebateApproach: []string{"Logical"}}
	for name, ai := range map[string]*fakeAI{
		"error": {err: errors.New("boom")},
		"empty": {text: "   "},
	} {
		t.Run(name, func(t *testing.T) {
			d := NewDescriber(ai, logger.NewNop())
			if got, err := d.Generate(context.Background(), p); err == nil {
				t.Fatalf("expected error, got %q", got)
			}
		})
	}

	var nilDescriber *Describer
	if _, err := nilDescriber.Generate(context.Background(), p); !errors.Is(err, errNoProvider) {
		t.Fatalf("nil describer: err=%v", err)
	}
	if got := Draft(p); !strings.Contains(got, "Logical") {
		t.Fatalf("draft should mention Logical, got %q", got)
	}
}
