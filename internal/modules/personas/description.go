package personas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/ctxutil"
	"github.com/nukigor/ai-voxarena/internal/platform/logger"
	"github.com/nukigor/ai-voxarena/internal/platform/openai"
)

const describeSystemPrompt = `You write concise, vivid persona descriptions (140-220 words).
Audience: general readers on a profile page.
Tone: evocative but grounded; avoid cliches and overstatement.
Perspective: third-person.
Avoid lists; write a single flowing paragraph.`

var (
	errNoProvider       = errors.New("no description provider configured")
	errEmptyDescription = errors.New("provider returned an empty description")
)

// profile is the subset of a persona that goes into a description.
type profile struct {
	Name               string
	Nickname           string
	Profession         string
	CulturalBackground string
	Education          string
	Worldview          string
	Temperament        string
	ConflictStyle      string
	VocabularyStyle    string
	DebateApproach     []string
	Quirks             []string
	Expertise          []string
}

func profileOf(p *types.Persona) profile {
	links := p.Taxonomies
	return profile{
		Name:               p.Name,
		Nickname:           deref(p.Nickname),
		Profession:         deref(p.Profession),
		CulturalBackground: strings.Join(termsIn(links, "culture", "region"), ", "),
		Education:          strings.Join(termsIn(links, "university"), ", "),
		Worldview:          strings.Join(termsIn(links, "political", "religion", "philosophy"), ", "),
		Temperament:        deref(p.Temperament),
		ConflictStyle:      deref(p.ConflictStyle),
		VocabularyStyle:    deref(p.VocabularyStyle),
		DebateApproach:     p.DebateApproach,
		Quirks:             p.Quirks,
		Expertise:          termsIn(links, "organization", "employer", "archetype"),
	}
}

// Describer writes persona descriptions. AI may be nil, in which case every
// description comes from the local template.
type Describer struct {
	AI  openai.Client
	Log *logger.Logger
}

func NewDescriber(ai openai.Client, log *logger.Logger) *Describer {
	return &Describer{AI: ai, Log: log.With("service", "PersonaDescriber")}
}

// Generate asks the provider for a description. It returns errNoProvider when
// the describer has no AI client configured.
func (d *Describer) Generate(ctx context.Context, p *types.Persona) (string, error) {
	if d == nil || d.AI == nil {
		return "", errNoProvider
	}
	text, err := d.AI.GenerateText(ctx, describeSystemPrompt, describePrompt(profileOf(p)))
	if err != nil {
		fields := append([]interface{}{"persona_id", p.ID, "error", err}, ctxutil.LogFields(ctx)...)
		d.Log.Warn("description generation failed, using fallback", fields...)
		return "", err
	}
	if text = strings.TrimSpace(text); text == "" {
		d.Log.Warn("description generation returned empty text, using fallback", "persona_id", p.ID)
		return "", errEmptyDescription
	}
	return text, nil
}

// Draft is the template description for p.
func Draft(p *types.Persona) string {
	return fallbackDescription(profileOf(p))
}

func describePrompt(p profile) string {
	var lines []string
	lines = append(lines, "Name: "+nameWithNickname(p))
	add := func(label, v string) {
		if v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Cultural background", p.CulturalBackground)
	add("Profession", p.Profession)
	add("Education", p.Education)
	add("Worldview", p.Worldview)
	add("Temperament", p.Temperament)
	add("Conflict style", p.ConflictStyle)
	add("Vocabulary style", p.VocabularyStyle)
	add("Debate approach", strings.Join(p.DebateApproach, "; "))
	add("Quirks", strings.Join(p.Quirks, "; "))
	add("Expertise", strings.Join(p.Expertise, "; "))

	return "Write a single-paragraph description for this debate persona.\n\n" +
		strings.Join(lines, "\n")
}

func fallbackDescription(p profile) string {
	var bits []string
	if p.Profession != "" {
		bits = append(bits, "a "+p.Profession)
	}
	if p.CulturalBackground != "" {
		bits = append(bits, "rooted in "+p.CulturalBackground)
	}
	if p.Education != "" {
		bits = append(bits, "educated in "+p.Education)
	}
	if p.Worldview != "" {
		bits = append(bits, "guided by a "+p.Worldview+" worldview")
	}
	if len(bits) == 0 {
		bits = append(bits, "a debate persona")
	}

	sentences := []string{fmt.Sprintf("%s is %s.", nameWithNickname(p), strings.Join(bits, ", "))}
	if len(p.DebateApproach) > 0 {
		sentences = append(sentences, fmt.Sprintf("In debates, they tend to %s.", strings.Join(p.DebateApproach, ", ")))
	} else {
		sentences = append(sentences, "In debates, they balance clarity with curiosity.")
	}

	var traits []string
	if p.Temperament != "" {
		traits = append(traits, "Temperament: "+p.Temperament)
	}
	if p.ConflictStyle != "" {
		traits = append(traits, "Conflict style: "+p.ConflictStyle)
	}
	if p.VocabularyStyle != "" {
		traits = append(traits, "Vocabulary: "+p.VocabularyStyle)
	}
	if len(traits) > 0 {
		sentences = append(sentences, strings.Join(traits, " · ")+".")
	}
	if len(p.Quirks) > 0 {
		sentences = append(sentences, fmt.Sprintf("Quirks: %s.", strings.Join(p.Quirks, ", ")))
	}
	if len(p.Expertise) > 0 {
		sentences = append(sentences, fmt.Sprintf("Areas of focus: %s.", strings.Join(p.Expertise, ", ")))
	}
	return strings.Join(sentences, " ")
}

func nameWithNickname(p profile) string {
	if p.Nickname == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%q)", p.Name, p.Nickname)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
