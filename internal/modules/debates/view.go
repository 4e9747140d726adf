package debates

import (
	"github.com/google/uuid"

	types "github.com/nukigor/ai-voxarena/internal/domain"
)

type PersonaSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Nickname        *string   `json:"nickname"`
	AvatarURL       *string   `json:"avatarUrl"`
	DebateApproach  []string  `json:"debateApproach"`
	Temperament     *string   `json:"temperament"`
	ConflictStyle   *string   `json:"conflictStyle"`
	VocabularyStyle *string   `json:"vocabularyStyle"`
}

type ParticipantView struct {
	types.DebateParticipant
	Persona *PersonaSummary `json:"persona"`
}

type DebateView struct {
	*types.Debate
	Participants []ParticipantView `json:"participants"`
}

func newDebateView(d *types.Debate) *DebateView {
	if d == nil {
		return nil
	}
	v := &DebateView{Debate: d, Participants: make([]ParticipantView, 0, len(d.Participants))}
	for _, p := range d.Participants {
		pv := ParticipantView{DebateParticipant: p}
		if p.Persona != nil {
			approach := []string(p.Persona.DebateApproach)
			if approach == nil {
				approach = []string{}
			}
			pv.Persona = &PersonaSummary{
				ID:              p.Persona.ID,
				Name:            p.Persona.Name,
				Nickname:        p.Persona.Nickname,
				AvatarURL:       p.Persona.AvatarURL,
				DebateApproach:  approach,
				Temperament:     p.Persona.Temperament,
				ConflictStyle:   p.Persona.ConflictStyle,
				VocabularyStyle: p.Persona.VocabularyStyle,
			}
		}
		v.Participants = append(v.Participants, pv)
	}
	return v
}

func newDebateViews(rows []*types.Debate) []*DebateView {
	out := make([]*DebateView, 0, len(rows))
	for _, d := range rows {
		out = append(out, newDebateView(d))
	}
	return out
}
