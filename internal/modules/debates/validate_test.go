package debates

import (
	"net/http"
	"testing"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/apierr"
)

func roles(rs ...string) []participantInput {
	out := make([]participantInput, 0, len(rs))
	for _, r := range rs {
		out = append(out, participantInput{PersonaID: "p", Role: r})
	}
	return out
}

func TestValidateComposition(t *testing.T) {
	cases := []struct {
		name   string
		format string
		parts  []participantInput
		ok     bool
	}{
		{"structured ok", types.DebateFormatStructured, roles("MODERATOR", "DEBATER", "DEBATER"), true},
		{"structured no moderator", types.DebateFormatStructured, roles("DEBATER", "DEBATER", "DEBATER"), false},
		{"structured one debater", types.DebateFormatStructured, roles("MODERATOR", "DEBATER"), false},
		{"structured ignores extra roles", types.DebateFormatStructured, roles("MODERATOR", "DEBATER", "GUEST", "DEBATER"), true},
		{"podcast ok", types.DebateFormatPodcast, roles("HOST", "GUEST"), true},
		{"podcast no guest", types.DebateFormatPodcast, roles("HOST", "HOST"), false},
		{"podcast no host", types.DebateFormatPodcast, roles("GUEST"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateComposition(tc.format, tc.parts)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && apierr.StatusOf(err) != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestValidateRoles(t *testing.T) {
	if err := validateRoles(roles("HOST", "GUEST")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateRoles(roles("HOST", "JUDGE")); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %v", err)
	}
}

func TestValidateTransition(t *testing.T) {
	ok := [][2]string{
		{"DRAFT", "DRAFT"},
		{"DRAFT", "ACTIVE"},
		{"ACTIVE", "COMPLETED"},
		{"DRAFT", "ARCHIVED"},
	}
	for _, c := range ok {
		if err := validateTransition(c[0], c[1]); err != nil {
			t.Fatalf("%s -> %s: %v", c[0], c[1], err)
		}
	}
	bad := [][2]string{
		{"ACTIVE", "DRAFT"},
		{"ARCHIVED", "COMPLETED"},
	}
	for _, c := range bad {
		if err := validateTransition(c[0], c[1]); err == nil {
			t.Fatalf("%s -> %s: expected error", c[0], c[1])
		}
	}
}

func TestNormalizeParticipants(t *testing.T) {
	parts := normalizeParticipants([]any{
		map[string]any{"personaId": " a ", "role": "host", "order": 5.0, "displayName": " Hosty ", "meta": map[string]any{"mic": 1.0}},
		map[string]any{"personaId": "b", "role": "guest"},
		map[string]any{"personaId": "", "role": "GUEST"},
		map[string]any{"personaId": "c"},
		"garbage",
		map[string]any{"personaId": "d", "role": "GUEST", "orderIndex": 1.0},
	})
	if len(parts) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(parts))
	}
	if parts[0].PersonaID != "a" || parts[0].Role != "HOST" || parts[0].Order != 5 {
		t.Fatalf("unexpected first participant %+v", parts[0])
	}
	if parts[0].DisplayName == nil || *parts[0].DisplayName != "Hosty" || string(parts[0].Meta) != `{"mic":1}` {
		t.Fatalf("unexpected overrides %+v", parts[0])
	}
	if parts[1].Order != 1 || parts[1].VoiceID != nil {
		t.Fatalf("expected positional order 1, got %+v", parts[1])
	}
	if parts[2].Order != 1 {
		t.Fatalf("expected orderIndex 1, got %d", parts[2].Order)
	}
	huge := normalizeParticipants([]any{
		map[string]any{"personaId": "a", "role": "HOST", "order": 1e20},
		map[string]any{"personaId": "b", "role": "GUEST", "order": -1e20, "orderIndex": 4.0},
	})
	if len(huge) != 2 || huge[0].Order != 0 || huge[1].Order != 4 {
		t.Fatalf("out of range orders should fall back, got %+v", huge)
	}
	if normalizeParticipants("nope") != nil {
		t.Fatalf("non-array should yield nil")
	}
}

func TestNormalizeDebate(t *testing.T) {
	if _, err := normalizeDebate(map[string]any{"topic": "x", "format": "podcast"}, true); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("missing title should be 400, got %v", err)
	}
	if _, err := normalizeDebate(map[string]any{"title": "x", "topic": "y"}, true); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("missing format should be 400, got %v", err)
	}
	if _, err := normalizeDebate(map[string]any{"format": "panel"}, false); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("bad format should be 400, got %v", err)
	}
	if _, err := normalizeDebate(map[string]any{"status": "paused"}, false); apierr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("bad status should be 400, got %v", err)
	}

	patch, err := normalizeDebate(map[string]any{"title": "  ", "format": "Podcast", "status": "active", "description": ""}, false)
	if err != nil {
		t.Fatalf("normalizeDebate: %v", err)
	}
	if _, ok := patch["title"]; ok {
		t.Fatalf("blank title should be ignored on update")
	}
	if patch["format"] != "podcast" || patch["status"] != "ACTIVE" {
		t.Fatalf("unexpected patch %v", patch)
	}
	if v, ok := patch["description"]; !ok || v != nil {
		t.Fatalf("blank description should clear, got %v", patch)
	}
}
