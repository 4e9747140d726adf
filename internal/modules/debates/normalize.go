package debates

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/apierr"
)

type participantInput struct {
	PersonaID   string
	Role        string
	Order       int
	DisplayName *string
	VoiceID     *string
	Meta        datatypes.JSON
}

// maxOrder bounds explicit orders to the integer column's range.
const maxOrder = math.MaxInt32

// normalizeParticipants keeps entries that name both a persona and a role.
// Order comes from "order" or "orderIndex" when numeric and within
// [-maxOrder, maxOrder], else the array position.
func normalizeParticipants(raw any) []participantInput {
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]participantInput, 0, len(arr))
	for i, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p := participantInput{
			PersonaID:   trimmed(m["personaId"]),
			Role:        strings.ToUpper(trimmed(m["role"])),
			Order:       i,
			DisplayName: optText(m["displayName"]),
			VoiceID:     optText(m["voiceId"]),
		}
		for _, key := range []string{"order", "orderIndex"} {
			f, ok := m[key].(float64)
			if !ok || math.IsNaN(f) || math.Abs(f) > maxOrder {
				continue
			}
			p.Order = int(math.Trunc(f))
			break
		}
		if meta, ok := m["meta"]; ok && meta != nil {
			if b, err := json.Marshal(meta); err == nil {
				p.Meta = datatypes.JSON(b)
			}
		}
		if p.PersonaID == "" || p.Role == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (p participantInput) toModel(debateID, personaID uuid.UUID) *types.DebateParticipant {
	return &types.DebateParticipant{
		DebateID:    debateID,
		PersonaID:   personaID,
		Role:        p.Role,
		OrderIndex:  p.Order,
		DisplayName: p.DisplayName,
		VoiceID:     p.VoiceID,
		Meta:        p.Meta,
	}
}

// normalizeDebate builds a column patch. Title, topic and format are required on create.
func normalizeDebate(body map[string]any, creating bool) (map[string]interface{}, error) {
	patch := map[string]interface{}{}

	for _, key := range []string{"title", "topic"} {
		if s := trimmed(body[key]); s != "" {
			patch[key] = s
		} else if creating {
			return nil, apierr.BadRequest(key+"_required", key+" is required")
		}
	}

	if raw, ok := body["description"]; ok {
		switch v := raw.(type) {
		case nil:
			patch["description"] = nil
		case string:
			if s := strings.TrimSpace(v); s != "" {
				patch["description"] = s
			} else {
				patch["description"] = nil
			}
		}
	}

	if f := strings.ToLower(trimmed(body["format"])); f != "" {
		if !types.IsDebateFormat(f) {
			return nil, apierr.BadRequest("invalid_format", "format must be one of: structured, podcast")
		}
		patch["format"] = f
	} else if creating {
		return nil, apierr.BadRequest("format_required", "format is required")
	}

	if s := strings.ToUpper(trimmed(body["status"])); s != "" {
		if _, ok := types.DebateStatusOrder[s]; !ok {
			return nil, apierr.BadRequest("invalid_status", "status must be one of: DRAFT, ACTIVE, COMPLETED, ARCHIVED")
		}
		patch["status"] = s
	}

	if raw, ok := body["config"]; ok {
		if raw == nil {
			patch["config"] = nil
		} else if b, err := json.Marshal(raw); err == nil {
			patch["config"] = datatypes.JSON(b)
		}
	}

	return patch, nil
}

// defaultConfig is applied when a debate gets a format without an explicit config.
func defaultConfig(format string) datatypes.JSON {
	switch format {
	case types.DebateFormatStructured:
		return datatypes.JSON(`{"rounds":3,"turnSeconds":90,"allowRebuttals":true}`)
	case types.DebateFormatPodcast:
		return datatypes.JSON(`{"segments":3,"segmentMinutes":10}`)
	default:
		return nil
	}
}

func trimmed(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func optText(v any) *string {
	s := trimmed(v)
	if s == "" {
		return nil
	}
	return &s
}
