package personas

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

// stringFields maps request keys to persona columns. Aliases follow the canonical key.
var stringFields = []struct {
	keys   []string
	column string
}{
	{[]string{"nickname"}, "nickname"},
	{[]string{"ageGroup"}, "age_group"},
	{[]string{"genderIdentity", "gender"}, "gender_identity"},
	{[]string{"pronouns"}, "pronouns"},
	{[]string{"profession"}, "profession"},
	{[]string{"temperament"}, "temperament"},
	{[]string{"tone"}, "tone"},
	{[]string{"vocabularyStyle", "vocabulary"}, "vocabulary_style"},
	{[]string{"conflictStyle"}, "conflict_style"},
	{[]string{"accentNote"}, "accent_note"},
	{[]string{"voiceProvider"}, "voice_provider"},
	{[]string{"avatarUrl"}, "avatar_url"},
	{[]string{"description"}, "description"},
}

var intFields = []struct {
	key    string
	column string
}{
	{"confidence", "confidence"},
	{"verbosity", "verbosity"},
}

var listFields = []struct {
	keys   []string
	column string
}{
	{[]string{"debateApproach", "approach"}, "debate_approach"},
	{[]string{"emotionMap"}, "emotion_map"},
}

// descriptiveColumns feed the enrichment prompt; changing one re-triggers it.
var descriptiveColumns = []string{
	"name", "nickname", "profession", "temperament",
	"conflict_style", "vocabulary_style", "debate_approach", "quirks",
}

var quirkSplit = regexp.MustCompile(`\r?\n|,|;|•`)

const (
	scoreMin = 0
	scoreMax = 10
)

// normalizePersona turns a loosely-typed body into a column patch.
// Keys absent from the body never appear in the patch.
func normalizePersona(body map[string]any, creating bool) (map[string]interface{}, bool) {
	patch := map[string]interface{}{}

	if raw, ok := body["name"]; ok {
		if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
			patch["name"] = strings.TrimSpace(s)
		}
	}
	if creating {
		if _, ok := patch["name"]; !ok {
			return nil, false
		}
	}

	for _, f := range stringFields {
		raw, ok := firstPresent(body, f.keys...)
		if !ok {
			continue
		}
		if v, ok := optString(raw); ok {
			patch[f.column] = v
		}
	}

	for _, f := range intFields {
		raw, ok := body[f.key]
		if !ok {
			continue
		}
		if v, ok := optScore(raw); ok {
			patch[f.column] = v
		}
	}

	for _, f := range listFields {
		raw, ok := firstPresent(body, f.keys...)
		if !ok {
			continue
		}
		if v, ok := stringList(raw); ok {
			patch[f.column] = v
		}
	}

	if v, ok := quirks(body); ok {
		patch["quirks"] = v
	}

	if raw, ok := body["voiceStyle"]; ok {
		if raw == nil {
			patch["voice_style"] = nil
		} else if b, err := json.Marshal(raw); err == nil {
			patch["voice_style"] = datatypes.JSON(b)
		}
	}

	return patch, true
}

func firstPresent(body map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := body[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// optString returns nil for null or blank input, which the patch writes as NULL.
func optString(raw any) (interface{}, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, true
		}
		return s, true
	default:
		return nil, false
	}
}

func optScore(raw any) (interface{}, bool) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return nil, true
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, false
		}
		f = n
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		f = n
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	f = math.Max(scoreMin, math.Min(scoreMax, math.Trunc(f)))
	return int(f), true
}

func stringList(raw any) (datatypes.JSONSlice[string], bool) {
	if raw == nil {
		return datatypes.JSONSlice[string]{}, true
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := datatypes.JSONSlice[string]{}
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, true
}

func quirks(body map[string]any) (datatypes.JSONSlice[string], bool) {
	if raw, ok := body["quirks"]; ok {
		if v, ok := stringList(raw); ok {
			return v, true
		}
	}
	text, ok := body["quirksText"].(string)
	if !ok {
		return nil, false
	}
	out := datatypes.JSONSlice[string]{}
	for _, part := range quirkSplit.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, true
}

func touchesDescriptive(patch map[string]interface{}) bool {
	for _, col := range descriptiveColumns {
		if _, ok := patch[col]; ok {
			return true
		}
	}
	return false
}
