package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Persona struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Identity
	Name           string  `gorm:"column:name;not null;index" json:"name"`
	Nickname       *string `gorm:"column:nickname" json:"nickname"`
	AgeGroup       *string `gorm:"column:age_group" json:"ageGroup"`
	GenderIdentity *string `gorm:"column:gender_identity" json:"genderIdentity"`
	Pronouns       *string `gorm:"column:pronouns" json:"pronouns"`

	Profession *string `gorm:"column:profession" json:"profession"`

	// Personality
	Temperament *string `gorm:"column:temperament" json:"temperament"`
	Confidence  *int    `gorm:"column:confidence" json:"confidence"`
	Verbosity   *int    `gorm:"column:verbosity" json:"verbosity"`
	Tone        *string `gorm:"column:tone" json:"tone"`

	// Communication
	VocabularyStyle *string        `gorm:"column:vocabulary_style" json:"vocabularyStyle"`
	ConflictStyle   *string        `gorm:"column:conflict_style" json:"conflictStyle"`
	AccentNote      *string        `gorm:"column:accent_note" json:"accentNote"`
	VoiceProvider   *string        `gorm:"column:voice_provider" json:"voiceProvider"`
	VoiceStyle      datatypes.JSON `gorm:"column:voice_style" json:"voiceStyle"`

	DebateApproach datatypes.JSONSlice[string] `gorm:"column:debate_approach" json:"debateApproach"`
	EmotionMap     datatypes.JSONSlice[string] `gorm:"column:emotion_map" json:"emotionMap"`
	Quirks         datatypes.JSONSlice[string] `gorm:"column:quirks" json:"quirks"`

	AvatarURL   *string `gorm:"column:avatar_url" json:"avatarUrl"`
	Description *string `gorm:"column:description;type:text" json:"description"`

	Taxonomies []PersonaTaxonomy `gorm:"foreignKey:PersonaID;references:ID" json:"taxonomies"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Persona) TableName() string { return "persona" }

func (p *Persona) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PersonaTaxonomy tags a persona with one taxonomy term.
type PersonaTaxonomy struct {
	PersonaID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"personaId"`
	TaxonomyID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"taxonomyId"`
	Taxonomy   *Taxonomy `gorm:"foreignKey:TaxonomyID;references:ID" json:"taxonomy,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (PersonaTaxonomy) TableName() string { return "persona_taxonomy" }
