package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DebateFormatStructured = "structured"
	DebateFormatPodcast    = "podcast"
)

const (
	DebateStatusDraft     = "DRAFT"
	DebateStatusActive    = "ACTIVE"
	DebateStatusCompleted = "COMPLETED"
	DebateStatusArchived  = "ARCHIVED"
)

const (
	RoleModerator = "MODERATOR"
	RoleDebater   = "DEBATER"
	RoleHost      = "HOST"
	RoleGuest     = "GUEST"
)

// DebateStatusOrder ranks statuses along the only allowed direction of travel.
var DebateStatusOrder = map[string]int{
	DebateStatusDraft:     0,
	DebateStatusActive:    1,
	DebateStatusCompleted: 2,
	DebateStatusArchived:  3,
}

func IsDebateFormat(s string) bool {
	return s == DebateFormatStructured || s == DebateFormatPodcast
}

func IsParticipantRole(s string) bool {
	switch s {
	case RoleModerator, RoleDebater, RoleHost, RoleGuest:
		return true
	default:
		return false
	}
}

type Debate struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Topic       string         `gorm:"column:topic;not null" json:"topic"`
	Description *string        `gorm:"column:description;type:text" json:"description"`
	Format      string         `gorm:"column:format;not null;index" json:"format"`
	Status      string         `gorm:"column:status;not null;default:'DRAFT';index" json:"status"`
	Config      datatypes.JSON `gorm:"column:config" json:"config"`

	Participants []DebateParticipant `gorm:"foreignKey:DebateID;references:ID" json:"participants"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Debate) TableName() string { return "debate" }

func (d *Debate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// DebateParticipant binds a persona to a debate. Deleting it never touches the persona.
type DebateParticipant struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DebateID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_debate_participant_order,priority:1" json:"debateId"`
	PersonaID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"personaId"`
	Persona     *Persona       `gorm:"foreignKey:PersonaID;references:ID" json:"-"`
	Role        string         `gorm:"column:role;not null" json:"role"`
	OrderIndex  int            `gorm:"column:order_index;not null;default:0;index:idx_debate_participant_order,priority:2" json:"orderIndex"`
	DisplayName *string        `gorm:"column:display_name" json:"displayName"`
	VoiceID     *string        `gorm:"column:voice_id" json:"voiceId"`
	Meta        datatypes.JSON `gorm:"column:meta" json:"meta"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (DebateParticipant) TableName() string { return "debate_participant" }

func (p *DebateParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
