package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Taxonomy is one controlled-vocabulary term. Category holds a category key
// (see TaxonomyCategory.Key).
type Taxonomy struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category    string    `gorm:"column:category;not null;uniqueIndex:idx_taxonomy_category_term,priority:1" json:"category"`
	Term        string    `gorm:"column:term;not null;uniqueIndex:idx_taxonomy_category_term,priority:2" json:"term"`
	Slug        *string   `gorm:"column:slug;index" json:"slug"`
	Description string    `gorm:"column:description;type:text;not null;default:''" json:"description"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"isActive"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Taxonomy) TableName() string { return "taxonomy" }

func (t *Taxonomy) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TaxonomyCategory is admin metadata for a category key.
type TaxonomyCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key         *string   `gorm:"column:category_key;uniqueIndex" json:"key"`
	FullName    string    `gorm:"column:full_name;not null;uniqueIndex" json:"fullName"`
	Description *string   `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (TaxonomyCategory) TableName() string { return "taxonomy_category" }

func (c *TaxonomyCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
