package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	AssetTypeImage  = "image"
	AssetTypeAudio  = "audio"
	AssetTypeVideo  = "video"
	AssetTypePrompt = "prompt"
)

const (
	AssetStatusPending  = "pending"
	AssetStatusApproved = "approved"
	AssetStatusRejected = "rejected"
)

type Asset struct {
	ID        uuid.UUID
	Type      string
	Status    string
	URL       sql.NullString
	Theme     string
	Prompt    sql.NullString
	Tags      pq.StringArray
	Metadata  AssetMetadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssetMetadata is the semi-structured metadata bag stored in the jsonb
// column. Field names follow the conventions the asset rows were written
// with: snake_case for the older fields, camelCase for the ones added by
// the template tagging pass.
type AssetMetadata struct {
	Template     string `json:"template,omitempty"`
	ChildName    string `json:"child_name,omitempty"`
	TargetLetter string `json:"targetLetter,omitempty"`

	// Purpose classifiers. Only one of these is normally set, depending
	// on asset type and on which era of the tagging code wrote the row.
	ImageType    string `json:"imageType,omitempty"`
	AssetPurpose string `json:"assetPurpose,omitempty"`
	VideoType    string `json:"videoType,omitempty"`
	Section      string `json:"section,omitempty"`
	Category     string `json:"category,omitempty"`

	TemplateContext *TemplateContext `json:"template_context,omitempty"`
	Review          *ReviewRecord    `json:"review,omitempty"`

	// Type-specific fields
	Volume      float64 `json:"volume,omitempty"`
	AudioClass  string  `json:"audio_class,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
	ArtStyle    string  `json:"art_style,omitempty"`
	AspectRatio string  `json:"aspect_ratio,omitempty"`
}

type TemplateContext struct {
	TemplateType string `json:"template_type,omitempty"`
	AssetPurpose string `json:"asset_purpose,omitempty"`
}

type ReviewRecord struct {
	SafeZones  []string   `json:"safe_zones,omitempty"`
	Notes      string     `json:"review_notes,omitempty"`
	ReviewedBy string     `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// Personalized reports whether the asset is tagged with a specific child's
// name. Personalized assets must never be reused for a different child.
func (a *Asset) Personalized() bool {
	return a.Metadata.ChildName != ""
}
