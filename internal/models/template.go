package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type VideoTemplate struct {
	ID           uuid.UUID
	Name         string
	TemplateType string
	Structure    json.RawMessage
	CreatedAt    time.Time
}

type ContentProject struct {
	ID        uuid.UUID
	Title     string
	Theme     string
	TargetAge sql.NullString
	Duration  sql.NullInt64
	Status    string
	Metadata  json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RequestStatusDraft     = "draft"
	RequestStatusSubmitted = "submitted"
	RequestStatusRendering = "rendering"
	RequestStatusCompleted = "completed"
	RequestStatusFailed    = "failed"
)

type LetterHuntRequest struct {
	ID                uuid.UUID
	ChildName         string
	TargetLetter      string
	Theme             string
	Status            string
	Payload           json.RawMessage
	SubmittedVideoURL sql.NullString
	ErrorMessage      sql.NullString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
