package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Child struct {
	ID              uuid.UUID
	ParentID        uuid.NullUUID
	Name            string
	Age             sql.NullInt64
	PrimaryInterest string
	Icon            sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type User struct {
	ID        uuid.UUID
	Email     string
	Role      string
	CreatedAt time.Time
}
