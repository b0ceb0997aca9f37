package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type AssetResponse struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Status    string        `json:"status"`
	URL       string        `json:"url,omitempty"`
	Theme     string        `json:"theme,omitempty"`
	Prompt    string        `json:"prompt,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	Metadata  AssetMetadata `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
}

type UploadAssetResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

type ChildResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Age             int64  `json:"age,omitempty"`
	PrimaryInterest string `json:"primary_interest,omitempty"`
	Icon            string `json:"icon,omitempty"`
}

type ChildListResponse struct {
	Children []ChildResponse `json:"children"`
}

type TemplateResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TemplateType string `json:"template_type"`
}

type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

type ProjectResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Theme     string    `json:"theme,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type LetterHuntRequestResponse struct {
	ID                string    `json:"id"`
	ChildName         string    `json:"child_name"`
	TargetLetter      string    `json:"target_letter"`
	Theme             string    `json:"theme"`
	Status            string    `json:"status"`
	SubmittedVideoURL string    `json:"submitted_video_url,omitempty"`
	ErrorMessage      string    `json:"error_message,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type LetterHuntRequestListResponse struct {
	Requests []LetterHuntRequestResponse `json:"requests"`
}

type GenerateSlotResponse struct {
	RequestID string `json:"request_id"`
	Slot      string `json:"slot"`
	AssetID   string `json:"asset_id"`
	Status    string `json:"status"`
}

type GenerateMissingResponse struct {
	RequestID string   `json:"request_id"`
	Generated []string `json:"generated"`
	Skipped   []string `json:"skipped,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

type SubmitRenderResponse struct {
	RequestID string `json:"request_id"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
}

type VideoObjectResponse struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

type VideoListResponse struct {
	Videos []VideoObjectResponse `json:"videos"`
}

type PresignResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
