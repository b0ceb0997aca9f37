package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"storybloom-admin-backend/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// NewDatabaseClientFromDB wraps an existing connection. The caller keeps
// ownership of the pool.
func NewDatabaseClientFromDB(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

const assetColumns = "id, type, status, url, theme, prompt, tags, metadata, created_at, updated_at"

func scanAsset(row interface{ Scan(...interface{}) error }) (*models.Asset, error) {
	var asset models.Asset
	var metadata []byte
	err := row.Scan(
		&asset.ID, &asset.Type, &asset.Status, &asset.URL, &asset.Theme,
		&asset.Prompt, &asset.Tags, &metadata, &asset.CreatedAt, &asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		// Malformed metadata degrades to an empty bag rather than failing
		// the whole query; the asset just won't classify.
		if err := json.Unmarshal(metadata, &asset.Metadata); err != nil {
			log.Printf("asset %s has malformed metadata, ignoring: %v", asset.ID, err)
		}
	}
	return &asset, nil
}

// AssetQuery describes one filtered asset fetch. ChildName and TargetLetter
// distinguish "any value" (nil) from "must be empty or absent" (pointer to
// empty string) from exact equality.
type AssetQuery struct {
	Template     string
	Statuses     []string
	Types        []string
	ChildName    *string
	TargetLetter *string
	ImageType    string
}

// QueryTemplateAssets runs one AssetQuery, ordered by creation time
// descending.
func (d *DatabaseClient) QueryTemplateAssets(ctx context.Context, q AssetQuery) ([]models.Asset, error) {
	conds := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if q.Template != "" {
		add("metadata->>'template' = $%d", q.Template)
	}
	if len(q.Statuses) > 0 {
		add("status = ANY($%d)", pq.Array(q.Statuses))
	}
	if len(q.Types) > 0 {
		add("type = ANY($%d)", pq.Array(q.Types))
	}
	if q.ChildName != nil {
		if *q.ChildName == "" {
			conds = append(conds, "COALESCE(metadata->>'child_name', '') = ''")
		} else {
			add("metadata->>'child_name' = $%d", *q.ChildName)
		}
	}
	if q.TargetLetter != nil {
		if *q.TargetLetter == "" {
			conds = append(conds, "COALESCE(metadata->>'targetLetter', '') = ''")
		} else {
			add("metadata->>'targetLetter' = $%d", *q.TargetLetter)
		}
	}
	if q.ImageType != "" {
		add("metadata->>'imageType' = $%d", q.ImageType)
	}

	query := "SELECT " + assetColumns + " FROM assets"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *asset)
	}

	return assets, rows.Err()
}

type ListAssetsFilter struct {
	Status   string
	Type     string
	Template string
	Limit    int
	Offset   int
}

func (d *DatabaseClient) ListAssets(filter ListAssetsFilter) ([]models.Asset, error) {
	conds := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Template != "" {
		args = append(args, filter.Template)
		conds = append(conds, fmt.Sprintf("metadata->>'template' = $%d", len(args)))
	}

	query := "SELECT " + assetColumns + " FROM assets"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *asset)
	}

	return assets, rows.Err()
}

func (d *DatabaseClient) GetAsset(assetID uuid.UUID) (*models.Asset, error) {
	row := d.db.QueryRow("SELECT "+assetColumns+" FROM assets WHERE id = $1", assetID)
	asset, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

func (d *DatabaseClient) CreateAsset(asset *models.Asset) error {
	metadataJSON, err := json.Marshal(asset.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	err = d.db.QueryRow(`
		INSERT INTO assets (id, type, status, url, theme, prompt, tags, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, asset.ID, asset.Type, asset.Status, asset.URL, asset.Theme, asset.Prompt,
		pq.Array([]string(asset.Tags)), metadataJSON,
	).Scan(&asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// UpdateAssetReview sets the asset status and merges the review record into
// the metadata bag.
func (d *DatabaseClient) UpdateAssetReview(assetID uuid.UUID, status string, review models.ReviewRecord) (*models.Asset, error) {
	reviewJSON, err := json.Marshal(map[string]interface{}{"review": review})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal review: %w", err)
	}

	row := d.db.QueryRow(`
		UPDATE assets
		SET status = $1, metadata = metadata || $2::jsonb, updated_at = NOW()
		WHERE id = $3
		RETURNING `+assetColumns,
		status, reviewJSON, assetID)
	asset, err := scanAsset(row)
	if err != nil {
		return nil, fmt.Errorf("failed to update asset review: %w", err)
	}
	return asset, nil
}

func (d *DatabaseClient) ListChildren() ([]models.Child, error) {
	rows, err := d.db.Query(`
		SELECT id, parent_id, name, age, primary_interest, icon, created_at, updated_at
		FROM children
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		var child models.Child
		err := rows.Scan(
			&child.ID, &child.ParentID, &child.Name, &child.Age,
			&child.PrimaryInterest, &child.Icon, &child.CreatedAt, &child.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, child)
	}

	return children, rows.Err()
}

func (d *DatabaseClient) GetChild(childID uuid.UUID) (*models.Child, error) {
	var child models.Child
	err := d.db.QueryRow(`
		SELECT id, parent_id, name, age, primary_interest, icon, created_at, updated_at
		FROM children
		WHERE id = $1
	`, childID).Scan(
		&child.ID, &child.ParentID, &child.Name, &child.Age,
		&child.PrimaryInterest, &child.Icon, &child.CreatedAt, &child.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}

	return &child, nil
}

func (d *DatabaseClient) ListVideoTemplates() ([]models.VideoTemplate, error) {
	rows, err := d.db.Query(`
		SELECT id, name, template_type, structure, created_at
		FROM video_templates
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list video templates: %w", err)
	}
	defer rows.Close()

	var templates []models.VideoTemplate
	for rows.Next() {
		var t models.VideoTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.TemplateType, &t.Structure, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video template: %w", err)
		}
		templates = append(templates, t)
	}

	return templates, rows.Err()
}

func (d *DatabaseClient) ListContentProjects() ([]models.ContentProject, error) {
	rows, err := d.db.Query(`
		SELECT id, title, theme, target_age, duration, status, metadata, created_at, updated_at
		FROM content_projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list content projects: %w", err)
	}
	defer rows.Close()

	var projects []models.ContentProject
	for rows.Next() {
		var p models.ContentProject
		err := rows.Scan(
			&p.ID, &p.Title, &p.Theme, &p.TargetAge, &p.Duration,
			&p.Status, &p.Metadata, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (d *DatabaseClient) CreateLetterHuntRequest(childName, targetLetter, theme string) (*models.LetterHuntRequest, error) {
	var req models.LetterHuntRequest
	err := d.db.QueryRow(`
		INSERT INTO letter_hunt_requests (id, child_name, target_letter, theme, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, child_name, target_letter, theme, status, payload, submitted_video_url, error_message, created_at, updated_at
	`, uuid.New(), childName, targetLetter, theme, models.RequestStatusDraft).Scan(
		&req.ID, &req.ChildName, &req.TargetLetter, &req.Theme, &req.Status,
		&req.Payload, &req.SubmittedVideoURL, &req.ErrorMessage, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create letter hunt request: %w", err)
	}

	return &req, nil
}

func (d *DatabaseClient) GetLetterHuntRequest(requestID uuid.UUID) (*models.LetterHuntRequest, error) {
	var req models.LetterHuntRequest
	err := d.db.QueryRow(`
		SELECT id, child_name, target_letter, theme, status, payload, submitted_video_url, error_message, created_at, updated_at
		FROM letter_hunt_requests
		WHERE id = $1
	`, requestID).Scan(
		&req.ID, &req.ChildName, &req.TargetLetter, &req.Theme, &req.Status,
		&req.Payload, &req.SubmittedVideoURL, &req.ErrorMessage, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get letter hunt request: %w", err)
	}

	return &req, nil
}

func (d *DatabaseClient) ListLetterHuntRequests() ([]models.LetterHuntRequest, error) {
	rows, err := d.db.Query(`
		SELECT id, child_name, target_letter, theme, status, payload, submitted_video_url, error_message, created_at, updated_at
		FROM letter_hunt_requests
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list letter hunt requests: %w", err)
	}
	defer rows.Close()

	var requests []models.LetterHuntRequest
	for rows.Next() {
		var req models.LetterHuntRequest
		err := rows.Scan(
			&req.ID, &req.ChildName, &req.TargetLetter, &req.Theme, &req.Status,
			&req.Payload, &req.SubmittedVideoURL, &req.ErrorMessage, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan letter hunt request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (d *DatabaseClient) UpdateLetterHuntRequestStatus(requestID uuid.UUID, status string) error {
	_, err := d.db.Exec(`
		UPDATE letter_hunt_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, requestID)
	return err
}

func (d *DatabaseClient) UpdateLetterHuntRequestPayload(requestID uuid.UUID, payload json.RawMessage) error {
	_, err := d.db.Exec(`
		UPDATE letter_hunt_requests
		SET payload = $1, updated_at = NOW()
		WHERE id = $2
	`, payload, requestID)
	return err
}

func (d *DatabaseClient) UpdateLetterHuntRequestError(requestID uuid.UUID, errorMsg string) error {
	_, err := d.db.Exec(`
		UPDATE letter_hunt_requests
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2
	`, errorMsg, requestID)
	return err
}

func (d *DatabaseClient) CompleteLetterHuntRequest(requestID uuid.UUID, videoURL string) error {
	_, err := d.db.Exec(`
		UPDATE letter_hunt_requests
		SET status = 'completed', submitted_video_url = $1, updated_at = NOW()
		WHERE id = $2
	`, videoURL, requestID)
	return err
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
