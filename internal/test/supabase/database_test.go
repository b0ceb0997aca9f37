package supabase_test

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storybloom-admin-backend/internal/supabase"
)

// fakeAssetDriver serves a single canned asset row so scan behavior can be
// exercised without a live database.
type fakeAssetDriver struct{}

func (d *fakeAssetDriver) Open(string) (driver.Conn, error) { return &fakeAssetConn{}, nil }

type fakeAssetConn struct{}

func (c *fakeAssetConn) Prepare(string) (driver.Stmt, error) { return &fakeAssetStmt{}, nil }
func (c *fakeAssetConn) Close() error                        { return nil }
func (c *fakeAssetConn) Begin() (driver.Tx, error)           { return nil, errors.New("not supported") }

type fakeAssetStmt struct{}

func (s *fakeAssetStmt) Close() error  { return nil }
func (s *fakeAssetStmt) NumInput() int { return -1 }
func (s *fakeAssetStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("not supported")
}
func (s *fakeAssetStmt) Query([]driver.Value) (driver.Rows, error) {
	return &fakeAssetRows{}, nil
}

type fakeAssetRows struct{ done bool }

func (r *fakeAssetRows) Columns() []string {
	return []string{"id", "type", "status", "url", "theme", "prompt", "tags", "metadata", "created_at", "updated_at"}
}

func (r *fakeAssetRows) Close() error { return nil }

func (r *fakeAssetRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	dest[0] = "7f3c8d64-b2a1-4e29-9a51-2b57eb3fcec0"
	dest[1] = "image"
	dest[2] = "approved"
	dest[3] = "https://cdn.test/sign.png"
	dest[4] = "dog"
	dest[5] = nil
	dest[6] = []byte("{}")
	// template is a string column in well-formed rows; a number here makes
	// the metadata bag undecodable
	dest[7] = []byte(`{"template":123}`)
	dest[8] = now
	dest[9] = now
	return nil
}

func init() {
	sql.Register("fakeassets", &fakeAssetDriver{})
}

func TestGetAsset_MalformedMetadataDegradesToEmptyBag(t *testing.T) {
	db, err := sql.Open("fakeassets", "")
	require.NoError(t, err)
	defer db.Close()

	client := supabase.NewDatabaseClientFromDB(db)

	asset, err := client.GetAsset(uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "image", asset.Type)
	assert.Equal(t, "https://cdn.test/sign.png", asset.URL.String)
	assert.Empty(t, asset.Metadata.Template)
	assert.Empty(t, asset.Metadata.ImageType)
}
