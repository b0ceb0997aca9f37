package supabase_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storybloom-admin-backend/internal/config"
	"storybloom-admin-backend/internal/supabase"
)

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/v1/video_templates":
			w.Write([]byte(`[
				{"id":"0b8f4a6e-1d2c-4e5f-9a7b-3c6d8e0f1a2b","name":"Name Video","template_type":"name-video","structure":{},"created_at":"2026-01-10T09:00:00Z"},
				{"id":"1c9e5b7f-2e3d-5f6a-0b8c-4d7e9f1a2b3c","name":"Letter Hunt","template_type":"letter-hunt","structure":{},"created_at":"2026-01-05T09:00:00Z"}
			]`))
		case "/rest/v1/content_projects":
			w.Write([]byte(`[
				{"id":"2daf6c8a-3f4e-6a7b-1c9d-5e8f0a2b3c4d","title":"Spring Batch","theme":"dog","target_age":"3-5","duration":120,"status":"active","metadata":{},"created_at":"2026-02-01T09:00:00Z","updated_at":"2026-02-01T09:00:00Z"},
				{"id":"3eb07d9b-4a5f-7b8c-2d0e-6f9a1b3c4d5e","title":"Winter Batch","theme":"cat","target_age":null,"duration":null,"status":"draft","metadata":{},"created_at":"2026-02-10T09:00:00Z","updated_at":"2026-02-10T09:00:00Z"}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestClient_ListVideoTemplates(t *testing.T) {
	server := catalogServer(t)
	defer server.Close()

	client, err := supabase.NewClient(&config.Config{
		SupabaseURL:            server.URL,
		SupabasePublishableKey: "test-key",
	})
	require.NoError(t, err)

	templates, err := client.ListVideoTemplates()
	require.NoError(t, err)
	require.Len(t, templates, 2)

	// sorted by name, matching the SQL path
	assert.Equal(t, "Letter Hunt", templates[0].Name)
	assert.Equal(t, "letter-hunt", templates[0].TemplateType)
	assert.Equal(t, "Name Video", templates[1].Name)
}

func TestClient_ListContentProjects(t *testing.T) {
	server := catalogServer(t)
	defer server.Close()

	client, err := supabase.NewClient(&config.Config{
		SupabaseURL:            server.URL,
		SupabasePublishableKey: "test-key",
	})
	require.NoError(t, err)

	projects, err := client.ListContentProjects()
	require.NoError(t, err)
	require.Len(t, projects, 2)

	// newest first, matching the SQL path
	assert.Equal(t, "Winter Batch", projects[0].Title)
	assert.False(t, projects[0].TargetAge.Valid)
	assert.False(t, projects[0].Duration.Valid)

	assert.Equal(t, "Spring Batch", projects[1].Title)
	assert.Equal(t, "3-5", projects[1].TargetAge.String)
	assert.Equal(t, int64(120), projects[1].Duration.Int64)
}
