package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storybloom-admin-backend/internal/storage"
)

func TestNew_UnconfiguredReturnsNil(t *testing.T) {
	client, err := storage.New("", "us-east-1", "", "", "rendered-videos", "")
	assert.NoError(t, err)
	assert.Nil(t, client)

	client, err = storage.New("http://localhost:9000", "us-east-1", "", "secret", "rendered-videos", "")
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestFileURL_PathStyle(t *testing.T) {
	client, err := storage.New("http://localhost:9000/", "us-east-1", "access", "secret", "rendered-videos", "")
	require.NoError(t, err)
	require.NotNil(t, client)

	url := client.FileURL("videos/letter-hunt/abc.mp4")
	assert.Equal(t, "http://localhost:9000/rendered-videos/videos/letter-hunt/abc.mp4", url)
}

func TestFileURL_PublicURLOverride(t *testing.T) {
	client, err := storage.New("http://localhost:9000", "us-east-1", "access", "secret", "rendered-videos", "https://videos.storybloom.app/")
	require.NoError(t, err)

	url := client.FileURL("videos/letter-hunt/abc.mp4")
	assert.Equal(t, "https://videos.storybloom.app/videos/letter-hunt/abc.mp4", url)
}

func TestExtractKey(t *testing.T) {
	client, err := storage.New("http://localhost:9000", "us-east-1", "access", "secret", "rendered-videos", "https://videos.storybloom.app")
	require.NoError(t, err)

	key, ok := client.ExtractKey("https://videos.storybloom.app/videos/letter-hunt/abc.mp4")
	assert.True(t, ok)
	assert.Equal(t, "videos/letter-hunt/abc.mp4", key)

	key, ok = client.ExtractKey("http://localhost:9000/rendered-videos/videos/x.mp4")
	assert.True(t, ok)
	assert.Equal(t, "videos/x.mp4", key)

	_, ok = client.ExtractKey("https://elsewhere.example.com/videos/x.mp4")
	assert.False(t, ok)
}

func TestExtractKey_RoundTrip(t *testing.T) {
	client, err := storage.New("http://localhost:9000", "us-east-1", "access", "secret", "rendered-videos", "")
	require.NoError(t, err)

	key := "videos/letter-hunt/540dc1d4.mp4"
	extracted, ok := client.ExtractKey(client.FileURL(key))
	assert.True(t, ok)
	assert.Equal(t, key, extracted)
}
