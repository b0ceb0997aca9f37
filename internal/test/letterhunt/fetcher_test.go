package letterhunt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storybloom-admin-backend/internal/letterhunt"
	"storybloom-admin-backend/internal/models"
)

func TestFetchPool_NoDeduplication(t *testing.T) {
	// An asset matching several fetch groups appears once per group; the
	// selector relies on first-match so duplicates are harmless.
	both := poolAsset(models.AssetTypeImage, models.AssetStatusApproved, "dog",
		"https://cdn.test/mia-title.png",
		models.AssetMetadata{ChildName: "Mia", TargetLetter: "M", ImageType: "titleCard"})
	src := &fakeAssetSource{assets: []models.Asset{both}}

	pool := letterhunt.FetchPool(context.Background(), src, miaRequest)

	count := 0
	for _, a := range pool {
		if a.ID == both.ID {
			count++
		}
	}
	assert.Greater(t, count, 1)
}

func TestFetchPool_GroupOrderIsStable(t *testing.T) {
	// Letter-specific videos come from an earlier fetch group than
	// personalized title cards, so they sort first in the pool whatever
	// order the store returns them in.
	titleCard := poolAsset(models.AssetTypeImage, models.AssetStatusApproved, "dog",
		"https://cdn.test/mia-title.png",
		models.AssetMetadata{ChildName: "Mia", ImageType: "titleCard"})
	introVideo := poolAsset(models.AssetTypeVideo, models.AssetStatusApproved, "dog",
		"https://cdn.test/intro-m.mp4",
		models.AssetMetadata{TargetLetter: "M", VideoType: "introVideo"})
	src := &fakeAssetSource{assets: []models.Asset{titleCard, introVideo}}

	pool := letterhunt.FetchPool(context.Background(), src, miaRequest)

	require.NotEmpty(t, pool)
	videoIdx, cardIdx := -1, -1
	for i, a := range pool {
		if a.ID == introVideo.ID && videoIdx == -1 {
			videoIdx = i
		}
		if a.ID == titleCard.ID && cardIdx == -1 {
			cardIdx = i
		}
	}
	require.NotEqual(t, -1, videoIdx)
	require.NotEqual(t, -1, cardIdx)
	assert.Less(t, videoIdx, cardIdx)
}
