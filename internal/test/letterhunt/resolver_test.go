package letterhunt_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storybloom-admin-backend/internal/letterhunt"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/supabase"
)

// fakeAssetSource applies asset queries against an in-memory list the way
// the database would, so fetch-group semantics are exercised for real.
type fakeAssetSource struct {
	assets []models.Asset
}

func (f *fakeAssetSource) QueryTemplateAssets(_ context.Context, q supabase.AssetQuery) ([]models.Asset, error) {
	var out []models.Asset
	for _, a := range f.assets {
		if q.Template != "" && a.Metadata.Template != q.Template {
			continue
		}
		if len(q.Statuses) > 0 && !containsString(q.Statuses, a.Status) {
			continue
		}
		if len(q.Types) > 0 && !containsString(q.Types, a.Type) {
			continue
		}
		if q.ChildName != nil && a.Metadata.ChildName != *q.ChildName {
			continue
		}
		if q.TargetLetter != nil && a.Metadata.TargetLetter != *q.TargetLetter {
			continue
		}
		if q.ImageType != "" && a.Metadata.ImageType != q.ImageType {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func poolAsset(assetType, status, theme, url string, md models.AssetMetadata) models.Asset {
	md.Template = letterhunt.TemplateName
	return models.Asset{
		ID:       uuid.New(),
		Type:     assetType,
		Status:   status,
		Theme:    theme,
		URL:      sql.NullString{String: url, Valid: url != ""},
		Metadata: md,
	}
}

var miaRequest = letterhunt.Request{
	ChildName:    "Mia",
	TargetLetter: "M",
	Theme:        "dog",
}

func TestResolve_EmptyPool(t *testing.T) {
	resolver := letterhunt.NewResolver(&fakeAssetSource{})

	payload := resolver.Resolve(context.Background(), miaRequest)

	assert.Equal(t, "Mia", payload.ChildName)
	assert.Len(t, payload.Slots, 18)

	for key, desc := range payload.Slots {
		assert.NotEmpty(t, desc.Description, key)
		if key == letterhunt.SlotBackgroundMusic {
			assert.Equal(t, letterhunt.StatusReady, desc.Status)
			assert.Equal(t, letterhunt.BackgroundMusicFallbackURL, desc.URL)
		} else {
			assert.Equal(t, letterhunt.StatusMissing, desc.Status, key)
			assert.Empty(t, desc.URL, key)
		}
	}
}

func TestResolve_SignImageForLetter(t *testing.T) {
	src := &fakeAssetSource{assets: []models.Asset{
		poolAsset(models.AssetTypeImage, models.AssetStatusApproved, "dog",
			"https://cdn.test/sign-m.png",
			models.AssetMetadata{TargetLetter: "M", ImageType: "signImage"}),
	}}
	resolver := letterhunt.NewResolver(src)

	payload := resolver.Resolve(context.Background(), miaRequest)

	sign := payload.Slots[letterhunt.SlotSignImage]
	assert.Equal(t, letterhunt.StatusReady, sign.Status)
	assert.Equal(t, "https://cdn.test/sign-m.png", sign.URL)
	assert.NotNil(t, sign.GeneratedAt)
}

func TestResolve_SkipsAssetsForOtherChildren(t *testing.T) {
	src := &fakeAssetSource{assets: []models.Asset{
		// titleAudio personalized for a different child; even if a fetch
		// group returns it, it must never fill a slot for Mia.
		poolAsset(models.AssetTypeAudio, models.AssetStatusApproved, "dog",
			"https://cdn.test/andrew-title.mp3",
			models.AssetMetadata{ChildName: "Andrew", AssetPurpose: "titleAudio"}),
		poolAsset(models.AssetTypeVideo, models.AssetStatusApproved, "dog",
			"https://cdn.test/andrew-intro.mp4",
			models.AssetMetadata{ChildName: "Andrew", TargetLetter: "M", VideoType: "introVideo"}),
	}}
	resolver := letterhunt.NewResolver(src)

	payload := resolver.Resolve(context.Background(), miaRequest)

	assert.Equal(t, letterhunt.StatusMissing, payload.Slots[letterhunt.SlotTitleAudio].Status)
	assert.Equal(t, letterhunt.StatusMissing, payload.Slots[letterhunt.SlotIntroVideo].Status)
}

func TestResolve_UsesOwnChildAssets(t *testing.T) {
	src := &fakeAssetSource{assets: []models.Asset{
		poolAsset(models.AssetTypeImage, models.AssetStatusApproved, "dog",
			"https://cdn.test/mia-title.png",
			models.AssetMetadata{ChildName: "Mia", ImageType: "titleCard"}),
	}}
	resolver := letterhunt.NewResolver(src)

	payload := resolver.Resolve(context.Background(), miaRequest)

	title := payload.Slots[letterhunt.SlotTitleCard]
	assert.Equal(t, letterhunt.StatusReady, title.Status)
	assert.Equal(t, "https://cdn.test/mia-title.png", title.URL)
}

func TestResolve_PrefersThemeMatch(t *testing.T) {
	cat := poolAsset(models.AssetTypeImage, models.AssetStatusApproved, "cats",
		"https://cdn.test/sign-cat.png",
		models.AssetMetadata{TargetLetter: "M", ImageType: "signImage"})
	dog := poolAsset(models.AssetTypeImage, models.AssetStatusApproved, "Dogs",
		"https://cdn.test/sign-dog.png",
		models.AssetMetadata{TargetLetter: "M", ImageType: "signImage"})
	src := &fakeAssetSource{assets: []models.Asset{cat, dog}}
	resolver := letterhunt.NewResolver(src)

	payload := resolver.Resolve(context.Background(), miaRequest)

	sign := payload.Slots[letterhunt.SlotSignImage]
	require.Equal(t, letterhunt.StatusReady, sign.Status)
	assert.Equal(t, "https://cdn.test/sign-dog.png", sign.URL)
}

func TestResolve_LegacyVideoFillsIntroSlot(t *testing.T) {
	legacy := models.Asset{
		ID:     uuid.MustParse("540dc1d4-66bf-4b85-8c41-0e2a91d5f7c3"),
		Type:   models.AssetTypeVideo,
		Status: models.AssetStatusApproved,
		Theme:  "dog",
		URL:    sql.NullString{String: "https://cdn.test/legacy-intro.mp4", Valid: true},
		Metadata: models.AssetMetadata{
			Template:     letterhunt.TemplateName,
			TargetLetter: "M",
		},
	}
	resolver := letterhunt.NewResolver(&fakeAssetSource{assets: []models.Asset{legacy}})

	payload := resolver.Resolve(context.Background(), miaRequest)

	intro := payload.Slots[letterhunt.SlotIntroVideo]
	assert.Equal(t, letterhunt.StatusReady, intro.Status)
	assert.Equal(t, "https://cdn.test/legacy-intro.mp4", intro.URL)
}

func TestResolve_UntaggedAudioStaysMissing(t *testing.T) {
	// Audio whose script matches a narration line but carries no purpose
	// tag is not inferred into any slot.
	untagged := poolAsset(models.AssetTypeAudio, models.AssetStatusApproved, "dog",
		"https://cdn.test/grocery-line.mp3", models.AssetMetadata{})
	untagged.Prompt = sql.NullString{String: "Even in the grocery store!", Valid: true}
	resolver := letterhunt.NewResolver(&fakeAssetSource{assets: []models.Asset{untagged}})

	payload := resolver.Resolve(context.Background(), miaRequest)

	assert.Equal(t, letterhunt.StatusMissing, payload.Slots[letterhunt.SlotGroceryAudio].Status)
}

func TestResolve_PendingAssetsAreCandidates(t *testing.T) {
	src := &fakeAssetSource{assets: []models.Asset{
		poolAsset(models.AssetTypeImage, models.AssetStatusPending, "dog",
			"https://cdn.test/book-pending.png",
			models.AssetMetadata{TargetLetter: "M", ImageType: "bookImage"}),
		poolAsset(models.AssetTypeImage, models.AssetStatusRejected, "dog",
			"https://cdn.test/ending-rejected.png",
			models.AssetMetadata{TargetLetter: "M", ImageType: "endingImage"}),
	}}
	resolver := letterhunt.NewResolver(src)

	payload := resolver.Resolve(context.Background(), miaRequest)

	assert.Equal(t, letterhunt.StatusReady, payload.Slots[letterhunt.SlotBookImage].Status)
	assert.Equal(t, letterhunt.StatusMissing, payload.Slots[letterhunt.SlotEndingImage].Status)
}

func TestResolve_OtherTemplateAssetsIgnored(t *testing.T) {
	other := models.Asset{
		ID:       uuid.New(),
		Type:     models.AssetTypeImage,
		Status:   models.AssetStatusApproved,
		Theme:    "dog",
		URL:      sql.NullString{String: "https://cdn.test/other.png", Valid: true},
		Metadata: models.AssetMetadata{Template: "name-video", ImageType: "signImage"},
	}
	resolver := letterhunt.NewResolver(&fakeAssetSource{assets: []models.Asset{other}})

	payload := resolver.Resolve(context.Background(), miaRequest)

	assert.Equal(t, letterhunt.StatusMissing, payload.Slots[letterhunt.SlotSignImage].Status)
}
