package letterhunt_test

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"storybloom-admin-backend/internal/letterhunt"
	"storybloom-admin-backend/internal/models"
)

func imageAsset(prompt string) *models.Asset {
	return &models.Asset{
		ID:     uuid.New(),
		Type:   models.AssetTypeImage,
		Status: models.AssetStatusApproved,
		Prompt: sql.NullString{String: prompt, Valid: prompt != ""},
	}
}

func TestClassify_ExplicitImageType(t *testing.T) {
	a := imageAsset("whatever")
	a.Metadata.ImageType = "signImage"

	slot, ok := letterhunt.Classify(a)
	assert.True(t, ok)
	assert.Equal(t, letterhunt.SlotSignImage, slot)
}

func TestClassify_ExplicitFieldsUsedVerbatim(t *testing.T) {
	// The explicit field wins even when its value is not a known slot;
	// such assets classify into a slot nothing renders.
	a := imageAsset("street sign with the letter A")
	a.Metadata.ImageType = "somethingElse"

	slot, ok := letterhunt.Classify(a)
	assert.True(t, ok)
	assert.Equal(t, letterhunt.SlotKey("somethingElse"), slot)
}

func TestClassify_ImagePromptKeywords(t *testing.T) {
	tests := []struct {
		prompt string
		slot   letterhunt.SlotKey
	}{
		{"A colorful street sign featuring the letter M", letterhunt.SlotSignImage},
		{"A book cover with a big letter B", letterhunt.SlotBookImage},
		{"Cereal boxes in a grocery aisle", letterhunt.SlotGroceryImage},
		{"A goodbye wave from a friendly dog", letterhunt.SlotEndingImage},
	}

	for _, tt := range tests {
		slot, ok := letterhunt.Classify(imageAsset(tt.prompt))
		assert.True(t, ok, tt.prompt)
		assert.Equal(t, tt.slot, slot, tt.prompt)
	}
}

func TestClassify_ImagePromptRulesAreOrdered(t *testing.T) {
	// "book" outranks "grocery": first matching rule wins.
	slot, ok := letterhunt.Classify(imageAsset("a book on a grocery store shelf"))
	assert.True(t, ok)
	assert.Equal(t, letterhunt.SlotBookImage, slot)
}

func TestClassify_ImageWithoutPromptOrTags(t *testing.T) {
	_, ok := letterhunt.Classify(imageAsset(""))
	assert.False(t, ok)
}

func TestClassify_AudioTemplateContext(t *testing.T) {
	a := &models.Asset{
		ID:     uuid.New(),
		Type:   models.AssetTypeAudio,
		Status: models.AssetStatusApproved,
		Metadata: models.AssetMetadata{
			TemplateContext: &models.TemplateContext{
				TemplateType: "letter-hunt",
				AssetPurpose: "introAudio",
			},
		},
	}

	slot, ok := letterhunt.Classify(a)
	assert.True(t, ok)
	assert.Equal(t, letterhunt.SlotIntroAudio, slot)
}

func TestClassify_AudioPurposeTable(t *testing.T) {
	a := &models.Asset{
		ID:       uuid.New(),
		Type:     models.AssetTypeAudio,
		Status:   models.AssetStatusApproved,
		Metadata: models.AssetMetadata{},
	}
	a.Metadata.Template = letterhunt.TemplateName

	for purpose, want := range map[string]letterhunt.SlotKey{
		"backgroundMusic": letterhunt.SlotBackgroundMusic,
		"titleAudio":      letterhunt.SlotTitleAudio,
		"groceryAudio":    letterhunt.SlotGroceryAudio,
	} {
		b := *a
		b.Metadata.AssetPurpose = purpose
		slot, ok := letterhunt.Classify(&b)
		assert.True(t, ok, purpose)
		assert.Equal(t, want, slot, purpose)
	}
}

func TestClassify_AudioHasNoKeywordInference(t *testing.T) {
	// An audio row whose script matches a narration line but carries no
	// purpose tag stays unclassified. Only images infer from prompt text.
	a := &models.Asset{
		ID:     uuid.New(),
		Type:   models.AssetTypeAudio,
		Status: models.AssetStatusApproved,
		Prompt: sql.NullString{String: "Even in the grocery store!", Valid: true},
	}

	_, ok := letterhunt.Classify(a)
	assert.False(t, ok)
}

func TestClassify_LegacyVideoIDs(t *testing.T) {
	for id, want := range map[string]letterhunt.SlotKey{
		"eb3fcec0-2b57-4a51-9e29-7f3c8d64b2a1": letterhunt.SlotIntroVideo,
		"540dc1d4-66bf-4b85-8c41-0e2a91d5f7c3": letterhunt.SlotIntroVideo,
		"c0793472-9a4e-4d2b-b3f8-61c5e07a84d9": letterhunt.SlotIntroVideo,
		"82c16d29-5e07-4f6a-a1d3-c948b50fe217": letterhunt.SlotIntro2Video,
	} {
		a := &models.Asset{
			ID:     uuid.MustParse(id),
			Type:   models.AssetTypeVideo,
			Status: models.AssetStatusApproved,
		}
		slot, ok := letterhunt.Classify(a)
		assert.True(t, ok, id)
		assert.Equal(t, want, slot, id)
	}
}

func TestClassify_LegacyVideoIDBeatsMetadata(t *testing.T) {
	// A legacy row with a stale videoType tag still maps by id.
	a := &models.Asset{
		ID:     uuid.MustParse("eb3fcec0-2b57-4a51-9e29-7f3c8d64b2a1"),
		Type:   models.AssetTypeVideo,
		Status: models.AssetStatusApproved,
		Metadata: models.AssetMetadata{
			VideoType: "endingVideo",
			Section:   "dance",
		},
	}

	slot, ok := letterhunt.Classify(a)
	assert.True(t, ok)
	assert.Equal(t, letterhunt.SlotIntroVideo, slot)
}

func TestClassify_VideoSectionAndCategory(t *testing.T) {
	dance := &models.Asset{
		ID:       uuid.New(),
		Type:     models.AssetTypeVideo,
		Metadata: models.AssetMetadata{Section: "dance"},
	}
	slot, ok := letterhunt.Classify(dance)
	assert.True(t, ok)
	assert.Equal(t, letterhunt.SlotHappyDanceVideo, slot)

	thematic := &models.Asset{
		ID:       uuid.New(),
		Type:     models.AssetTypeVideo,
		Metadata: models.AssetMetadata{Category: "thematic"},
	}
	slot, ok = letterhunt.Classify(thematic)
	assert.True(t, ok)
	assert.Equal(t, letterhunt.SlotIntro2Video, slot)
}

func TestClassify_UntaggedVideo(t *testing.T) {
	a := &models.Asset{
		ID:   uuid.New(),
		Type: models.AssetTypeVideo,
	}
	_, ok := letterhunt.Classify(a)
	assert.False(t, ok)
}
