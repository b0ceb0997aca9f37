package letterhunt

import (
	"strings"

	"storybloom-admin-backend/internal/models"
)

// legacyVideoSlots maps video assets created before purpose tagging existed
// directly to their slots. This is a compatibility table, not a general
// rule: it is consulted before any metadata so stale tags on these rows
// cannot misroute them. Retire once the rows are re-tagged.
var legacyVideoSlots = map[string]SlotKey{
	"eb3fcec0-2b57-4a51-9e29-7f3c8d64b2a1": SlotIntroVideo,
	"540dc1d4-66bf-4b85-8c41-0e2a91d5f7c3": SlotIntroVideo,
	"c0793472-9a4e-4d2b-b3f8-61c5e07a84d9": SlotIntroVideo,
	"82c16d29-5e07-4f6a-a1d3-c948b50fe217": SlotIntro2Video,
}

// imagePromptRules infers an image slot from prompt text for rows that were
// generated before imageType tagging. Ordered; first match wins.
var imagePromptRules = []struct {
	keywords []string
	slot     SlotKey
}{
	{[]string{"street sign", "sign", "road sign"}, SlotSignImage},
	{[]string{"book", "cover", "reading"}, SlotBookImage},
	{[]string{"grocery", "store", "cereal", "food"}, SlotGroceryImage},
	{[]string{"ending", "goodbye", "wave"}, SlotEndingImage},
}

// audioPurposeSlots is the identity table of known audio purposes. Unknown
// purpose strings do not classify.
var audioPurposeSlots = map[string]SlotKey{
	"backgroundMusic": SlotBackgroundMusic,
	"titleAudio":      SlotTitleAudio,
	"introAudio":      SlotIntroAudio,
	"intro2Audio":     SlotIntro2Audio,
	"signAudio":       SlotSignAudio,
	"bookAudio":       SlotBookAudio,
	"groceryAudio":    SlotGroceryAudio,
	"happyDanceAudio": SlotHappyDanceAudio,
	"endingAudio":     SlotEndingAudio,
}

// Classify derives the slot an asset can fill. Assets were tagged
// inconsistently over the product's history, so this is a cascade of
// fallbacks evaluated in order, not a general classifier; the rules must
// stay as they are for behavioral parity with existing rows. Assets that
// match nothing are excluded from every slot.
func Classify(a *models.Asset) (SlotKey, bool) {
	if a.Type == models.AssetTypeVideo {
		if slot, ok := legacyVideoSlots[a.ID.String()]; ok {
			return slot, true
		}
	}

	// Explicit classifier fields, used verbatim.
	for _, v := range []string{a.Metadata.ImageType, a.Metadata.AssetPurpose, a.Metadata.VideoType} {
		if v != "" {
			return SlotKey(v), true
		}
	}

	switch a.Type {
	case models.AssetTypeImage:
		return classifyImagePrompt(a)
	case models.AssetTypeAudio:
		return classifyAudio(a)
	case models.AssetTypeVideo:
		return classifyVideo(a)
	}

	return "", false
}

func classifyImagePrompt(a *models.Asset) (SlotKey, bool) {
	if !a.Prompt.Valid || a.Prompt.String == "" {
		return "", false
	}
	prompt := strings.ToLower(a.Prompt.String)

	for _, rule := range imagePromptRules {
		for _, kw := range rule.keywords {
			if strings.Contains(prompt, kw) {
				return rule.slot, true
			}
		}
	}
	return "", false
}

// classifyAudio resolves the nested template-context purpose, then the
// purpose identity table. Audio deliberately has no prompt-keyword
// inference; only the image path does.
func classifyAudio(a *models.Asset) (SlotKey, bool) {
	if tc := a.Metadata.TemplateContext; tc != nil && tc.AssetPurpose != "" {
		return SlotKey(tc.AssetPurpose), true
	}
	if slot, ok := audioPurposeSlots[a.Metadata.AssetPurpose]; ok {
		return slot, true
	}
	return "", false
}

func classifyVideo(a *models.Asset) (SlotKey, bool) {
	if a.Metadata.Section == "dance" {
		return SlotHappyDanceVideo, true
	}
	if a.Metadata.Category == "thematic" {
		return SlotIntro2Video, true
	}
	return "", false
}
