// Package letterhunt resolves the asset payload for Letter Hunt videos: it
// fetches the candidate pool from the asset store, classifies each candidate
// into a template slot, picks the best theme match per slot, and assembles
// the payload the review UI and the render pipeline consume.
package letterhunt

import (
	"fmt"

	"storybloom-admin-backend/internal/models"
)

// TemplateName is the template tag Letter Hunt assets carry in metadata.
const TemplateName = "letter-hunt"

// SlotKey names one position in the Letter Hunt template schema.
type SlotKey string

const (
	SlotTitleCard       SlotKey = "titleCard"
	SlotTitleAudio      SlotKey = "titleAudio"
	SlotIntroVideo      SlotKey = "introVideo"
	SlotIntroAudio      SlotKey = "introAudio"
	SlotIntro2Video     SlotKey = "intro2Video"
	SlotIntro2Audio     SlotKey = "intro2Audio"
	SlotSignImage       SlotKey = "signImage"
	SlotSignAudio       SlotKey = "signAudio"
	SlotBookImage       SlotKey = "bookImage"
	SlotBookAudio       SlotKey = "bookAudio"
	SlotGroceryImage    SlotKey = "groceryImage"
	SlotGroceryAudio    SlotKey = "groceryAudio"
	SlotHappyDanceVideo SlotKey = "happyDanceVideo"
	SlotHappyDanceAudio SlotKey = "happyDanceAudio"
	SlotEndingVideo     SlotKey = "endingVideo"
	SlotEndingImage     SlotKey = "endingImage"
	SlotEndingAudio     SlotKey = "endingAudio"
	SlotBackgroundMusic SlotKey = "backgroundMusic"
)

// Request is the per-resolution input: which child, which letter, which
// theme. It is rebuilt from the request row on every resolution.
type Request struct {
	ChildName    string
	TargetLetter string
	Theme        string
}

// SlotDef describes one slot: required media kind, display label, and the
// description template shown to reviewers whether or not the slot is filled.
type SlotDef struct {
	Key      SlotKey
	Kind     string
	Label    string
	Describe func(req Request) string
}

// Slots lists the Letter Hunt schema in video part order.
var Slots = []SlotDef{
	{SlotTitleCard, models.AssetTypeImage, "Title Card", func(r Request) string {
		return fmt.Sprintf("Title card reading \"%s's Letter Hunt!\"", r.ChildName)
	}},
	{SlotTitleAudio, models.AssetTypeAudio, "Title Audio", func(r Request) string {
		return fmt.Sprintf("Narrator: \"%s's Letter Hunt!\"", r.ChildName)
	}},
	{SlotIntroVideo, models.AssetTypeVideo, "Intro Video", func(r Request) string {
		return fmt.Sprintf("%s-themed intro segment searching for the letter %s", r.Theme, r.TargetLetter)
	}},
	{SlotIntroAudio, models.AssetTypeAudio, "Intro Audio", func(r Request) string {
		return fmt.Sprintf("Narrator: \"Today we're looking for the letter %s!\"", r.TargetLetter)
	}},
	{SlotIntro2Video, models.AssetTypeVideo, "Search Video", func(r Request) string {
		return fmt.Sprintf("%s character searching everywhere for the letter %s", r.Theme, r.TargetLetter)
	}},
	{SlotIntro2Audio, models.AssetTypeAudio, "Search Audio", func(r Request) string {
		return fmt.Sprintf("Narrator: \"Everywhere you go, you can find the letter %s!\"", r.TargetLetter)
	}},
	{SlotSignImage, models.AssetTypeImage, "Sign Image", func(r Request) string {
		return fmt.Sprintf("Street sign featuring the letter %s", r.TargetLetter)
	}},
	{SlotSignAudio, models.AssetTypeAudio, "Sign Audio", func(r Request) string {
		return "Narrator: \"On signs!\""
	}},
	{SlotBookImage, models.AssetTypeImage, "Book Image", func(r Request) string {
		return fmt.Sprintf("Book cover featuring the letter %s", r.TargetLetter)
	}},
	{SlotBookAudio, models.AssetTypeAudio, "Book Audio", func(r Request) string {
		return "Narrator: \"On books!\""
	}},
	{SlotGroceryImage, models.AssetTypeImage, "Grocery Image", func(r Request) string {
		return fmt.Sprintf("Grocery store items starting with the letter %s", r.TargetLetter)
	}},
	{SlotGroceryAudio, models.AssetTypeAudio, "Grocery Audio", func(r Request) string {
		return "Narrator: \"Even in the grocery store!\""
	}},
	{SlotHappyDanceVideo, models.AssetTypeVideo, "Happy Dance Video", func(r Request) string {
		return fmt.Sprintf("%s character doing a happy dance", r.Theme)
	}},
	{SlotHappyDanceAudio, models.AssetTypeAudio, "Happy Dance Audio", func(r Request) string {
		return "Narrator: \"And when you find your letter, do a happy dance!\""
	}},
	{SlotEndingVideo, models.AssetTypeVideo, "Ending Video", func(r Request) string {
		return fmt.Sprintf("%s-themed goodbye segment", r.Theme)
	}},
	{SlotEndingImage, models.AssetTypeImage, "Ending Image", func(r Request) string {
		return fmt.Sprintf("Goodbye wave scene with the letter %s", r.TargetLetter)
	}},
	{SlotEndingAudio, models.AssetTypeAudio, "Ending Audio", func(r Request) string {
		return fmt.Sprintf("Narrator: \"Have fun finding the letter %s, %s!\"", r.TargetLetter, r.ChildName)
	}},
	{SlotBackgroundMusic, models.AssetTypeAudio, "Background Music", func(r Request) string {
		return "Cheerful letter hunt background music"
	}},
}

// SlotByKey returns the definition for a slot key.
func SlotByKey(key SlotKey) (SlotDef, bool) {
	for _, def := range Slots {
		if def.Key == key {
			return def, true
		}
	}
	return SlotDef{}, false
}
