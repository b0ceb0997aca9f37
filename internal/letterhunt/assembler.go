package letterhunt

import (
	"time"

	"storybloom-admin-backend/internal/models"
)

const (
	StatusMissing    = "missing"
	StatusGenerating = "generating"
	StatusReady      = "ready"
)

// BackgroundMusicFallbackURL is the stock track used when no generated
// background music exists; the slot is never reported missing.
const BackgroundMusicFallbackURL = "https://cdn.storybloom.app/music/letter-hunt-theme.mp3"

// SlotDescriptor is the per-slot payload entry. Description is always
// populated from the slot template so the review UI can show what is
// expected even when the slot is unfilled.
type SlotDescriptor struct {
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	URL         string     `json:"url,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// Payload is the full assembled result for one Letter Hunt request.
type Payload struct {
	ChildName    string                     `json:"child_name"`
	TargetLetter string                     `json:"target_letter"`
	Theme        string                     `json:"theme"`
	Slots        map[SlotKey]SlotDescriptor `json:"slots"`
}

// Assemble builds one descriptor per slot from the selection results.
func Assemble(req Request, resolved map[SlotKey]*models.Asset) Payload {
	slots := make(map[SlotKey]SlotDescriptor, len(Slots))

	for _, def := range Slots {
		desc := SlotDescriptor{
			Status:      StatusMissing,
			Type:        def.Kind,
			Name:        def.Label,
			Description: def.Describe(req),
		}

		if a := resolved[def.Key]; a != nil && a.URL.Valid && a.URL.String != "" {
			desc.Status = StatusReady
			desc.URL = a.URL.String
			generatedAt := a.CreatedAt
			desc.GeneratedAt = &generatedAt
		} else if def.Key == SlotBackgroundMusic {
			desc.Status = StatusReady
			desc.URL = BackgroundMusicFallbackURL
		}

		slots[def.Key] = desc
	}

	return Payload{
		ChildName:    req.ChildName,
		TargetLetter: req.TargetLetter,
		Theme:        req.Theme,
		Slots:        slots,
	}
}
