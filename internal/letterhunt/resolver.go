package letterhunt

import (
	"context"

	"storybloom-admin-backend/internal/models"
)

// Resolver runs the full fetch → classify → select → assemble pipeline.
// It owns no state and no cache; every call recomputes from the live
// asset store.
type Resolver struct {
	src AssetSource
}

func NewResolver(src AssetSource) *Resolver {
	return &Resolver{src: src}
}

// Resolve assembles the payload for one request.
func (r *Resolver) Resolve(ctx context.Context, req Request) Payload {
	pool := FetchPool(ctx, r.src, req)

	candidates := make(map[SlotKey][]models.Asset)
	for _, asset := range pool {
		// Assets personalized for a different child are never eligible,
		// whatever slot they would classify into.
		if asset.Personalized() && asset.Metadata.ChildName != req.ChildName {
			continue
		}

		slot, ok := Classify(&asset)
		if !ok {
			continue
		}
		candidates[slot] = append(candidates[slot], asset)
	}

	resolved := make(map[SlotKey]*models.Asset)
	for _, def := range Slots {
		if selected := SelectForSlot(candidates[def.Key], req.Theme); selected != nil {
			resolved[def.Key] = selected
		}
	}

	return Assemble(req, resolved)
}
