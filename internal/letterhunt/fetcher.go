package letterhunt

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
	"storybloom-admin-backend/internal/models"
	"storybloom-admin-backend/internal/supabase"
)

// AssetSource is the slice of the database client the fetcher needs.
type AssetSource interface {
	QueryTemplateAssets(ctx context.Context, q supabase.AssetQuery) ([]models.Asset, error)
}

// Both approved and pending assets are candidates: reviewers want to see
// what a video would look like before everything clears review.
var activeStatuses = []string{models.AssetStatusApproved, models.AssetStatusPending}

// poolQueries returns the seven fetch groups, in priority order. The order
// matters: when no theme match exists the selector falls back to the first
// candidate in fetch order, so earlier groups implicitly win.
func poolQueries(req Request) []supabase.AssetQuery {
	child := req.ChildName
	letter := req.TargetLetter
	empty := ""

	return []supabase.AssetQuery{
		// 1. fully personalized, letter-specific
		{Template: TemplateName, Statuses: activeStatuses, ChildName: &child, TargetLetter: &letter},
		// 2. letter-specific video, any personalization
		{Template: TemplateName, Statuses: activeStatuses, Types: []string{models.AssetTypeVideo}, TargetLetter: &letter},
		// 3. letter-specific generic audio
		{Template: TemplateName, Statuses: activeStatuses, Types: []string{models.AssetTypeAudio}, TargetLetter: &letter, ChildName: &empty},
		// 4. fully generic video
		{Template: TemplateName, Statuses: activeStatuses, Types: []string{models.AssetTypeVideo}, ChildName: &empty, TargetLetter: &empty},
		// 5. fully generic audio
		{Template: TemplateName, Statuses: activeStatuses, Types: []string{models.AssetTypeAudio}, ChildName: &empty, TargetLetter: &empty},
		// 6. letter-specific generic image
		{Template: TemplateName, Statuses: activeStatuses, Types: []string{models.AssetTypeImage}, TargetLetter: &letter, ChildName: &empty},
		// 7. personalized title cards (keyed by child, not letter)
		{Template: TemplateName, Statuses: activeStatuses, ImageType: string(SlotTitleCard), ChildName: &child},
	}
}

// FetchPool runs the seven fetch groups concurrently and concatenates their
// results in fixed group order. A failed group logs and contributes an empty
// list; callers never see partial failure. Results are not de-duplicated: an
// asset matching two groups appears twice, and selection is first-match.
func FetchPool(ctx context.Context, src AssetSource, req Request) []models.Asset {
	queries := poolQueries(req)
	results := make([][]models.Asset, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			assets, err := src.QueryTemplateAssets(gctx, q)
			if err != nil {
				log.Printf("letter hunt fetch group %d failed: %v", i+1, err)
				return nil
			}
			results[i] = assets
			return nil
		})
	}
	g.Wait()

	var pool []models.Asset
	for _, r := range results {
		pool = append(pool, r...)
	}
	return pool
}
