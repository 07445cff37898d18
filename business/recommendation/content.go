package recommendation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"storefrontReco/domain"
)

const (
	topCategoryCount  = 3
	priceBandLow      = 0.7
	priceBandHigh     = 1.3
	contentScoreFloor = 0.1

	weightCategory = 0.5
	weightPrice    = 0.3
	weightRating   = 0.2
)

var actionWeights = map[string]float64{
	domain.ActionPurchase: 3,
	domain.ActionReview:   2,
	domain.ActionCartAdd:  2,
	domain.ActionView:     1,
	domain.ActionSearch:   1,
}

// ContentBasedExtractor matches catalog products against the categories and
// price level of the user's recent activity.
type ContentBasedExtractor struct {
	behaviors BehaviorRepository
	catalog   CatalogRepository
	window    int
}

func NewContentBasedExtractor(behaviors BehaviorRepository, catalog CatalogRepository, window int) *ContentBasedExtractor {
	if window <= 0 {
		window = defaultContentEventWindow
	}
	return &ContentBasedExtractor{behaviors: behaviors, catalog: catalog, window: window}
}

func (e *ContentBasedExtractor) Strategy() string { return domain.StrategyContentBased }

func (e *ContentBasedExtractor) Generate(ctx context.Context, userID uint, limit int) ([]domain.CandidateScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.CandidateScore{}, nil
	}

	events, err := e.behaviors.RecentProductBehaviors(ctx, userID, e.window)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent behavior: %w", err)
	}

	profile := buildProfile(events)
	if profile.priceCount == 0 {
		return []domain.CandidateScore{}, nil
	}

	avg := profile.avgPrice()
	candidates, err := e.catalog.FindContentCandidates(ctx, domain.ContentCandidateQuery{
		CategoryIDs:       profile.topCategories(topCategoryCount),
		ExcludeProductIDs: profile.interactedIDs(),
		MinPrice:          avg * priceBandLow,
		MaxPrice:          avg * priceBandHigh,
		Limit:             limit * 2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load content candidates: %w", err)
	}

	return scoreContentCandidates(profile, candidates, limit), nil
}

type preferenceProfile struct {
	categoryTally map[uint64]float64
	categoryNames map[uint64]string
	priceSum      float64
	priceCount    int
	interacted    map[uint64]struct{}
}

func buildProfile(events []domain.ProductBehavior) preferenceProfile {
	p := preferenceProfile{
		categoryTally: make(map[uint64]float64),
		categoryNames: make(map[uint64]string),
		interacted:    make(map[uint64]struct{}),
	}

	for _, ev := range events {
		p.interacted[ev.ProductID] = struct{}{}
		p.categoryTally[ev.CategoryID] += actionWeights[ev.ActionType]
		if ev.CategoryName != "" {
			p.categoryNames[ev.CategoryID] = ev.CategoryName
		}
		if ev.Price > 0 {
			p.priceSum += ev.Price
			p.priceCount++
		}
	}

	return p
}

func (p preferenceProfile) avgPrice() float64 {
	if p.priceCount == 0 {
		return 0
	}
	return p.priceSum / float64(p.priceCount)
}

// topCategories returns up to n category ids by tally desc, id asc.
func (p preferenceProfile) topCategories(n int) []uint64 {
	ids := make([]uint64, 0, len(p.categoryTally))
	for id := range p.categoryTally {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := p.categoryTally[ids[i]], p.categoryTally[ids[j]]
		if ti != tj {
			return ti > tj
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

func (p preferenceProfile) maxTally() float64 {
	top := 0.0
	for _, t := range p.categoryTally {
		if t > top {
			top = t
		}
	}
	return top
}

func (p preferenceProfile) interactedIDs() []uint64 {
	ids := make([]uint64, 0, len(p.interacted))
	for id := range p.interacted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// scoreContentCandidates re-applies the category, exclusion and price band
// rules before scoring, so any catalog adapter yields the same contract.
func scoreContentCandidates(p preferenceProfile, candidates []domain.ProductCandidate, limit int) []domain.CandidateScore {
	avg := p.avgPrice()
	if avg <= 0 || limit <= 0 {
		return []domain.CandidateScore{}
	}

	minPrice, maxPrice := avg*priceBandLow, avg*priceBandHigh
	preferred := make(map[uint64]struct{}, topCategoryCount)
	for _, id := range p.topCategories(topCategoryCount) {
		preferred[id] = struct{}{}
	}
	maxTally := p.maxTally()

	seen := make(map[uint64]struct{}, len(candidates))
	out := make([]domain.CandidateScore, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := p.interacted[c.ProductID]; ok {
			continue
		}
		if _, ok := preferred[c.CategoryID]; !ok {
			continue
		}
		if c.Price < minPrice || c.Price > maxPrice {
			continue
		}
		if _, dup := seen[c.ProductID]; dup {
			continue
		}
		seen[c.ProductID] = struct{}{}

		categoryScore := 0.0
		if maxTally > 0 {
			categoryScore = p.categoryTally[c.CategoryID] / maxTally
		}
		priceScore := math.Max(0, 1-math.Abs(c.Price-avg)/avg)
		ratingScore := clamp01(c.AvgRating / 5)

		score := weightCategory*categoryScore + weightPrice*priceScore + weightRating*ratingScore
		score = math.Min(1, math.Max(contentScoreFloor, score))

		name := c.CategoryName
		if name == "" {
			name = p.categoryNames[c.CategoryID]
		}

		out = append(out, domain.CandidateScore{
			ProductID: c.ProductID,
			Score:     score,
			Reason:    fmt.Sprintf("Matches your interest in %s", name),
			Strategy:  domain.StrategyContentBased,
		})
	}

	sortCandidates(out)
	return truncate(out, limit)
}
