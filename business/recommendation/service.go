package recommendation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"storefrontReco/domain"
	"storefrontReco/pkg/logger"
)

// ---- Usecase / Service ----

type Service struct {
	cfg        Config
	blender    *Blender
	extractors map[string]Extractor
	recoRepo   RecommendationRepository
	behavior   BehaviorRepository
	userRepo   UserRepository
	now        func() time.Time
}

// NewService wires the extractors and blender over the given repositories.
// trendingCache and eligibility may be nil.
func NewService(
	cfg Config,
	orderRepo OrderHistoryRepository,
	behaviorRepo BehaviorRepository,
	catalogRepo CatalogRepository,
	recoRepo RecommendationRepository,
	userRepo UserRepository,
	trendingCache TrendingCache,
	eligibility EligibilityChecker,
) *Service {
	cfg = cfg.withDefaults()

	collaborative := NewCollaborativeExtractor(orderRepo, cfg.CollaborativeSampleSize)
	content := NewContentBasedExtractor(behaviorRepo, catalogRepo, cfg.ContentEventWindow)
	trending := NewTrendingExtractor(behaviorRepo, trendingCache, cfg)

	return &Service{
		cfg:     cfg,
		blender: NewBlender(collaborative, content, trending, eligibility),
		extractors: map[string]Extractor{
			domain.StrategyCollaborative: collaborative,
			domain.StrategyContentBased:  content,
			domain.StrategyTrending:      trending,
		},
		recoRepo: recoRepo,
		behavior: behaviorRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// GenerateForUser blends all strategies and stores the result. Each row keeps
// the label of the strategy that won the merge for that product.
func (s *Service) GenerateForUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if userID == 0 {
		return nil, ErrInvalidUserID
	}
	limit, err := s.normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { GenerationDuration.WithLabelValues("blended").Observe(time.Since(start).Seconds()) }()

	candidates, err := s.blender.Blend(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to blend recommendations: %w", err)
	}

	return s.persist(ctx, userID, candidates, ""), nil
}

// GenerateByStrategy runs one extractor and stores its output under its own
// label. "personalized" stores the blended list under that label.
func (s *Service) GenerateByStrategy(ctx context.Context, userID uint, strategy string, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if userID == 0 {
		return nil, ErrInvalidUserID
	}
	ext, ok := s.extractors[strategy]
	if !ok && strategy != domain.StrategyPersonalized {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
	limit, err := s.normalizeLimit(limit)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { GenerationDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds()) }()

	if strategy == domain.StrategyPersonalized {
		candidates, err := s.blender.Blend(ctx, userID, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to blend recommendations: %w", err)
		}
		return s.persist(ctx, userID, candidates, domain.StrategyPersonalized), nil
	}

	candidates, err := ext.Generate(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s recommendations: %w", strategy, err)
	}
	CandidatesTotal.WithLabelValues(strategy).Add(float64(len(candidates)))

	candidates = mergeCandidates(candidates)
	candidates = filterEligible(ctx, s.blender.eligibility, userID, candidates)
	return s.persist(ctx, userID, truncate(candidates, limit), ""), nil
}

// persist upserts every candidate and re-reads the stored row so interaction
// flags reflect storage. Rows that fail are logged and skipped. A non-empty
// label overrides the candidate's strategy.
func (s *Service) persist(ctx context.Context, userID uint, candidates []domain.CandidateScore, label string) []domain.Recommendation {
	now := s.now()
	saved := make([]domain.Recommendation, 0, len(candidates))

	for _, c := range candidates {
		strategy := c.Strategy
		if label != "" {
			strategy = label
		}

		reco := domain.Recommendation{
			UserID:    userID,
			ProductID: c.ProductID,
			Strategy:  strategy,
			Score:     clamp01(c.Score),
			Reason:    c.Reason,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := s.recoRepo.Upsert(ctx, &reco); err != nil {
			PersistFailuresTotal.Inc()
			logWarn(ctx, "failed to persist recommendation", userID, strategy, "product_id", c.ProductID, "error", err)
			continue
		}

		stored, err := s.recoRepo.FindByKey(ctx, userID, c.ProductID, strategy)
		if err != nil || stored == nil {
			logWarn(ctx, "failed to reload recommendation", userID, strategy, "product_id", c.ProductID, "error", err)
			saved = append(saved, reco)
			continue
		}
		saved = append(saved, *stored)
	}

	logger.Info("recommendations generated",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"candidates", len(candidates),
		"saved", len(saved),
	)

	return saved
}

func (s *Service) TrackBehavior(ctx context.Context, event domain.BehaviorEvent) (*domain.BehaviorEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if event.UserID == 0 {
		return nil, ErrInvalidUserID
	}
	if !domain.IsValidActionType(event.ActionType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidActionType, event.ActionType)
	}
	if event.ProductID != nil && *event.ProductID == 0 {
		return nil, ErrInvalidProductID
	}
	if event.SessionID != nil && strings.TrimSpace(*event.SessionID) == "" {
		event.SessionID = nil
	}

	event.ID = 0
	event.CreatedAt = s.now()

	if err := s.behavior.Create(ctx, &event); err != nil {
		return nil, fmt.Errorf("failed to record behavior: %w", err)
	}

	BehaviorEventsTotal.WithLabelValues(event.ActionType).Inc()
	return &event, nil
}

func (s *Service) Query(ctx context.Context, filter domain.RecommendationFilter) ([]domain.RecommendationView, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if filter.UserID != nil && *filter.UserID == 0 {
		return nil, ErrInvalidUserID
	}
	for _, st := range filter.Strategies {
		if !domain.IsValidStrategy(st) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, st)
		}
	}

	limit, err := s.normalizeLimit(filter.Limit)
	if err != nil {
		return nil, err
	}
	filter.Limit = limit

	switch filter.SortBy {
	case "":
		filter.SortBy = domain.SortByScore
	case domain.SortByScore, domain.SortByCreatedAt:
	default:
		return nil, fmt.Errorf("%w: sort_by %q", ErrInvalidSort, filter.SortBy)
	}

	switch strings.ToLower(filter.SortOrder) {
	case "":
		filter.SortOrder = domain.SortDesc
	case domain.SortAsc, domain.SortDesc:
		filter.SortOrder = strings.ToLower(filter.SortOrder)
	default:
		return nil, fmt.Errorf("%w: sort_order %q", ErrInvalidSort, filter.SortOrder)
	}

	views, err := s.recoRepo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	return views, nil
}

// UpdateInteraction applies upd to every strategy row of the pair and returns
// the number of rows changed.
func (s *Service) UpdateInteraction(ctx context.Context, userID uint, productID uint64, upd domain.InteractionUpdate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}
	if userID == 0 {
		return 0, ErrInvalidUserID
	}
	if productID == 0 {
		return 0, ErrInvalidProductID
	}
	if upd.IsEmpty() {
		return 0, ErrEmptyInteractionUpdate
	}
	if upd.Score != nil && (math.IsNaN(*upd.Score) || *upd.Score < 0 || *upd.Score > 1) {
		return 0, ErrInvalidScore
	}

	n, err := s.recoRepo.UpdateInteraction(ctx, userID, productID, upd)
	if err != nil {
		return 0, fmt.Errorf("failed to update interaction: %w", err)
	}
	return n, nil
}

func (s *Service) normalizeLimit(limit int) (int, error) {
	if limit < 0 || limit > s.cfg.MaxLimit {
		return 0, fmt.Errorf("%w: must be between 0 and %d", ErrInvalidLimit, s.cfg.MaxLimit)
	}
	if limit == 0 {
		return s.cfg.DefaultLimit, nil
	}
	return limit, nil
}
