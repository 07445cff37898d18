package recommendation

import (
	"context"
	"fmt"

	"storefrontReco/domain"
	"storefrontReco/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// BatchGenerate regenerates recommendations for every customer with bounded
// concurrency. A failing user is recorded in its result and never stops the
// run.
func (s *Service) BatchGenerate(ctx context.Context) ([]domain.BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	userIDs, err := s.userRepo.FindCustomerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	results := make([]domain.BatchResult, len(userIDs))

	var g errgroup.Group
	g.SetLimit(s.cfg.BatchConcurrency)

	for i, uid := range userIDs {
		g.Go(func() error {
			results[i] = s.generateOne(ctx, uid)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	logger.Info("batch generation finished",
		"trace_id", TraceIDFromContext(ctx),
		"users", len(results),
		"failed", failed,
	)

	return results, nil
}

func (s *Service) generateOne(ctx context.Context, userID uint) (res domain.BatchResult) {
	res.UserID = userID

	defer func() {
		if r := recover(); r != nil {
			res.Error = fmt.Sprintf("panic: %v", r)
			BatchUsersTotal.WithLabelValues("failed").Inc()
			logger.Error("batch generation panicked", "user_id", userID, "panic", r)
		}
	}()

	recs, err := s.GenerateForUser(ctx, userID, 0)
	if err != nil {
		res.Error = err.Error()
		BatchUsersTotal.WithLabelValues("failed").Inc()
		logWarn(ctx, "batch generation failed", userID, "", "error", err)
		return res
	}

	res.Count = len(recs)
	BatchUsersTotal.WithLabelValues("ok").Inc()
	return res
}
