package recommendation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"storefrontReco/domain"
)

// memStore is an in-memory stand-in for the Postgres repositories. Its
// filtering follows the SQL in internal/repository/postgres.
type memStore struct {
	mu sync.Mutex

	products   map[uint64]domain.Product
	categories map[uint64]string
	orders     map[uint64]domain.Orders
	items      []domain.OrderItem
	reviews    []domain.Review
	events     []domain.BehaviorEvent
	recos      []domain.Recommendation
	customers  []uint

	nextEventID uint64
	nextRecoID  uint64

	failUpsert map[uint64]bool
	upserts    int
}

func newMemStore() *memStore {
	return &memStore{
		products:   make(map[uint64]domain.Product),
		categories: make(map[uint64]string),
		orders:     make(map[uint64]domain.Orders),
		failUpsert: make(map[uint64]bool),
	}
}

func (m *memStore) addCategory(id uint64, name string) {
	m.categories[id] = name
}

func (m *memStore) addProduct(id, categoryID uint64, price, quantity float64) {
	m.products[id] = domain.Product{
		ID:          id,
		CategoryID:  categoryID,
		ProductName: "product",
		NormalPrice: price,
		Quantity:    quantity,
	}
}

func (m *memStore) addOrder(id uint64, userID uint, status string, productIDs ...uint64) {
	m.orders[id] = domain.Orders{ID: id, UserID: userID, OrderStatus: status}
	for _, pid := range productIDs {
		m.items = append(m.items, domain.OrderItem{
			ID:        uint64(len(m.items) + 1),
			OrderID:   id,
			ProductID: pid,
			Quantity:  1,
		})
	}
}

func (m *memStore) addEvent(userID uint, productID uint64, action string, at time.Time) {
	pid := productID
	m.nextEventID++
	m.events = append(m.events, domain.BehaviorEvent{
		ID:         m.nextEventID,
		UserID:     userID,
		ProductID:  &pid,
		ActionType: action,
		CreatedAt:  at,
	})
}

func (m *memStore) isPaid(orderID uint64) (domain.Orders, bool) {
	o, ok := m.orders[orderID]
	return o, ok && o.OrderStatus == domain.OrderStatusPaid
}

// ---- OrderHistoryRepository ----

func (m *memStore) PaidProductIDs(ctx context.Context, userID uint) ([]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[uint64]bool{}
	var out []uint64
	for _, it := range m.items {
		o, paid := m.isPaid(it.OrderID)
		if !paid || o.UserID != userID || seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		out = append(out, it.ProductID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (m *memStore) SampleCoPurchases(ctx context.Context, userID uint, productIDs []uint64, limit int) ([]domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := map[uint64]bool{}
	for _, id := range productIDs {
		want[id] = true
	}

	var out []domain.OrderItem
	for _, it := range m.items {
		o, paid := m.isPaid(it.OrderID)
		if !paid || o.UserID == userID || !want[it.ProductID] {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) BasketItems(ctx context.Context, orderIDs []uint64) ([]domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := map[uint64]bool{}
	for _, id := range orderIDs {
		want[id] = true
	}
	var out []domain.OrderItem
	for _, it := range m.items {
		if want[it.OrderID] {
			out = append(out, it)
		}
	}
	return out, nil
}

// ---- BehaviorRepository ----

func (m *memStore) Create(ctx context.Context, event *domain.BehaviorEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextEventID++
	event.ID = m.nextEventID
	m.events = append(m.events, *event)
	return nil
}

func (m *memStore) RecentProductBehaviors(ctx context.Context, userID uint, limit int) ([]domain.ProductBehavior, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var evs []domain.BehaviorEvent
	for _, ev := range m.events {
		if ev.UserID == userID && ev.ProductID != nil {
			evs = append(evs, ev)
		}
	}
	sort.Slice(evs, func(i, j int) bool {
		if !evs[i].CreatedAt.Equal(evs[j].CreatedAt) {
			return evs[i].CreatedAt.After(evs[j].CreatedAt)
		}
		return evs[i].ID > evs[j].ID
	})
	if len(evs) > limit {
		evs = evs[:limit]
	}

	var out []domain.ProductBehavior
	for _, ev := range evs {
		p, ok := m.products[*ev.ProductID]
		if !ok {
			continue
		}
		out = append(out, domain.ProductBehavior{
			EventID:      ev.ID,
			ProductID:    p.ID,
			ActionType:   ev.ActionType,
			CategoryID:   p.CategoryID,
			CategoryName: m.categories[p.CategoryID],
			Price:        p.EffectivePrice(),
			CreatedAt:    ev.CreatedAt,
		})
	}
	return out, nil
}

func (m *memStore) TrendingProducts(ctx context.Context, since time.Time, limit int) ([]domain.ProductEventCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[uint64]int64{}
	for _, ev := range m.events {
		if ev.ProductID == nil || ev.CreatedAt.Before(since) {
			continue
		}
		counts[*ev.ProductID]++
	}

	var out []domain.ProductEventCount
	for pid, n := range counts {
		out = append(out, domain.ProductEventCount{
			ProductID:    pid,
			CategoryName: m.categories[m.products[pid].CategoryID],
			EventCount:   n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EventCount != out[j].EventCount {
			return out[i].EventCount > out[j].EventCount
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- CatalogRepository ----

func (m *memStore) rating(productID uint64) (float64, int64) {
	var sum, n int64
	for _, r := range m.reviews {
		if r.ProductID == productID && r.IsApproved {
			sum += int64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

func (m *memStore) FindContentCandidates(ctx context.Context, q domain.ContentCandidateQuery) ([]domain.ProductCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cats := map[uint64]bool{}
	for _, id := range q.CategoryIDs {
		cats[id] = true
	}
	excl := map[uint64]bool{}
	for _, id := range q.ExcludeProductIDs {
		excl[id] = true
	}

	var out []domain.ProductCandidate
	for _, p := range m.products {
		price := p.EffectivePrice()
		if !cats[p.CategoryID] || excl[p.ID] || price < q.MinPrice || price > q.MaxPrice {
			continue
		}
		avg, n := m.rating(p.ID)
		out = append(out, domain.ProductCandidate{
			ProductID:    p.ID,
			ProductName:  p.ProductName,
			CategoryID:   p.CategoryID,
			CategoryName: m.categories[p.CategoryID],
			Price:        price,
			AvgRating:    avg,
			ReviewCount:  n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgRating != out[j].AvgRating {
			return out[i].AvgRating > out[j].AvgRating
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memStore) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ---- RecommendationRepository ----

func (m *memStore) Upsert(ctx context.Context, reco *domain.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upserts++
	if m.failUpsert[reco.ProductID] {
		return errors.New("upsert failed")
	}

	for i, r := range m.recos {
		if r.UserID == reco.UserID && r.ProductID == reco.ProductID && r.Strategy == reco.Strategy {
			m.recos[i].Score = reco.Score
			m.recos[i].Reason = reco.Reason
			m.recos[i].CreatedAt = reco.CreatedAt
			m.recos[i].UpdatedAt = reco.UpdatedAt
			reco.ID = r.ID
			return nil
		}
	}

	m.nextRecoID++
	reco.ID = m.nextRecoID
	m.recos = append(m.recos, *reco)
	return nil
}

func (m *memStore) FindByKey(ctx context.Context, userID uint, productID uint64, strategy string) (*domain.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.recos {
		if r.UserID == userID && r.ProductID == productID && r.Strategy == strategy {
			out := r
			return &out, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memStore) Query(ctx context.Context, f domain.RecommendationFilter) ([]domain.RecommendationView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	strategies := map[string]bool{}
	for _, s := range f.Strategies {
		strategies[s] = true
	}

	var out []domain.RecommendationView
	for _, r := range m.recos {
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		if len(strategies) > 0 && !strategies[r.Strategy] {
			continue
		}
		p := m.products[r.ProductID]
		avg, n := m.rating(r.ProductID)
		out = append(out, domain.RecommendationView{
			ID:           r.ID,
			UserID:       r.UserID,
			ProductID:    r.ProductID,
			Strategy:     r.Strategy,
			Score:        r.Score,
			Reason:       r.Reason,
			IsViewed:     r.IsViewed,
			IsClicked:    r.IsClicked,
			IsPurchased:  r.IsPurchased,
			CreatedAt:    r.CreatedAt,
			ProductName:  p.ProductName,
			CategoryID:   p.CategoryID,
			CategoryName: m.categories[p.CategoryID],
			Price:        p.NormalPrice,
			SalePrice:    p.SalePrice,
			Quantity:     p.Quantity,
			AvgRating:    avg,
			ReviewCount:  n,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if f.SortOrder == domain.SortDesc {
			a, b = b, a
		}
		if f.SortBy == domain.SortByCreatedAt {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Score < b.Score
	})
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memStore) UpdateInteraction(ctx context.Context, userID uint, productID uint64, upd domain.InteractionUpdate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for i := range m.recos {
		r := &m.recos[i]
		if r.UserID != userID || r.ProductID != productID {
			continue
		}
		if upd.IsViewed != nil {
			r.IsViewed = *upd.IsViewed
		}
		if upd.IsClicked != nil {
			r.IsClicked = *upd.IsClicked
		}
		if upd.IsPurchased != nil {
			r.IsPurchased = *upd.IsPurchased
		}
		if upd.Score != nil {
			r.Score = *upd.Score
		}
		if upd.Reason != nil {
			r.Reason = *upd.Reason
		}
		n++
	}
	return n, nil
}

func (m *memStore) AggregateByStrategy(ctx context.Context, userID *uint) ([]domain.StrategyAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byStrategy := map[string]*domain.StrategyAggregate{}
	sums := map[string]float64{}
	for _, r := range m.recos {
		if userID != nil && r.UserID != *userID {
			continue
		}
		agg, ok := byStrategy[r.Strategy]
		if !ok {
			agg = &domain.StrategyAggregate{Strategy: r.Strategy}
			byStrategy[r.Strategy] = agg
		}
		agg.Count++
		if r.IsClicked {
			agg.Clicked++
		}
		if r.IsPurchased {
			agg.Purchased++
		}
		sums[r.Strategy] += r.Score
	}

	var out []domain.StrategyAggregate
	for s, agg := range byStrategy {
		agg.AvgScore = sums[s] / float64(agg.Count)
		out = append(out, *agg)
	}
	return out, nil
}

func (m *memStore) recosFor(userID uint) []domain.Recommendation {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.Recommendation
	for _, r := range m.recos {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// ---- UserRepository ----

func (m *memStore) FindCustomerIDs(ctx context.Context) ([]uint, error) {
	return m.customers, nil
}

// ---- helpers ----

type stubExtractor struct {
	strategy string
	out      []domain.CandidateScore
	err      error

	mu     sync.Mutex
	limits []int
}

func (s *stubExtractor) Strategy() string { return s.strategy }

func (s *stubExtractor) Generate(ctx context.Context, userID uint, limit int) ([]domain.CandidateScore, error) {
	s.mu.Lock()
	s.limits = append(s.limits, limit)
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.CandidateScore, len(s.out))
	copy(out, s.out)
	return truncate(out, limit), nil
}

func newTestService(store *memStore, now time.Time) *Service {
	svc := NewService(DefaultConfig(), store, store, store, store, store, nil, nil)
	svc.now = func() time.Time { return now }
	svc.extractors[domain.StrategyTrending].(*TrendingExtractor).now = svc.now
	return svc
}

func boolPtr(b bool) *bool { return &b }
func floatPtr(f float64) *float64 { return &f }
func uintPtr(u uint) *uint { return &u }
func uint64Ptr(u uint64) *uint64 { return &u }
func stringPtr(s string) *string { return &s }
