//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"quote-quiz/internal/domain"
	"quote-quiz/internal/domain/model"
	"quote-quiz/internal/domain/ports/adapter"
	"quote-quiz/internal/domain/ports/repository"
)

// =============================
// Repositories
// =============================

// ---- Mock UserRepository ----

// MockUserRepo keeps users in memory; every method has an overridable Func
// hook for simulating failures.
type MockUserRepo struct {
	mu     sync.RWMutex
	store  map[int64]*model.User
	nextID int64

	CreateFunc        func(ctx context.Context, tx repository.Tx, u *model.User) error
	SaveFunc          func(ctx context.Context, tx repository.Tx, u *model.User) error
	SetRewardSentFunc func(ctx context.Context, tx repository.Tx, userID int64, author string) error
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{store: make(map[int64]*model.User), nextID: 1}
}

func cloneUser(u *model.User) *model.User {
	cp := *u
	cp.AuthorStats = make(map[string]model.AuthorStat, len(u.AuthorStats))
	for k, v := range u.AuthorStats {
		cp.AuthorStats[k] = v
	}
	return &cp
}

func (m *MockUserRepo) Create(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.Email == u.Email {
			return domain.ErrAlreadyExists
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.store[u.ID] = cloneUser(u)
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[u.ID]; !ok {
		return domain.ErrNotFound
	}
	m.store[u.ID] = cloneUser(u)
	return nil
}

func (m *MockUserRepo) SetRewardSent(ctx context.Context, tx repository.Tx, userID int64, author string) error {
	if m.SetRewardSentFunc != nil {
		return m.SetRewardSentFunc(ctx, tx, userID, author)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[userID]
	if !ok {
		return domain.ErrNotFound
	}
	stat, ok := u.AuthorStats[author]
	if !ok {
		return domain.ErrNotFound
	}
	stat.RewardSent = true
	u.AuthorStats[author] = stat
	return nil
}

func (m *MockUserRepo) TopByScore(ctx context.Context, tx repository.Tx, limit int) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.User, 0, len(m.store))
	for _, u := range m.store {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// ---- Mock QuoteRepository ----

type MockQuoteRepo struct {
	mu    sync.RWMutex
	store map[int64]*model.Quote

	UpsertFunc         func(ctx context.Context, tx repository.Tx, q *model.Quote) (bool, error)
	FindCandidatesFunc func(ctx context.Context, tx repository.Tx, userID int64, priority model.QuotePriority, limit int) ([]*model.Quote, error)
}

var _ repository.QuoteRepository = (*MockQuoteRepo)(nil)

func NewMockQuoteRepo() *MockQuoteRepo {
	return &MockQuoteRepo{store: make(map[int64]*model.Quote)}
}

// Seed inserts quotes directly, bypassing any Func hooks.
func (m *MockQuoteRepo) Seed(quotes ...*model.Quote) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range quotes {
		cp := *q
		m.store[q.ID] = &cp
	}
}

func (m *MockQuoteRepo) FindByID(ctx context.Context, tx repository.Tx, id int64) (*model.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (m *MockQuoteRepo) Upsert(ctx context.Context, tx repository.Tx, q *model.Quote) (bool, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, q)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.store[q.ID]
	cp := *q
	if exists {
		// keep the counters of the stored row
		cp.GuessedCorrect = m.store[q.ID].GuessedCorrect
		cp.GuessedFalse = m.store[q.ID].GuessedFalse
	}
	m.store[q.ID] = &cp
	return !exists, nil
}

// FindCandidates defaults to "everything, sorted by id". Tests that care
// about the solved-quote filter or the ordering override the hook.
func (m *MockQuoteRepo) FindCandidates(ctx context.Context, tx repository.Tx, userID int64, priority model.QuotePriority, limit int) ([]*model.Quote, error) {
	if m.FindCandidatesFunc != nil {
		return m.FindCandidatesFunc(ctx, tx, userID, priority, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Quote, 0, len(m.store))
	for _, q := range m.store {
		cp := *q
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockQuoteRepo) FindByAuthor(ctx context.Context, tx repository.Tx, author string, excludeID int64) ([]*model.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Quote
	for _, q := range m.store {
		if q.ID != excludeID && model.NormalizeAuthor(q.Author) == model.NormalizeAuthor(author) {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockQuoteRepo) IncrementGuessCounter(ctx context.Context, tx repository.Tx, quoteID int64, correct bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.store[quoteID]
	if !ok {
		return domain.ErrNotFound
	}
	if correct {
		q.GuessedCorrect++
	} else {
		q.GuessedFalse++
	}
	return nil
}

func (m *MockQuoteRepo) CountQuotes(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// ---- Mock AttemptRepository ----

type attemptKey struct{ userID, quoteID int64 }

type MockAttemptRepo struct {
	mu    sync.RWMutex
	store map[attemptKey]*model.Attempt

	UpsertFunc func(ctx context.Context, tx repository.Tx, a *model.Attempt) error
}

var _ repository.AttemptRepository = (*MockAttemptRepo)(nil)

func NewMockAttemptRepo() *MockAttemptRepo {
	return &MockAttemptRepo{store: make(map[attemptKey]*model.Attempt)}
}

func (m *MockAttemptRepo) Find(ctx context.Context, tx repository.Tx, userID, quoteID int64) (*model.Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[attemptKey{userID, quoteID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAttemptRepo) Upsert(ctx context.Context, tx repository.Tx, a *model.Attempt) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[attemptKey{a.UserID, a.QuoteID}] = &cp
	return nil
}

// ---- Mock RewardLogRepository ----

type rewardKey struct {
	userID int64
	author string
}

type MockRewardLog struct {
	mu    sync.RWMutex
	store map[rewardKey]bool
}

var _ repository.RewardLogRepository = (*MockRewardLog)(nil)

func NewMockRewardLog() *MockRewardLog {
	return &MockRewardLog{store: make(map[rewardKey]bool)}
}

func (m *MockRewardLog) Save(ctx context.Context, tx repository.Tx, userID int64, author string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[rewardKey{userID, author}] = true
	return nil
}

func (m *MockRewardLog) Exists(ctx context.Context, tx repository.Tx, userID int64, author string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store[rewardKey{userID, author}], nil
}

func (m *MockRewardLog) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// ---- Mock CooldownStore ----

type MockCooldownStore struct {
	mu     sync.RWMutex
	active map[int64]bool

	IsActiveFunc func(ctx context.Context, userID int64) (bool, error)
	MarkFunc     func(ctx context.Context, userID int64) error
}

var _ repository.CooldownStore = (*MockCooldownStore)(nil)

func NewMockCooldownStore() *MockCooldownStore {
	return &MockCooldownStore{active: make(map[int64]bool)}
}

func (m *MockCooldownStore) IsActive(ctx context.Context, userID int64) (bool, error) {
	if m.IsActiveFunc != nil {
		return m.IsActiveFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active[userID], nil
}

func (m *MockCooldownStore) Mark(ctx context.Context, userID int64) error {
	if m.MarkFunc != nil {
		return m.MarkFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[userID] = true
	return nil
}

func (m *MockCooldownStore) Marked(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active[userID]
}

// =============================
// Adapters
// =============================

// ---- Mock QuoteFeed ----

type MockFeed struct {
	mu    sync.Mutex
	calls int
	Items []adapter.CatalogQuote

	FetchAllFunc func(ctx context.Context) ([]adapter.CatalogQuote, error)
}

var _ adapter.QuoteFeed = (*MockFeed)(nil)

func (m *MockFeed) FetchAll(ctx context.Context) ([]adapter.CatalogQuote, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx)
	}
	return m.Items, nil
}

func (m *MockFeed) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ---- Mock RewardMailer ----

type SentMail struct {
	To     string
	Author string
}

type MockMailer struct {
	mu   sync.Mutex
	Sent []SentMail

	SendDiscountFunc func(ctx context.Context, to, author string) error
}

var _ adapter.RewardMailer = (*MockMailer)(nil)

func (m *MockMailer) SendDiscount(ctx context.Context, to, author string) error {
	if m.SendDiscountFunc != nil {
		if err := m.SendDiscountFunc(ctx, to, author); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMail{To: to, Author: author})
	return nil
}

func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// ---- Mock PasswordHasher ----

// MockHasher is a transparent stand-in: the "hash" is the plaintext with a
// prefix, so tests can assert what got stored.
type MockHasher struct{}

var _ adapter.PasswordHasher = (*MockHasher)(nil)

func (MockHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (MockHasher) Compare(hash, plain string) bool   { return hash == "hashed:"+plain }

// =============================
// Infrastructure
// =============================

// MockTxManager runs the function inline with a nil handle; the in-memory
// repositories ignore the handle anyway.
type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, nil)
}

// inlineRunner executes submitted tasks synchronously so tests observe the
// side effects of background work without sleeping.
type inlineRunner struct {
	SubmitErr error
}

func (r *inlineRunner) Submit(task func(ctx context.Context) error) error {
	if r.SubmitErr != nil {
		return r.SubmitErr
	}
	return task(context.Background())
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}
