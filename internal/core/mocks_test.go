package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/identity"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

type mockProfileRepository struct {
	GetByIDFunc           func(ctx context.Context, userID string) (*models.UserProfile, error)
	CreateIfAbsentFunc    func(ctx context.Context, profile *models.UserProfile) (bool, error)
	UpdateSocialLinksFunc func(ctx context.Context, userID string, links models.SocialLinks) error

	mu      sync.Mutex
	created []*models.UserProfile
}

func (m *mockProfileRepository) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	if m.GetByIDFunc == nil {
		return nil, fmt.Errorf("profile '%s': %w", userID, db.ErrNotFound)
	}
	return m.GetByIDFunc(ctx, userID)
}

func (m *mockProfileRepository) CreateIfAbsent(ctx context.Context, profile *models.UserProfile) (bool, error) {
	m.mu.Lock()
	m.created = append(m.created, profile)
	m.mu.Unlock()
	if m.CreateIfAbsentFunc == nil {
		return true, nil
	}
	return m.CreateIfAbsentFunc(ctx, profile)
}

func (m *mockProfileRepository) UpdateSocialLinks(ctx context.Context, userID string, links models.SocialLinks) error {
	if m.UpdateSocialLinksFunc == nil {
		return nil
	}
	return m.UpdateSocialLinksFunc(ctx, userID, links)
}

type bannerSubscription struct {
	userID  string
	onData  func([]*models.SavedBanner)
	onError func(error)
	active  bool
}

// mockBannerRepository keeps banners in memory and delivers the whole list to live
// subscriptions synchronously on every change.
type mockBannerRepository struct {
	CreateErr error

	mu            sync.Mutex
	banners       map[string][]*models.SavedBanner
	subscriptions []*bannerSubscription
	createCalls   int
	deleteCalls   int
	nextID        int
}

func newMockBannerRepository() *mockBannerRepository {
	return &mockBannerRepository{banners: make(map[string][]*models.SavedBanner)}
}

func (m *mockBannerRepository) Create(ctx context.Context, userID string, cfg models.BannerConfig) (string, error) {
	m.mu.Lock()
	m.createCalls++
	if m.CreateErr != nil {
		m.mu.Unlock()
		return "", m.CreateErr
	}
	m.nextID++
	id := fmt.Sprintf("b%d", m.nextID)
	m.banners[userID] = append([]*models.SavedBanner{{ID: id, BannerConfig: cfg}}, m.banners[userID]...)
	m.mu.Unlock()
	m.deliver(userID)
	return id, nil
}

func (m *mockBannerRepository) GetByID(ctx context.Context, userID, bannerID string) (*models.SavedBanner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.banners[userID] {
		if b.ID == bannerID {
			return b, nil
		}
	}
	return nil, fmt.Errorf("banner '%s': %w", bannerID, db.ErrNotFound)
}

func (m *mockBannerRepository) List(ctx context.Context, userID string) ([]*models.SavedBanner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.SavedBanner{}, m.banners[userID]...), nil
}

func (m *mockBannerRepository) Subscribe(ctx context.Context, userID string, onData func([]*models.SavedBanner), onError func(error)) func() {
	sub := &bannerSubscription{userID: userID, onData: onData, onError: onError, active: true}
	m.mu.Lock()
	m.subscriptions = append(m.subscriptions, sub)
	items := append([]*models.SavedBanner{}, m.banners[userID]...)
	m.mu.Unlock()

	onData(items)
	return func() {
		m.mu.Lock()
		sub.active = false
		m.mu.Unlock()
	}
}

func (m *mockBannerRepository) Delete(ctx context.Context, userID, bannerID string) error {
	m.mu.Lock()
	m.deleteCalls++
	kept := m.banners[userID][:0]
	for _, b := range m.banners[userID] {
		if b.ID != bannerID {
			kept = append(kept, b)
		}
	}
	m.banners[userID] = kept
	m.mu.Unlock()
	m.deliver(userID)
	return nil
}

func (m *mockBannerRepository) deliver(userID string) {
	m.mu.Lock()
	var subs []*bannerSubscription
	for _, s := range m.subscriptions {
		if s.active && s.userID == userID {
			subs = append(subs, s)
		}
	}
	items := append([]*models.SavedBanner{}, m.banners[userID]...)
	m.mu.Unlock()
	for _, s := range subs {
		s.onData(items)
	}
}

func (m *mockBannerRepository) activeSubscriptions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []string
	for _, s := range m.subscriptions {
		if s.active {
			users = append(users, s.userID)
		}
	}
	return users
}

func (m *mockBannerRepository) fail(userID string, err error) {
	m.mu.Lock()
	var subs []*bannerSubscription
	for _, s := range m.subscriptions {
		if s.active && s.userID == userID {
			subs = append(subs, s)
		}
	}
	m.mu.Unlock()
	for _, s := range subs {
		s.onError(err)
	}
}

type mockSharedContentRepository struct {
	CreateGeneralFunc func(ctx context.Context, content *models.SharedGeneralContent) (string, error)
	CreateAmazonFunc  func(ctx context.Context, content *models.SharedAmazonContent) (string, error)
	GetGeneralFunc    func(ctx context.Context, id string) (*models.SharedGeneralContent, error)
	GetAmazonFunc     func(ctx context.Context, id string) (*models.SharedAmazonContent, error)

	mu           sync.Mutex
	generalGets  int
	amazonGets   int
	createdCount int
}

func (m *mockSharedContentRepository) CreateGeneral(ctx context.Context, content *models.SharedGeneralContent) (string, error) {
	m.mu.Lock()
	m.createdCount++
	m.mu.Unlock()
	return m.CreateGeneralFunc(ctx, content)
}

func (m *mockSharedContentRepository) CreateAmazon(ctx context.Context, content *models.SharedAmazonContent) (string, error) {
	m.mu.Lock()
	m.createdCount++
	m.mu.Unlock()
	return m.CreateAmazonFunc(ctx, content)
}

func (m *mockSharedContentRepository) GetGeneral(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
	m.mu.Lock()
	m.generalGets++
	m.mu.Unlock()
	if m.GetGeneralFunc == nil {
		return nil, fmt.Errorf("shared general '%s': %w", id, db.ErrNotFound)
	}
	return m.GetGeneralFunc(ctx, id)
}

func (m *mockSharedContentRepository) GetAmazon(ctx context.Context, id string) (*models.SharedAmazonContent, error) {
	m.mu.Lock()
	m.amazonGets++
	m.mu.Unlock()
	if m.GetAmazonFunc == nil {
		return nil, fmt.Errorf("shared amazon '%s': %w", id, db.ErrNotFound)
	}
	return m.GetAmazonFunc(ctx, id)
}

type mockGenerator struct {
	GeneralFunc func(ctx context.Context, in models.GeneralContentInput) (string, error)
	AmazonFunc  func(ctx context.Context, in models.AmazonContentInput) (string, error)
	IdeasFunc   func(ctx context.Context, theme string) ([]models.BannerIdea, error)

	mu    sync.Mutex
	calls int
}

func (m *mockGenerator) count() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *mockGenerator) GenerateGeneralContent(ctx context.Context, in models.GeneralContentInput) (string, error) {
	m.count()
	return m.GeneralFunc(ctx, in)
}

func (m *mockGenerator) GenerateAmazonContent(ctx context.Context, in models.AmazonContentInput) (string, error) {
	m.count()
	return m.AmazonFunc(ctx, in)
}

func (m *mockGenerator) GenerateBannerIdeas(ctx context.Context, theme string) ([]models.BannerIdea, error) {
	m.count()
	return m.IdeasFunc(ctx, theme)
}

// mockIdentityBackend accepts any password equal to "secret1" and names users after their email.
type mockIdentityBackend struct {
	SignUpErr error
}

func (m *mockIdentityBackend) SignUp(ctx context.Context, email, password string) (*models.AuthUser, error) {
	if m.SignUpErr != nil {
		return nil, m.SignUpErr
	}
	return &models.AuthUser{UID: "uid-" + email, Email: email}, nil
}

func (m *mockIdentityBackend) SignIn(ctx context.Context, email, password string) (*models.AuthUser, error) {
	if password != "secret1" {
		return nil, testAuthError
	}
	return &models.AuthUser{UID: "uid-" + email, Email: email}, nil
}

func (m *mockIdentityBackend) SignOut(ctx context.Context, uid string) error { return nil }

func (m *mockIdentityBackend) VerifyIDToken(ctx context.Context, idToken string) (*models.AuthUser, error) {
	if idToken != "valid-token" {
		return nil, testAuthError
	}
	return &models.AuthUser{UID: "uid-restored", Email: "restored@example.com"}, nil
}

var testAuthError = &identity.AuthError{Code: "INVALID_LOGIN_CREDENTIALS", Message: "Invalid email or password."}
