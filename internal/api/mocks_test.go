package api

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/identity"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// memoryStore implements the three repositories in memory. Banner subscribers get the
// whole list synchronously on every change.
type memoryStore struct {
	mu       sync.Mutex
	nextID   int
	banners  map[string][]*models.SavedBanner
	watchers map[int]bannerWatcher
	profiles map[string]*models.UserProfile
	general  map[string]*models.SharedGeneralContent
	amazon   map[string]*models.SharedAmazonContent
}

type bannerWatcher struct {
	userID string
	onData func([]*models.SavedBanner)
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		banners:  make(map[string][]*models.SavedBanner),
		watchers: make(map[int]bannerWatcher),
		profiles: make(map[string]*models.UserProfile),
		general:  make(map[string]*models.SharedGeneralContent),
		amazon:   make(map[string]*models.SharedAmazonContent),
	}
}

func (s *memoryStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s%d", prefix, s.nextID)
}

func (s *memoryStore) Create(ctx context.Context, userID string, cfg models.BannerConfig) (string, error) {
	s.mu.Lock()
	id := s.id("b")
	s.banners[userID] = append([]*models.SavedBanner{{ID: id, BannerConfig: cfg}}, s.banners[userID]...)
	s.mu.Unlock()
	s.notify(userID)
	return id, nil
}

func (s *memoryStore) GetByID(ctx context.Context, userID, bannerID string) (*models.SavedBanner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.banners[userID] {
		if b.ID == bannerID {
			return b, nil
		}
	}
	return nil, fmt.Errorf("banner '%s': %w", bannerID, db.ErrNotFound)
}

func (s *memoryStore) List(ctx context.Context, userID string) ([]*models.SavedBanner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.SavedBanner{}, s.banners[userID]...), nil
}

func (s *memoryStore) Subscribe(ctx context.Context, userID string, onData func([]*models.SavedBanner), onError func(error)) func() {
	s.mu.Lock()
	key := s.nextID
	s.nextID++
	s.watchers[key] = bannerWatcher{userID: userID, onData: onData}
	items := append([]*models.SavedBanner{}, s.banners[userID]...)
	s.mu.Unlock()
	onData(items)
	return func() {
		s.mu.Lock()
		delete(s.watchers, key)
		s.mu.Unlock()
	}
}

func (s *memoryStore) Delete(ctx context.Context, userID, bannerID string) error {
	s.mu.Lock()
	var kept []*models.SavedBanner
	for _, b := range s.banners[userID] {
		if b.ID != bannerID {
			kept = append(kept, b)
		}
	}
	s.banners[userID] = kept
	s.mu.Unlock()
	s.notify(userID)
	return nil
}

func (s *memoryStore) notify(userID string) {
	s.mu.Lock()
	var fns []func([]*models.SavedBanner)
	for _, w := range s.watchers {
		if w.userID == userID {
			fns = append(fns, w.onData)
		}
	}
	items := append([]*models.SavedBanner{}, s.banners[userID]...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(items)
	}
}

// profileStore adapts memoryStore to db.ProfileRepository; its GetByID clashes with the
// banner repository's.
type profileStore struct{ *memoryStore }

func (p profileStore) GetByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	profile, ok := p.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile '%s': %w", userID, db.ErrNotFound)
	}
	cp := *profile
	return &cp, nil
}

func (p profileStore) CreateIfAbsent(ctx context.Context, profile *models.UserProfile) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.profiles[profile.ID]; ok {
		return false, nil
	}
	cp := *profile
	p.profiles[profile.ID] = &cp
	return true, nil
}

func (p profileStore) UpdateSocialLinks(ctx context.Context, userID string, links models.SocialLinks) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	profile, ok := p.profiles[userID]
	if !ok {
		profile = &models.UserProfile{ID: userID}
		p.profiles[userID] = profile
	}
	profile.SocialLinks = &links
	return nil
}

func (s *memoryStore) CreateGeneral(ctx context.Context, content *models.SharedGeneralContent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id("g")
	cp := *content
	cp.ID = id
	s.general[id] = &cp
	return id, nil
}

func (s *memoryStore) CreateAmazon(ctx context.Context, content *models.SharedAmazonContent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id("a")
	cp := *content
	cp.ID = id
	s.amazon[id] = &cp
	return id, nil
}

func (s *memoryStore) GetGeneral(ctx context.Context, id string) (*models.SharedGeneralContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.general[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("shared general '%s': %w", id, db.ErrNotFound)
}

func (s *memoryStore) GetAmazon(ctx context.Context, id string) (*models.SharedAmazonContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.amazon[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("shared amazon '%s': %w", id, db.ErrNotFound)
}

type mockGenerator struct{}

func (mockGenerator) GenerateGeneralContent(ctx context.Context, in models.GeneralContentInput) (string, error) {
	return "Post about " + in.Prompt, nil
}

func (mockGenerator) GenerateAmazonContent(ctx context.Context, in models.AmazonContentInput) (string, error) {
	return "Buy it: " + in.Prompt, nil
}

func (mockGenerator) GenerateBannerIdeas(ctx context.Context, theme string) ([]models.BannerIdea, error) {
	return []models.BannerIdea{{IdeaName: theme, DescriptionSuggestion: "Idea for " + theme, CTASuggestion: "Go"}}, nil
}

// mockBackend signs in any email with password "secret1". Tokens are "token-" + email.
type mockBackend struct{}

func (mockBackend) SignUp(ctx context.Context, email, password string) (*models.AuthUser, error) {
	return &models.AuthUser{UID: "uid-" + email, Email: email, IDToken: "token-" + email}, nil
}

func (mockBackend) SignIn(ctx context.Context, email, password string) (*models.AuthUser, error) {
	if password != "secret1" {
		return nil, &identity.AuthError{Code: "INVALID_LOGIN_CREDENTIALS", Message: "Invalid email or password."}
	}
	return &models.AuthUser{UID: "uid-" + email, Email: email, IDToken: "token-" + email}, nil
}

func (mockBackend) SignOut(ctx context.Context, uid string) error { return nil }

func (mockBackend) VerifyIDToken(ctx context.Context, idToken string) (*models.AuthUser, error) {
	email, ok := strings.CutPrefix(idToken, "token-")
	if !ok || email == "" {
		return nil, &identity.AuthError{Code: "INVALID_ID_TOKEN", Message: "Invalid token."}
	}
	return &models.AuthUser{UID: "uid-" + email, Email: email, IDToken: idToken}, nil
}
