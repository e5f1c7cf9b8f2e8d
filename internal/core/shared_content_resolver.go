package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// SharedContentResolver consumes a shared-content id from the page URL the workspace was
// opened with. It runs at most once per page load. When both ids are present the general
// one wins and the Amazon one is left alone.
type SharedContentResolver struct {
	shared   db.SharedContentRepository
	notifier Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	pageURL *url.URL
	done    bool
}

// NewSharedContentResolver parses the page URL. An empty URL is allowed and resolves nothing.
func NewSharedContentResolver(shared db.SharedContentRepository, pageURL string, notifier Notifier, logger *zap.Logger) (*SharedContentResolver, error) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return nil, fmt.Errorf("invalid page url %q: %w", pageURL, err)
	}
	return &SharedContentResolver{shared: shared, notifier: notifier, logger: logger, pageURL: u}, nil
}

// CurrentURL is the page URL as currently visible, after any scrubbing.
func (r *SharedContentResolver) CurrentURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pageURL.String()
}

// Resolve fetches the shared record named in the page URL. The first call does the work;
// later calls return nil immediately. A found record has its parameter removed from the
// URL; a missing one is logged and leaves the URL untouched.
func (r *SharedContentResolver) Resolve(ctx context.Context) models.SharedRecord {
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return nil
	}
	r.done = true
	query := r.pageURL.Query()
	r.mu.Unlock()

	kind, id := pickSharedID(query)
	if id == "" {
		return nil
	}

	record, err := r.fetch(ctx, kind, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			r.logger.Warn("Shared content not found", zap.String("kind", string(kind)), zap.String("id", id))
		} else {
			r.logger.Error("Failed to load shared content", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
			notifyError(r.notifier, "Shared content unavailable", "The shared content could not be loaded.")
		}
		return nil
	}

	r.mu.Lock()
	q := r.pageURL.Query()
	q.Del(kind.QueryParam())
	r.pageURL.RawQuery = q.Encode()
	r.mu.Unlock()

	r.logger.Info("Shared content loaded", zap.String("kind", string(kind)), zap.String("id", id))
	return record
}

func (r *SharedContentResolver) fetch(ctx context.Context, kind models.SharedContentKind, id string) (models.SharedRecord, error) {
	if kind == models.SharedContentAmazon {
		content, err := r.shared.GetAmazon(ctx, id)
		if err != nil {
			return nil, err
		}
		return content, nil
	}
	content, err := r.shared.GetGeneral(ctx, id)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func pickSharedID(query url.Values) (models.SharedContentKind, string) {
	if id := strings.TrimSpace(query.Get(models.SharedContentGeneral.QueryParam())); id != "" {
		return models.SharedContentGeneral, id
	}
	if id := strings.TrimSpace(query.Get(models.SharedContentAmazon.QueryParam())); id != "" {
		return models.SharedContentAmazon, id
	}
	return "", ""
}
