package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorkspaceRegistry owns every open workspace and closes the ones left idle.
type WorkspaceRegistry struct {
	deps        WorkspaceDeps
	idleTimeout time.Duration
	logger      *zap.Logger
	now         func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewWorkspaceRegistry(deps WorkspaceDeps, idleTimeout time.Duration) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		deps:        deps,
		idleTimeout: idleTimeout,
		logger:      deps.Logger,
		now:         time.Now,
		workspaces:  make(map[string]*Workspace),
	}
}

// Create opens a workspace for pageURL. With idToken the persisted session is restored;
// a token that fails verification leaves the new workspace signed out and is reported
// through its notifications.
func (r *WorkspaceRegistry) Create(ctx context.Context, pageURL, idToken string) (*Workspace, error) {
	id := uuid.NewString()
	w, err := NewWorkspace(id, pageURL, r.deps)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx, idToken); err != nil {
		w.notifications.Notify(Notification{
			Level:   NotificationWarning,
			Title:   "Session expired",
			Message: "Please sign in again.",
		})
		r.logger.Info("Workspace started without restored session", zap.String("workspaceId", id), zap.Error(err))
	}

	r.mu.Lock()
	r.workspaces[id] = w
	count := len(r.workspaces)
	r.mu.Unlock()

	r.logger.Info("Workspace created", zap.String("workspaceId", id), zap.Int("open", count))
	return w, nil
}

// Get returns an open workspace.
func (r *WorkspaceRegistry) Get(id string) (*Workspace, error) {
	r.mu.Lock()
	w, ok := r.workspaces[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	return w, nil
}

// Close closes and forgets a workspace.
func (r *WorkspaceRegistry) Close(id string) error {
	r.mu.Lock()
	w, ok := r.workspaces[id]
	delete(r.workspaces, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrWorkspaceNotFound, id)
	}
	w.Close()
	return nil
}

// CloseAll closes every workspace. Used on shutdown.
func (r *WorkspaceRegistry) CloseAll() {
	r.mu.Lock()
	all := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	r.mu.Unlock()

	for _, w := range all {
		w.Close()
	}
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// ReapIdle closes workspaces inactive for longer than the idle timeout and returns how
// many were closed. A workspace with an open banner stream is never idle.
func (r *WorkspaceRegistry) ReapIdle() int {
	cutoff := r.now().Add(-r.idleTimeout)

	var idle []*Workspace
	r.mu.Lock()
	for id, w := range r.workspaces {
		if !w.Watching() && w.LastActive().Before(cutoff) {
			idle = append(idle, w)
			delete(r.workspaces, id)
		}
	}
	r.mu.Unlock()

	for _, w := range idle {
		w.Close()
	}
	if len(idle) > 0 {
		r.logger.Info("Reaped idle workspaces", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// RunReaper calls ReapIdle every interval until ctx is done.
func (r *WorkspaceRegistry) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.ReapIdle()
		}
	}
}
