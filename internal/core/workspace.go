package core

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bannerforge/bannerforge-backend/internal/db"
	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// WorkspaceDeps are the collaborators shared by every workspace.
type WorkspaceDeps struct {
	// NewAuthService returns a fresh, signed-out auth service for one workspace.
	NewAuthService func() AuthService
	Profiles       db.ProfileRepository
	Banners        db.BannerRepository
	Shared         db.SharedContentRepository
	Generator      Generator
	Logger         *zap.Logger
}

// BannerListState is the live list of the signed-in user's saved banners.
type BannerListState struct {
	Items []*models.SavedBanner `json:"items"`
	Error string                `json:"error,omitempty"`
}

// WorkspaceState is a full snapshot of a workspace.
type WorkspaceState struct {
	ID             string          `json:"id"`
	PageURL        string          `json:"pageUrl"`
	Session        models.Session  `json:"session"`
	SessionLoading bool            `json:"sessionLoading"`
	AuthPromptOpen bool            `json:"authPromptOpen"`
	Profile        ProfileState    `json:"profile"`
	Form           FormState       `json:"form"`
	Content        ContentState    `json:"content"`
	Banners        BannerListState `json:"banners"`
	Notifications  []Notification  `json:"notifications"`
}

// ShareResult identifies a published shared record.
type ShareResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Workspace is the server-side state of one browser context. Every session transition
// re-resolves the profile and the shared link concurrently and re-subscribes the banner list
// for the new identity.
type Workspace struct {
	id     string
	logger *zap.Logger

	notifications *NotificationQueue
	session       *SessionStore
	profile       *ProfileResolver
	shared        *SharedContentResolver
	form          *BannerForm
	content       *ContentPanel
	persistence   *Persistence
	profiles      *ProfileService

	ctx       context.Context
	cancel    context.CancelFunc
	resolving sync.WaitGroup

	mu           sync.Mutex
	closed       bool
	lastActive   time.Time
	banners      BannerListState
	bannerUser   string
	bannerActive bool
	bannerGen    uint64
	bannerUnsub  func()
	watchers     map[int]chan BannerListState
	nextWatcher  int
}

// NewWorkspace assembles a workspace for the page the browser context was opened on.
func NewWorkspace(id, pageURL string, deps WorkspaceDeps) (*Workspace, error) {
	logger := deps.Logger.With(zap.String("workspaceId", id))
	notifications := NewNotificationQueue(defaultNotificationCapacity)

	shared, err := NewSharedContentResolver(deps.Shared, pageURL, notifications, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Workspace{
		id:            id,
		logger:        logger,
		notifications: notifications,
		session:       NewSessionStore(deps.NewAuthService(), deps.Profiles, notifications, logger),
		profile:       NewProfileResolver(deps.Profiles, notifications, logger),
		shared:        shared,
		form:          NewBannerForm(),
		content:       NewContentPanel(deps.Generator, notifications, logger),
		persistence:   NewPersistence(deps.Banners, deps.Shared, logger),
		profiles:      NewProfileService(deps.Profiles, logger),
		ctx:           ctx,
		cancel:        cancel,
		lastActive:    time.Now(),
		banners:       BannerListState{Items: []*models.SavedBanner{}},
		watchers:      make(map[int]chan BannerListState),
	}
	w.session.Subscribe(w.handleSession)
	return w, nil
}

func (w *Workspace) ID() string { return w.id }

// Start begins listening to the auth service and, when idToken is set, restores that
// session. A failed restore leaves the workspace signed out.
func (w *Workspace) Start(ctx context.Context, idToken string) error {
	w.session.Start()
	if idToken == "" {
		return nil
	}
	_, err := w.session.Restore(ctx, idToken)
	return err
}

// Close tears down every subscription and waits for in-flight resolutions.
func (w *Workspace) Close() {
	w.session.Close()

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	unsub := w.bannerUnsub
	w.bannerUnsub = nil
	w.bannerGen++
	for id, ch := range w.watchers {
		close(ch)
		delete(w.watchers, id)
	}
	w.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	w.cancel()
	w.resolving.Wait()
	w.logger.Info("Workspace closed")
}

func (w *Workspace) ensureOpen() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWorkspaceClosed
	}
	w.lastActive = time.Now()
	return nil
}

func (w *Workspace) LastActive() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}

// handleSession runs inside the auth notification. It only dispatches work.
func (w *Workspace) handleSession(s models.Session) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	var oldUnsub func()
	resubscribe := !w.bannerActive || w.bannerUser != s.UserID
	if resubscribe {
		oldUnsub = w.bannerUnsub
		w.bannerUnsub = nil
		w.bannerGen++
		w.bannerUser = s.UserID
		w.bannerActive = true
		w.banners = BannerListState{Items: []*models.SavedBanner{}}
	}
	gen := w.bannerGen
	if s.HasUser() {
		w.resolving.Add(1)
	}
	w.mu.Unlock()

	if oldUnsub != nil {
		oldUnsub()
	}
	if resubscribe {
		unsub := w.persistence.ListBanners(w.ctx, s.UserID, w.onBanners(gen), w.onBannersError(gen))
		w.mu.Lock()
		if w.bannerGen == gen && !w.closed {
			w.bannerUnsub = unsub
			unsub = nil
		}
		w.mu.Unlock()
		if unsub != nil {
			unsub()
		}
	}

	if !s.HasUser() {
		w.profile.Reset()
		return
	}
	go w.resolve(s.UserID)
}

// resolve runs the profile and shared-content lookups for one session transition.
func (w *Workspace) resolve(userID string) {
	defer w.resolving.Done()

	g, ctx := errgroup.WithContext(w.ctx)
	g.Go(func() error {
		w.profile.Resolve(ctx, userID)
		return nil
	})
	g.Go(func() error {
		record := w.shared.Resolve(ctx)
		if record == nil {
			return nil
		}
		return w.content.LoadShared(record)
	})
	if err := g.Wait(); err != nil {
		w.logger.Error("Session resolution failed", zap.String("userId", userID), zap.Error(err))
	}
}

func (w *Workspace) onBanners(gen uint64) func([]*models.SavedBanner) {
	return func(items []*models.SavedBanner) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if gen != w.bannerGen || w.closed {
			return
		}
		w.banners = BannerListState{Items: items}
		w.broadcastLocked()
	}
}

func (w *Workspace) onBannersError(gen uint64) func(error) {
	return func(err error) {
		w.mu.Lock()
		stale := gen != w.bannerGen || w.closed
		if !stale {
			w.banners.Error = "Failed to load saved banners."
			w.broadcastLocked()
		}
		w.mu.Unlock()
		if stale {
			return
		}
		w.logger.Error("Banner list subscription failed", zap.Error(err))
		notifyError(w.notifications, "Error", "Failed to load saved banners.")
	}
}

// broadcastLocked pushes the banner list to every watcher, replacing any undelivered value.
func (w *Workspace) broadcastLocked() {
	for _, ch := range w.watchers {
		select {
		case ch <- w.banners:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- w.banners:
			default:
			}
		}
	}
}

// WatchBanners streams the banner list, starting with its current value. The channel is
// closed when stop is called or the workspace closes.
func (w *Workspace) WatchBanners() (<-chan BannerListState, func(), error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, nil, ErrWorkspaceClosed
	}
	w.nextWatcher++
	id := w.nextWatcher
	ch := make(chan BannerListState, 1)
	ch <- w.banners
	w.watchers[id] = ch

	var once sync.Once
	stop := func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			if c, ok := w.watchers[id]; ok {
				close(c)
				delete(w.watchers, id)
				// the idle window starts when the stream ends
				w.lastActive = time.Now()
			}
		})
	}
	return ch, stop, nil
}

// State returns a snapshot. Pending notifications are included but stay queued until
// AckNotifications, so a repeated read returns them again.
func (w *Workspace) State() WorkspaceState {
	w.mu.Lock()
	banners := BannerListState{Items: append([]*models.SavedBanner{}, w.banners.Items...), Error: w.banners.Error}
	w.lastActive = time.Now()
	w.mu.Unlock()

	return WorkspaceState{
		ID:             w.id,
		PageURL:        w.shared.CurrentURL(),
		Session:        w.session.Current(),
		SessionLoading: w.session.Loading(),
		AuthPromptOpen: w.session.AuthPromptOpen(),
		Profile:        w.profile.State(),
		Form:           w.form.State(),
		Content:        w.content.State(),
		Banners:        banners,
		Notifications:  w.notifications.Pending(),
	}
}

// AckNotifications drops the notifications the client has shown, up to and including lastID.
func (w *Workspace) AckNotifications(lastID uint64) (int, error) {
	if err := w.ensureOpen(); err != nil {
		return 0, err
	}
	return w.notifications.Ack(lastID), nil
}

// Watching reports whether a banner stream is open.
func (w *Workspace) Watching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watchers) > 0
}

func (w *Workspace) SignUp(ctx context.Context, email, password string) (models.Session, error) {
	if err := w.ensureOpen(); err != nil {
		return models.Session{}, err
	}
	return w.session.SignUp(ctx, email, password)
}

func (w *Workspace) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	if err := w.ensureOpen(); err != nil {
		return models.Session{}, err
	}
	return w.session.SignIn(ctx, email, password)
}

func (w *Workspace) SignOut(ctx context.Context) error {
	if err := w.ensureOpen(); err != nil {
		return err
	}
	return w.session.SignOut(ctx)
}

// IDToken is the signed-in user's ID token, for persisting the session in the browser.
func (w *Workspace) IDToken() string { return w.session.IDToken() }

// OpenAuthPrompt and CloseAuthPrompt drive the sign-in dialog.
func (w *Workspace) OpenAuthPrompt()  { w.session.OpenAuthPrompt() }
func (w *Workspace) CloseAuthPrompt() { w.session.CloseAuthPrompt() }

// requireSignedIn returns the signed-in user id. Without one it opens the auth prompt.
func (w *Workspace) requireSignedIn(action string) (string, error) {
	s := w.session.Current()
	if s.SignedIn() {
		return s.UserID, nil
	}
	w.session.OpenAuthPrompt()
	w.notifications.Notify(Notification{
		Level:   NotificationWarning,
		Title:   "Authentication required",
		Message: "Please sign in to " + action + ".",
	})
	return "", ErrAuthRequired
}

func (w *Workspace) UpdateField(name, value string) (FormState, error) {
	if err := w.ensureOpen(); err != nil {
		return FormState{}, err
	}
	if err := w.form.UpdateField(name, value); err != nil {
		return FormState{}, err
	}
	return w.form.State(), nil
}

func (w *Workspace) GeneratePreview() (FormState, error) {
	if err := w.ensureOpen(); err != nil {
		return FormState{}, err
	}
	w.form.GeneratePreview()
	return w.form.State(), nil
}

func (w *Workspace) EmbedHTML() (string, error) {
	if err := w.ensureOpen(); err != nil {
		return "", err
	}
	return w.form.EmbedHTML()
}

// LoadBanner puts a saved banner into the form. The live list is consulted first.
func (w *Workspace) LoadBanner(ctx context.Context, bannerID string) (FormState, error) {
	if err := w.ensureOpen(); err != nil {
		return FormState{}, err
	}
	userID, err := w.requireSignedIn("load banners")
	if err != nil {
		return FormState{}, err
	}

	var found *models.SavedBanner
	w.mu.Lock()
	for _, b := range w.banners.Items {
		if b.ID == bannerID {
			found = b
			break
		}
	}
	w.mu.Unlock()

	if found == nil {
		found, err = w.persistence.GetBanner(ctx, userID, bannerID)
		if err != nil {
			return FormState{}, err
		}
	}
	w.form.Load(found.BannerConfig)
	return w.form.State(), nil
}

// SaveBanner stores the current form. Without a signed-in user nothing is written.
func (w *Workspace) SaveBanner(ctx context.Context) (string, error) {
	if err := w.ensureOpen(); err != nil {
		return "", err
	}
	userID, err := w.requireSignedIn("save banners")
	if err != nil {
		return "", err
	}
	id, err := w.persistence.SaveBanner(ctx, userID, w.form.Config())
	if err != nil {
		notifyError(w.notifications, "Error", "Failed to save banner.")
		return "", err
	}
	notifySuccess(w.notifications, "Success", "Banner saved!")
	return id, nil
}

func (w *Workspace) DeleteBanner(ctx context.Context, bannerID string) error {
	if err := w.ensureOpen(); err != nil {
		return err
	}
	userID, err := w.requireSignedIn("delete banners")
	if err != nil {
		return err
	}
	if err := w.persistence.DeleteBanner(ctx, userID, bannerID); err != nil {
		notifyError(w.notifications, "Error", "Failed to delete banner.")
		return err
	}
	notifySuccess(w.notifications, "Success", "Banner deleted.")
	return nil
}

func (w *Workspace) GenerateGeneral(ctx context.Context, req GeneralContentRequest) (GeneralContentState, error) {
	if err := w.ensureOpen(); err != nil {
		return GeneralContentState{}, err
	}
	return w.content.GenerateGeneral(ctx, req)
}

func (w *Workspace) GenerateAmazon(ctx context.Context, req AmazonContentRequest) (AmazonContentState, error) {
	if err := w.ensureOpen(); err != nil {
		return AmazonContentState{}, err
	}
	return w.content.GenerateAmazon(ctx, req)
}

func (w *Workspace) GenerateIdeas(ctx context.Context, theme string) ([]models.BannerIdea, error) {
	if err := w.ensureOpen(); err != nil {
		return nil, err
	}
	return w.content.GenerateIdeas(ctx, theme)
}

// ApplyIdea copies idea index into the form and shows the preview.
func (w *Workspace) ApplyIdea(index int) (FormState, error) {
	if err := w.ensureOpen(); err != nil {
		return FormState{}, err
	}
	idea, err := w.content.Idea(index)
	if err != nil {
		return FormState{}, err
	}
	w.form.ApplyIdea(idea)
	notifySuccess(w.notifications, "Idea applied", "Banner updated with \""+idea.IdeaName+"\".")
	return w.form.State(), nil
}

func (w *Workspace) ShareGeneral(ctx context.Context) (ShareResult, error) {
	if err := w.ensureOpen(); err != nil {
		return ShareResult{}, err
	}
	record, err := w.content.SharedGeneral()
	if err != nil {
		notifyError(w.notifications, "Error", "Generate content before sharing it.")
		return ShareResult{}, err
	}
	return w.share(ctx, record)
}

func (w *Workspace) ShareAmazon(ctx context.Context) (ShareResult, error) {
	if err := w.ensureOpen(); err != nil {
		return ShareResult{}, err
	}
	record, err := w.content.SharedAmazon()
	if err != nil {
		notifyError(w.notifications, "Error", "Generate content before sharing it.")
		return ShareResult{}, err
	}
	return w.share(ctx, record)
}

func (w *Workspace) share(ctx context.Context, record models.SharedRecord) (ShareResult, error) {
	userID, err := w.requireSignedIn("share content")
	if err != nil {
		return ShareResult{}, err
	}
	id, err := w.persistence.ShareContent(ctx, userID, record)
	if err != nil {
		notifyError(w.notifications, "Error", "Failed to share content.")
		return ShareResult{}, err
	}
	url, err := BuildShareURL(w.shared.CurrentURL(), record.Kind(), id)
	if err != nil {
		return ShareResult{}, err
	}
	notifySuccess(w.notifications, "Shared", "Share link created.")
	return ShareResult{ID: id, URL: url}, nil
}

func (w *Workspace) SocialLinks(ctx context.Context) (models.SocialLinks, error) {
	if err := w.ensureOpen(); err != nil {
		return models.SocialLinks{}, err
	}
	userID, err := w.requireSignedIn("edit your profile")
	if err != nil {
		return models.SocialLinks{}, err
	}
	view, err := w.profiles.Get(ctx, userID)
	if err != nil {
		return models.SocialLinks{}, err
	}
	return view.SocialLinks, nil
}

func (w *Workspace) UpdateSocialLinks(ctx context.Context, links models.SocialLinks) (models.SocialLinks, error) {
	if err := w.ensureOpen(); err != nil {
		return models.SocialLinks{}, err
	}
	userID, err := w.requireSignedIn("edit your profile")
	if err != nil {
		return models.SocialLinks{}, err
	}
	saved, err := w.profiles.UpdateSocialLinks(ctx, userID, links)
	if err != nil {
		notifyError(w.notifications, "Error", "Failed to update social links.")
		return models.SocialLinks{}, err
	}
	notifySuccess(w.notifications, "Success", "Social links updated.")
	return saved, nil
}
