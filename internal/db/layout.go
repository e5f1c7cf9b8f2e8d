package db

import "github.com/bannerforge/bannerforge-backend/internal/models"

const (
	usersCollection                = "users"
	bannersCollection              = "banners"
	sharedGeneralContentCollection = "publicSharedAiContent"
	sharedAmazonContentCollection  = "publicSharedAmazonContent"
	artifactsCollection            = "artifacts"
)

// Layout resolves collection paths. With an AppID every path is nested under
// artifacts/{AppID}; without one the flat layout is used.
type Layout struct {
	AppID string
}

func (l Layout) path(p string) string {
	if l.AppID == "" {
		return p
	}
	return artifactsCollection + "/" + l.AppID + "/" + p
}

// Users is the collection holding one profile document per user.
func (l Layout) Users() string {
	return l.path(usersCollection)
}

// UserDoc is the profile document of userID.
func (l Layout) UserDoc(userID string) string {
	return l.Users() + "/" + userID
}

// Banners is the per-user saved banner collection.
func (l Layout) Banners(userID string) string {
	return l.UserDoc(userID) + "/" + bannersCollection
}

// Shared is the public collection for a shared-content kind.
func (l Layout) Shared(kind models.SharedContentKind) string {
	if kind == models.SharedContentAmazon {
		return l.path(sharedAmazonContentCollection)
	}
	return l.path(sharedGeneralContentCollection)
}
