package models

import "time"

// SocialLinks are the public profile links a user can attach to their profile.
type SocialLinks struct {
	Twitter  string `json:"twitter" firestore:"twitter"`
	LinkedIn string `json:"linkedin" firestore:"linkedin"`
	GitHub   string `json:"github" firestore:"github"`
	Website  string `json:"website" firestore:"website"`
}

// UserProfile is the per-user document holding role metadata, keyed by the auth UID.
type UserProfile struct {
	ID          string       `json:"id" firestore:"-"` // Firebase Auth UID, will be the document ID
	Email       string       `json:"email" firestore:"email"`
	IsAdmin     bool         `json:"isAdmin" firestore:"isAdmin"`
	SocialLinks *SocialLinks `json:"socialLinks,omitempty" firestore:"socialLinks,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
