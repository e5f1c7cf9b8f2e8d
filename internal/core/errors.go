package core

import "errors"

var (
	// ErrAuthRequired is returned when an operation needs an explicitly signed-in user.
	ErrAuthRequired          = errors.New("sign in required")
	ErrPromptRequired        = errors.New("prompt is required")
	ErrAffiliateLinkRequired = errors.New("affiliate link is required")
	ErrNothingToShare        = errors.New("no generated content to share")
	ErrGenerationInProgress  = errors.New("a generation is already running")
	ErrUnknownField          = errors.New("unknown banner field")
	ErrInvalidFieldValue     = errors.New("invalid banner field value")
	ErrBannerIDRequired      = errors.New("banner id is required")
	ErrIdeaNotFound          = errors.New("banner idea not found")
	ErrWorkspaceNotFound     = errors.New("workspace not found")
	ErrWorkspaceClosed       = errors.New("workspace is closed")
	// ErrGeneration wraps every failure of the generation API.
	ErrGeneration = errors.New("content generation failed")
	// ErrDatabase wraps every failure reported by the document database.
	ErrDatabase = errors.New("database operation failed")
)
