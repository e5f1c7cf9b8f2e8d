package models

// BannerIdea is one brainstormed banner concept returned by the generation API.
type BannerIdea struct {
	IdeaName              string `json:"ideaName"`
	DescriptionSuggestion string `json:"descriptionSuggestion"`
	CTASuggestion         string `json:"ctaSuggestion"`
	VisualConcept         string `json:"visualConcept"`
}
