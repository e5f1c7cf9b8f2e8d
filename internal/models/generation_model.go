package models

// GeneralContentInput is the input of a general content generation.
type GeneralContentInput struct {
	Prompt       string
	Platform     Platform
	ExternalLink string
}

// AmazonContentInput is the input of an Amazon affiliate content generation. Prompt already
// carries the product description and the image availability note.
type AmazonContentInput struct {
	Prompt        string
	AffiliateLink string
	Platform      Platform
}
