package core

import (
	"fmt"
	"net/url"

	"github.com/bannerforge/bannerforge-backend/internal/models"
)

// BuildShareURL returns pageURL without its query and fragment, carrying only the share
// parameter for kind.
func BuildShareURL(pageURL string, kind models.SharedContentKind, id string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page url %q: %w", pageURL, err)
	}
	u.RawQuery = url.Values{kind.QueryParam(): []string{id}}.Encode()
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}
