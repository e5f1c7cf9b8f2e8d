package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// newRelyingPartyServer fakes the two Identity Toolkit calls used for password accounts.
// signupNewUser answers with a legacy token; verifyPassword answers with a Firebase ID token
// only when returnSecureToken is set.
func newRelyingPartyServer(t *testing.T, calls *[]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/signupNewUser":
			*calls = append(*calls, "signupNewUser")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"kind":    "identitytoolkit#SignupNewUserResponse",
				"localId": "uid-1",
				"email":   body["email"],
				"idToken": "legacy-gitkit-token",
			})
		case "/verifyPassword":
			*calls = append(*calls, "verifyPassword")
			if body["password"] != "secret1" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD"}}`))
				return
			}
			token := "legacy-gitkit-token"
			if body["returnSecureToken"] == true {
				token = "firebase-id-token"
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"kind":         "identitytoolkit#VerifyPasswordResponse",
				"localId":      "uid-1",
				"email":        body["email"],
				"idToken":      token,
				"refreshToken": "refresh-1",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestFirebaseBackend(t *testing.T, srv *httptest.Server) *FirebaseBackend {
	t.Helper()
	svc, err := identitytoolkit.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return &FirebaseBackend{relyingParty: svc.Relyingparty, logger: zap.NewNop()}
}

func TestFirebaseBackend_SignUpReturnsFirebaseIDToken(t *testing.T) {
	var calls []string
	b := newTestFirebaseBackend(t, newRelyingPartyServer(t, &calls))

	user, err := b.SignUp(context.Background(), "ana@example.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, []string{"signupNewUser", "verifyPassword"}, calls)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "firebase-id-token", user.IDToken)
	assert.Equal(t, "refresh-1", user.RefreshToken)
}

func TestFirebaseBackend_SignIn(t *testing.T) {
	var calls []string
	b := newTestFirebaseBackend(t, newRelyingPartyServer(t, &calls))

	user, err := b.SignIn(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "firebase-id-token", user.IDToken)

	_, err = b.SignIn(context.Background(), "ana@example.com", "wrong")
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "INVALID_PASSWORD", authErr.Code)
}
