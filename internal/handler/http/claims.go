package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// claimString pulls a single string claim from the request token. The
// second return is false when the claim is absent or empty.
func claimString(r *http.Request, key string) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
