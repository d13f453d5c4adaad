package middleware

import (
	"context"
	"net/http"
	"strings"

	"aquavalle/pkg/auth"
	apperrors "aquavalle/pkg/errors"
	pkghttp "aquavalle/pkg/http"

	"github.com/julienschmidt/httprouter"
)

const AdminClaimsKey contextKey = "admin_claims"

// RequireAdmin guards a route with a bearer token check. Verified claims are
// stored in the request context under AdminClaimsKey.
func RequireAdmin(tokens *auth.TokenManager) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			header := r.Header.Get("Authorization")
			tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			if tokenString == "" {
				pkghttp.WriteError(w, apperrors.Unauthorized("missing bearer token"))
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				pkghttp.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
			next(w, r.WithContext(ctx), ps)
		}
	}
}

// AdminClaims extracts the verified claims placed by RequireAdmin.
func AdminClaims(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(AdminClaimsKey).(*auth.Claims)
	return claims, ok
}
