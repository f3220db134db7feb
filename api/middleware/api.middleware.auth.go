package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ikigain/ForestOS/internal/auth"
	"github.com/ikigain/ForestOS/internal/errors"
)

// Authenticator resolves the caller of a request into an auth.Principal
// and stores it on the request context.
type Authenticator struct {
	resolver *auth.Resolver
}

func NewAuthenticator(resolver *auth.Resolver) *Authenticator {
	return &Authenticator{resolver: resolver}
}

// RequireUser admits requests carrying a valid user access token.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return a.require(auth.KindUser, next)
}

// RequireDevice admits requests whose bearer token belongs to the
// {device_id} in the path.
func (a *Authenticator) RequireDevice(next http.Handler) http.Handler {
	return a.require(auth.KindDevice, next)
}

func (a *Authenticator) require(kind auth.Kind, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := a.resolver.Resolve(r.Context(), kind, r.Header.Get("Authorization"), mux.Vars(r)["device_id"])
		if err != nil {
			RespondWithError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
	})
}

// RequireSuperuser must run after RequireUser.
func (a *Authenticator) RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.FromContext(r.Context())
		if !ok {
			RespondWithError(w, r, errors.NewInvalidCredentialsError(nil))
			return
		}
		if !principal.IsSuperuser {
			RespondWithError(w, r, errors.NewAuthorizationError("The user doesn't have enough privileges", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}
