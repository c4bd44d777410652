// Package middleware resolves the signed-in recruiter for a request. The
// access token comes from the session cookie (browser pages) or the
// Authorization header (API clients) and is verified locally.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mkoster/hireboard/internal/session"
)

// SessionCookie names the cookie holding the access token.
const SessionCookie = "hireboard_session"

type contextKey string

const (
	userIDKey contextKey = "userID"
	emailKey  contextKey = "email"
	tokenKey  contextKey = "token"
)

// TokenVerifier validates an access token and yields its claims.
// *session.Verifier satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (*session.Claims, error)
}

// TokenFromRequest pulls the access token out of the session cookie or a
// Bearer Authorization header. Empty string when neither is present.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// RequirePage gates a browser page: without a valid session the request
// is redirected to the sign-in form.
func RequirePage(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, verifier)
			if err != nil {
				http.Redirect(w, r, "/signin", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAPI gates a JSON endpoint: without a valid session the request
// gets a 401.
func RequireAPI(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, verifier)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":"unauthorized"}`)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, verifier TokenVerifier) (context.Context, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, session.ErrNoSession
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, claims.Email)
	ctx = context.WithValue(ctx, tokenKey, token)
	return ctx, nil
}

// UserID returns the authenticated recruiter id from the request context.
func UserID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("no authenticated user in request context")
	}
	return id, nil
}

// Email returns the authenticated user's email, empty if unknown.
func Email(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}

// Token returns the verified access token from the request context.
func Token(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}

// WithUser injects an authenticated user into a request context. Intended
// for handler tests.
func WithUser(r *http.Request, userID uuid.UUID, email string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	return r.WithContext(ctx)
}
