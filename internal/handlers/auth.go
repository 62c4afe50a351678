package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/services"
	"github.com/yogesh1825/CareerConnect-Job-Portal/internal/store"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

const (
	defaultTokenTTL   = 24 * time.Hour
	sessionCookieName = "token"
	msgUnauthorized   = "User not authenticated"
)

// TokenDenylist tracks revoked session tokens by jti.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration)
	IsRevoked(ctx context.Context, tokenID string) bool
}

// AuthOptions configures session tokens.
type AuthOptions struct {
	Secret       string
	TokenTTL     time.Duration
	SecureCookie bool
	Denylist     TokenDenylist
}

// Authenticator issues session tokens and guards routes with them.
type Authenticator struct {
	users        *services.UserService
	secret       []byte
	tokenTTL     time.Duration
	secureCookie bool
	denylist     TokenDenylist
}

func NewAuthenticator(users *services.UserService, opts AuthOptions) *Authenticator {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Authenticator{
		users:        users,
		secret:       []byte(opts.Secret),
		tokenTTL:     ttl,
		secureCookie: opts.SecureCookie,
		denylist:     opts.Denylist,
	}
}

// RequireAuth enforces a valid session token and injects the subject into
// the request context.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), contextSubjectKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts a route to users holding role. It must run after
// RequireAuth.
func (a *Authenticator) RequireRole(role types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := userIDFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			user, err := a.users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeError(w, http.StatusUnauthorized, msgUnauthorized)
					return
				}
				writeInternalError(w, r, "Failed to load user", err)
				return
			}

			if user.Role != role {
				writeError(w, http.StatusForbidden, "Only "+string(role)+"s can perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Authenticator) authenticate(r *http.Request) (*jwt.RegisteredClaims, error) {
	tokenString, err := sessionToken(r)
	if err != nil {
		return nil, err
	}
	claims, err := parseToken(tokenString, a.secret)
	if err != nil {
		return nil, err
	}
	if a.denylist != nil && a.denylist.IsRevoked(r.Context(), claims.ID) {
		return nil, errors.New("token revoked")
	}
	return claims, nil
}

// startSession issues a token for userID and sets it as the session cookie.
func (a *Authenticator) startSession(w http.ResponseWriter, userID types.ID) (string, error) {
	token, err := issueToken(userID, a.secret, a.tokenTTL)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// endSession clears the cookie and revokes the presented token, if any.
func (a *Authenticator) endSession(w http.ResponseWriter, r *http.Request) {
	if claims, err := a.authenticate(r); err == nil && a.denylist != nil && claims.ExpiresAt != nil {
		a.denylist.Revoke(r.Context(), claims.ID, time.Until(claims.ExpiresAt.Time))
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func issueToken(userID types.ID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("missing subject")
	}
	return claims, nil
}

// sessionToken reads the session cookie, falling back to a bearer token.
func sessionToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return bearerToken(r)
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
