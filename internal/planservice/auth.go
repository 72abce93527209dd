package planservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/shrdlite/server/result"
	"github.com/dekarrin/shrdlite/server/serr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ctxKey int

const ctxUserKey ctxKey = iota

// unauthedDelay is slept before writing any 401 response, to blunt
// timing-based username enumeration.
const unauthedDelay = 250 * time.Millisecond

// requireAuth wraps next with JWT validation, rejecting with 401 any
// request that does not carry a valid bearer token. On success, the
// authenticated user's ID is stored in the request context and retrievable
// with userFromContext.
func (svc *Service) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		tok, err := bearerToken(req)
		if err != nil {
			time.Sleep(unauthedDelay)
			result.Unauthorized(err.Error()).WriteResponse(w)
			return
		}

		userID, err := svc.validateJWT(req.Context(), tok)
		if err != nil {
			time.Sleep(unauthedDelay)
			result.Unauthorized(err.Error()).WriteResponse(w)
			return
		}

		ctx := context.WithValue(req.Context(), ctxUserKey, userID)
		next.ServeHTTP(w, req.WithContext(ctx))
	}
}

func userFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxUserKey).(uuid.UUID)
	return id, ok
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

func (svc *Service) validateJWT(ctx context.Context, tok string) (uuid.UUID, error) {
	var userID uuid.UUID

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		u, err := svc.store.GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, serr.ErrNotFound) {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		userID = id
		return svc.signingKey(u), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("shrdliced"), jwt.WithLeeway(time.Minute))

	if err != nil {
		return uuid.UUID{}, err
	}
	return userID, nil
}

// signingKey derives the per-user signing key: the service secret, the
// user's password hash, and their last-logout time, so that a change to
// either of the latter two invalidates every previously issued token.
func (svc *Service) signingKey(u User) []byte {
	var key []byte
	key = append(key, svc.jwtSecret...)
	key = append(key, []byte(u.PasswordHash)...)
	key = append(key, []byte(fmt.Sprintf("%d", u.LastLogoutTime.Unix()))...)
	return key
}

func (svc *Service) generateJWT(u User) (string, error) {
	claims := &jwt.MapClaims{
		"iss": "shrdliced",
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": u.ID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(svc.signingKey(u))
}

