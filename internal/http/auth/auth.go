package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// PasswordHeader carries the shared application password on API calls.
const PasswordHeader = "X-App-Password"

const issuer = "payflow"

type SecretGetter interface {
	Get(ctx context.Context, name string) (string, error)
}

type Options struct {
	PasswordSecret string
	JWTSecret      string
	TokenTTL       time.Duration
}

// Handler authenticates UI users against the single application password
// and issues session tokens.
type Handler struct {
	secrets    SecretGetter
	opts       Options
	signingKey []byte
	now        func() time.Time
}

// NewHandler uses opts.JWTSecret as signing key, or a random key when it is
// empty, in which case tokens do not survive a restart.
func NewHandler(secrets SecretGetter, opts Options) (*Handler, error) {
	key := []byte(opts.JWTSecret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generating signing key: %w", err)
		}
	}

	return &Handler{secrets: secrets, opts: opts, signingKey: key, now: time.Now}, nil
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Status    string    `json:"status"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.checkPassword(r, req.Password)
	if err != nil {
		slog.Error("failed to load application password", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if !ok {
		http.Error(w, "Mot de passe incorrect", http.StatusUnauthorized)
		return
	}

	expiresAt := h.now().Add(h.opts.TokenTTL)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(h.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString(h.signingKey)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(loginResponse{Status: "ok", Token: token, ExpiresAt: expiresAt}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Middleware admits requests carrying a valid bearer token or the
// application password header.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bearer, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
			if err := h.verifyToken(bearer); err != nil {
				http.Error(w, "Jeton invalide", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)

			return
		}

		ok, err := h.checkPassword(r, r.Header.Get(PasswordHeader))
		if err != nil {
			slog.Error("failed to load application password", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		if !ok {
			http.Error(w, "Mot de passe invalide", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) checkPassword(r *http.Request, candidate string) (bool, error) {
	if candidate == "" {
		return false, nil
	}

	expected, err := h.secrets.Get(r.Context(), h.opts.PasswordSecret)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(candidate), []byte(expected)) == 1, nil
}

func (h *Handler) verifyToken(raw string) error {
	_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return h.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(h.now),
	)
	if err != nil {
		return fmt.Errorf("verifying token: %w", err)
	}

	return nil
}
