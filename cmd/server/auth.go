package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

type clientChecker interface {
	ClientActive(ctx context.Context, name string) (bool, error)
}

type authService struct {
	clients clientChecker
	secret  []byte
}

func newAuthService(clients clientChecker, secret string) *authService {
	return &authService{clients: clients, secret: []byte(secret)}
}

// createToken returns the bearer token of client: the base64 client name and its
// HMAC-SHA256 signature, joined by a dot.
func (a *authService) createToken(client string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(client))
	mac := hmac.New(sha256.New, a.secret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return payload + "." + signature
}

func (a *authService) verifyToken(token string) (string, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return "", false
	}

	payload := parts[0]
	signature := parts[1]

	mac := hmac.New(sha256.New, a.secret)
	_, _ = mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	if len(decoded) == 0 {
		return "", false
	}

	return string(decoded), true
}

// middleware rejects requests without a valid token for an active client.
func (a *authService) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			writeErrorMessage(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		client, ok := a.verifyToken(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if !ok {
			writeErrorMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		active, err := a.clients.ClientActive(r.Context(), client)
		if err != nil {
			log.Printf("check api client %q: %v", client, err)
			writeErrorMessage(w, http.StatusInternalServerError, "authentication error")
			return
		}
		if !active {
			writeErrorMessage(w, http.StatusForbidden, "client is not active")
			return
		}

		next.ServeHTTP(w, r)
	})
}
