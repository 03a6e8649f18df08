package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TourBooking/internal/domain"
)

const (
	CookieAccessToken = "accessToken"
	CookieSessionID   = "sessionId"

	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type sessionKey struct{}

// WithSession кладет сессию в контекст
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// GetSession достает сессию из контекста запроса
// Без Session middleware возвращает пустую сессию
func GetSession(r *http.Request) domain.Session {
	s, _ := r.Context().Value(sessionKey{}).(domain.Session)
	return s
}

// Session собирает domain.Session из cookie и заголовков
// Токен берется из cookie accessToken или из Authorization: Bearer.
// Если у клиента еще нет sessionId, он выдается здесь: по нему живут уведомления и fencing.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := domain.Session{
			UserID:      strings.TrimSpace(r.Header.Get(HeaderUserID)),
			Role:        domain.Role(strings.ToUpper(strings.TrimSpace(r.Header.Get(HeaderUserRole)))),
			AccessToken: accessToken(r),
		}

		if c, err := r.Cookie(CookieSessionID); err == nil && c.Value != "" {
			s.ID = c.Value
		} else {
			s.ID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieSessionID,
				Value:    s.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireAuth пропускает только запросы с токеном доступа
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetSession(r).IsAuthenticated() {
			handlers.RespondUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(CookieAccessToken); err == nil && c.Value != "" {
		return c.Value
	}

	auth := r.Header.Get("Authorization")
	if len(auth) > len("Bearer ") && strings.EqualFold(auth[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return ""
}
