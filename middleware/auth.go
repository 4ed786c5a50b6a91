// middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/LilVoxy/lostfound_chat/auth"
)

type contextKey string

// userIDKey — ключ, под которым ID пользователя хранится в контексте запроса
const userIDKey contextKey = "userID"

// TokenAuth проверяет заголовок Authorization и кладет ID пользователя
// в контекст запроса. Все операции ниже по стеку получают уже
// аутентифицированного пользователя и сами учетные данные не проверяют.
func TokenAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Отсутствует токен авторизации", http.StatusUnauthorized)
				return
			}

			userID, err := tokens.ValidateAccess(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				log.Printf("❌ Отклонен запрос с недействительным токеном: %v", err)
				http.Error(w, "Недействительный токен", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает ID аутентифицированного пользователя.
// Второе значение false означает, что запрос не прошел через TokenAuth.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}
