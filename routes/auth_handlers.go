// routes/auth_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/LilVoxy/lostfound_chat/auth"
)

// RefreshBody — тело запроса на обновление пары токенов
type RefreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenHandler обменивает refresh-токен на новую пару токенов.
// Старый refresh-токен после обмена использовать нельзя: клиент обязан
// сохранить новую пару целиком.
func RefreshTokenHandler(tokens *auth.TokenManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body RefreshBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
			writeError(w, http.StatusBadRequest, "Отсутствует refresh-токен")
			return
		}

		pair, err := tokens.Refresh(body.RefreshToken)
		if err != nil {
			log.Printf("❌ Отклонено обновление токенов: %v", err)
			writeError(w, http.StatusUnauthorized, "Недействительный refresh-токен")
			return
		}

		writeJSON(w, http.StatusOK, pair)
	}
}
