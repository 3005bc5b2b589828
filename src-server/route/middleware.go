package route

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"cogbot/src-server/utils"
)

// TokenMiddleware lets a request through when it carries
// "Authorization: Bearer <RELOAD_TOKEN>". Without a configured token the
// wrapped route answers 404.
func TokenMiddleware(as *utils.AppState, next func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		token := as.Config.GetReloadToken()
		if token == "" {
			http.NotFound(w, r)
			return
		}

		bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || bearer == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Bearer token not found"))
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(bearer)), []byte(token)) != 1 {
			slog.Warn("rejected reload request", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Bearer token is invalid"))
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("can't encode response", "error", err)
	}
}
