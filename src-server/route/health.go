package route

import (
	"net/http"

	"cogbot/src-server/utils"
)

func Health(muxer *http.ServeMux, as *utils.AppState) {
	type HealthRespBody struct {
		Status           string `json:"status"`
		Uptime           string `json:"uptime"`
		HeartbeatLatency string `json:"heartbeatLatency,omitempty"`
	}

	muxer.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		body := HealthRespBody{
			Status: "ok",
			Uptime: as.GetUptime().String(),
		}
		if as.DgSession != nil {
			body.HeartbeatLatency = as.DgSession.HeartbeatLatency().String()
		}
		writeJSON(w, http.StatusOK, body)
	})
}
