package route

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"cogbot/src-server/interaction"
	"cogbot/src-server/model"
	"cogbot/src-server/utils"
)

// eventKind names listener units in the reload route, they have no
// registry and no interaction.Kind.
const eventKind = "event"

func Reload(muxer *http.ServeMux, as *utils.AppState) {
	type ReloadRespBody struct {
		Kind     string `json:"kind"`
		ID       string `json:"id,omitempty"`
		Reloaded bool   `json:"reloaded"`
	}

	type AuditRespBody struct {
		Source    string `json:"source"`
		Actor     string `json:"actor"`
		Kind      string `json:"kind"`
		ID        string `json:"id"`
		OK        bool   `json:"ok"`
		CreatedAt int64  `json:"createdAt"`
	}

	// reload one unit
	muxer.HandleFunc("POST /reload/{kind}/{id}", TokenMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		if as.Reloader == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Units are not loaded yet"))
			return
		}
		kindName, id := r.PathValue("kind"), r.PathValue("id")

		var ok bool
		switch kindName {
		case eventKind:
			ok = as.Reloader.ReloadListener(id)
		default:
			kind, err := interaction.ParseKind(kindName)
			if err != nil || kind == interaction.KindAutocomplete {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(fmt.Sprintf("Unknown kind %q", kindName)))
				return
			}
			ok = as.Reloader.Reload(kind, id)
		}

		slog.Info("reload requested over http", "kind", kindName, "id", id, "reloaded", ok, "remote_addr", r.RemoteAddr)
		as.AuditReload(r.Context(), &model.ReloadAudit{
			Source: model.RELOAD_SOURCE_HTTP,
			Actor:  r.RemoteAddr,
			Kind:   kindName,
			UnitID: id,
			OK:     ok,
		})

		status := http.StatusOK
		if !ok {
			status = http.StatusNotFound
		}
		writeJSON(w, status, ReloadRespBody{Kind: kindName, ID: id, Reloaded: ok})
	}))

	// re-read every root, nothing is removed
	muxer.HandleFunc("POST /reload", TokenMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		if as.Reloader == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Units are not loaded yet"))
			return
		}
		as.Reloader.ReloadAll()
		as.AuditReload(r.Context(), &model.ReloadAudit{
			Source: model.RELOAD_SOURCE_HTTP,
			Actor:  r.RemoteAddr,
			Kind:   "all",
			OK:     true,
		})
		writeJSON(w, http.StatusOK, ReloadRespBody{Kind: "all", Reloaded: true})
	}))

	// latest reload audits
	muxer.HandleFunc("GET /reload/audit", TokenMiddleware(as, func(w http.ResponseWriter, r *http.Request) {
		if as.BunDB == nil {
			writeJSON(w, http.StatusOK, []AuditRespBody{})
			return
		}
		limit := 20
		if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
			limit = l
		}
		audits, err := model.RecentReloads(r.Context(), as.BunDB, limit)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Can't read reload audits"))
			slog.Error("can't read reload audits", "error", err)
			return
		}
		body := make([]AuditRespBody, 0, len(audits))
		for _, a := range audits {
			body = append(body, AuditRespBody{
				Source:    string(a.Source),
				Actor:     a.Actor,
				Kind:      a.Kind,
				ID:        a.UnitID,
				OK:        a.OK,
				CreatedAt: a.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, body)
	}))
}
