package route

import (
	"net/http"

	"cogbot/src-server/interaction"
	"cogbot/src-server/registry"
	"cogbot/src-server/utils"
)

type UnitRespBody struct {
	ID      string `json:"id"`
	Pattern bool   `json:"pattern"`
	Handler string `json:"handler"`
	File    string `json:"file,omitempty"`
	Hash    string `json:"hash,omitempty"`
}

// ListUnits enumerates every registry in registration order, keyed by kind.
func ListUnits(as *utils.AppState) map[string][]UnitRespBody {
	out := make(map[string][]UnitRespBody)
	for _, kind := range interaction.ReloadableKinds() {
		units := make([]UnitRespBody, 0)
		for id, rec := range as.Registry(kind).All() {
			_, isPattern := id.(registry.Pattern)
			body := UnitRespBody{
				ID:      id.String(),
				Pattern: isPattern,
			}
			if rec.Unit != nil {
				body.Handler = rec.Unit.Handler
				body.File = rec.Unit.Path
				body.Hash = rec.Unit.Hash
			}
			units = append(units, body)
		}
		out[kind.String()] = units
	}
	return out
}

func Units(muxer *http.ServeMux, as *utils.AppState) {
	muxer.HandleFunc("GET /units", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ListUnits(as))
	})
}
