package gateway

import (
	"context"
	"log/slog"

	"cogbot/src-server/dispatch"
	"cogbot/src-server/interaction"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Router hands every inbound interaction to the dispatcher of its kind.
type Router struct {
	dispatchers map[interaction.Kind]*dispatch.Dispatcher
}

// NewRouter binds one dispatcher per kind to the registries of as.
// Autocomplete shares the command registry.
func NewRouter(as *utils.AppState) *Router {
	r := &Router{
		dispatchers: make(map[interaction.Kind]*dispatch.Dispatcher),
	}
	for _, kind := range append(interaction.ReloadableKinds(), interaction.KindAutocomplete) {
		r.dispatchers[kind] = dispatch.New(kind, as.Registry(kind), as.Config.GetHandlerTimeout())
	}
	return r
}

// Route dispatches an already classified event.
func (r *Router) Route(ctx context.Context, e interaction.Event) dispatch.Outcome {
	d, ok := r.dispatchers[e.Kind()]
	if !ok {
		slog.Warn("no dispatcher for interaction kind", "kind", e.Kind().String(), "id", e.CustomID())
		return dispatch.OutcomeDropped
	}
	return d.Dispatch(ctx, e)
}

// HandleInteraction is registered with discordgo's AddHandler.
func (r *Router) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	e, err := interaction.NewDiscordEvent(s, i)
	if err != nil {
		slog.Warn("unknown interaction type", "error", err)
		return
	}
	r.Route(context.Background(), e)
}
