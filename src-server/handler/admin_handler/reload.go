package admin_handler

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cogbot/src-server/interaction"
	"cogbot/src-server/model"
	"cogbot/src-server/registry"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	kindOption = "kind"
	idOption   = "id"
	eventKind  = "event"
	// Discord shows at most 25 autocomplete choices
	maxChoices = 25
)

func options(e interaction.Event) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	i := e.Interaction()
	if i == nil || i.Interaction == nil {
		return out
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
	default:
		return out
	}
	for _, opt := range i.ApplicationCommandData().Options {
		out[opt.Name] = opt
	}
	return out
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt, ok := opts[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return strings.TrimSpace(opt.StringValue())
}

// exactIDs lists the reloadable identifiers of kind starting with prefix.
func exactIDs(as *utils.AppState, kind interaction.Kind, prefix string) []string {
	reg := as.Registry(kind)
	if reg == nil {
		return nil
	}
	var ids []string
	for id := range reg.All() {
		exact, ok := id.(registry.Exact)
		if !ok || !strings.HasPrefix(string(exact), prefix) {
			continue
		}
		ids = append(ids, string(exact))
	}
	slices.Sort(ids)
	return ids
}

func reload(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			opts := options(e)
			kindName, id := stringOption(opts, kindOption), stringOption(opts, idOption)
			if kindName == "" || id == "" {
				return interaction.Reply(e, "Both `kind` and `id` are required.", true)
			}
			if as.Reloader == nil {
				return fmt.Errorf("reload: units are not loaded yet")
			}

			var ok bool
			switch kindName {
			case eventKind:
				ok = as.Reloader.ReloadListener(id)
			default:
				kind, err := interaction.ParseKind(kindName)
				if err != nil || kind == interaction.KindAutocomplete {
					return interaction.Reply(e, fmt.Sprintf("Unknown kind `%s`.", kindName), true)
				}
				ok = as.Reloader.Reload(kind, id)
			}

			as.AuditReload(ctx, &model.ReloadAudit{
				Source: model.RELOAD_SOURCE_COMMAND,
				Actor:  interaction.UserID(e),
				Kind:   kindName,
				UnitID: id,
				OK:     ok,
			})

			if !ok {
				return interaction.Reply(e, fmt.Sprintf("No %s unit declares `%s`, nothing was reloaded.", kindName, id), true)
			}
			return interaction.Reply(e, fmt.Sprintf("Reloaded %s `%s`.", kindName, id), true)
		},

		Autocomplete: func(ctx context.Context, e interaction.Event) error {
			opts := options(e)
			focused, ok := opts[idOption]
			if !ok || !focused.Focused {
				return nil
			}

			var choices []*discordgo.ApplicationCommandOptionChoice
			if kind, err := interaction.ParseKind(stringOption(opts, kindOption)); err == nil {
				for _, id := range exactIDs(as, kind, stringOption(opts, idOption)) {
					if len(choices) == maxChoices {
						break
					}
					choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
						Name:  id,
						Value: id,
					})
				}
			}

			return e.Respond(&discordgo.InteractionResponse{
				Type: discordgo.InteractionApplicationCommandAutocompleteResult,
				Data: &discordgo.InteractionResponseData{
					Choices: choices,
				},
			})
		},
	}, nil
}
