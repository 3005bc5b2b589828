package example_handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cogbot/src-server/interaction"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func menu(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			i := e.Interaction()
			if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionMessageComponent {
				return fmt.Errorf("menu: not a component interaction")
			}
			values := i.MessageComponentData().Values
			if len(values) == 0 {
				return fmt.Errorf("menu: nothing selected")
			}

			return utils.Respond(as, e, utils.EmbedResp(true, nil, &discordgo.MessageEmbed{
				Title:       "Selection Received",
				Description: fmt.Sprintf("You selected: **%s**", strings.Join(values, ", ")),
				Color:       0x00FF00,
				Timestamp:   time.Now().Format(time.RFC3339),
			}))
		},
	}, nil
}
