package example_handler

import (
	"context"

	"cogbot/src-server/interaction"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func button(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	title := u.Param("title", "Example Button Clicked!")
	description := u.Param("description", "You have successfully clicked the example button.")

	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			return utils.Respond(as, e, utils.EmbedResp(true, nil, &discordgo.MessageEmbed{
				Title:       title,
				Description: description,
				Color:       0x00FF00,
			}))
		},
	}, nil
}
