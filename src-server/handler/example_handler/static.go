package example_handler

import (
	"context"
	"fmt"

	"cogbot/src-server/interaction"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// staticReply answers with params.content, no code needed per unit.
func staticReply(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	content := u.Param("content", "")
	if content == "" {
		return unit.Handler{}, fmt.Errorf("staticReply: params.content is empty")
	}
	ephemeral := u.BoolParam("ephemeral", true)

	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			data := &discordgo.InteractionResponseData{
				Content: content,
			}
			if ephemeral {
				data.Flags = discordgo.MessageFlagsEphemeral
			}
			return utils.Respond(as, e, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: data,
			})
		},
	}, nil
}
