package example_handler

import (
	"context"
	"fmt"
	"time"

	"cogbot/src-server/interaction"
	"cogbot/src-server/model"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// a message carries at most 10 embeds
const maxSubmissionEmbeds = 10

// submissions lists the latest modal submissions of whoever runs the
// command, one embed each.
func submissions(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	limit := u.IntParam("limit", 5)
	if limit < 1 || limit > maxSubmissionEmbeds {
		return unit.Handler{}, fmt.Errorf("submissions: params.limit must be between 1 and %d", maxSubmissionEmbeds)
	}

	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			if as.BunDB == nil {
				return fmt.Errorf("submissions: no database")
			}
			userID := interaction.UserID(e)
			if userID == "" {
				return fmt.Errorf("submissions: unknown user")
			}

			startTimer := time.Now()
			found, err := model.FindSubmissions(ctx, as.BunDB, userID, limit)
			if err != nil {
				return fmt.Errorf("submissions: %w", err)
			}
			utils.Observe(as.MetricChans.DatabaseRead, startTimer)

			if len(found) == 0 {
				return interaction.Reply(e, "You haven't submitted anything yet.", true)
			}
			embeds := make([]*discordgo.MessageEmbed, 0, len(found))
			for i := range found {
				embeds = append(embeds, found[i].ToDiscordEmbed())
			}
			return utils.Respond(as, e, utils.EmbedResp(true, nil, embeds...))
		},
	}, nil
}
