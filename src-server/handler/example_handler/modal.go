package example_handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cogbot/src-server/interaction"
	"cogbot/src-server/model"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func modal(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	store := u.BoolParam("store", true)

	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			i := e.Interaction()
			if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionModalSubmit {
				return fmt.Errorf("modal: not a modal submission")
			}
			values := utils.ModalValues(i.ModalSubmitData())

			submission := model.Submission{
				UserID:    interaction.UserID(e),
				GuildID:   i.GuildID,
				ChannelID: i.ChannelID,
				Name:      utils.CleanupName(values[nameInputID], model.SubmissionNameMaxLen),
				Message:   values[messageInputID],
				CreatedAt: time.Now().UTC().Unix(),
			}
			if store && as.BunDB != nil {
				startTimer := time.Now()
				if err := submission.Insert(ctx, as.BunDB); err != nil {
					return fmt.Errorf("modal: %w", err)
				}
				utils.Observe(as.MetricChans.DatabaseWrite, startTimer)
				slog.Debug("submission stored", "id", submission.ID, "user_id", submission.UserID)
			}

			return utils.Respond(as, e, utils.EmbedResp(true, nil, &discordgo.MessageEmbed{
				Title:       "Modal Submission Received",
				Description: "Here's what you submitted:",
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:   "Name",
						Value:  submission.Name,
						Inline: true,
					},
					{
						Name:  "Message",
						Value: submission.Message,
					},
				},
				Color:     0x9B59B6,
				Timestamp: time.Unix(submission.CreatedAt, 0).Format(time.RFC3339),
			}))
		},
	}, nil
}
