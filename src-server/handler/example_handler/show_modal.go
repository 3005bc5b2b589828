package example_handler

import (
	"context"

	"cogbot/src-server/interaction"
	"cogbot/src-server/model"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

const (
	defaultModalID = "example_modal"
	nameInputID    = "name_input"
	messageInputID = "message_input"
)

func showModal(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	modalID := u.Param("modal_id", defaultModalID)
	title := u.Param("title", "Example Modal")

	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			return utils.Respond(as, e, utils.ModalResp(modalID, title,
				&discordgo.TextInput{
					CustomID:  nameInputID,
					Label:     "What's your name?",
					Style:     discordgo.TextInputShort,
					Required:  true,
					MaxLength: model.SubmissionNameMaxLen,
				},
				&discordgo.TextInput{
					CustomID:  messageInputID,
					Label:     "Your message",
					Style:     discordgo.TextInputParagraph,
					Required:  true,
					MaxLength: model.SubmissionMessageMaxLen,
				},
			))
		},
	}, nil
}
