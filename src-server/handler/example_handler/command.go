package example_handler

import (
	"context"
	"time"

	"cogbot/src-server/interaction"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// the custom ids must match the units that serve them
const (
	defaultButtonID      = "example_button"
	defaultModalButtonID = "show_example_modal"
	defaultMenuID        = "example_menu"
)

func command(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	buttonID := u.Param("button_id", defaultButtonID)
	modalButtonID := u.Param("modal_button_id", defaultModalButtonID)
	menuID := u.Param("menu_id", defaultMenuID)

	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			embed := &discordgo.MessageEmbed{
				Title:       "🎮 Example Interactive Message",
				Description: "This is an example command showing all the interactive components.",
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:  "🔘 Buttons",
						Value: "Click the buttons below to test different interactions",
					},
					{
						Name:  "📋 Select Menu",
						Value: "Use the dropdown menu to choose an option",
					},
				},
				Color:     0x5865F2,
				Timestamp: time.Now().Format(time.RFC3339),
			}

			components := []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							CustomID: buttonID,
							Label:    "Example Button",
							Style:    discordgo.PrimaryButton,
							Emoji:    &discordgo.ComponentEmoji{Name: "✨"},
						},
						discordgo.Button{
							CustomID: modalButtonID,
							Label:    "Open Modal",
							Style:    discordgo.SuccessButton,
							Emoji:    &discordgo.ComponentEmoji{Name: "📝"},
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							CustomID:    menuID,
							Placeholder: "Choose an option...",
							Options: []discordgo.SelectMenuOption{
								{Label: "Option 1", Value: "option_1", Description: "First example option", Emoji: &discordgo.ComponentEmoji{Name: "1️⃣"}},
								{Label: "Option 2", Value: "option_2", Description: "Second example option", Emoji: &discordgo.ComponentEmoji{Name: "2️⃣"}},
								{Label: "Option 3", Value: "option_3", Description: "Third example option", Emoji: &discordgo.ComponentEmoji{Name: "3️⃣"}},
							},
						},
					},
				},
			}

			return utils.Respond(as, e, utils.EmbedResp(false, components, embed))
		},
	}, nil
}
