package utils

import (
	"time"

	"cogbot/src-server/interaction"

	"github.com/bwmarrin/discordgo"
)

// ==========================================================
// Pre-built interaction responses for handlers' convenience
// ==========================================================

// Respond sends resp as the fresh reply of e and reports how long Discord
// took to accept it.
func Respond(as *AppState, e interaction.Event, resp *discordgo.InteractionResponse) error {
	start := time.Now()
	if err := e.Respond(resp); err != nil {
		return err
	}
	Observe(as.MetricChans.DiscordSendMessage, start)
	return nil
}

// EmbedResp is a message reply carrying embeds and optional component rows.
func EmbedResp(ephemeral bool, components []discordgo.MessageComponent, embeds ...*discordgo.MessageEmbed) *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Embeds:     embeds,
		Components: components,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

// ModalResp opens a modal, each text input on its own row.
func ModalResp(customID, title string, inputs ...*discordgo.TextInput) *discordgo.InteractionResponse {
	rows := make([]discordgo.MessageComponent, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{input},
		})
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: rows,
		},
	}
}

// ModalValues collects the submitted text inputs of a modal by custom id.
func ModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	var walk func(components []discordgo.MessageComponent)
	walk = func(components []discordgo.MessageComponent) {
		for _, c := range components {
			switch c := c.(type) {
			case *discordgo.ActionsRow:
				walk(c.Components)
			case discordgo.ActionsRow:
				walk(c.Components)
			case *discordgo.TextInput:
				values[c.CustomID] = c.Value
			case discordgo.TextInput:
				values[c.CustomID] = c.Value
			}
		}
	}
	walk(data.Components)
	return values
}
