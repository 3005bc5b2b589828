package interaction

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

var ErrAlreadyReplied = errors.New("interaction already replied")

// Event is an inbound interaction as seen by handlers and the dispatcher.
//
// Respond sends the one fresh reply an interaction allows (a deferred
// reply or a modal counts too). After that only FollowUp is valid.
type Event interface {
	Kind() Kind
	// custom id for components and modals, command name for commands
	CustomID() string
	User() string
	Replied() bool
	Respond(resp *discordgo.InteractionResponse) error
	FollowUp(params *discordgo.WebhookParams) error
	// raw payload, nil for synthetic events
	Interaction() *discordgo.InteractionCreate
	Session() *discordgo.Session
}

// InvokeFunc is what every handler unit boils down to.
type InvokeFunc func(ctx context.Context, e Event) error

// Reply sends content as a fresh reply.
func Reply(e Event, content string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content: content,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return e.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// ReplyEmbeds sends embeds as a fresh reply.
func ReplyEmbeds(e Event, ephemeral bool, embeds ...*discordgo.MessageEmbed) error {
	data := &discordgo.InteractionResponseData{
		Embeds: embeds,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return e.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// FollowUpText sends content as a follow-up message.
func FollowUpText(e Event, content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{
		Content: content,
	}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	return e.FollowUp(params)
}

// Notify replies when nothing was sent yet, otherwise follows up.
func Notify(e Event, content string) error {
	if e.Replied() {
		return FollowUpText(e, content, true)
	}
	return Reply(e, content, true)
}

// UserID returns the Discord id of whoever triggered e, "" for synthetic
// events.
func UserID(e Event) string {
	i := e.Interaction()
	switch {
	case i == nil || i.Interaction == nil:
		return ""
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID
	case i.User != nil:
		return i.User.ID
	}
	return ""
}
