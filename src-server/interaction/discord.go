package interaction

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// DiscordEvent adapts a discordgo interaction to Event and keeps track of
// whether the fresh reply was already used.
type DiscordEvent struct {
	s    *discordgo.Session
	i    *discordgo.InteractionCreate
	kind Kind
	id   string

	mu      sync.Mutex
	replied bool
}

var _ Event = (*DiscordEvent)(nil)

// Classify extracts the kind and the identifier of an interaction. It
// reports false for interaction types no registry serves (pings, unknown
// component types).
func Classify(i *discordgo.InteractionCreate) (Kind, string, bool) {
	if i == nil || i.Interaction == nil {
		return 0, "", false
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return KindCommand, i.ApplicationCommandData().Name, true
	case discordgo.InteractionApplicationCommandAutocomplete:
		return KindAutocomplete, i.ApplicationCommandData().Name, true
	case discordgo.InteractionModalSubmit:
		return KindModal, i.ModalSubmitData().CustomID, true
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		switch data.ComponentType {
		case discordgo.ButtonComponent:
			return KindButton, data.CustomID, true
		case discordgo.SelectMenuComponent,
			discordgo.UserSelectMenuComponent,
			discordgo.RoleSelectMenuComponent,
			discordgo.MentionableSelectMenuComponent,
			discordgo.ChannelSelectMenuComponent:
			return KindSelectMenu, data.CustomID, true
		}
	}
	return 0, "", false
}

func NewDiscordEvent(s *discordgo.Session, i *discordgo.InteractionCreate) (*DiscordEvent, error) {
	kind, id, ok := Classify(i)
	if !ok {
		return nil, fmt.Errorf("NewDiscordEvent: unsupported interaction type %v", interactionType(i))
	}
	return &DiscordEvent{
		s:    s,
		i:    i,
		kind: kind,
		id:   id,
	}, nil
}

func interactionType(i *discordgo.InteractionCreate) any {
	if i == nil || i.Interaction == nil {
		return "<nil>"
	}
	return i.Type
}

func (d *DiscordEvent) Kind() Kind       { return d.kind }
func (d *DiscordEvent) CustomID() string { return d.id }

func (d *DiscordEvent) User() string {
	switch {
	case d.i.Member != nil && d.i.Member.User != nil:
		return d.i.Member.User.Username
	case d.i.User != nil:
		return d.i.User.Username
	}
	return "unknown"
}

func (d *DiscordEvent) Replied() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.replied
}

func (d *DiscordEvent) Respond(resp *discordgo.InteractionResponse) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.replied {
		return ErrAlreadyReplied
	}
	if err := d.s.InteractionRespond(d.i.Interaction, resp); err != nil {
		return fmt.Errorf("(*DiscordEvent).Respond: %w", err)
	}
	d.replied = true
	return nil
}

func (d *DiscordEvent) FollowUp(params *discordgo.WebhookParams) error {
	if _, err := d.s.FollowupMessageCreate(d.i.Interaction, true, params); err != nil {
		return fmt.Errorf("(*DiscordEvent).FollowUp: %w", err)
	}
	return nil
}

func (d *DiscordEvent) Interaction() *discordgo.InteractionCreate { return d.i }
func (d *DiscordEvent) Session() *discordgo.Session               { return d.s }
