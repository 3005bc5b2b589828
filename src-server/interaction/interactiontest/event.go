// Package interactiontest provides an in-memory interaction.Event for tests.
package interactiontest

import (
	"sync"

	"cogbot/src-server/interaction"

	"github.com/bwmarrin/discordgo"
)

// Event records every response instead of talking to Discord.
type Event struct {
	K    interaction.Kind
	ID   string
	Name string
	Raw  *discordgo.InteractionCreate

	// returned by Respond / FollowUp when set
	RespondErr  error
	FollowUpErr error

	mu        sync.Mutex
	replied   bool
	Responses []*discordgo.InteractionResponse
	FollowUps []*discordgo.WebhookParams
}

var _ interaction.Event = (*Event)(nil)

func New(kind interaction.Kind, id string) *Event {
	return &Event{K: kind, ID: id, Name: "tester"}
}

func (e *Event) Kind() interaction.Kind { return e.K }
func (e *Event) CustomID() string       { return e.ID }
func (e *Event) User() string           { return e.Name }

func (e *Event) Replied() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replied
}

func (e *Event) Respond(resp *discordgo.InteractionResponse) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.replied {
		return interaction.ErrAlreadyReplied
	}
	if e.RespondErr != nil {
		return e.RespondErr
	}
	e.replied = true
	e.Responses = append(e.Responses, resp)
	return nil
}

func (e *Event) FollowUp(params *discordgo.WebhookParams) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.FollowUpErr != nil {
		return e.FollowUpErr
	}
	e.FollowUps = append(e.FollowUps, params)
	return nil
}

func (e *Event) Interaction() *discordgo.InteractionCreate { return e.Raw }
func (e *Event) Session() *discordgo.Session               { return nil }

// Contents returns the text of every fresh reply followed by every
// follow-up, in order.
func (e *Event) Contents() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, r := range e.Responses {
		if r.Data != nil {
			out = append(out, r.Data.Content)
		}
	}
	for _, f := range e.FollowUps {
		out = append(out, f.Content)
	}
	return out
}
