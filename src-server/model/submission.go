package model

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	SubmissionNameMaxLen    = 50
	SubmissionMessageMaxLen = 500
)

// Submission is what a user typed into the example modal.
type Submission struct {
	bun.BaseModel `bun:"table:submissions"`

	ID        string `bun:"id,pk"`              // required
	UserID    string `bun:"user_id,notnull"`    // required
	GuildID   string `bun:"guild_id"`           // empty in DMs
	ChannelID string `bun:"channel_id"`
	Name      string `bun:"name,notnull"`       // required
	Message   string `bun:"message,notnull"`    // required
	CreatedAt int64  `bun:"created_at,notnull"` // unix seconds, UTC
}

func (s *Submission) Insert(ctx context.Context, db bun.IDB) error {
	switch {
	case s.UserID == "":
		return fmt.Errorf("(*Submission).Insert: user id is blank")
	case s.Name == "":
		return fmt.Errorf("(*Submission).Insert: name is blank")
	case s.Message == "":
		return fmt.Errorf("(*Submission).Insert: message is blank")
	case utf8.RuneCountInString(s.Name) > SubmissionNameMaxLen:
		return fmt.Errorf("(*Submission).Insert: name is longer than %d", SubmissionNameMaxLen)
	case utf8.RuneCountInString(s.Message) > SubmissionMessageMaxLen:
		return fmt.Errorf("(*Submission).Insert: message is longer than %d", SubmissionMessageMaxLen)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UTC().Unix()
	}

	if _, err := db.NewInsert().
		Model(s).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Submission).Insert: %w", err)
	}
	return nil
}

// FindSubmissions returns the latest submissions of a user, newest first.
func FindSubmissions(ctx context.Context, db bun.IDB, userID string, limit int) ([]Submission, error) {
	var submissions []Submission
	if err := db.NewSelect().
		Model(&submissions).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("FindSubmissions: %w", err)
	}
	return submissions, nil
}

func (s *Submission) ToDiscordEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       s.Name,
		Description: s.Message,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "From",
				Value:  fmt.Sprintf("<@%s>", s.UserID),
				Inline: true,
			},
			{
				Name:   "Submitted",
				Value:  fmt.Sprintf("<t:%d:R>", s.CreatedAt),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "ID: " + s.ID,
		},
	}
}
