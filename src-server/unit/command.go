package unit

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Command is the serializable schema of a slash command.
type Command struct {
	Name                     string    `toml:"name"`
	Description              string    `toml:"description"`
	DefaultMemberPermissions *int64    `toml:"default_member_permissions"`
	DMPermission             *bool     `toml:"dm_permission"`
	NSFW                     *bool     `toml:"nsfw"`
	Options                  []*Option `toml:"options"`
}

type Option struct {
	Type         string    `toml:"type"`
	Name         string    `toml:"name"`
	Description  string    `toml:"description"`
	Required     bool      `toml:"required"`
	Autocomplete bool      `toml:"autocomplete"`
	MinLength    *int      `toml:"min_length"`
	MaxLength    int       `toml:"max_length"`
	Choices      []*Choice `toml:"choices"`
	Options      []*Option `toml:"options"`
}

type Choice struct {
	Name  string `toml:"name"`
	Value any    `toml:"value"`
}

var optionTypes = map[string]discordgo.ApplicationCommandOptionType{
	"sub_command":       discordgo.ApplicationCommandOptionSubCommand,
	"sub_command_group": discordgo.ApplicationCommandOptionSubCommandGroup,
	"string":            discordgo.ApplicationCommandOptionString,
	"integer":           discordgo.ApplicationCommandOptionInteger,
	"boolean":           discordgo.ApplicationCommandOptionBoolean,
	"user":              discordgo.ApplicationCommandOptionUser,
	"channel":           discordgo.ApplicationCommandOptionChannel,
	"role":              discordgo.ApplicationCommandOptionRole,
	"mentionable":       discordgo.ApplicationCommandOptionMentionable,
	"number":            discordgo.ApplicationCommandOptionNumber,
	"attachment":        discordgo.ApplicationCommandOptionAttachment,
}

// ApplicationCommand converts the schema into the wire type published by
// Command Sync.
func (c *Command) ApplicationCommand() (*discordgo.ApplicationCommand, error) {
	options, err := convertOptions(c.Options)
	if err != nil {
		return nil, fmt.Errorf("(*Command).ApplicationCommand: %s: %w", c.Name, err)
	}
	return &discordgo.ApplicationCommand{
		Type:                     discordgo.ChatApplicationCommand,
		Name:                     c.Name,
		Description:              c.Description,
		DefaultMemberPermissions: c.DefaultMemberPermissions,
		DMPermission:             c.DMPermission,
		NSFW:                     c.NSFW,
		Options:                  options,
	}, nil
}

func convertOptions(in []*Option) ([]*discordgo.ApplicationCommandOption, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]*discordgo.ApplicationCommandOption, 0, len(in))
	for _, o := range in {
		optType, ok := optionTypes[o.Type]
		if !ok {
			return nil, fmt.Errorf("option %q: unknown type %q", o.Name, o.Type)
		}
		sub, err := convertOptions(o.Options)
		if err != nil {
			return nil, err
		}
		opt := &discordgo.ApplicationCommandOption{
			Type:         optType,
			Name:         o.Name,
			Description:  o.Description,
			Required:     o.Required,
			Autocomplete: o.Autocomplete,
			MinLength:    o.MinLength,
			MaxLength:    o.MaxLength,
			Options:      sub,
		}
		for _, c := range o.Choices {
			opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  c.Name,
				Value: c.Value,
			})
		}
		out = append(out, opt)
	}
	return out, nil
}
