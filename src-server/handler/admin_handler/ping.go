package admin_handler

import (
	"context"
	"fmt"
	"runtime"

	"cogbot/src-server/interaction"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

func ping(as *utils.AppState, u *unit.Unit) (unit.Handler, error) {
	return unit.Handler{
		Invoke: func(ctx context.Context, e interaction.Event) error {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			memUsage := float64(m.Sys) / 1024 / 1024

			latency := "n/a"
			if s := e.Session(); s != nil {
				latency = fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds())
			}
			guildID := ""
			if i := e.Interaction(); i != nil && i.Interaction != nil {
				guildID = i.GuildID
			}

			embed := &discordgo.MessageEmbed{
				Title: "Pong!",
				Footer: &discordgo.MessageEmbedFooter{
					Text: guildID,
				},
				Fields: []*discordgo.MessageEmbedField{
					{
						Name:  "Uptime",
						Value: as.GetUptime().String(),
					},
					{
						Name:   "Latency",
						Value:  latency,
						Inline: true,
					},
					{
						Name:   "Go version",
						Value:  runtime.Version(),
						Inline: true,
					},
					{
						Name:   "Memory",
						Value:  fmt.Sprintf("%.2fMB", memUsage),
						Inline: true,
					},
					{
						Name: "Units",
						Value: fmt.Sprintf("%d commands, %d buttons, %d modals, %d menus",
							as.Commands.Len(), as.Buttons.Len(), as.Modals.Len(), as.SelectMenus.Len()),
					},
				},
			}

			return utils.Respond(as, e, utils.EmbedResp(true, nil, embed))
		},
	}, nil
}
