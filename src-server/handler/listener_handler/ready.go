package listener_handler

import (
	"log/slog"

	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// statusUpdater is the part of *discordgo.Session the ready listener uses.
type statusUpdater interface {
	UpdateCustomStatus(state string) error
}

func ready(as *utils.AppState, u *unit.Unit) (any, error) {
	onReady := readyFunc(u.Param("status", "Ready to help!"))
	return func(s *discordgo.Session, r *discordgo.Ready) {
		onReady(s, r)
	}, nil
}

func readyFunc(status string) func(s statusUpdater, r *discordgo.Ready) {
	return func(s statusUpdater, r *discordgo.Ready) {
		username := "unknown"
		if r.User != nil {
			username = r.User.Username
		}
		utils.Success("ready! logged in", "username", username)
		slog.Info("bot is running", "guilds", len(r.Guilds))

		if status == "" {
			return
		}
		if err := s.UpdateCustomStatus(status); err != nil {
			slog.Warn("can't update status", "error", err)
		}
	}
}

func guildCreate(as *utils.AppState, u *unit.Unit) (any, error) {
	return func(s *discordgo.Session, g *discordgo.GuildCreate) {
		if g.Guild == nil {
			return
		}
		slog.Info("guild available", "guild_id", g.ID, "name", g.Name, "members", g.MemberCount)
	}, nil
}
