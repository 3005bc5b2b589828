package cmdsync

import (
	"context"
	"fmt"
	"log/slog"

	"cogbot/src-server/metric"
	"cogbot/src-server/unit"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
)

// Publisher is the part of *discordgo.Session that replaces the remote
// command catalog.
type Publisher interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var _ Publisher = (*discordgo.Session)(nil)

// Snapshot converts every command in reg, in registration order. The result
// is never nil so that publishing it clears a catalog with no commands.
// Records that fail to convert are logged and left out.
func Snapshot(reg *unit.Registry) []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, reg.Len())
	for id, rec := range reg.All() {
		if rec.Unit == nil || rec.Unit.Command == nil {
			slog.Warn("command has no schema, not published", "id", id.String())
			continue
		}
		cmd, err := rec.Unit.Command.ApplicationCommand()
		if err != nil {
			slog.Error("can't convert command schema", "id", id.String(), "file", rec.Unit.Path, "error", err)
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func scope(guildID string) string {
	if guildID == "" {
		return "global"
	}
	return "guild"
}

// Sync replaces the command catalog of appID with the commands in reg.
// An empty guildID publishes globally.
func Sync(ctx context.Context, pub Publisher, appID, guildID string, reg *unit.Registry) error {
	return SyncWithPolicy(ctx, DefaultRetryPolicy(), pub, appID, guildID, reg)
}

func SyncWithPolicy(ctx context.Context, policy *RetryPolicy, pub Publisher, appID, guildID string, reg *unit.Registry) error {
	cmds := Snapshot(reg)
	slog.Info("publishing commands", "scope", scope(guildID), "guild_id", guildID, "count", len(cmds))

	var published []*discordgo.ApplicationCommand
	err := policy.Execute(ctx, func(attempt int) error {
		var err error
		published, err = pub.ApplicationCommandBulkOverwrite(appID, guildID, cmds, discordgo.WithContext(ctx))
		if err != nil {
			slog.Warn("can't publish commands", "attempt", attempt, "retryable", Retryable(err), "error", err)
		}
		return err
	})
	metric.RecordCommandSync(scope(guildID), err == nil)
	if err != nil {
		return fmt.Errorf("Sync: %w", err)
	}

	utils.Success("published commands", "scope", scope(guildID), "count", len(published))
	return nil
}
