package main

import (
	"fmt"
	"log/slog"

	"cogbot/src-server/cmdsync"
	"cogbot/src-server/interaction"
	"cogbot/src-server/loader"
	"cogbot/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

var (
	syncGuildID string
	syncGlobal  bool
	syncDryRun  bool
)

func init() {
	syncCmd.Flags().StringVar(&syncGuildID, "guild", "", "publish to this guild instead of DISCORD_GUILD_ID")
	syncCmd.Flags().BoolVar(&syncGlobal, "global", false, "publish globally even when DISCORD_GUILD_ID is set")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "print the command catalog instead of publishing it")
	syncCmd.MarkFlagsMutuallyExclusive("guild", "global")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish the slash commands found in the unit files, then exit",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	config := utils.NewOfflineConfig()
	if !syncDryRun {
		config = utils.NewConfig()
	}
	as := utils.NewLocalAppState(config)
	roots := loader.DefaultRoots(as.Config.GetUnitsDir())
	l := loader.New(as, handlerTable(), roots)

	report := l.LoadInto(interaction.KindCommand, as.Commands, roots.Commands...)
	if report.Failed > 0 {
		slog.Warn("some command units failed to load", "failed", report.Failed)
	}

	if syncDryRun {
		for _, c := range cmdsync.Snapshot(as.Commands) {
			fmt.Fprintf(cmd.OutOrStdout(), "/%s\t%s\n", c.Name, c.Description)
		}
		return nil
	}

	guildID := as.Config.GetDiscordGuildID()
	switch {
	case syncGlobal:
		guildID = ""
	case syncGuildID != "":
		guildID = syncGuildID
	}

	// bulk overwrite is a REST call, no gateway connection needed
	session, err := discordgo.New("Bot " + as.Config.GetDiscordAppToken())
	if err != nil {
		return fmt.Errorf("runSync: %w", err)
	}
	if err := cmdsync.Sync(cmd.Context(), session, as.Config.GetDiscordClientId(), guildID, as.Commands); err != nil {
		return fmt.Errorf("runSync: %w", err)
	}
	utils.Success("published slash commands", "count", as.Commands.Len(), "guild", guildID)
	return nil
}
