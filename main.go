package main

import (
	"log/slog"
	"os"

	"cogbot/src-server/handler"
	"cogbot/src-server/handler/admin_handler"
	"cogbot/src-server/handler/example_handler"
	"cogbot/src-server/handler/listener_handler"
	"cogbot/src-server/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(utils.NewLogHandler(
		os.Stderr,
		utils.ParseLevel(os.Getenv("LOG_LEVEL")),
		os.Getenv("NO_COLOR") != "",
	)))
}

var rootCmd = &cobra.Command{
	Use:          "cogbot",
	Short:        "Discord bot whose interactions are described by unit files",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runBot,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// handlerTable is every handler compiled into the binary. Units refer to
// them by name.
func handlerTable() *handler.Table {
	t := handler.NewTable()
	admin_handler.Init(t)
	example_handler.Init(t)
	listener_handler.Init(t)
	return t
}
