package utils

import (
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"

	"cogbot/src-server/interaction"
	"cogbot/src-server/unit"

	"github.com/bwmarrin/discordgo"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Reloader refreshes registry entries from disk. Implemented by the loader,
// used by the reload command, the reload route and SIGHUP.
type Reloader interface {
	Reload(kind interaction.Kind, id string) bool
	ReloadListener(name string) bool
	ReloadAll()
}

type AppState struct {
	Config    *Config
	RawDB     *sql.DB
	BunDB     *bun.DB
	DgSession *discordgo.Session

	// one registry per interaction kind, filled by the loader; autocomplete
	// requests are served from Commands
	Commands    *unit.Registry
	Buttons     *unit.Registry
	Modals      *unit.Registry
	SelectMenus *unit.Registry

	// set in main once the loader exists
	Reloader Reloader

	MetricChans        *Metric
	AppCloseSignalChan chan os.Signal

	startTime              time.Time
	gracefulShutdownChans  []*chan struct{}
	gracefulShutdownChansM sync.Mutex
}

// NewLocalAppState builds the registries, the metric channels and the
// shutdown plumbing without opening the database or the Discord session.
func NewLocalAppState(config *Config) *AppState {
	return &AppState{
		Config: config,

		Commands:    unit.NewRegistry(),
		Buttons:     unit.NewRegistry(),
		Modals:      unit.NewRegistry(),
		SelectMenus: unit.NewRegistry(),

		MetricChans:        NewMetric(),
		AppCloseSignalChan: make(chan os.Signal, 1),

		startTime: time.Now(),
	}
}

func NewAppState() *AppState {
	as := NewLocalAppState(NewConfig())

	// database
	var err error
	as.RawDB, err = sql.Open(sqliteshim.ShimName, as.Config.GetDatabasePath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	as.RawDB.SetMaxIdleConns(8)
	if err := as.RawDB.Ping(); err != nil {
		slog.Error("cannot reach sqlite database", "error", err)
		os.Exit(1)
	}

	as.BunDB = bun.NewDB(as.RawDB, sqlitedialect.New())
	as.BunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	// discord
	as.DgSession, err = discordgo.New("Bot " + as.Config.GetDiscordAppToken())
	if err != nil {
		slog.Error("cannot create discord session", "error", err)
		os.Exit(1)
	}
	as.DgSession.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return as
}

// Registry returns the registry that serves kind.
func (as *AppState) Registry(kind interaction.Kind) *unit.Registry {
	switch kind {
	case interaction.KindCommand, interaction.KindAutocomplete:
		return as.Commands
	case interaction.KindButton:
		return as.Buttons
	case interaction.KindModal:
		return as.Modals
	case interaction.KindSelectMenu:
		return as.SelectMenus
	}
	return nil
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startTime).Round(time.Second)
}

// CreateGracefulShutdownChan returns a channel that is closed once
// GracefulShutdown runs.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.gracefulShutdownChansM.Lock()
	defer as.gracefulShutdownChansM.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.gracefulShutdownChansM.Lock()
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil
	as.gracefulShutdownChansM.Unlock()

	if as.DgSession != nil {
		if err := as.DgSession.Close(); err != nil {
			slog.Warn("can't close discord session", "error", err)
		}
	}
	if as.BunDB != nil {
		if err := as.BunDB.Close(); err != nil {
			slog.Warn("can't close database", "error", err)
		}
	}
}
