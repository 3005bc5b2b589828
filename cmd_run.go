package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cogbot/src-server/cmdsync"
	"cogbot/src-server/gateway"
	"cogbot/src-server/loader"
	"cogbot/src-server/metric"
	"cogbot/src-server/model"
	"cogbot/src-server/route"
	"cogbot/src-server/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve interactions (default)",
	Args:  cobra.NoArgs,
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	as := utils.NewAppState()

	if err := model.CreateSchema(as.BunDB); err != nil {
		slog.Error("can't create database schema", "error", err)
		os.Exit(1)
	}

	l := loader.New(as, handlerTable(), loader.DefaultRoots(as.Config.GetUnitsDir()))
	as.Reloader = l
	l.LoadAll()
	l.BindListeners(as.DgSession)

	// route interactions from Discord to the registries
	router := gateway.NewRouter(as)
	as.DgSession.AddHandler(router.HandleInteraction)

	// open a connection to Discord
	if err := as.DgSession.Open(); err != nil {
		slog.Error("can't open discord session", "error", err)
		os.Exit(1)
	}

	// tell Discord what commands we have
	if err := cmdsync.Sync(
		cmd.Context(),
		as.DgSession,
		as.Config.GetDiscordClientId(),
		as.Config.GetDiscordGuildID(),
		as.Commands,
	); err != nil {
		slog.Error("can't publish slash commands", "error", err)
	}

	metric.Init(as)

	// http server
	muxer := http.NewServeMux()
	muxer.Handle("GET /metrics", promhttp.Handler())
	route.Health(muxer, as)
	route.Units(muxer, as)
	route.Reload(muxer, as)
	server := &http.Server{
		Addr:              ":" + as.Config.GetPort(),
		Handler:           muxer,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
			return err
		}
		return nil
	})
	shutdown := as.CreateGracefulShutdownChan()
	g.Go(func() error {
		reloadOnHangup(as, l, shutdown)
		return nil
	})

	slog.Info("number of guilds", "guilds", len(as.DgSession.State.Guilds))
	slog.Info("app is now running, press Ctrl+C to exit")

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	slog.Info("gracefully shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("can't shut down HTTP server", "error", err)
	}
	as.GracefulShutdown()

	return g.Wait()
}

// reloadOnHangup re-reads every unit root on SIGHUP until shutdown.
func reloadOnHangup(as *utils.AppState, l *loader.Loader, shutdown *chan struct{}) {
	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)

	for {
		select {
		case <-*shutdown:
			return
		case <-hangup:
			slog.Info("SIGHUP received")
			l.ReloadAll()
			as.AuditReload(context.Background(), &model.ReloadAudit{
				Source: model.RELOAD_SOURCE_SIGNAL,
				Kind:   "all",
				OK:     true,
			})
		}
	}
}
