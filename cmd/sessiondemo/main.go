package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-session-lifecycle/inactivity"
	"github.com/jrsteele09/go-session-lifecycle/internal/config"
	"github.com/jrsteele09/go-session-lifecycle/monitor"
	"github.com/jrsteele09/go-session-lifecycle/session"
	"github.com/jrsteele09/go-session-lifecycle/session/providerfakes"
)

// sessiondemo runs both monitors against the fake identity provider and
// logs every lifecycle event until interrupted.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("demo failed")
	}
	log.Info().Msg("demo stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()
	c := config.New()
	displayAppname(c.GetAppName())

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	provider := providerfakes.NewFakeProvider(30 * time.Minute)
	refresher, err := session.NewRefresher(provider)
	if err != nil {
		return err
	}

	visibility := monitor.NewVisibilitySignal()
	sessionMonitor, err := monitor.NewSessionMonitor(provider, refresher,
		monitor.WithCheckInterval(c.GetSessionCheckInterval()),
		monitor.WithLogger(log.Logger),
		monitor.WithVisibilitySignal(visibility),
	)
	if err != nil {
		return err
	}

	idleMonitor, err := inactivity.New(inactivity.Config{
		Timeout:       c.GetInactivityTimeout(),
		Warning:       c.GetInactivityWarning(),
		CheckInterval: c.GetInactivityCheckInterval(),
	})
	if err != nil {
		return err
	}

	sessionMonitor.StartSessionMonitoring(monitor.Callbacks{
		OnExpired: func() {
			log.Warn().Msg("session expired, signing out")
		},
		OnRefreshed: func(s *session.Session) {
			log.Info().Time("expires_at", s.ExpiresAt).Msg("session refreshed")
		},
	})
	defer sessionMonitor.StopSessionMonitoring()

	idleMonitor.Start(inactivity.Callbacks{
		OnWarning: func(remaining time.Duration) {
			log.Warn().Dur("remaining", remaining).Msg("inactivity warning")
		},
		OnTimeout: func() {
			log.Warn().Msg("inactivity timeout, forcing logout")
		},
		OnActivity: func() {
			log.Info().Msg("activity resumed")
		},
	})
	defer idleMonitor.Stop()

	// Seed a signed-in user so the monitors have something to watch.
	if _, err := provider.RefreshSession(context.Background()); err != nil {
		return err
	}

	waitForStopSignal()
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
