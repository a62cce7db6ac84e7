package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/jaminalder/tictactoe-ai/internal/app"
    "github.com/jaminalder/tictactoe-ai/internal/config"
    "github.com/jaminalder/tictactoe-ai/internal/engine"
    "github.com/jaminalder/tictactoe-ai/internal/terminal"
    "github.com/jaminalder/tictactoe-ai/internal/web"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

func main() {
    cfg := config.Load()

    zerolog.SetGlobalLevel(cfg.LogLevel)
    if cfg.LogPretty {
        log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
    }

    sel := engine.NewSelector(engine.WithSeed(cfg.Seed), engine.WithDepth(cfg.SearchDepth))
    svc := app.NewService(sel, cfg.Difficulty)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    var err error
    switch cfg.Mode {
    case config.ModeTerminal:
        err = terminal.Run(ctx, svc, os.Stdin, os.Stdout)
    default:
        err = serve(ctx, cfg, svc)
    }
    if err != nil && !errors.Is(err, context.Canceled) {
        log.Fatal().Err(err).Msg("tictactoe stopped")
    }
}

func serve(ctx context.Context, cfg *config.Config, svc *app.Service) error {
    srv := &http.Server{
        Addr:              cfg.Addr,
        Handler:           web.NewServer(svc, cfg.Heartbeat),
        ReadHeaderTimeout: 5 * time.Second,
    }
    go func() {
        <-ctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := srv.Shutdown(shutdownCtx); err != nil {
            log.Warn().Err(err).Msg("shutdown")
        }
    }()

    log.Info().
        Str("addr", cfg.Addr).
        Str("difficulty", cfg.Difficulty.String()).
        Int("depth", cfg.SearchDepth).
        Msg("listening")
    if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
        return err
    }
    return nil
}
