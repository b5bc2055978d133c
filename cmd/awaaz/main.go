// Command awaaz is the main entry point for the Awaaz narration server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/awaaz-ai/awaaz/internal/config"
	"github.com/awaaz-ai/awaaz/internal/dictionary"
	"github.com/awaaz-ai/awaaz/internal/health"
	"github.com/awaaz-ai/awaaz/internal/observe"
	"github.com/awaaz-ai/awaaz/internal/server"
	"github.com/awaaz-ai/awaaz/internal/session"
	"github.com/awaaz-ai/awaaz/internal/voice"
	"github.com/awaaz-ai/awaaz/pkg/provider/analyze"
	"github.com/awaaz-ai/awaaz/pkg/provider/analyze/gemini"
	analyzemock "github.com/awaaz-ai/awaaz/pkg/provider/analyze/mock"
	"github.com/awaaz-ai/awaaz/pkg/provider/music"
	"github.com/awaaz-ai/awaaz/pkg/provider/tts"
	"github.com/awaaz-ai/awaaz/pkg/provider/tts/googletts"
	ttsmock "github.com/awaaz-ai/awaaz/pkg/provider/tts/mock"
	"github.com/awaaz-ai/awaaz/pkg/provider/tts/openaitts"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Environment ───────────────────────────────────────────────────────────
	// .env is optional; real environment variables win over file entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "awaaz: load .env: %v\n", err)
	}

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "awaaz: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "awaaz: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logLevel := new(slog.LevelVar)
	logLevel.Set(slogLevel(cfg.Server.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	slog.Info("awaaz starting",
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
		"log_level", cfg.Server.LogLevel,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Provider registry ─────────────────────────────────────────────────────
	reg := config.NewRegistry()
	registerBuiltinProviders(ctx, reg)

	// ── Instantiate providers ─────────────────────────────────────────────────
	providers, err := buildProviders(cfg, reg)
	if err != nil {
		slog.Error("failed to build providers", "err", err)
		return 1
	}

	// ── Dictionary ────────────────────────────────────────────────────────────
	dict := dictionary.Load(cfg.Dictionary.Path)

	// ── Voice catalogs ────────────────────────────────────────────────────────
	catalogs := buildCatalogs(ctx, cfg, providers.TTS)

	// ── Session + HTTP server ─────────────────────────────────────────────────
	sess := session.New(session.Config{
		Dictionary: dict,
		Catalogs:   catalogs,
	})

	healthHandler := health.New(
		health.Dictionary(dict.Len),
		health.Provider("analyze", func() bool { return providers.Analyze != nil }),
		health.Provider("tts", func() bool { return providers.TTS != nil }),
	)

	srv := server.New(server.Config{
		Session:     sess,
		Catalogs:    catalogs,
		Analyze:     providers.Analyze,
		TTS:         providers.TTS,
		Music:       providers.Music,
		AnalyzeName: cfg.Providers.Analyze.Name,
		TTSName:     cfg.Providers.TTS.Name,
		MusicName:   cfg.Providers.Music.Name,
		Uploads:     cfg.Uploads,
		Health:      healthHandler,
	})

	// ── Config hot reload ─────────────────────────────────────────────────────
	watcher, err := config.NewWatcher(*configPath, func(d config.ConfigDiff, _ *config.Config) {
		if d.LogLevelChanged {
			logLevel.Set(slogLevel(d.NewLogLevel))
			slog.Info("log level changed", "level", d.NewLogLevel)
		}
		if d.DictionaryChanged || len(d.ProvidersChanged) > 0 {
			slog.Warn("dictionary or provider config changed — restart to apply",
				"dictionary", d.DictionaryChanged,
				"providers", d.ProvidersChanged,
			)
		}
	})
	if err != nil {
		slog.Warn("config watcher unavailable", "err", err)
	} else {
		defer watcher.Stop()
	}

	// ── Startup summary ───────────────────────────────────────────────────────
	printStartupSummary(cfg, dict)

	// ── Serve ─────────────────────────────────────────────────────────────────
	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server ready — press Ctrl+C to shut down", "addr", httpServer.Addr)
		var err error
		if tlsCfg := cfg.Server.TLS; tlsCfg != nil {
			err = httpServer.ListenAndServeTLS(tlsCfg.CertFile, tlsCfg.KeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutdown signal received, stopping…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Provider wiring ───────────────────────────────────────────────────────────

// Providers holds one instance per provider slot. Nil means the provider is
// not configured.
type Providers struct {
	Analyze analyze.Provider
	TTS     tts.Provider
	Music   *music.Client
}

// registerBuiltinProviders wires all built-in provider factories into reg.
// Each factory receives a config.ProviderEntry and constructs the provider
// from the real implementation packages.
func registerBuiltinProviders(ctx context.Context, reg *config.Registry) {
	// ── Analyze ───────────────────────────────────────────────────────────────

	reg.RegisterAnalyze("gemini", func(entry config.ProviderEntry) (analyze.Provider, error) {
		var opts []gemini.Option
		if entry.Model != "" {
			opts = append(opts, gemini.WithModel(entry.Model))
		}
		if entry.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(entry.BaseURL))
		}
		return gemini.New(ctx, entry.APIKey, opts...)
	})

	reg.RegisterAnalyze("mock", func(entry config.ProviderEntry) (analyze.Provider, error) {
		return &analyzemock.Provider{}, nil
	})

	// ── TTS ───────────────────────────────────────────────────────────────────

	reg.RegisterTTS("gpt4o-mini", func(entry config.ProviderEntry) (tts.Provider, error) {
		var opts []openaitts.Option
		if entry.Model != "" {
			opts = append(opts, openaitts.WithModel(entry.Model))
		}
		if entry.BaseURL != "" {
			opts = append(opts, openaitts.WithBaseURL(entry.BaseURL))
		}
		return openaitts.New(entry.APIKey, opts...)
	})

	reg.RegisterTTS("google", func(entry config.ProviderEntry) (tts.Provider, error) {
		var opts []googletts.Option
		if entry.BaseURL != "" {
			opts = append(opts, googletts.WithBaseURL(entry.BaseURL))
		}
		return googletts.New(entry.APIKey, opts...)
	})

	reg.RegisterTTS("mock", func(entry config.ProviderEntry) (tts.Provider, error) {
		return &ttsmock.Provider{}, nil
	})

	// ── Music ─────────────────────────────────────────────────────────────────

	reg.RegisterMusic("loudly", func(entry config.ProviderEntry) (*music.Client, error) {
		var opts []music.Option
		if entry.BaseURL != "" {
			opts = append(opts, music.WithBaseURL(entry.BaseURL))
		}
		if testMode, _ := entry.Options["test_mode"].(bool); testMode {
			opts = append(opts, music.WithTestMode())
		}
		return music.New(entry.APIKey, opts...)
	})
}

// buildProviders instantiates all providers named in cfg using the registry.
func buildProviders(cfg *config.Config, reg *config.Registry) (*Providers, error) {
	ps := &Providers{}

	if name := cfg.Providers.Analyze.Name; name != "" {
		p, err := reg.CreateAnalyze(cfg.Providers.Analyze)
		if errors.Is(err, config.ErrProviderNotRegistered) {
			slog.Debug("provider not yet implemented — skipping", "kind", "analyze", "name", name)
		} else if err != nil {
			return nil, fmt.Errorf("create analyze provider %q: %w", name, err)
		} else {
			ps.Analyze = p
			slog.Info("provider created", "kind", "analyze", "name", name)
		}
	}

	if name := cfg.Providers.TTS.Name; name != "" {
		p, err := reg.CreateTTS(cfg.Providers.TTS)
		if errors.Is(err, config.ErrProviderNotRegistered) {
			slog.Debug("provider not yet implemented — skipping", "kind", "tts", "name", name)
		} else if err != nil {
			return nil, fmt.Errorf("create tts provider %q: %w", name, err)
		} else {
			ps.TTS = p
			slog.Info("provider created", "kind", "tts", "name", name)
		}
	}

	if name := cfg.Providers.Music.Name; name != "" {
		p, err := reg.CreateMusic(cfg.Providers.Music)
		if errors.Is(err, config.ErrProviderNotRegistered) {
			slog.Debug("provider not yet implemented — skipping", "kind", "music", "name", name)
		} else if err != nil {
			return nil, fmt.Errorf("create music provider %q: %w", name, err)
		} else {
			ps.Music = p
			slog.Info("provider created", "kind", "music", "name", name)
		}
	}

	return ps, nil
}

// buildCatalogs starts from the built-in catalogs and replaces the configured
// TTS provider's catalog with the backend's live voice listing when one is
// available.
func buildCatalogs(ctx context.Context, cfg *config.Config, ttsProvider tts.Provider) voice.CatalogSet {
	catalogs := voice.BuiltinCatalogs()
	if ttsProvider == nil {
		return catalogs
	}

	name := cfg.Providers.TTS.Name
	listCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	voices, err := ttsProvider.ListVoices(listCtx)
	if err != nil {
		slog.Warn("live voice listing unavailable, using the static catalog", "provider", name, "err", err)
		return catalogs
	}
	if len(voices) == 0 {
		return catalogs
	}

	existing, _ := catalogs.Get(name)
	live := voice.Catalog{
		Provider:            name,
		RequiresGenderMatch: existing.RequiresGenderMatch,
	}
	byLanguage := make(map[string]int)
	for _, v := range voices {
		i, ok := byLanguage[v.LanguageCode]
		if !ok {
			live.Languages = append(live.Languages, voice.Language{Code: v.LanguageCode})
			i = len(live.Languages) - 1
			byLanguage[v.LanguageCode] = i
		}
		live.Languages[i].Voices = append(live.Languages[i].Voices, voice.Voice{
			Name:   v.Name,
			Gender: v.Gender,
		})
	}
	catalogs.Put(live)
	slog.Info("live voice catalog loaded", "provider", name, "voices", len(voices))
	return catalogs
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, dict *dictionary.Index) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║          Awaaz — startup summary      ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printProvider("Analyze", cfg.Providers.Analyze.Name, cfg.Providers.Analyze.Model)
	printProvider("TTS", cfg.Providers.TTS.Name, cfg.Providers.TTS.Model)
	printProvider("Music", cfg.Providers.Music.Name, "")
	if dict.Degraded() {
		fmt.Printf("║  Dictionary      : %-19s ║\n", "(unavailable)")
	} else {
		fmt.Printf("║  Dictionary      : %-19d ║\n", dict.Len())
	}
	if cfg.Server.ListenAddr != "" {
		fmt.Printf("║  Listen addr     : %-19s ║\n", cfg.Server.ListenAddr)
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printProvider(kind, name, model string) {
	value := name
	if value == "" {
		value = "(not configured)"
	} else if model != "" {
		value = name + " / " + model
	}
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-12s    : %-19s ║\n", kind, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func slogLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
