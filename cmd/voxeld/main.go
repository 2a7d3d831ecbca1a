package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/interaction"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/render"
	"github.com/annel0/blockverse/internal/sim"
	"github.com/annel0/blockverse/internal/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		configPath = flag.String("config", "", "Путь к YAML конфигурации (по умолчанию $BLOCKVERSE_CONFIG)")
		ticks      = flag.Uint64("ticks", 0, "Остановиться после N шагов (0 - до сигнала)")
		demo       = flag.Bool("demo", false, "Сценарная камера: поворот и удаление блока каждые -break-every шагов")
		breakEvery = flag.Uint64("break-every", 30, "Период удаления блока в режиме -demo")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logOpts, err := cfg.Logging.LoggerOptions()
	if err != nil {
		log.Fatalf("❌ Ошибка настройки логирования: %v", err)
	}
	if err := logging.InitDefaultLogger("voxeld", logOpts); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	if err := run(cfg, *ticks, *demo, *breakEvery); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
	logging.Info("👋 voxeld остановлен")
}

func run(cfg *config.Config, ticks uint64, demo bool, breakEvery uint64) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info("🧊 Запуск voxeld: рельеф=%s seed=%d радиус=%d слоёв=%d",
		cfg.Terrain.Mode, cfg.Terrain.Seed, cfg.World.ChunkRadius, cfg.World.Layers)

	// === ТЕЛЕМЕТРИЯ ===
	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("инициализация телеметрии: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logging.Warn("⚠️ Ошибка остановки телеметрии: %v", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// === ШИНА СОБЫТИЙ ===
	bus := eventbus.NewMemoryBus(1024)
	defer bus.Close()
	if _, err := eventbus.StartLoggingListener(bus); err != nil {
		return fmt.Errorf("подписка логгера событий: %w", err)
	}
	busMetrics, err := eventbus.NewMetricsExporter(bus, reg)
	if err != nil {
		return fmt.Errorf("метрики шины: %w", err)
	}
	busMetrics.Start(time.Second)
	defer busMetrics.Stop()

	simMetrics, err := sim.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("метрики симуляции: %w", err)
	}

	if cfg.Metrics.Enabled {
		srv := startMetricsServer(cfg.Metrics.GetMetricsPort(), reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// === МИР ===
	gen, err := newGenerator(cfg.Terrain)
	if err != nil {
		return err
	}

	arena := render.NewArena()
	w := world.New(gen, arena, world.Options{
		MaxRayDistance: cfg.World.MaxRayDistance,
		TargetEpsilon:  cfg.World.TargetEpsilon,
		MeshWorkers:    cfg.Sim.MeshWorkers,
	})
	defer w.Close()

	loaded := w.LoadArea(cfg.World.ChunkRadius, cfg.World.Layers)
	logging.Info("🌍 Загружено чанков: %d (генератор %s)", loaded, gen.Name())

	// === КАМЕРА И ЦИКЛ ===
	cam := interaction.NewFlyCam(mgl32.Vec3(cfg.Camera.Position), mgl32.Vec3(cfg.Camera.LookAt))
	cam.MoveSpeed = cfg.Camera.MoveSpeed
	cam.SprintMod = cfg.Camera.SprintMod
	cam.LookSpeed = cfg.Camera.LookSpeed

	var input sim.InputSource = sim.IdleInput
	if demo {
		input = sim.DemoInput{BreakEvery: breakEvery, TurnRate: 1}
		logging.Info("🎬 Демо-режим: удаление блока каждые %d шагов", breakEvery)
	}

	diag, err := sim.NewDiagnostics(arena)
	if err != nil {
		logging.Warn("⚠️ Диагностика процесса недоступна: %v", err)
	}

	loop := sim.NewLoop(w, interaction.NewController(cam), input, sim.Options{
		TickInterval:  cfg.Sim.TickInterval(),
		RebuildBudget: cfg.Sim.RebuildBudget,
		ReportEvery:   uint64(cfg.Sim.TickRate) * 10,
		Metrics:       simMetrics,
		Diagnostics:   diag,
		Bus:           bus,
	})

	err = loop.Run(ctx, ticks)
	if errors.Is(err, context.Canceled) {
		logging.Info("📡 Получен сигнал завершения")
		return nil
	}
	return err
}

func newGenerator(t config.TerrainConfig) (world.Generator, error) {
	switch t.Mode {
	case "checker":
		return world.CheckerGenerator{}, nil
	default:
		gen, err := world.NewTerrainGenerator(t.Seed, t.BaseHeight, t.NoiseParams())
		if err != nil {
			return nil, fmt.Errorf("генератор рельефа: %w", err)
		}
		return gen, nil
	}
}

func startMetricsServer(port int, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
