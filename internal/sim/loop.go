package sim

import (
	"context"
	"time"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/interaction"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/world"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Options настройки цикла симуляции. Нулевые поля необязательны.
type Options struct {
	TickInterval  time.Duration // По умолчанию 1/60 с
	RebuildBudget int           // Чанков за шаг, 0 - все грязные
	ReportEvery   uint64        // Раз в сколько шагов писать диагностику в лог, 0 - никогда

	Metrics     *Metrics
	Diagnostics *Diagnostics
	Bus         eventbus.EventBus
	Tracer      trace.Tracer // По умолчанию observability.Tracer("sim")
}

// StepResult итоги одного шага
type StepResult struct {
	Step     uint64
	Outcome  interaction.Outcome
	Rebuild  world.RebuildStats
	Duration time.Duration
}

// Loop - однопоточный цикл симуляции. Каждый шаг: ввод и камера, луч и не более
// одной правки, затем один проход перестройки грязных чанков.
type Loop struct {
	world      *world.World
	controller *interaction.Controller
	input      InputSource
	opts       Options
	bridge     *Bridge
	tracer     trace.Tracer
	logger     *logging.Logger

	step    uint64
	stepCtx context.Context
}

// NewLoop создаёт цикл и подписывается на события мира
func NewLoop(w *world.World, ctl *interaction.Controller, input InputSource, opts Options) *Loop {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / 60
	}
	if input == nil {
		input = IdleInput
	}

	l := &Loop{
		world:      w,
		controller: ctl,
		input:      input,
		opts:       opts,
		tracer:     opts.Tracer,
		logger:     logging.GetSimLogger(),
		stepCtx:    context.Background(),
	}
	if l.tracer == nil {
		l.tracer = observability.Tracer("sim")
	}
	if opts.Bus != nil {
		l.bridge = NewBridge(opts.Bus)
	}

	w.SetEventSink(l.handleEvent)
	return l
}

// Steps возвращает число выполненных шагов
func (l *Loop) Steps() uint64 {
	return l.step
}

// World возвращает мир цикла
func (l *Loop) World() *world.World {
	return l.world
}

// Step выполняет один шаг симуляции
func (l *Loop) Step(ctx context.Context) StepResult {
	start := time.Now()
	l.step++

	ctx, span := l.tracer.Start(ctx, "sim.step", trace.WithAttributes(attribute.Int64("sim.step", int64(l.step))))
	defer span.End()
	l.stepCtx = ctx
	defer func() { l.stepCtx = context.Background() }()

	res := StepResult{Step: l.step}

	// 1. Ввод, камера, луч и правка
	res.Outcome = l.controller.Apply(l.world, l.input.Next(l.step))

	// 2. Перестройка
	_, rspan := l.tracer.Start(ctx, "sim.rebuild")
	res.Rebuild = l.world.RebuildDirty(l.opts.RebuildBudget)
	rspan.SetAttributes(
		attribute.Int("rebuild.chunks", res.Rebuild.Rebuilt),
		attribute.Int("rebuild.remaining", res.Rebuild.Remaining),
		attribute.Int("rebuild.faces", res.Rebuild.Faces),
	)
	rspan.End()

	res.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Bool("ray.hit", res.Outcome.HasHit),
		attribute.Bool("block.removed", res.Outcome.Removed),
	)

	l.observe(res)
	return res
}

func (l *Loop) observe(res StepResult) {
	live := -1
	if lc, ok := l.world.Sink().(LiveCounter); ok {
		live = lc.Live()
	}
	if l.opts.Metrics != nil {
		l.opts.Metrics.observeStep(res, l.world.DirtyCount(), live)
	}

	if l.opts.Diagnostics != nil {
		l.opts.Diagnostics.RecordFrame(res.Duration)
		if l.opts.ReportEvery > 0 && res.Step%l.opts.ReportEvery == 0 {
			l.logger.Info("📊 Шаг %d: %s", res.Step, l.opts.Diagnostics.Sample())
		}
	}

	if res.Rebuild.Rebuilt > 0 {
		l.logger.Trace("🔁 Шаг %d: перестроено %d чанков (%d граней), осталось %d",
			res.Step, res.Rebuild.Rebuilt, res.Rebuild.Faces, res.Rebuild.Remaining)
	}
}

// handleEvent получает события мира синхронно внутри шага
func (l *Loop) handleEvent(ev world.Event) {
	if l.opts.Metrics != nil {
		l.opts.Metrics.observeEvent(ev.GetType().String())
	}
	if l.bridge == nil {
		return
	}
	if err := l.bridge.Publish(l.stepCtx, l.step, ev); err != nil {
		l.logger.Warn("⚠️ Событие %s не опубликовано: %v", ev.GetType(), err)
	}
}

// Run выполняет шаги с фиксированным интервалом до отмены ctx или до maxSteps шагов
// (0 - без ограничения). Возвращает ctx.Err() при отмене и nil по достижении maxSteps.
func (l *Loop) Run(ctx context.Context, maxSteps uint64) error {
	ticker := time.NewTicker(l.opts.TickInterval)
	defer ticker.Stop()

	l.logger.Info("▶️ Симуляция запущена: интервал %s, чанков %d", l.opts.TickInterval, l.world.ChunkCount())

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("⏹️ Симуляция остановлена после %d шагов: %v", l.step, ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			l.Step(ctx)
			if maxSteps > 0 && l.step >= maxSteps {
				l.logger.Info("⏹️ Симуляция завершена: %d шагов", l.step)
				return nil
			}
		}
	}
}
