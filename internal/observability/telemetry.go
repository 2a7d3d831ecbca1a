package observability

import (
	"context"
	"time"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName префикс имён трассировщиков
const InstrumentationName = "github.com/annel0/blockverse"

// ShutdownFunc завершает экспорт трасс
type ShutdownFunc func(context.Context) error

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// При выключенной телеметрии глобальный провайдер остаётся no-op.
// Возвращает функцию shutdown, которую нужно вызвать при завершении приложения.
func InitTelemetry(ctx context.Context, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	if !cfg.Enabled {
		logging.Debug("📡 OpenTelemetry выключен")
		return func(context.Context) error { return nil }, nil
	}

	endpoint := cfg.GetEndpoint()
	exp, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (OTLP → %s, service=%s)", endpoint, cfg.ServiceName)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}

// Tracer возвращает трассировщик компонента из глобального провайдера
func Tracer(component string) trace.Tracer {
	return otel.Tracer(InstrumentationName + "/" + component)
}
