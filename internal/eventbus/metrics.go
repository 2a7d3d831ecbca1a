package eventbus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsExporter периодически переносит Stats шины в Prometheus Counter/Gauge.
// HTTP-эндпоинт обслуживает вызывающий код через promhttp.HandlerFor.
type MetricsExporter struct {
	bus  EventBus
	quit chan struct{}
	done chan struct{}
	prev Stats
	// Prometheus metrics
	published prometheus.Counter
	consumed  prometheus.Counter
	dropped   prometheus.Counter
	inflight  prometheus.Gauge
}

// NewMetricsExporter создаёт экспортер и регистрирует метрики в reg.
func NewMetricsExporter(bus EventBus, reg prometheus.Registerer) (*MetricsExporter, error) {
	me := &MetricsExporter{
		bus:  bus,
		quit: make(chan struct{}),
		done: make(chan struct{}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_published_total",
			Help:      "Общее число опубликованных сообщений.",
		}),
		consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_consumed_total",
			Help:      "Общее число доставленных сообщений подписчикам.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_dropped_total",
			Help:      "Сообщений, отброшенных из-за переполнения буфера.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_inflight",
			Help:      "Количество сообщений в очереди (не доставленных).",
		}),
	}

	for _, c := range []prometheus.Collector{me.published, me.consumed, me.dropped, me.inflight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return me, nil
}

// Start запускает периодическое обновление метрик. Метод неблокирующий.
func (m *MetricsExporter) Start(interval time.Duration) {
	go m.loop(interval)
}

// Stop останавливает обновление метрик и выполняет последнюю синхронизацию.
func (m *MetricsExporter) Stop() {
	close(m.quit)
	<-m.done
}

// Sync переносит приращения Stats с прошлого вызова.
func (m *MetricsExporter) Sync() {
	stats := m.bus.Metrics()

	// Counter только растёт, поэтому прибавляем дельту к прошлому значению
	if d := stats.Published - m.prev.Published; d > 0 {
		m.published.Add(float64(d))
	}
	if d := stats.Consumed - m.prev.Consumed; d > 0 {
		m.consumed.Add(float64(d))
	}
	if d := stats.Dropped - m.prev.Dropped; d > 0 {
		m.dropped.Add(float64(d))
	}
	m.inflight.Set(float64(stats.InFlight))

	m.prev = stats
}

func (m *MetricsExporter) loop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(m.done)

	for {
		select {
		case <-ticker.C:
			m.Sync()
		case <-m.quit:
			m.Sync()
			return
		}
	}
}
