package sim

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus-метрики цикла симуляции
type Metrics struct {
	steps         prometheus.Counter
	stepDuration  prometheus.Histogram
	rebuilt       prometheus.Counter
	faces         prometheus.Counter
	dirtyChunks   prometheus.Gauge
	liveInstances prometheus.Gauge
	rays          *prometheus.CounterVec
	blocksRemoved prometheus.Counter
	worldEvents   *prometheus.CounterVec
}

// NewMetrics создаёт метрики и регистрирует их в reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "sim",
			Name:      "steps_total",
			Help:      "Выполнено шагов симуляции.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "blockverse",
			Subsystem: "sim",
			Name:      "step_duration_seconds",
			Help:      "Длительность шага симуляции.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
		rebuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "world",
			Name:      "chunks_rebuilt_total",
			Help:      "Перестроено чанков (меш и коллизия).",
		}),
		faces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "world",
			Name:      "mesh_faces_built_total",
			Help:      "Граней во всех построенных мешах.",
		}),
		dirtyChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockverse",
			Subsystem: "world",
			Name:      "dirty_chunks",
			Help:      "Чанков, ожидающих перестройки.",
		}),
		liveInstances: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockverse",
			Subsystem: "render",
			Name:      "live_instances",
			Help:      "Живых объектов рендера.",
		}),
		rays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "interaction",
			Name:      "rays_total",
			Help:      "Лучи из прицела по результату (hit, miss).",
		}, []string{"result"}),
		blocksRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "interaction",
			Name:      "blocks_removed_total",
			Help:      "Блоков, удалённых игроком.",
		}),
		worldEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "world",
			Name:      "events_total",
			Help:      "События мира по типу.",
		}, []string{"type"}),
	}

	for _, c := range []prometheus.Collector{
		m.steps, m.stepDuration, m.rebuilt, m.faces, m.dirtyChunks,
		m.liveInstances, m.rays, m.blocksRemoved, m.worldEvents,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observeStep учитывает итоги шага
func (m *Metrics) observeStep(res StepResult, dirty, live int) {
	m.steps.Inc()
	m.stepDuration.Observe(res.Duration.Seconds())
	m.rebuilt.Add(float64(res.Rebuild.Rebuilt))
	m.faces.Add(float64(res.Rebuild.Faces))
	m.dirtyChunks.Set(float64(dirty))
	if live >= 0 {
		m.liveInstances.Set(float64(live))
	}

	if res.Outcome.HasHit {
		m.rays.WithLabelValues("hit").Inc()
	} else {
		m.rays.WithLabelValues("miss").Inc()
	}
	if res.Outcome.Removed {
		m.blocksRemoved.Inc()
	}
}

func (m *Metrics) observeEvent(eventType string) {
	m.worldEvents.WithLabelValues(eventType).Inc()
}
