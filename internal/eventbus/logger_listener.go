package eventbus

import (
	"context"

	"github.com/annel0/blockverse/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог компонента eventbus.
// Функция неблокирующая.
func StartLoggingListener(bus EventBus) (Subscription, error) {
	logger := logging.GetEventBusLogger()

	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		fields, err := DecodePayload(ev)
		if err != nil {
			logger.Warn("⚠️ [EventBus] %s %s: полезная нагрузка не разобрана: %v", ev.ID, ev.EventType, err)
			return
		}
		logger.Debug("[EventBus] %s %s src=%s corr=%s prio=%d size=%dB %v",
			ev.ID, ev.EventType, ev.Source, ev.CorrelationID, ev.Priority, len(ev.Payload), fields.AsMap())
	})
	if err != nil {
		return nil, err
	}
	logger.Info("🪵 LoggingListener: подписка на все события активирована")
	return sub, nil
}
