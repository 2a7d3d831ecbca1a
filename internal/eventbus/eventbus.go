package eventbus

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed возвращается Publish после Close
var ErrClosed = errors.New("шина событий закрыта")

// Envelope описывает универсальный контейнер события.
// Все поля фиксированы для версиирования и трассировки.
type Envelope struct {
	ID            string            // Глобально уникальный идентификатор (UUID).
	Timestamp     time.Time         // Время создания события (UTC).
	Source        string            // Имя компонента-источника.
	EventType     string            // Тип события (BlockRemoved, ChunkRebuilt…).
	Version       int               // Схема полезной нагрузки.
	CorrelationID string            // Для связывания цепочек (номер шага симуляции).
	Priority      int               // 0=Low … 9=Critical (для backpressure).
	Payload       []byte            // Сериализованный protobuf (structpb.Struct).
	Metadata      map[string]string // Произвольные метаданные.
}

// Filter позволяет подписаться только на нужные события.
type Filter struct {
	Types   []string // Пусто: все типы.
	Sources []string // Пусто: все источники.
}

// Subscription возвращается при подписке; позволяет отписаться.
type Subscription interface {
	Unsubscribe()
}

// Handler потребляет события.
type Handler func(ctx context.Context, ev *Envelope)

// Stats агрегированные метрики шины.
type Stats struct {
	Published uint64
	Consumed  uint64
	Dropped   uint64
	InFlight  int
}

// EventBus определяет абстракцию шины событий.
type EventBus interface {
	Publish(ctx context.Context, ev *Envelope) error
	Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error)
	Metrics() Stats
	// Close перестаёт принимать события и дожидается доставки уже принятых.
	Close()
}

//================ In-Memory implementation =================//

// memoryBus доставляет события из одной горутины, поэтому каждый подписчик
// получает их в порядке публикации.
type memoryBus struct {
	mu          sync.RWMutex // подписчики
	subscribers map[int]subscriber
	nextID      int

	sendMu    sync.RWMutex // closed и запись в buffer, диспетчер его не берёт
	closed    bool
	buffer    chan *Envelope
	done      chan struct{}
	closeOnce sync.Once

	published atomic.Uint64
	consumed  atomic.Uint64
	dropped   atomic.Uint64
}

type subscriber struct {
	id      int
	filter  Filter
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewMemoryBus создаёт in-memory Bus с указанным буфером.
func NewMemoryBus(capacity int) EventBus {
	if capacity < 1 {
		capacity = 1
	}
	mb := &memoryBus{
		subscribers: make(map[int]subscriber),
		buffer:      make(chan *Envelope, capacity),
		done:        make(chan struct{}),
	}
	go mb.dispatchLoop()
	return mb
}

func (mb *memoryBus) Publish(ctx context.Context, ev *Envelope) error {
	mb.sendMu.RLock()
	defer mb.sendMu.RUnlock()
	if mb.closed {
		return ErrClosed
	}

	select {
	case mb.buffer <- ev:
		mb.published.Add(1)
		return nil
	default:
	}

	// Буфер заполнен: низкий приоритет (<5) отбрасываем
	if ev.Priority < 5 {
		mb.dropped.Add(1)
		return nil
	}
	// Высокий приоритет ждёт места или отмены контекста
	select {
	case mb.buffer <- ev:
		mb.published.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (mb *memoryBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	mb.sendMu.RLock()
	closed := mb.closed
	mb.sendMu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	id := mb.nextID
	mb.nextID++
	cctx, cancel := context.WithCancel(ctx)
	mb.subscribers[id] = subscriber{id: id, filter: f, handler: h, ctx: cctx, cancel: cancel}

	return &memSub{bus: mb, id: id}, nil
}

func (mb *memoryBus) Metrics() Stats {
	return Stats{
		Published: mb.published.Load(),
		Consumed:  mb.consumed.Load(),
		Dropped:   mb.dropped.Load(),
		InFlight:  len(mb.buffer),
	}
}

func (mb *memoryBus) Close() {
	mb.closeOnce.Do(func() {
		// Под эксклюзивной блокировкой ни один Publish не пишет в буфер
		mb.sendMu.Lock()
		mb.closed = true
		close(mb.buffer)
		mb.sendMu.Unlock()
		<-mb.done

		mb.mu.Lock()
		for id, sub := range mb.subscribers {
			sub.cancel()
			delete(mb.subscribers, id)
		}
		mb.mu.Unlock()
	})
}

// dispatchLoop рассылает события подписчикам в порядке подписки.
func (mb *memoryBus) dispatchLoop() {
	defer close(mb.done)

	for ev := range mb.buffer {
		for _, sub := range mb.snapshot() {
			if !matchFilter(ev, sub.filter) || sub.ctx.Err() != nil {
				continue
			}
			sub.handler(sub.ctx, ev)
			mb.consumed.Add(1)
		}
	}
}

func (mb *memoryBus) snapshot() []subscriber {
	mb.mu.RLock()
	subs := make([]subscriber, 0, len(mb.subscribers))
	for _, sub := range mb.subscribers {
		subs = append(subs, sub)
	}
	mb.mu.RUnlock()

	slices.SortFunc(subs, func(a, b subscriber) int { return a.id - b.id })
	return subs
}

func matchFilter(ev *Envelope, f Filter) bool {
	match := func(val string, arr []string) bool {
		return len(arr) == 0 || slices.Contains(arr, val)
	}
	return match(ev.EventType, f.Types) && match(ev.Source, f.Sources)
}

type memSub struct {
	bus *memoryBus
	id  int
}

func (s *memSub) Unsubscribe() {
	s.bus.mu.Lock()
	if sub, ok := s.bus.subscribers[s.id]; ok {
		sub.cancel()
		delete(s.bus.subscribers, s.id)
	}
	s.bus.mu.Unlock()
}
