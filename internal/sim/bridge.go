package sim

import (
	"context"
	"fmt"
	"strconv"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/world"
)

// EventSource имя источника событий мира в шине
const EventSource = "world"

// Bridge публикует события мира в шину событий
type Bridge struct {
	bus    eventbus.EventBus
	source string
}

// NewBridge создаёт мост к шине
func NewBridge(bus eventbus.EventBus) *Bridge {
	return &Bridge{bus: bus, source: EventSource}
}

// Publish упаковывает событие мира и публикует его. step идёт в CorrelationID.
func (b *Bridge) Publish(ctx context.Context, step uint64, ev world.Event) error {
	env, err := eventbus.NewEnvelope(b.source, ev.GetType().String(), EventFields(ev))
	if err != nil {
		return err
	}
	env.CorrelationID = strconv.FormatUint(step, 10)
	env.Priority = eventPriority(ev.GetType())

	if err := b.bus.Publish(ctx, env); err != nil {
		return fmt.Errorf("публикация %s: %w", env.EventType, err)
	}
	return nil
}

// EventFields раскладывает событие мира в поля полезной нагрузки
func EventFields(ev world.Event) map[string]any {
	switch e := ev.(type) {
	case world.BlockEvent:
		return map[string]any{
			"chunk":    vecFields(e.Chunk.X, e.Chunk.Y, e.Chunk.Z),
			"local":    vecFields(e.Local.X, e.Local.Y, e.Local.Z),
			"previous": e.Previous.String(),
			"block":    e.Block.String(),
		}
	case world.ChunkEvent:
		fields := map[string]any{
			"chunk": vecFields(e.Chunk.X, e.Chunk.Y, e.Chunk.Z),
		}
		if e.EventType == world.EventTypeChunkRebuilt {
			fields["faces"] = e.Faces
			fields["handle"] = e.Handle.String()
		}
		return fields
	case world.TerrainEvent:
		return map[string]any{
			"generator":   e.Generator,
			"octaves":     e.Params.Octaves,
			"frequency":   e.Params.Frequency,
			"lacunarity":  e.Params.Lacunarity,
			"persistence": e.Params.Persistence,
			"chunks":      e.Chunks,
		}
	default:
		return map[string]any{}
	}
}

func vecFields(x, y, z int) map[string]any {
	return map[string]any{"x": x, "y": y, "z": z}
}

// Изменения блоков и рельефа важнее служебных событий чанков
func eventPriority(t world.EventType) int {
	switch t {
	case world.EventTypeBlockRemoved, world.EventTypeBlockSet:
		return 5
	case world.EventTypeTerrainRegenerated:
		return 7
	default:
		return 1
	}
}
