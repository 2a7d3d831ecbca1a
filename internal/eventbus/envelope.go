package eventbus

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// PayloadVersion версия схемы полезной нагрузки (structpb.Struct)
const PayloadVersion = 1

// NewEnvelope упаковывает поля события в protobuf Struct и заполняет служебные поля.
// Допустимые значения полей описаны в structpb.NewValue.
func NewEnvelope(source, eventType string, fields map[string]any) (*Envelope, error) {
	payload, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("payload %s: %w", eventType, err)
	}

	data, err := proto.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", eventType, err)
	}

	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Version:   PayloadVersion,
		Payload:   data,
		Metadata:  make(map[string]string),
	}, nil
}

// DecodePayload разбирает полезную нагрузку события обратно в Struct
func DecodePayload(ev *Envelope) (*structpb.Struct, error) {
	if ev.Version != PayloadVersion {
		return nil, fmt.Errorf("неподдерживаемая версия схемы %d", ev.Version)
	}

	var payload structpb.Struct
	if err := proto.Unmarshal(ev.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
