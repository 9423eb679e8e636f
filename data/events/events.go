package events

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Message is the envelope for every payload pushed to a client session.
type Message[D AnyPayload] struct {
	Op        Opcode `json:"op"`
	Timestamp int64  `json:"t"`
	Data      D      `json:"d"`
	Sequence  uint64 `json:"s,omitempty"`
}

func NewMessage[D AnyPayload](op Opcode, data D) Message[D] {
	return Message[D]{
		Op:        op,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

func (e Message[D]) Encode() []byte {
	b, _ := json.Marshal(e)

	return b
}

type Opcode uint8

const (
	OpcodeDispatch    Opcode = 0 // server delivers a snapshot to the client
	OpcodeHello       Opcode = 1 // server greets a newly bound session
	OpcodeHeartbeat   Opcode = 2 // keep the session alive
	OpcodeAlert       Opcode = 3 // blocking alert the client must surface
	OpcodeEndOfStream Opcode = 7 // the session's stream is ending
)

func (op Opcode) String() string {
	switch op {
	case OpcodeDispatch:
		return "DISPATCH"
	case OpcodeHello:
		return "HELLO"
	case OpcodeHeartbeat:
		return "HEARTBEAT"
	case OpcodeAlert:
		return "ALERT"
	case OpcodeEndOfStream:
		return "END_OF_STREAM"
	default:
		return "UNDOCUMENTED_OPERATION"
	}
}
