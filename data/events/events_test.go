package events

import (
	"testing"
	"time"

	"github.com/huddleapp/huddle/internal/testutil"
)

func TestEventTypeHelpers(t *testing.T) {
	t.Parallel()

	testutil.Assert(t, "user", EventTypeCreateUser.ObjectName(), "object name")
	testutil.Assert(t, "message", EventTypeUpdateMessage.ObjectName(), "object name")
	testutil.Assert(t, "timelog", EventTypeAppendTimeLog.ObjectName(), "object name")

	parts := EventTypeUpdatePresence.Split()
	testutil.Assert(t, 2, len(parts), "two segments")
	testutil.Assert(t, "update", parts[1], "verb segment")
}

func TestOpcodeString(t *testing.T) {
	t.Parallel()

	testutil.Assert(t, "DISPATCH", OpcodeDispatch.String(), "dispatch")
	testutil.Assert(t, "HELLO", OpcodeHello.String(), "hello")
	testutil.Assert(t, "END_OF_STREAM", OpcodeEndOfStream.String(), "end of stream")
	testutil.Assert(t, "UNDOCUMENTED_OPERATION", Opcode(99).String(), "unknown opcode")
}

func TestMessageEnvelope(t *testing.T) {
	t.Parallel()

	msg := NewMessage(OpcodeDispatch, UnreadPayload{
		ConversationID: "abc",
		Count:          3,
		Audio:          true,
	})

	testutil.Assert(t, OpcodeDispatch, msg.Op, "opcode")
	testutil.Assert(t, true, msg.Timestamp > 0, "timestamp set")

	b := msg.Encode()
	testutil.Assert(t, true, len(b) > 0, "encodes to bytes")

	var decoded Message[UnreadPayload]
	testutil.IsNil(t, json.Unmarshal(b, &decoded), "decodes back")
	testutil.Assert(t, 3, decoded.Data.Count, "payload survives")
	testutil.Assert(t, true, decoded.Data.Audio, "audio hint survives")
}

func TestChangeEventRoundtrip(t *testing.T) {
	t.Parallel()

	ev := ChangeEvent{
		Type:      EventTypeCreateMessage,
		ObjectID:  "m1",
		ActorID:   "u1",
		Timestamp: time.Now().Truncate(time.Millisecond),
	}

	b, err := json.Marshal(ev)
	testutil.IsNil(t, err, "marshals")

	decoded, dErr := DecodeChangeEvent(string(b))
	testutil.IsNil(t, dErr, "decodes")
	testutil.Assert(t, ev.Type, decoded.Type, "type survives")
	testutil.Assert(t, ev.ObjectID, decoded.ObjectID, "object id survives")
}
