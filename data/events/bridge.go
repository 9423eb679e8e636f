package events

// BridgedCommand is one client command forwarded to the session bridge
// by the push gateway.
type BridgedCommand struct {
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
	Body      []byte `json:"body,omitempty"`
}

func DecodeBridgedCommand(data []byte) (BridgedCommand, error) {
	var cmd BridgedCommand
	err := json.Unmarshal(data, &cmd)

	return cmd, err
}

// BindCommandBody binds a client session to an authenticated account.
type BindCommandBody struct {
	Token string `json:"token"`
}

// OpenCommandBody declares which conversation the client has on screen.
// Open=false clears it.
type OpenCommandBody struct {
	ConversationID string `json:"conversation_id"`
	Group          bool   `json:"group,omitempty"`
	Open           bool   `json:"open"`
}

func DecodeCommandBody[T BindCommandBody | OpenCommandBody](body []byte) (T, error) {
	var result T
	err := json.Unmarshal(body, &result)

	return result, err
}
