// Package protocol defines the JSON command envelope accepted on the pipe.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Command names served by the loop.
const (
	CmdGetForegroundWindow = "GetForegroundWindow"
	CmdShowNotification    = "ShowNotification"
)

// ErrMalformed marks payloads that cannot be decoded into a Command.
var ErrMalformed = errors.New("malformed command payload")

// Command is one decoded request envelope.
type Command struct {
	Name      string
	Arguments Arguments
}

// Arguments holds the untyped argument object of a command envelope.
// Accessors treat absent keys as zero values and reject wrong types.
type Arguments map[string]any

func (a Arguments) String(key string) (string, error) {
	v, ok := a[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %s: want string, got %T", key, v)
	}
	return s, nil
}

func (a Arguments) Bool(key string) (bool, error) {
	v, ok := a[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("argument %s: want bool, got %T", key, v)
	}
	return b, nil
}

type envelope struct {
	Command   string          `json:"Command"`
	Arguments json.RawMessage `json:"Arguments"`
}

// Decode parses exactly one command envelope from a pipe message.
func Decode(data []byte) (Command, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return Command{}, fmt.Errorf("%w: trailing data after envelope", ErrMalformed)
	}
	if env.Command == "" {
		return Command{}, fmt.Errorf("%w: missing Command", ErrMalformed)
	}

	cmd := Command{Name: env.Command}
	if isNull(env.Arguments) {
		return cmd, nil
	}

	args := make(Arguments)
	if err := json.Unmarshal(env.Arguments, &args); err != nil {
		return Command{}, fmt.Errorf("%w: Arguments is not an object", ErrMalformed)
	}
	cmd.Arguments = args
	return cmd, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
