package naoqi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nao-robotics/go-nao/internal/log"
)

// Proxy is a client-side handle for one named remote service. Method calls
// are forwarded to the robot and block until the robot replies.
type Proxy struct {
	session *Session
	service string
}

// Service returns the remote service name this proxy points at.
func (p *Proxy) Service() string {
	return p.service
}

// callRequest is the JSON envelope for one remote method call.
type callRequest struct {
	ID      string `json:"id"`
	Session string `json:"session"`
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

// callResponse carries either the call result or a remote fault.
type callResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

// Call forwards method(args...) to the remote service and returns the
// JSON-encoded result. Remote faults come back as a *CallError wrapping a
// *RemoteError; transport and gateway failures wrap the underlying cause.
func (p *Proxy) Call(ctx context.Context, method string, args ...any) (Result, error) {
	if args == nil {
		args = []any{}
	}

	body, err := json.Marshal(callRequest{
		ID:      uuid.NewString(),
		Session: p.session.id,
		Service: p.service,
		Method:  method,
		Args:    args,
	})
	if err != nil {
		return nil, &CallError{Service: p.service, Method: method, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.session.baseURL+"/call", bytes.NewReader(body))
	if err != nil {
		return nil, &CallError{Service: p.service, Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Trace("naoqi call", "service", p.service, "method", method, "args", len(args))

	resp, err := p.session.client.Do(req)
	if err != nil {
		return nil, &CallError{Service: p.service, Method: method, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &CallError{
			Service: p.service,
			Method:  method,
			Err:     &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))},
		}
	}

	var cr callResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, &CallError{Service: p.service, Method: method, Err: fmt.Errorf("decode response: %w", err)}
	}
	if cr.Error != "" {
		return nil, &CallError{Service: p.service, Method: method, Err: &RemoteError{Message: cr.Error}}
	}

	return Result(cr.Result), nil
}

// Result is the JSON-encoded return value of a remote call. A nil Result
// means the method returned nothing.
type Result []byte

// IsNull reports whether the call returned no value.
func (r Result) IsNull() bool {
	return len(r) == 0 || string(r) == "null"
}

// Float decodes the result as a number. Sensor values in ALMemory are floats.
func (r Result) Float() (float64, error) {
	var v float64
	if err := json.Unmarshal(r, &v); err != nil {
		return 0, fmt.Errorf("naoqi: result is not a number: %w", err)
	}
	return v, nil
}

// Bool decodes the result as a boolean.
func (r Result) Bool() (bool, error) {
	var v bool
	if err := json.Unmarshal(r, &v); err != nil {
		return false, fmt.Errorf("naoqi: result is not a bool: %w", err)
	}
	return v, nil
}

// String decodes the result as a string.
func (r Result) String() (string, error) {
	var v string
	if err := json.Unmarshal(r, &v); err != nil {
		return "", fmt.Errorf("naoqi: result is not a string: %w", err)
	}
	return v, nil
}

// Decode unmarshals the result into v.
func (r Result) Decode(v any) error {
	return json.Unmarshal(r, v)
}
