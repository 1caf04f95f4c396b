// Package naoqi is a thin client for the remote services on a NAO robot.
//
// A Session connects to the call gateway on the robot and hands out Proxy
// values for named services such as ALTextToSpeech or ALMotion. A proxy
// forwards each method call as a single JSON request and decodes a single
// JSON result; validation of service names, methods, and arguments is left
// entirely to the robot, just as with the vendor SDK's ALProxy.
package naoqi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nao-robotics/go-nao/internal/httpc"
	"github.com/nao-robotics/go-nao/internal/log"
)

// Names of the remote services the examples talk to.
const (
	ServiceTextToSpeech  = "ALTextToSpeech"
	ServiceMotion        = "ALMotion"
	ServiceRobotPosture  = "ALRobotPosture"
	ServiceLeds          = "ALLeds"
	ServiceMemory        = "ALMemory"
	ServiceAudioRecorder = "ALAudioRecorder"
)

// connectTimeout bounds the initial reachability check.
const connectTimeout = 5 * time.Second

// Session is a connection to one robot. It is safe for concurrent use.
type Session struct {
	host    string
	baseURL string
	id      string
	client  *http.Client
}

// Connect opens a session against the robot's call gateway and verifies the
// robot is reachable. host is an IP or hostname, port is normally 9559.
func Connect(ctx context.Context, host string, port int) (*Session, error) {
	s := &Session{
		host:    host,
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		id:      uuid.NewString(),
		client:  httpc.NewClient(30 * time.Second),
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := s.ping(pingCtx); err != nil {
		return nil, fmt.Errorf("naoqi: connect %s:%d: %w", host, port, err)
	}

	log.Debug("session connected", "robot", host, "session", s.id)
	return s, nil
}

// Host returns the robot address this session is connected to.
func (s *Session) Host() string {
	return s.host
}

// ID returns the session identifier sent with every call.
func (s *Session) ID() string {
	return s.id
}

// Service returns a proxy for the named remote service. No network traffic
// happens until the first call; unknown names fail remotely, as they do with
// the vendor SDK.
func (s *Session) Service(name string) *Proxy {
	return &Proxy{session: s, service: name}
}

// Close releases the session's idle connections.
func (s *Session) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// State reports the gateway state string ("running" on a healthy robot).
func (s *Session) State(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/state", nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "state request failed"}
	}

	var state struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return "", fmt.Errorf("decode state: %w", err)
	}
	return state.State, nil
}

func (s *Session) ping(ctx context.Context) error {
	_, err := s.State(ctx)
	return err
}

// Typed accessors for the services the examples use.

// TextToSpeech returns a wrapper for the ALTextToSpeech service.
func (s *Session) TextToSpeech() *TextToSpeech {
	return &TextToSpeech{proxy: s.Service(ServiceTextToSpeech)}
}

// Motion returns a wrapper for the ALMotion service.
func (s *Session) Motion() *Motion {
	return &Motion{proxy: s.Service(ServiceMotion)}
}

// RobotPosture returns a wrapper for the ALRobotPosture service.
func (s *Session) RobotPosture() *RobotPosture {
	return &RobotPosture{proxy: s.Service(ServiceRobotPosture)}
}

// Leds returns a wrapper for the ALLeds service.
func (s *Session) Leds() *Leds {
	return &Leds{proxy: s.Service(ServiceLeds)}
}

// Memory returns a wrapper for the ALMemory service.
func (s *Session) Memory() *Memory {
	return &Memory{proxy: s.Service(ServiceMemory)}
}

// AudioRecorder returns a wrapper for the ALAudioRecorder service.
func (s *Session) AudioRecorder() *AudioRecorder {
	return &AudioRecorder{proxy: s.Service(ServiceAudioRecorder)}
}
