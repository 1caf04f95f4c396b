// Package events defines the WebSocket message types the control panel and
// monitor clients exchange with the web server.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Server → Client messages
	TypeSensors MessageType = "sensors" // Periodic sensor snapshot
	TypeLog     MessageType = "log"     // Server log line
	TypeSpeech  MessageType = "speech"  // Text the robot spoke

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// New creates a message of the given type with the current timestamp
func New(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// Parse parses a JSON message from bytes
func Parse(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Server → Client Message Types
// =============================================================================

// SensorData is one snapshot of the robot's sensors
type SensorData struct {
	Battery     float64            `json:"battery"`      // 0.0 to 1.0
	HeadTempC   float64            `json:"head_temp_c"`  // Degrees Celsius
	Touch       map[string]float64 `json:"touch"`        // Sensor name → raw value
	SonarLeftM  float64            `json:"sonar_left_m"` // Meters
	SonarRightM float64            `json:"sonar_right_m"`
	Bumpers     map[string]bool    `json:"bumpers,omitempty"`
	TakenAt     int64              `json:"taken_at"` // Unix milliseconds
}

// LogData is a single server log line
type LogData struct {
	Level   string `json:"level"` // "debug", "info", "warn", "error"
	Message string `json:"message"`
}

// SpeechData is text the robot was asked to speak
type SpeechData struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"` // "api", "assistant"
}

// =============================================================================
// Bidirectional Message Types
// =============================================================================

// PingData contains ping information
type PingData struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"ts"`
}

// PongData contains pong response
type PongData struct {
	ID        string `json:"id"`
	PingTS    int64  `json:"ping_ts"`
	PongTS    int64  `json:"pong_ts"`
	LatencyMs int64  `json:"latency_ms"`
}

// =============================================================================
// Helper functions for creating messages
// =============================================================================

// NewSensorsMessage creates a sensor snapshot message
func NewSensorsMessage(data SensorData) (*Message, error) {
	return New(TypeSensors, data)
}

// NewLogMessage creates a log line message
func NewLogMessage(level, message string) (*Message, error) {
	return New(TypeLog, LogData{Level: level, Message: message})
}

// NewSpeechMessage creates a speech message
func NewSpeechMessage(text, source string) (*Message, error) {
	return New(TypeSpeech, SpeechData{Text: text, Source: source})
}

// NewPongMessage creates a pong response message
func NewPongMessage(id string, pingTS, pongTS int64) (*Message, error) {
	return New(TypePong, PongData{
		ID:        id,
		PingTS:    pingTS,
		PongTS:    pongTS,
		LatencyMs: pongTS - pingTS,
	})
}

// GetSensorData extracts sensor data from a message
func (m *Message) GetSensorData() (*SensorData, error) {
	var data SensorData
	if err := m.ParseData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}
