// Package web provides a small control panel for a NAO robot: a JSON API
// for speech, posture and LED commands, plus live sensor and log streams
// over websockets.
package web

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/nao-robotics/go-nao/pkg/events"
	"github.com/nao-robotics/go-nao/pkg/hub"
	"github.com/nao-robotics/go-nao/pkg/sensors"
)

// Speaker speaks text on the robot.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// PostureMover moves the robot into a named whole-body posture.
type PostureMover interface {
	GoToPosture(ctx context.Context, posture string, speed float64) (bool, error)
}

// LedFader fades an LED group to a packed 0xRRGGBB color.
type LedFader interface {
	FadeColor(ctx context.Context, group string, rgb uint32, seconds float64) error
}

// SensorSource takes sensor snapshots.
type SensorSource interface {
	Read(ctx context.Context) (*sensors.Report, error)
}

// StateReporter reports the robot gateway's state string.
type StateReporter interface {
	State(ctx context.Context) (string, error)
}

// Robot is the slice of the robot the control panel drives.
type Robot struct {
	Speech  Speaker
	Posture PostureMover
	Leds    LedFader
	Sensors SensorSource
	Gateway StateReporter
}

// Status is what GET /api/status reports
type Status struct {
	RobotConnected bool    `json:"robot_connected"`
	RobotHost      string  `json:"robot_host"`
	BatteryPercent float64 `json:"battery_percent,omitempty"`
	Clients        int     `json:"clients"`
	LastSpoken     string  `json:"last_spoken,omitempty"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
}

// Server is the control panel server
type Server struct {
	app   *fiber.App
	port  string
	robot Robot
	host  string

	started time.Time

	// Last spoken text, for the status endpoint
	lastSpoken   string
	lastSpokenMu sync.RWMutex

	// Hubs for websocket broadcast (thread-safe!)
	sensorHub *hub.Hub
	logHub    *hub.Hub
}

// NewServer creates a control panel server for the given robot.
// host is only reported in /api/status.
func NewServer(port, host string, robot Robot) *Server {
	s := &Server{
		port:      port,
		host:      host,
		robot:     robot,
		started:   time.Now(),
		sensorHub: hub.New("sensors"),
		logHub:    hub.New("logs"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "NAO Control Panel",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())
	app.Use(recover.New())

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/say", s.handleSay)
	api.Post("/posture/:name", s.handlePosture)
	api.Post("/leds", s.handleLeds)
	api.Get("/sensors", s.handleSensors)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/sensors", websocket.New(s.handleSensorsWS))
	app.Get("/ws/logs", websocket.New(s.handleLogsWS))

	s.app = app
	return s
}

// Start starts the web server
func (s *Server) Start() error {
	fmt.Printf("🌐 Control panel: http://localhost:%s\n", s.port)

	go s.sensorHub.Run()
	go s.logHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			fmt.Printf("⚠️  Web server error: %v\n", err)
		}
	}()
}

// PublishSensors broadcasts a sensor snapshot to websocket clients
func (s *Server) PublishSensors(report *sensors.Report) {
	msg, err := events.NewSensorsMessage(reportToSensorData(report))
	if err != nil {
		return
	}
	s.sensorHub.BroadcastJSON(msg)
}

// PublishLog broadcasts a log line to websocket clients
func (s *Server) PublishLog(level, message string) {
	msg, err := events.NewLogMessage(level, message)
	if err != nil {
		return
	}
	s.logHub.BroadcastJSON(msg)
}

// PublishSpeech broadcasts text the robot spoke to websocket clients
func (s *Server) PublishSpeech(text, source string) {
	msg, err := events.NewSpeechMessage(text, source)
	if err != nil {
		return
	}
	s.logHub.BroadcastJSON(msg)
}

// WatchSensors reads snapshots at the given interval and broadcasts them
// until the context is canceled. Call in a goroutine.
func (s *Server) WatchSensors(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		report, err := s.robot.Sensors.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.PublishLog("warn", "sensor read failed: "+err.Error())
			continue
		}
		s.PublishSensors(report)
	}
}

// ClientCount returns the number of connected websocket clients
func (s *Server) ClientCount() int {
	return s.sensorHub.ClientCount() + s.logHub.ClientCount()
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// reportToSensorData flattens a sensor report into the wire shape
func reportToSensorData(r *sensors.Report) events.SensorData {
	data := events.SensorData{
		Touch:   make(map[string]float64, len(r.Touch)),
		Bumpers: make(map[string]bool, len(r.Bumpers)),
		TakenAt: r.Taken.UnixMilli(),
	}
	if r.Battery.OK {
		data.Battery = r.Battery.Value
	}
	if r.HeadTemp.OK {
		data.HeadTempC = r.HeadTemp.Value
	}
	for _, t := range r.Touch {
		if t.OK {
			data.Touch[t.Name] = t.Value
		}
	}
	for _, snr := range r.Sonar {
		if !snr.OK {
			continue
		}
		switch snr.Key {
		case sensors.KeySonarLeft:
			data.SonarLeftM = snr.Value
		case sensors.KeySonarRight:
			data.SonarRightM = snr.Value
		}
	}
	for _, b := range r.Bumpers {
		if b.OK {
			data.Bumpers[b.Name] = b.Pressed()
		}
	}
	return data
}
