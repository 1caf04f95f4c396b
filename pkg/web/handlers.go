package web

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/nao-robotics/go-nao/pkg/hub"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

// Postures the panel accepts, mapped to their service names.
var postures = map[string]string{
	"stand":      naoqi.PostureStand,
	"standinit":  naoqi.PostureStandInit,
	"standzero":  naoqi.PostureStandZero,
	"sit":        naoqi.PostureSit,
	"sitrelax":   naoqi.PostureSitRelax,
	"crouch":     naoqi.PostureCrouch,
	"lyingback":  naoqi.PostureLyingBack,
	"lyingbelly": naoqi.PostureLyingBelly,
}

// handleStatus returns the server's view of the robot: a live gateway
// check plus the current battery charge.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.lastSpokenMu.RLock()
	last := s.lastSpoken
	s.lastSpokenMu.RUnlock()

	connected := false
	if state, err := s.robot.Gateway.State(c.Context()); err == nil && state == "running" {
		connected = true
	}

	var battery float64
	if connected {
		if report, err := s.robot.Sensors.Read(c.Context()); err == nil {
			if pct, ok := report.BatteryPercent(); ok {
				battery = pct
			}
		}
	}

	return c.JSON(Status{
		RobotConnected: connected,
		RobotHost:      s.host,
		BatteryPercent: battery,
		Clients:        s.ClientCount(),
		LastSpoken:     last,
		UptimeSeconds:  int64(time.Since(s.started).Seconds()),
	})
}

// SayRequest is the body for POST /api/say
type SayRequest struct {
	Text string `json:"text"`
}

// handleSay speaks text on the robot
func (s *Server) handleSay(c *fiber.Ctx) error {
	var req SayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	if err := s.robot.Speech.Say(c.Context(), req.Text); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.lastSpokenMu.Lock()
	s.lastSpoken = req.Text
	s.lastSpokenMu.Unlock()
	s.PublishSpeech(req.Text, "api")

	return c.JSON(fiber.Map{"spoken": req.Text})
}

// handlePosture moves the robot into a named posture
func (s *Server) handlePosture(c *fiber.Ctx) error {
	name := strings.ToLower(c.Params("name"))
	posture, ok := postures[name]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown posture: " + name,
		})
	}

	reached, err := s.robot.Posture.GoToPosture(c.Context(), posture, 0.6)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.PublishLog("info", "posture: "+posture)
	return c.JSON(fiber.Map{"posture": posture, "reached": reached})
}

// LedsRequest is the body for POST /api/leds
type LedsRequest struct {
	Group   string  `json:"group,omitempty"`   // Defaults to the face
	Color   uint32  `json:"color"`             // Packed 0xRRGGBB
	Seconds float64 `json:"seconds,omitempty"` // Fade time
}

// handleLeds fades an LED group to a color
func (s *Server) handleLeds(c *fiber.Ctx) error {
	var req LedsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Group == "" {
		req.Group = naoqi.GroupFaceLeds
	}
	if req.Seconds <= 0 {
		req.Seconds = 0.5
	}

	if err := s.robot.Leds.FadeColor(c.Context(), req.Group, req.Color, req.Seconds); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"group": req.Group, "color": req.Color})
}

// handleSensors returns a fresh sensor snapshot
func (s *Server) handleSensors(c *fiber.Ctx) error {
	report, err := s.robot.Sensors.Read(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(reportToSensorData(report))
}

// handleSensorsWS streams sensor snapshots to a websocket client
func (s *Server) handleSensorsWS(c *websocket.Conn) {
	hub.NewClient(s.sensorHub, c).Run()
}

// handleLogsWS streams log lines to a websocket client
func (s *Server) handleLogsWS(c *websocket.Conn) {
	hub.NewClient(s.logHub, c).Run()
}
