package naoqi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeGateway simulates the call gateway on the robot. Handlers are keyed by
// "Service.method"; unhandled calls return a remote fault.
type fakeGateway struct {
	mu    sync.Mutex
	calls []gatewayCall

	handlers map[string]func(args []any) (any, string)
	srv      *httptest.Server
}

type gatewayCall struct {
	Service string
	Method  string
	Args    []any
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	g := &fakeGateway{handlers: make(map[string]func(args []any) (any, string))}

	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"state": "running"})
	})
	mux.HandleFunc("/call", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID      string `json:"id"`
			Session string `json:"session"`
			Service string `json:"service"`
			Method  string `json:"method"`
			Args    []any  `json:"args"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.ID == "" || req.Session == "" {
			http.Error(w, "missing call or session id", http.StatusBadRequest)
			return
		}

		g.mu.Lock()
		g.calls = append(g.calls, gatewayCall{Service: req.Service, Method: req.Method, Args: req.Args})
		handler := g.handlers[req.Service+"."+req.Method]
		g.mu.Unlock()

		if handler == nil {
			json.NewEncoder(w).Encode(map[string]any{"error": "unknown method " + req.Method})
			return
		}
		result, fault := handler(req.Args)
		if fault != "" {
			json.NewEncoder(w).Encode(map[string]any{"error": fault})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"result": result})
	})

	g.srv = httptest.NewServer(mux)
	t.Cleanup(g.srv.Close)
	return g
}

func (g *fakeGateway) handle(key string, fn func(args []any) (any, string)) {
	g.mu.Lock()
	g.handlers[key] = fn
	g.mu.Unlock()
}

func (g *fakeGateway) lastCall(t *testing.T) gatewayCall {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.calls) == 0 {
		t.Fatal("no calls recorded")
	}
	return g.calls[len(g.calls)-1]
}

func (g *fakeGateway) connect(t *testing.T) *Session {
	t.Helper()
	u, err := url.Parse(g.srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(u.Port())
	s, err := Connect(context.Background(), u.Hostname(), port)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConnect(t *testing.T) {
	g := newFakeGateway(t)

	s := g.connect(t)
	if s.Host() == "" {
		t.Error("expected host to be set")
	}
	if s.ID() == "" {
		t.Error("expected session id to be set")
	}

	state, err := s.State(context.Background())
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state != "running" {
		t.Errorf("state = %q, want running", state)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	// Port from a closed test server: connection refused.
	srv := httptest.NewServer(http.NotFoundHandler())
	u, _ := url.Parse(srv.URL)
	srv.Close()

	port, _ := strconv.Atoi(u.Port())
	if _, err := Connect(context.Background(), u.Hostname(), port); err == nil {
		t.Fatal("expected connect to fail against closed port")
	}
}

func TestProxy_Call(t *testing.T) {
	g := newFakeGateway(t)
	g.handle("ALTextToSpeech.say", func(args []any) (any, string) {
		return nil, ""
	})

	s := g.connect(t)
	proxy := s.Service(ServiceTextToSpeech)

	if proxy.Service() != ServiceTextToSpeech {
		t.Errorf("Service() = %q", proxy.Service())
	}

	_, err := proxy.Call(context.Background(), "say", "hello")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	call := g.lastCall(t)
	if call.Service != ServiceTextToSpeech || call.Method != "say" {
		t.Errorf("recorded call = %+v", call)
	}
	if len(call.Args) != 1 || call.Args[0] != "hello" {
		t.Errorf("args = %v, want [hello]", call.Args)
	}
}

func TestProxy_RemoteFault(t *testing.T) {
	g := newFakeGateway(t)
	s := g.connect(t)

	// No handler registered: gateway reports a remote fault.
	_, err := s.Service("ALNoSuchService").Call(context.Background(), "nope")
	if err == nil {
		t.Fatal("expected error")
	}

	var callErr *CallError
	if !errors.As(err, &callErr) {
		t.Fatalf("error type = %T, want *CallError", err)
	}
	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected wrapped *RemoteError, got %v", err)
	}
	if !strings.Contains(callErr.Error(), "ALNoSuchService.nope") {
		t.Errorf("error should name the call: %v", callErr)
	}
}

func TestProxy_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/state" {
			json.NewEncoder(w).Encode(map[string]string{"state": "running"})
			return
		}
		http.Error(w, "internal failure", http.StatusInternalServerError)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	port, _ := strconv.Atoi(u.Port())
	s, err := Connect(context.Background(), u.Hostname(), port)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer s.Close()

	_, err = s.Service(ServiceMotion).Call(context.Background(), "wakeUp")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want wrapped *APIError", err)
	}
	if !apiErr.IsServerError() {
		t.Errorf("expected server error, got status %d", apiErr.StatusCode)
	}
}

func TestResult_Accessors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		test func(t *testing.T, r Result)
	}{
		{"float", "0.87", func(t *testing.T, r Result) {
			v, err := r.Float()
			if err != nil || v != 0.87 {
				t.Errorf("Float() = %v, %v", v, err)
			}
		}},
		{"bool", "true", func(t *testing.T, r Result) {
			v, err := r.Bool()
			if err != nil || !v {
				t.Errorf("Bool() = %v, %v", v, err)
			}
		}},
		{"string", `"Stand"`, func(t *testing.T, r Result) {
			v, err := r.String()
			if err != nil || v != "Stand" {
				t.Errorf("String() = %v, %v", v, err)
			}
		}},
		{"type mismatch", `"text"`, func(t *testing.T, r Result) {
			if _, err := r.Float(); err == nil {
				t.Error("expected error decoding string as float")
			}
		}},
		{"null", "null", func(t *testing.T, r Result) {
			if !r.IsNull() {
				t.Error("expected IsNull")
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.test(t, Result(tt.raw))
		})
	}
}

func TestTextToSpeech(t *testing.T) {
	g := newFakeGateway(t)
	g.handle("ALTextToSpeech.say", func(args []any) (any, string) { return nil, "" })
	g.handle("ALTextToSpeech.setParameter", func(args []any) (any, string) { return nil, "" })

	s := g.connect(t)
	tts := s.TextToSpeech()
	ctx := context.Background()

	if err := tts.Say(ctx, "Hello!"); err != nil {
		t.Fatalf("Say: %v", err)
	}
	if err := tts.SetParameter(ctx, "speed", 100); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}

	call := g.lastCall(t)
	if call.Method != "setParameter" {
		t.Errorf("method = %q", call.Method)
	}
	if call.Args[0] != "speed" {
		t.Errorf("args = %v", call.Args)
	}
}

func TestRobotPosture_GoToPosture(t *testing.T) {
	g := newFakeGateway(t)
	g.handle("ALRobotPosture.goToPosture", func(args []any) (any, string) {
		if args[0] != PostureStand {
			return false, ""
		}
		return true, ""
	})

	s := g.connect(t)
	posture := s.RobotPosture()
	ctx := context.Background()

	ok, err := posture.GoToPosture(ctx, PostureStand, 0.5)
	if err != nil || !ok {
		t.Errorf("GoToPosture(Stand) = %v, %v", ok, err)
	}

	ok, err = posture.GoToPosture(ctx, PostureSit, 0.5)
	if err != nil || ok {
		t.Errorf("GoToPosture(Sit) = %v, %v, want unreached", ok, err)
	}
}

func TestMotion_SetAngles(t *testing.T) {
	g := newFakeGateway(t)
	g.handle("ALMotion.setAngles", func(args []any) (any, string) { return nil, "" })

	s := g.connect(t)
	motion := s.Motion()
	ctx := context.Background()

	if err := motion.SetAngles(ctx, []string{JointHeadYaw}, []float64{0.1, 0.2}, 0.2); err != ErrAngleCount {
		t.Errorf("mismatched lengths: got %v, want ErrAngleCount", err)
	}

	// Head pitch beyond the physical range is clamped before sending.
	if err := motion.SetAngle(ctx, JointHeadPitch, 2.0, 0.2); err != nil {
		t.Fatalf("SetAngle: %v", err)
	}
	call := g.lastCall(t)
	angle, ok := call.Args[1].(float64)
	if !ok || angle != MaxHeadPitch {
		t.Errorf("sent angle = %v, want clamped to %v", call.Args[1], MaxHeadPitch)
	}
}

func TestClampHeadAngle(t *testing.T) {
	tests := []struct {
		joint string
		in    float64
		want  float64
	}{
		{JointHeadYaw, 3.0, MaxHeadYaw},
		{JointHeadYaw, -3.0, -MaxHeadYaw},
		{JointHeadYaw, 0.7, 0.7},
		{JointHeadPitch, 1.0, MaxHeadPitch},
		{JointHeadPitch, -1.0, MinHeadPitch},
		{JointRWristYaw, 9.0, 9.0}, // non-head joints pass through
	}
	for _, tt := range tests {
		if got := ClampHeadAngle(tt.joint, tt.in); got != tt.want {
			t.Errorf("ClampHeadAngle(%s, %v) = %v, want %v", tt.joint, tt.in, got, tt.want)
		}
	}
}

func TestMemory_GetFloat(t *testing.T) {
	g := newFakeGateway(t)
	g.handle("ALMemory.getData", func(args []any) (any, string) {
		if args[0] == "Device/SubDeviceList/Battery/Charge/Sensor/Value" {
			return 0.62, ""
		}
		return nil, "no such key"
	})

	s := g.connect(t)
	mem := s.Memory()
	ctx := context.Background()

	v, err := mem.GetFloat(ctx, "Device/SubDeviceList/Battery/Charge/Sensor/Value")
	if err != nil || v != 0.62 {
		t.Errorf("GetFloat = %v, %v", v, err)
	}

	if _, err := mem.GetFloat(ctx, "Bogus/Key"); err == nil {
		t.Error("expected remote fault for unknown key")
	}
}

func TestAudioRecorder(t *testing.T) {
	g := newFakeGateway(t)
	g.handle("ALAudioRecorder.startMicrophonesRecording", func(args []any) (any, string) { return nil, "" })
	g.handle("ALAudioRecorder.stopMicrophonesRecording", func(args []any) (any, string) { return nil, "" })

	s := g.connect(t)
	rec := s.AudioRecorder()
	ctx := context.Background()

	if err := rec.StartRecording(ctx, "/home/nao/recording.wav", "wav", 16000, FrontMicrophone); err != nil {
		t.Fatalf("StartRecording: %v", err)
	}

	call := g.lastCall(t)
	if call.Args[0] != "/home/nao/recording.wav" || call.Args[1] != "wav" {
		t.Errorf("args = %v", call.Args)
	}

	if err := rec.StopRecording(ctx); err != nil {
		t.Fatalf("StopRecording: %v", err)
	}
}
