package assistant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao-robotics/go-nao/pkg/naoqi"
	"github.com/nao-robotics/go-nao/pkg/openai"
)

type mockSpeaker struct {
	said []string
	err  error
}

func (m *mockSpeaker) Say(_ context.Context, text string) error {
	m.said = append(m.said, text)
	return m.err
}

type mockLeds struct {
	colors []uint32
}

func (m *mockLeds) FadeColor(_ context.Context, _ string, rgb uint32, _ float64) error {
	m.colors = append(m.colors, rgb)
	return nil
}

type mockRecorder struct {
	starts   int
	stops    int
	startErr error
}

func (m *mockRecorder) StartRecording(_ context.Context, _, _ string, _ int, _ naoqi.Channels) error {
	m.starts++
	return m.startErr
}

func (m *mockRecorder) StopRecording(context.Context) error {
	m.stops++
	return nil
}

type mockTouch struct {
	touched bool
}

func (m *mockTouch) HeadTouched(context.Context) (bool, error) {
	return m.touched, nil
}

type mockFetcher struct {
	data []byte
	err  error
}

func (m *mockFetcher) Fetch(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("nao-test-%d.wav", time.Now().UnixNano()))
	if err := os.WriteFile(path, m.data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type mockBrain struct {
	transcript    string
	transcribeErr error
	reply         string
	chatErr       error
	lastMessages  []openai.Message
}

func (m *mockBrain) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return m.transcript, m.transcribeErr
}

func (m *mockBrain) Chat(_ context.Context, messages []openai.Message) (string, error) {
	m.lastMessages = messages
	return m.reply, m.chatErr
}

type fixture struct {
	tts     *mockSpeaker
	leds    *mockLeds
	rec     *mockRecorder
	touch   *mockTouch
	fetcher *mockFetcher
	brain   *mockBrain
	a       *Assistant
	states  []State
}

func newFixture() *fixture {
	f := &fixture{
		tts:     &mockSpeaker{},
		leds:    &mockLeds{},
		rec:     &mockRecorder{},
		touch:   &mockTouch{},
		fetcher: &mockFetcher{data: []byte("RIFF....WAVE")},
		brain:   &mockBrain{transcript: "hello robot", reply: "Hello human!"},
	}
	f.a = New(f.tts, f.leds, f.rec, f.touch, f.fetcher, f.brain)
	f.a.recordWait = time.Millisecond
	f.a.OnStateChange = func(s State) { f.states = append(f.states, s) }
	return f
}

func TestListenAndRespond(t *testing.T) {
	f := newFixture()

	if err := f.a.ListenAndRespond(context.Background()); err != nil {
		t.Fatalf("ListenAndRespond() error = %v", err)
	}

	want := []State{StateListening, StateTransferring, StateThinking, StateSpeaking, StateIdle}
	if len(f.states) != len(want) {
		t.Fatalf("states = %v, want %v", f.states, want)
	}
	for i, s := range want {
		if f.states[i] != s {
			t.Errorf("state[%d] = %v, want %v", i, f.states[i], s)
		}
	}

	if f.rec.starts != 1 {
		t.Errorf("recorder starts = %d, want 1", f.rec.starts)
	}
	// One stale stop before and one real stop after the recording.
	if f.rec.stops != 2 {
		t.Errorf("recorder stops = %d, want 2", f.rec.stops)
	}

	if len(f.tts.said) != 2 {
		t.Fatalf("said %v, want prompt and reply", f.tts.said)
	}
	if f.tts.said[1] != "Hello human!" {
		t.Errorf("spoke %q, want chat reply", f.tts.said[1])
	}
}

func TestListenAndRespond_ChatHistory(t *testing.T) {
	f := newFixture()

	if err := f.a.ListenAndRespond(context.Background()); err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if err := f.a.ListenAndRespond(context.Background()); err != nil {
		t.Fatalf("second turn: %v", err)
	}

	// Second turn sends: system prompt, two turns of history, new user text.
	msgs := f.brain.lastMessages
	if len(msgs) != 4 {
		t.Fatalf("sent %d messages, want 4", len(msgs))
	}
	if msgs[0].Role != "system" || !strings.Contains(msgs[0].Content, "NAO") {
		t.Errorf("first message = %+v, want NAO system prompt", msgs[0])
	}
	if msgs[1].Role != "user" || msgs[2].Role != "assistant" {
		t.Errorf("history roles = %s, %s, want user, assistant", msgs[1].Role, msgs[2].Role)
	}

	if got := len(f.a.History()); got != 4 {
		t.Errorf("History() has %d messages, want 4", got)
	}
}

func TestListenAndRespond_HistoryCap(t *testing.T) {
	f := newFixture()

	for i := 0; i < 15; i++ {
		if err := f.a.ListenAndRespond(context.Background()); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}

	if got := len(f.a.History()); got != maxHistory {
		t.Errorf("History() has %d messages, want %d", got, maxHistory)
	}
}

func TestListenAndRespond_TranscribeFailure(t *testing.T) {
	f := newFixture()
	f.brain.transcribeErr = errors.New("whisper down")

	err := f.a.ListenAndRespond(context.Background())
	if err == nil {
		t.Fatal("ListenAndRespond() = nil, want error")
	}

	last := f.tts.said[len(f.tts.said)-1]
	if !strings.Contains(last, "couldn't understand") {
		t.Errorf("apology = %q, want transcription apology", last)
	}
	if f.states[len(f.states)-1] != StateIdle {
		t.Errorf("final state = %v, want idle after failure", f.states[len(f.states)-1])
	}
}

func TestListenAndRespond_EmptyTranscript(t *testing.T) {
	f := newFixture()
	f.brain.transcript = ""

	if err := f.a.ListenAndRespond(context.Background()); err != nil {
		// Empty transcript with no underlying error still apologizes but
		// carries no cause to return.
		t.Logf("returned %v", err)
	}

	if f.brain.lastMessages != nil {
		t.Error("chat model called despite empty transcript")
	}
}

func TestListenAndRespond_FetchFailure(t *testing.T) {
	f := newFixture()
	f.fetcher.err = errors.New("scp failed")

	if err := f.a.ListenAndRespond(context.Background()); err == nil {
		t.Fatal("ListenAndRespond() = nil, want error")
	}

	last := f.tts.said[len(f.tts.said)-1]
	if !strings.Contains(last, "couldn't access the recording") {
		t.Errorf("apology = %q, want transfer apology", last)
	}
}

func TestListenAndRespond_RecordFailure(t *testing.T) {
	f := newFixture()
	f.rec.startErr = errors.New("recorder busy")

	if err := f.a.ListenAndRespond(context.Background()); err == nil {
		t.Fatal("ListenAndRespond() = nil, want error")
	}
	if f.brain.lastMessages != nil {
		t.Error("chat model called despite record failure")
	}
}

func TestRun_TouchTriggersConversation(t *testing.T) {
	f := newFixture()
	f.touch.touched = true

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	err := f.a.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v, want deadline exceeded", err)
	}

	if f.rec.starts == 0 {
		t.Error("head touch never triggered a recording")
	}
	if len(f.tts.said) < 2 {
		t.Errorf("said %v, want greeting plus at least one turn", f.tts.said)
	}
}

func TestRun_NoTouchNoConversation(t *testing.T) {
	f := newFixture()

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	_ = f.a.Run(ctx)

	if f.rec.starts != 0 {
		t.Errorf("recorder started %d times without a touch", f.rec.starts)
	}
	if len(f.tts.said) != 1 {
		t.Errorf("said %v, want greeting only", f.tts.said)
	}
}

func TestStateColors(t *testing.T) {
	f := newFixture()

	if err := f.a.ListenAndRespond(context.Background()); err != nil {
		t.Fatalf("ListenAndRespond() error = %v", err)
	}

	// Blue while listening, green while speaking, white back at idle.
	want := []uint32{0x0000FF, 0x00FFFF, 0xFFFF00, 0x00FF00, 0xFFFFFF}
	if len(f.leds.colors) != len(want) {
		t.Fatalf("eye colors = %#x, want %#x", f.leds.colors, want)
	}
	for i, c := range want {
		if f.leds.colors[i] != c {
			t.Errorf("color[%d] = %#06x, want %#06x", i, f.leds.colors[i], c)
		}
	}
}
