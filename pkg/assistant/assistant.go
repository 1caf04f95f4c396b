// Package assistant implements NAO's listen-think-speak conversation loop.
//
// The robot waits for a head touch, records a few seconds of audio on its
// own filesystem, the audio is fetched over scp, transcribed with Whisper,
// answered by a chat model, and the reply is spoken through the robot's
// text-to-speech. Eye LED colors track the state so users can see what the
// robot is doing.
package assistant

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
	"github.com/nao-robotics/go-nao/pkg/openai"
)

// Recording parameters, matching what the robot's recorder supports well.
const (
	RecordDuration = 5 * time.Second
	SampleRate     = 16000
	RemoteWavPath  = "/home/nao/recording.wav"
)

// maxHistory caps the conversation turns kept for context.
const maxHistory = 20

// SystemPrompt is the personality given to the chat model.
const SystemPrompt = `You are NAO, a friendly and helpful humanoid robot assistant.
You have a cheerful personality and love to help people.
Keep your responses concise (2-3 sentences max) since you'll be speaking them aloud.
Be friendly, warm, and occasionally add a bit of robot humor.
If asked about your capabilities, mention that you can move, dance, wave, and have conversations.`

// State is what the assistant is currently doing, shown via eye color.
type State int

// Assistant states and their eye colors.
const (
	StateIdle         State = iota // white
	StateListening                 // blue
	StateTransferring              // cyan
	StateThinking                  // yellow
	StateSpeaking                  // green
	StateError                     // red
)

// eyeColors maps each state to a packed 0xRRGGBB color.
var eyeColors = map[State]uint32{
	StateIdle:         0xFFFFFF,
	StateListening:    0x0000FF,
	StateTransferring: 0x00FFFF,
	StateThinking:     0xFFFF00,
	StateSpeaking:     0x00FF00,
	StateError:        0xFF0000,
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateTransferring:
		return "transferring"
	case StateThinking:
		return "thinking"
	case StateSpeaking:
		return "speaking"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Speaker is the slice of the TTS service the assistant needs.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// EyeLeds is the slice of the LED service the assistant needs.
type EyeLeds interface {
	FadeColor(ctx context.Context, group string, rgb uint32, seconds float64) error
}

// Recorder is the slice of the audio recorder service the assistant needs.
type Recorder interface {
	StartRecording(ctx context.Context, path, format string, sampleRate int, ch naoqi.Channels) error
	StopRecording(ctx context.Context) error
}

// TouchSensor reports whether the robot's head is being touched.
type TouchSensor interface {
	HeadTouched(ctx context.Context) (bool, error)
}

// AudioFetcher copies a recording off the robot and returns a local path.
type AudioFetcher interface {
	Fetch(ctx context.Context, remotePath string) (string, error)
}

// Brain transcribes audio and produces chat replies.
type Brain interface {
	Transcribe(ctx context.Context, wavData []byte, filename string) (string, error)
	Chat(ctx context.Context, messages []openai.Message) (string, error)
}

// Assistant runs the conversation loop.
type Assistant struct {
	tts     Speaker
	leds    EyeLeds
	rec     Recorder
	touch   TouchSensor
	fetcher AudioFetcher
	brain   Brain

	history []openai.Message

	// recordWait is how long to record; shortened in tests.
	recordWait time.Duration

	// OnStateChange, when set, is notified of every state transition.
	OnStateChange func(State)
}

// New creates an assistant wired to the given robot services.
func New(tts Speaker, leds EyeLeds, rec Recorder, touch TouchSensor, fetcher AudioFetcher, brain Brain) *Assistant {
	return &Assistant{
		tts:        tts,
		leds:       leds,
		rec:        rec,
		touch:      touch,
		fetcher:    fetcher,
		brain:      brain,
		recordWait: RecordDuration,
	}
}

// setState changes the eye color and notifies the state callback.
// LED failures are logged, not fatal: the conversation matters more.
func (a *Assistant) setState(ctx context.Context, s State) {
	if a.OnStateChange != nil {
		a.OnStateChange(s)
	}
	if a.leds == nil {
		return
	}
	if err := a.leds.FadeColor(ctx, naoqi.GroupFaceLeds, eyeColors[s], 0.3); err != nil {
		log.Warn("eye color change failed", "state", s.String(), "error", err)
	}
}

// say speaks text, substituting an apology for empty input.
func (a *Assistant) say(ctx context.Context, text string) error {
	if text == "" {
		text = "I'm sorry, I couldn't process that."
	}
	fmt.Printf("NAO: %s\n", text)
	return a.tts.Say(ctx, text)
}

// History returns a copy of the conversation so far.
func (a *Assistant) History() []openai.Message {
	out := make([]openai.Message, len(a.history))
	copy(out, a.history)
	return out
}

// record captures audio on the robot and returns the remote path.
func (a *Assistant) record(ctx context.Context) (string, error) {
	// Stop any recording a previous crashed run left behind.
	if err := a.rec.StopRecording(ctx); err != nil {
		log.Debug("no stale recording to stop", "error", err)
	}

	if err := a.rec.StartRecording(ctx, RemoteWavPath, "wav", SampleRate, naoqi.FrontMicrophone); err != nil {
		return "", fmt.Errorf("start recording: %w", err)
	}

	select {
	case <-ctx.Done():
		a.rec.StopRecording(context.WithoutCancel(ctx))
		return "", ctx.Err()
	case <-time.After(a.recordWait):
	}

	if err := a.rec.StopRecording(ctx); err != nil {
		return "", fmt.Errorf("stop recording: %w", err)
	}
	return RemoteWavPath, nil
}

// respond asks the chat model for a reply and updates history.
func (a *Assistant) respond(ctx context.Context, userText string) (string, error) {
	messages := make([]openai.Message, 0, len(a.history)+2)
	messages = append(messages, openai.Message{Role: "system", Content: SystemPrompt})
	messages = append(messages, a.history...)
	messages = append(messages, openai.Message{Role: "user", Content: userText})

	reply, err := a.brain.Chat(ctx, messages)
	if err != nil {
		return "", err
	}

	a.history = append(a.history,
		openai.Message{Role: "user", Content: userText},
		openai.Message{Role: "assistant", Content: reply},
	)
	if len(a.history) > maxHistory {
		a.history = a.history[len(a.history)-maxHistory:]
	}
	return reply, nil
}

// ListenAndRespond runs one full conversation turn. Failures are spoken to
// the user and returned; the loop in Run carries on either way.
func (a *Assistant) ListenAndRespond(ctx context.Context) error {
	a.setState(ctx, StateListening)
	if err := a.say(ctx, "I'm listening"); err != nil {
		return err
	}

	remotePath, err := a.record(ctx)
	if err != nil {
		return a.fail(ctx, "I couldn't record audio. Please check the setup.", err)
	}

	a.setState(ctx, StateTransferring)
	localPath, err := a.fetcher.Fetch(ctx, remotePath)
	if err != nil {
		return a.fail(ctx, "I couldn't access the recording. Please check the setup.", err)
	}
	defer os.Remove(localPath)

	a.setState(ctx, StateThinking)
	wavData, err := os.ReadFile(localPath)
	if err != nil {
		return a.fail(ctx, "I couldn't access the recording. Please check the setup.", err)
	}

	userText, err := a.brain.Transcribe(ctx, wavData, "recording.wav")
	if err != nil || userText == "" {
		return a.fail(ctx, "I couldn't understand what you said. Please try again.", err)
	}
	fmt.Printf("You said: %q\n", userText)

	reply, err := a.respond(ctx, userText)
	if err != nil {
		return a.fail(ctx, "I'm having trouble thinking right now. Please try again.", err)
	}

	a.setState(ctx, StateSpeaking)
	if err := a.say(ctx, reply); err != nil {
		return err
	}

	a.setState(ctx, StateIdle)
	return nil
}

// fail reports a step failure to the user and resets to idle.
func (a *Assistant) fail(ctx context.Context, apology string, cause error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	log.Error("conversation turn failed", "error", cause)
	a.setState(ctx, StateError)
	if err := a.say(ctx, apology); err != nil {
		log.Warn("apology failed too", "error", err)
	}
	a.setState(ctx, StateIdle)
	return cause
}

// Run greets the user and then loops: wait for a head touch, hold a
// conversation turn, debounce, repeat. Returns when the context ends.
func (a *Assistant) Run(ctx context.Context) error {
	a.setState(ctx, StateIdle)
	if err := a.say(ctx, "Hello! Touch my head when you want to talk to me."); err != nil {
		return err
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		touched, err := a.touch.HeadTouched(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("head touch poll failed", "error", err)
			continue
		}
		if !touched {
			continue
		}

		if err := a.ListenAndRespond(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Println("\nTouch my head to talk again...")

		// Debounce so one touch doesn't trigger twice.
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
