package choreo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

// mockMotion records SetAngles calls.
type mockMotion struct {
	mu    sync.Mutex
	calls []mockAngles
	err   error
}

type mockAngles struct {
	joints []string
	angles []float64
	speed  float64
}

func (m *mockMotion) SetAngles(ctx context.Context, joints []string, angles []float64, speed float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, mockAngles{joints: joints, angles: angles, speed: speed})
	return nil
}

func (m *mockMotion) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockLeds records FadeRGB calls.
type mockLeds struct {
	mu    sync.Mutex
	fades []Color
}

func (m *mockLeds) FadeRGB(ctx context.Context, group string, r, g, b, seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if group != naoqi.GroupFaceLeds {
		return errors.New("unexpected group " + group)
	}
	m.fades = append(m.fades, Color{r, g, b})
	return nil
}

// quick rewrites a routine with tiny pauses so tests run fast.
func quick(r Routine) Routine {
	for i := range r.Steps {
		if r.Steps[i].Pause > 0 {
			r.Steps[i].Pause = time.Millisecond
		}
	}
	return r
}

func TestRun_Wave(t *testing.T) {
	motion := &mockMotion{}
	runner := NewRunner(motion, nil)

	if err := runner.Run(context.Background(), quick(Wave())); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Raise + 3 wave pairs + return to neutral.
	if got := motion.callCount(); got != 8 {
		t.Errorf("SetAngles calls = %d, want 8", got)
	}

	first := motion.calls[0]
	if len(first.joints) != 4 || first.joints[0] != naoqi.JointRShoulderPitch {
		t.Errorf("first step joints = %v", first.joints)
	}
	if first.angles[0] != -0.5 {
		t.Errorf("first step shoulder pitch = %v, want -0.5", first.angles[0])
	}
}

func TestRun_DanceLeds(t *testing.T) {
	motion := &mockMotion{}
	leds := &mockLeds{}
	runner := NewRunner(motion, leds)

	if err := runner.Run(context.Background(), quick(Dance(2))); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 5 colored steps per verse plus the white finish.
	if got := len(leds.fades); got != 11 {
		t.Errorf("LED fades = %d, want 11", got)
	}
	if last := leds.fades[len(leds.fades)-1]; last != White {
		t.Errorf("final fade = %+v, want white", last)
	}
}

func TestRun_NilLedsSkipsFades(t *testing.T) {
	motion := &mockMotion{}
	runner := NewRunner(motion, nil)

	if err := runner.Run(context.Background(), quick(Dance(1))); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if motion.callCount() == 0 {
		t.Error("expected motion calls even without LEDs")
	}
}

func TestRun_StopsOnMotionError(t *testing.T) {
	motion := &mockMotion{err: errors.New("robot: motor hot")}
	runner := NewRunner(motion, nil)

	err := runner.Run(context.Background(), quick(Wave()))
	if err == nil || err.Error() != "robot: motor hot" {
		t.Errorf("Run error = %v, want motor fault", err)
	}
}

func TestRun_Cancellation(t *testing.T) {
	motion := &mockMotion{}
	runner := NewRunner(motion, nil)

	ctx, cancel := context.WithCancel(context.Background())

	routine := Routine{Name: "slow", Steps: []Step{
		{Joints: []string{naoqi.JointHeadYaw}, Angles: []float64{0.1}, Speed: 0.2, Pause: time.Hour},
		{Joints: []string{naoqi.JointHeadYaw}, Angles: []float64{0.2}, Speed: 0.2},
	}}

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, routine) }()

	// Let the first step start, then cancel mid-pause.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if got := motion.callCount(); got != 1 {
		t.Errorf("SetAngles calls = %d, want 1 (second step skipped)", got)
	}
}

func TestRoutine_Duration(t *testing.T) {
	r := Routine{Steps: []Step{
		{Pause: 100 * time.Millisecond},
		{Pause: 250 * time.Millisecond},
		{},
	}}
	if got := r.Duration(); got != 350*time.Millisecond {
		t.Errorf("Duration = %v, want 350ms", got)
	}
}

func TestHeadSweep_WithinLimits(t *testing.T) {
	for _, st := range HeadSweep().Steps {
		for i, j := range st.Joints {
			if got := naoqi.ClampHeadAngle(j, st.Angles[i]); got != st.Angles[i] {
				t.Errorf("%s angle %v exceeds head limits", j, st.Angles[i])
			}
		}
	}
}
