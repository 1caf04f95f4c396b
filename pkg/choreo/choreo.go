// Package choreo runs short scripted movement routines on the robot.
//
// A routine is a flat list of steps; each step sets joint angles, optionally
// fades the face LEDs, then pauses. This covers everything the wave and
// dance examples need without a keyframe interpolator: the robot's own
// motion engine smooths between targets.
package choreo

import (
	"context"
	"time"

	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

// Color is an RGB color with components in 0..1.
type Color struct {
	R, G, B float64
}

// Common face LED colors used by the routines.
var (
	Red    = Color{1, 0, 0}
	Green  = Color{0, 1, 0}
	Blue   = Color{0, 0, 1}
	Yellow = Color{1, 1, 0}
	Purple = Color{1, 0, 1}
	White  = Color{1, 1, 1}
)

// Step is one beat of a routine.
type Step struct {
	// Joints and Angles are passed to the motion service together.
	// Empty means the step only changes LEDs or pauses.
	Joints []string
	Angles []float64

	// Speed is the fractional joint speed (0..1) for this step.
	Speed float64

	// LED, when non-nil, fades the face LEDs to this color.
	LED *Color

	// Pause is how long to wait after issuing the step's calls.
	Pause time.Duration
}

// Routine is a named sequence of steps.
type Routine struct {
	Name  string
	Steps []Step
}

// Duration returns the sum of the routine's pauses.
func (r Routine) Duration() time.Duration {
	var total time.Duration
	for _, s := range r.Steps {
		total += s.Pause
	}
	return total
}

// AngleSetter is the slice of the motion service the runner needs.
type AngleSetter interface {
	SetAngles(ctx context.Context, joints []string, angles []float64, speed float64) error
}

// LedFader is the slice of the LED service the runner needs.
type LedFader interface {
	FadeRGB(ctx context.Context, group string, r, g, b, seconds float64) error
}

// ledFadeSeconds is the fade time for per-step LED color changes.
const ledFadeSeconds = 0.2

// Runner executes routines through the motion and LED services.
// A nil leds makes LED steps no-ops, for robots with LEDs disabled.
type Runner struct {
	motion AngleSetter
	leds   LedFader
}

// NewRunner creates a routine runner.
func NewRunner(motion AngleSetter, leds LedFader) *Runner {
	return &Runner{motion: motion, leds: leds}
}

// Run executes the routine step by step. It stops at the first remote error
// and honors context cancellation between and during pauses.
func (r *Runner) Run(ctx context.Context, routine Routine) error {
	for _, st := range routine.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		if st.LED != nil && r.leds != nil {
			if err := r.leds.FadeRGB(ctx, naoqi.GroupFaceLeds, st.LED.R, st.LED.G, st.LED.B, ledFadeSeconds); err != nil {
				return err
			}
		}

		if len(st.Joints) > 0 {
			if err := r.motion.SetAngles(ctx, st.Joints, st.Angles, st.Speed); err != nil {
				return err
			}
		}

		if st.Pause > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(st.Pause):
			}
		}
	}
	return nil
}
