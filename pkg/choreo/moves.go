package choreo

import (
	"time"

	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

// Wave raises the right arm and waves the wrist back and forth.
// The robot should be standing with the right arm stiffened first.
func Wave() Routine {
	steps := []Step{
		// Raise the arm.
		{
			Joints: []string{
				naoqi.JointRShoulderPitch,
				naoqi.JointRShoulderRoll,
				naoqi.JointRElbowRoll,
				naoqi.JointRWristYaw,
			},
			Angles: []float64{-0.5, -0.3, 0.5, 0.0},
			Speed:  0.3,
			Pause:  500 * time.Millisecond,
		},
	}

	// Wave back and forth three times.
	for i := 0; i < 3; i++ {
		steps = append(steps,
			Step{
				Joints: []string{naoqi.JointRWristYaw},
				Angles: []float64{0.5},
				Speed:  0.5,
				Pause:  300 * time.Millisecond,
			},
			Step{
				Joints: []string{naoqi.JointRWristYaw},
				Angles: []float64{-0.5},
				Speed:  0.5,
				Pause:  300 * time.Millisecond,
			},
		)
	}

	// Back to neutral.
	steps = append(steps, Step{
		Joints: []string{naoqi.JointRWristYaw},
		Angles: []float64{0.0},
		Speed:  0.3,
		Pause:  300 * time.Millisecond,
	})

	return Routine{Name: "wave", Steps: steps}
}

// Dance is a simple arm-and-hip routine with face LED color changes,
// repeated for the given number of verses. Finishes with arms up and
// white eyes.
func Dance(verses int) Routine {
	if verses < 1 {
		verses = 1
	}

	var steps []Step
	for i := 0; i < verses; i++ {
		steps = append(steps,
			// Arms up.
			Step{
				LED: &Red,
				Joints: []string{
					naoqi.JointLShoulderPitch, naoqi.JointRShoulderPitch,
					naoqi.JointLShoulderRoll, naoqi.JointRShoulderRoll,
				},
				Angles: []float64{-1.0, -1.0, 0.3, -0.3},
				Speed:  0.4,
				Pause:  500 * time.Millisecond,
			},
			// Arms out to the sides.
			Step{
				LED: &Green,
				Joints: []string{
					naoqi.JointLShoulderPitch, naoqi.JointRShoulderPitch,
					naoqi.JointLShoulderRoll, naoqi.JointRShoulderRoll,
				},
				Angles: []float64{0.0, 0.0, 1.3, -1.3},
				Speed:  0.4,
				Pause:  500 * time.Millisecond,
			},
			// Arms crossed.
			Step{
				LED: &Blue,
				Joints: []string{
					naoqi.JointLShoulderRoll, naoqi.JointRShoulderRoll,
					naoqi.JointLShoulderPitch, naoqi.JointRShoulderPitch,
				},
				Angles: []float64{-0.2, 0.2, 0.5, 0.5},
				Speed:  0.4,
				Pause:  500 * time.Millisecond,
			},
			// Lean left.
			Step{
				LED:    &Yellow,
				Joints: []string{naoqi.JointLHipRoll, naoqi.JointRHipRoll},
				Angles: []float64{0.2, 0.2},
				Speed:  0.3,
				Pause:  400 * time.Millisecond,
			},
			// Lean right.
			Step{
				LED:    &Purple,
				Joints: []string{naoqi.JointLHipRoll, naoqi.JointRHipRoll},
				Angles: []float64{-0.2, -0.2},
				Speed:  0.3,
				Pause:  400 * time.Millisecond,
			},
			// Back to center.
			Step{
				Joints: []string{naoqi.JointLHipRoll, naoqi.JointRHipRoll},
				Angles: []float64{0.0, 0.0},
				Speed:  0.3,
			},
		)
	}

	// Finish with arms up and white eyes.
	steps = append(steps, Step{
		LED: &White,
		Joints: []string{
			naoqi.JointLShoulderPitch, naoqi.JointRShoulderPitch,
			naoqi.JointLShoulderRoll, naoqi.JointRShoulderRoll,
		},
		Angles: []float64{-1.5, -1.5, 0.2, -0.2},
		Speed:  0.3,
		Pause:  500 * time.Millisecond,
	})

	return Routine{Name: "dance", Steps: steps}
}

// HeadSweep looks straight ahead, left, right, up, down, then back to
// center, pausing between positions.
func HeadSweep() Routine {
	look := func(yaw, pitch float64) Step {
		return Step{
			Joints: []string{naoqi.JointHeadYaw, naoqi.JointHeadPitch},
			Angles: []float64{yaw, pitch},
			Speed:  0.2,
			Pause:  time.Second,
		}
	}
	return Routine{
		Name: "head-sweep",
		Steps: []Step{
			look(0, 0),     // straight ahead
			look(0.7, 0),   // left
			look(-0.7, 0),  // right
			look(0, -0.4),  // up
			look(0, 0.4),   // down
			look(0, 0),     // center
		},
	}
}
