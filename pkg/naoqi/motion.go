package naoqi

import (
	"context"
	"errors"
)

// Chain names accepted by SetStiffness.
const (
	ChainBody = "Body"
	ChainHead = "Head"
	ChainLArm = "LArm"
	ChainRArm = "RArm"
	ChainLLeg = "LLeg"
	ChainRLeg = "RLeg"
)

// Joint names used by the examples.
const (
	JointHeadYaw   = "HeadYaw"
	JointHeadPitch = "HeadPitch"

	JointLShoulderPitch = "LShoulderPitch"
	JointLShoulderRoll  = "LShoulderRoll"
	JointRShoulderPitch = "RShoulderPitch"
	JointRShoulderRoll  = "RShoulderRoll"
	JointRElbowRoll     = "RElbowRoll"
	JointRWristYaw      = "RWristYaw"

	JointLHipRoll = "LHipRoll"
	JointRHipRoll = "RHipRoll"
)

// Physical head limits in radians, from the NAO joint documentation.
// Head angles are clamped client-side to keep choreography bugs from
// sending impossible targets.
const (
	MaxHeadYaw   = 2.0857
	MinHeadPitch = -0.6720
	MaxHeadPitch = 0.5149
)

// ErrAngleCount is returned when joint and angle slices differ in length.
var ErrAngleCount = errors.New("naoqi: joints and angles must have the same length")

// ClampHeadAngle restricts an angle for the given joint to the head's
// physical range. Angles for other joints pass through unchanged.
func ClampHeadAngle(joint string, angle float64) float64 {
	switch joint {
	case JointHeadYaw:
		if angle > MaxHeadYaw {
			return MaxHeadYaw
		}
		if angle < -MaxHeadYaw {
			return -MaxHeadYaw
		}
	case JointHeadPitch:
		if angle > MaxHeadPitch {
			return MaxHeadPitch
		}
		if angle < MinHeadPitch {
			return MinHeadPitch
		}
	}
	return angle
}

// Motion wraps the ALMotion service.
type Motion struct {
	proxy *Proxy
}

// WakeUp turns the motors on and brings the robot to a ready stance.
func (m *Motion) WakeUp(ctx context.Context) error {
	_, err := m.proxy.Call(ctx, "wakeUp")
	return err
}

// Rest relaxes the motors and puts the robot in a safe resting position.
func (m *Motion) Rest(ctx context.Context) error {
	_, err := m.proxy.Call(ctx, "rest")
	return err
}

// SetStiffness sets joint stiffness for a chain such as "Head" or "RArm".
// 0.0 is fully relaxed, 1.0 fully stiff.
func (m *Motion) SetStiffness(ctx context.Context, chain string, stiffness float64) error {
	_, err := m.proxy.Call(ctx, "setStiffnesses", chain, stiffness)
	return err
}

// SetAngle moves a single joint to the given angle in radians at a
// fractional maximum speed (0..1).
func (m *Motion) SetAngle(ctx context.Context, joint string, angle, speed float64) error {
	angle = ClampHeadAngle(joint, angle)
	_, err := m.proxy.Call(ctx, "setAngles", joint, angle, speed)
	return err
}

// SetAngles moves several joints at once. joints and angles must be the
// same length.
func (m *Motion) SetAngles(ctx context.Context, joints []string, angles []float64, speed float64) error {
	if len(joints) != len(angles) {
		return ErrAngleCount
	}
	clamped := make([]float64, len(angles))
	for i, a := range angles {
		clamped[i] = ClampHeadAngle(joints[i], a)
	}
	_, err := m.proxy.Call(ctx, "setAngles", joints, clamped, speed)
	return err
}

// MoveInit prepares the walk engine. Call before the first MoveTo.
func (m *Motion) MoveInit(ctx context.Context) error {
	_, err := m.proxy.Call(ctx, "moveInit")
	return err
}

// MoveTo walks the robot to a position relative to its current frame:
// x meters forward, y meters sideways, theta radians of rotation.
// Blocks until the walk completes.
func (m *Motion) MoveTo(ctx context.Context, x, y, theta float64) error {
	_, err := m.proxy.Call(ctx, "moveTo", x, y, theta)
	return err
}
