package naoqi

import "context"

// Predefined NAO postures.
const (
	PostureStand      = "Stand"
	PostureStandInit  = "StandInit"
	PostureStandZero  = "StandZero"
	PostureSit        = "Sit"
	PostureSitRelax   = "SitRelax"
	PostureCrouch     = "Crouch"
	PostureLyingBack  = "LyingBack"
	PostureLyingBelly = "LyingBelly"
)

// RobotPosture wraps the ALRobotPosture service.
type RobotPosture struct {
	proxy *Proxy
}

// GoToPosture drives the robot to a predefined posture at the given
// fractional speed (0..1). The returned bool is false when the robot could
// not reach the posture.
func (p *RobotPosture) GoToPosture(ctx context.Context, posture string, speed float64) (bool, error) {
	res, err := p.proxy.Call(ctx, "goToPosture", posture, speed)
	if err != nil {
		return false, err
	}
	return res.Bool()
}
