package naoqi

import "context"

// TextToSpeech wraps the ALTextToSpeech service.
type TextToSpeech struct {
	proxy *Proxy
}

// Say speaks the given text through the robot's speakers.
// Blocks until the robot finishes speaking.
func (t *TextToSpeech) Say(ctx context.Context, text string) error {
	_, err := t.proxy.Call(ctx, "say", text)
	return err
}

// SetParameter adjusts a voice parameter. Known parameters include "speed"
// (percentage, 80-120 is normal) and "pitchShift" (multiplier around 1.0).
func (t *TextToSpeech) SetParameter(ctx context.Context, name string, value float64) error {
	_, err := t.proxy.Call(ctx, "setParameter", name, value)
	return err
}
