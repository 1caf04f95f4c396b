package naoqi

import "context"

// Channels selects which of NAO's four microphones record:
// front, rear, left, right. 1 enables, 0 disables.
type Channels [4]int

// FrontMicrophone records from the front microphone only, the setup used by
// the assistant examples.
var FrontMicrophone = Channels{1, 0, 0, 0}

// AudioRecorder wraps the ALAudioRecorder service. Recordings are written to
// the robot's filesystem, not streamed back.
type AudioRecorder struct {
	proxy *Proxy
}

// StartRecording begins recording to path on the robot. format is "wav" or
// "ogg"; sampleRate is in Hz.
func (a *AudioRecorder) StartRecording(ctx context.Context, path, format string, sampleRate int, ch Channels) error {
	_, err := a.proxy.Call(ctx, "startMicrophonesRecording", path, format, sampleRate, ch)
	return err
}

// StopRecording stops any recording in progress. Stopping when nothing is
// recording is a remote fault; callers that don't care should ignore it.
func (a *AudioRecorder) StopRecording(ctx context.Context) error {
	_, err := a.proxy.Call(ctx, "stopMicrophonesRecording")
	return err
}
