// Package sensors reads NAO's sensor values through the ALMemory service.
//
// Sensors have no dedicated service; each is a float under a
// Device/SubDeviceList key in shared memory. Keys that a given robot or
// firmware does not expose read back as a remote fault, which this package
// reports as a missing reading rather than an error.
package sensors

import (
	"context"
	"time"

	"github.com/nao-robotics/go-nao/internal/log"
)

// ALMemory keys for the sensors surfaced by the examples.
const (
	KeyBatteryCharge   = "Device/SubDeviceList/Battery/Charge/Sensor/Value"
	KeyHeadTemperature = "Device/SubDeviceList/Head/Temperature/Sensor/Value"

	KeyHeadTouchFront  = "Device/SubDeviceList/Head/Touch/Front/Sensor/Value"
	KeyHeadTouchMiddle = "Device/SubDeviceList/Head/Touch/Middle/Sensor/Value"
	KeyHeadTouchRear   = "Device/SubDeviceList/Head/Touch/Rear/Sensor/Value"
	KeyLHandTouch      = "Device/SubDeviceList/LHand/Touch/Back/Sensor/Value"
	KeyRHandTouch      = "Device/SubDeviceList/RHand/Touch/Back/Sensor/Value"

	KeySonarLeft  = "Device/SubDeviceList/US/Left/Sensor/Value"
	KeySonarRight = "Device/SubDeviceList/US/Right/Sensor/Value"

	KeyLFootBumperLeft  = "Device/SubDeviceList/LFoot/Bumper/Left/Sensor/Value"
	KeyLFootBumperRight = "Device/SubDeviceList/LFoot/Bumper/Right/Sensor/Value"
	KeyRFootBumperLeft  = "Device/SubDeviceList/RFoot/Bumper/Left/Sensor/Value"
	KeyRFootBumperRight = "Device/SubDeviceList/RFoot/Bumper/Right/Sensor/Value"
)

// TouchThreshold is the value above which a touch sensor or bumper reads as
// pressed.
const TouchThreshold = 0.5

// Reading is one sensor value. OK is false when the robot does not expose
// the key.
type Reading struct {
	Name  string
	Key   string
	Value float64
	OK    bool
}

// Pressed reports whether a touch or bumper reading counts as activated.
func (r Reading) Pressed() bool {
	return r.OK && r.Value > TouchThreshold
}

// Report is a snapshot of all sensors the examples display.
type Report struct {
	Battery  Reading
	HeadTemp Reading
	Touch    []Reading
	Sonar    []Reading
	Bumpers  []Reading
	Taken    time.Time
}

// BatteryPercent returns the battery charge as a percentage.
func (r *Report) BatteryPercent() (float64, bool) {
	if !r.Battery.OK {
		return 0, false
	}
	return r.Battery.Value * 100, true
}

// HeadTouched reports whether any head touch sensor in the report is active.
func (r *Report) HeadTouched() bool {
	for _, t := range r.Touch {
		switch t.Key {
		case KeyHeadTouchFront, KeyHeadTouchMiddle, KeyHeadTouchRear:
			if t.Pressed() {
				return true
			}
		}
	}
	return false
}

// MemoryReader is the slice of the memory service the reader needs.
type MemoryReader interface {
	GetFloat(ctx context.Context, key string) (float64, error)
}

// Reader collects sensor reports over a memory proxy.
type Reader struct {
	mem MemoryReader
}

// NewReader creates a sensor reader over the given memory service.
func NewReader(mem MemoryReader) *Reader {
	return &Reader{mem: mem}
}

func (r *Reader) read(ctx context.Context, name, key string) Reading {
	v, err := r.mem.GetFloat(ctx, key)
	if err != nil {
		log.Debug("sensor unavailable", "key", key, "error", err)
		return Reading{Name: name, Key: key}
	}
	return Reading{Name: name, Key: key, Value: v, OK: true}
}

// Read takes a snapshot of all sensors. Individual unavailable sensors are
// reported with OK=false; the error is non-nil only when the context ends.
func (r *Reader) Read(ctx context.Context) (*Report, error) {
	rep := &Report{Taken: time.Now()}

	rep.Battery = r.read(ctx, "Battery", KeyBatteryCharge)
	rep.HeadTemp = r.read(ctx, "Head Temperature", KeyHeadTemperature)

	rep.Touch = []Reading{
		r.read(ctx, "Head Front", KeyHeadTouchFront),
		r.read(ctx, "Head Middle", KeyHeadTouchMiddle),
		r.read(ctx, "Head Rear", KeyHeadTouchRear),
		r.read(ctx, "Left Hand", KeyLHandTouch),
		r.read(ctx, "Right Hand", KeyRHandTouch),
	}

	rep.Sonar = []Reading{
		r.read(ctx, "Left Sonar", KeySonarLeft),
		r.read(ctx, "Right Sonar", KeySonarRight),
	}

	rep.Bumpers = []Reading{
		r.read(ctx, "Left Foot Left", KeyLFootBumperLeft),
		r.read(ctx, "Left Foot Right", KeyLFootBumperRight),
		r.read(ctx, "Right Foot Left", KeyRFootBumperLeft),
		r.read(ctx, "Right Foot Right", KeyRFootBumperRight),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rep, nil
}

// HeadTouched polls just the three head touch sensors. Used by the assistant
// trigger loop, where a full report per poll would be wasteful.
func (r *Reader) HeadTouched(ctx context.Context) (bool, error) {
	for _, key := range []string{KeyHeadTouchFront, KeyHeadTouchMiddle, KeyHeadTouchRear} {
		v, err := r.mem.GetFloat(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			continue
		}
		if v > TouchThreshold {
			return true, nil
		}
	}
	return false, nil
}

// Watch polls the sensors at the given interval and sends reports on the
// returned channel until the context ends. Read errors end the watch.
func (r *Reader) Watch(ctx context.Context, interval time.Duration) <-chan *Report {
	out := make(chan *Report)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rep, err := r.Read(ctx)
				if err != nil {
					return
				}
				select {
				case out <- rep:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
