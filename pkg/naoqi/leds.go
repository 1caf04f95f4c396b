package naoqi

import "context"

// LED group names.
const (
	GroupFaceLeds      = "FaceLeds"
	GroupLeftFaceLeds  = "LeftFaceLeds"
	GroupRightFaceLeds = "RightFaceLeds"
	GroupChestLeds     = "ChestLeds"
	GroupFeetLeds      = "FeetLeds"
)

// Leds wraps the ALLeds service.
type Leds struct {
	proxy *Proxy
}

// FadeRGB fades an LED group to the given color over the given duration in
// seconds. Color components are in 0..1.
func (l *Leds) FadeRGB(ctx context.Context, group string, r, g, b, seconds float64) error {
	_, err := l.proxy.Call(ctx, "fadeRGB", group, r, g, b, seconds)
	return err
}

// FadeColor fades an LED group to a packed 0xRRGGBB color.
func (l *Leds) FadeColor(ctx context.Context, group string, rgb uint32, seconds float64) error {
	r := float64((rgb>>16)&0xFF) / 255
	g := float64((rgb>>8)&0xFF) / 255
	b := float64(rgb&0xFF) / 255
	return l.FadeRGB(ctx, group, r, g, b, seconds)
}

// On switches an LED group fully on.
func (l *Leds) On(ctx context.Context, group string) error {
	_, err := l.proxy.Call(ctx, "on", group)
	return err
}

// Off switches an LED group off.
func (l *Leds) Off(ctx context.Context, group string) error {
	_, err := l.proxy.Call(ctx, "off", group)
	return err
}
