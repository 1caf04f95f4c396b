package naoqi

import "context"

// Memory wraps the ALMemory service, the access point for sensor values.
type Memory struct {
	proxy *Proxy
}

// GetData reads a value from the robot's shared memory by key.
func (m *Memory) GetData(ctx context.Context, key string) (Result, error) {
	return m.proxy.Call(ctx, "getData", key)
}

// GetFloat reads a numeric value from shared memory. Most sensor keys under
// Device/SubDeviceList are floats.
func (m *Memory) GetFloat(ctx context.Context, key string) (float64, error) {
	res, err := m.GetData(ctx, key)
	if err != nil {
		return 0, err
	}
	return res.Float()
}
