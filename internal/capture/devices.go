package capture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Device describes one audio input device known to the host
type Device struct {
	Index             int
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefault         bool
}

// Initialize prepares the audio subsystem. Must be called once before any
// other function in this package; pair with Terminate.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize audio subsystem: %w", err)
	}
	return nil
}

// Terminate releases the audio subsystem.
func Terminate() {
	if err := portaudio.Terminate(); err != nil {
		// Nothing actionable at this point; the process is going away.
		return
	}
}

// ListDevices returns all devices that can capture audio, in host order.
func ListDevices() ([]Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("failed to query audio devices: %w", err)
	}

	defaultInput, _ := portaudio.DefaultInputDevice()

	var out []Device
	for i, d := range devices {
		if d.MaxInputChannels < 1 {
			continue
		}
		out = append(out, Device{
			Index:             i,
			Name:              d.Name,
			MaxInputChannels:  d.MaxInputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
			IsDefault:         defaultInput != nil && d == defaultInput,
		})
	}

	return out, nil
}

// DefaultInputDevice resolves the host's default input device.
func DefaultInputDevice() (Device, error) {
	d, err := portaudio.DefaultInputDevice()
	if err != nil {
		return Device{}, fmt.Errorf("failed to resolve default input device: %w", err)
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return Device{}, fmt.Errorf("failed to query audio devices: %w", err)
	}

	for i, info := range devices {
		if info == d {
			return Device{
				Index:             i,
				Name:              d.Name,
				MaxInputChannels:  d.MaxInputChannels,
				DefaultSampleRate: d.DefaultSampleRate,
				IsDefault:         true,
			}, nil
		}
	}

	return Device{}, fmt.Errorf("default input device %q not found in device list", d.Name)
}
