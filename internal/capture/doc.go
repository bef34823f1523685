// Package capture wraps PortAudio device enumeration and the microphone
// input stream. The hardware callback copies each delivered block and hands
// it to the frame queue without blocking; all buffering decisions live in
// the consuming segmentation loop.
package capture
