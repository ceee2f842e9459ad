package peripherals

import "math/rand/v2"

// RNG is a port device returning a fresh pseudo-random byte on every read.
// It has no teacher precedent (the teacher's port devices are all
// hardware-shaped: terminal, AY sound bus); math/rand/v2 is the standard
// library's own successor to math/rand and needs no third-party package.
type RNG struct{}

// Input implements ports.InputDevice.
func (RNG) Input() byte {
	return byte(rand.IntN(256))
}
