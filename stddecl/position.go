package stddecl

import (
	"fmt"

	"github.com/signadot/typeconf/gomap"
)

// Position is a point in a world.
type Position struct {
	X, Y, Z float64
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

var (
	posX = gomap.Required("x", gomap.Float64())
	posY = gomap.Required("y", gomap.Float64())
	posZ = gomap.Default("z", gomap.Float64(), 0)
)

func positionConstructor() *gomap.Constructor {
	return gomap.Object[Position](posX, posY, posZ).Inline().Build(func(a *gomap.Args) (Position, error) {
		return Position{X: posX.Get(a), Y: posY.Get(a), Z: posZ.Get(a)}, nil
	})
}

// Location is a position in a named world with a view direction.
type Location struct {
	World      string
	X, Y, Z    float64
	Yaw, Pitch float32
}

func (l Location) Position() Position {
	return Position{X: l.X, Y: l.Y, Z: l.Z}
}

var (
	locWorld = gomap.Required("world", gomap.String())
	locX     = gomap.Required("x", gomap.Float64())
	locY     = gomap.Required("y", gomap.Float64())
	locZ     = gomap.Required("z", gomap.Float64())
	locYaw   = gomap.Default("yaw", gomap.Float32(), 0)
	locPitch = gomap.Default("pitch", gomap.Float32(), 0)
)

func locationConstructor(known func(string) bool) *gomap.Constructor {
	return gomap.Object[Location](locWorld, locX, locY, locZ, locYaw, locPitch).Inline().
		Build(func(a *gomap.Args) (Location, error) {
			w := locWorld.Get(a)
			if !known(w) {
				return Location{}, fmt.Errorf("cannot find world %q", w)
			}
			return Location{
				World: w,
				X:     locX.Get(a),
				Y:     locY.Get(a),
				Z:     locZ.Get(a),
				Yaw:   locYaw.Get(a),
				Pitch: locPitch.Get(a),
			}, nil
		})
}
