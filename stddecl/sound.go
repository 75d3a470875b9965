package stddecl

import (
	"errors"
	"strings"

	"github.com/signadot/typeconf/gomap"
)

const defaultNamespace = "minecraft"

// Sound is a namespaced sound id such as minecraft:entity.player.levelup.
type Sound struct {
	Namespace string
	Key       string
}

func (s Sound) String() string {
	return s.Namespace + ":" + s.Key
}

// ParseSound normalizes a sound id. Legacy constant names such as
// ENTITY_PLAYER_LEVELUP map to their dotted key.
func ParseSound(raw string) (Sound, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sound{}, errors.New("empty sound id")
	}
	ns, key, found := strings.Cut(raw, ":")
	if !found {
		ns, key = defaultNamespace, raw
	}
	if key == strings.ToUpper(key) {
		key = strings.ReplaceAll(key, "_", ".")
	}
	ns, key = strings.ToLower(ns), strings.ToLower(key)
	if ns == "" || key == "" {
		return Sound{}, errors.New("sound id needs a namespace and a key")
	}
	return Sound{Namespace: ns, Key: key}, nil
}

var soundID = gomap.Required("id", gomap.String())

func soundConstructor() *gomap.Constructor {
	return gomap.Object[Sound](soundID).Inline().Build(func(a *gomap.Args) (Sound, error) {
		return ParseSound(soundID.Get(a))
	})
}
