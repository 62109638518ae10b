package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Options adjusts a built-in scene. Zero values keep the scene's defaults.
type Options struct {
	Width                     int
	SamplesPerPixel           int
	MaxDepth                  int
	RussianRouletteMinBounces int
	TexturePath               string // Image for the textured scene
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builder func(options Options, random *rand.Rand) (*Scene, error)

type entry struct {
	info  SceneInfo
	build builder
}

var registry = map[string]entry{
	"default": {
		info:  SceneInfo{"default", "A diffuse sphere resting on a large ground sphere"},
		build: newDefaultScene,
	},
	"materials": {
		info:  SceneInfo{"materials", "Diffuse, hollow glass and fuzzy metal spheres with depth of field"},
		build: newMaterialsScene,
	},
	"checker": {
		info:  SceneInfo{"checker", "Two large spheres with a solid checker texture"},
		build: newCheckerScene,
	},
	"random": {
		info:  SceneInfo{"random", "A field of random small spheres around three large ones"},
		build: newRandomScene,
	},
	"spheres": {
		info:  SceneInfo{"spheres", "Fifty random non-overlapping spheres"},
		build: newSpheresScene,
	},
	"textured": {
		info:  SceneInfo{"textured", "A globe wrapped in an image texture"},
		build: newTexturedScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the descriptions of all registered scenes, sorted by name
func List() []SceneInfo {
	var infos []SceneInfo
	for _, name := range Names() {
		infos = append(infos, registry[name].info)
	}
	return infos
}

// Create builds the named scene. random drives any procedural placement so the same
// seed always produces the same scene. The returned scene still needs Preprocess.
func Create(name string, options Options, random *rand.Rand) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}

	s, err := e.build(options, random)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", name, err)
	}

	if options.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = options.SamplesPerPixel
	}
	if options.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = options.MaxDepth
	}
	if options.RussianRouletteMinBounces > 0 {
		s.SamplingConfig.RussianRouletteMinBounces = options.RussianRouletteMinBounces
	}

	return s, nil
}
