package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits
const (
	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 1000
)

// Server handles web requests for the path tracer
type Server struct {
	config config.Config
}

// NewServer creates a new web server. Scene defaults not given in a request come from cfg.
func NewServer(cfg config.Config) *Server {
	return &Server{config: cfg}
}

// SceneRequest holds the scene parameters shared by render and inspect requests
type SceneRequest struct {
	Scene        string `json:"scene"`
	Width        int    `json:"width"`
	Samples      int    `json:"samples"`      // 0 keeps the scene default
	MaxDepth     int    `json:"maxDepth"`     // 0 keeps the scene default
	RRMinBounces int    `json:"rrMinBounces"` // Russian roulette minimum bounces, 0 disables it
	Seed         int64  `json:"seed"`
	UseBVH       bool   `json:"useBVH"`
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = s.config.Scene
	}

	sceneObj, err := scene.Create(sceneName, scene.Options{TexturePath: s.config.TexturePath}, rand.New(rand.NewSource(s.config.Seed)))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	// Return the scene's sampling configuration with validation limits
	sampling := sceneObj.GetSamplingConfig()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":                     sampling.Width,
			"height":                    sampling.Height,
			"samplesPerPixel":           sampling.SamplesPerPixel,
			"maxDepth":                  sampling.MaxDepth,
			"russianRouletteMinBounces": sampling.RussianRouletteMinBounces,
			"primitiveCount":            sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minWidth, "max": maxWidth},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"maxDepth": map[string]int{"min": 1, "max": maxDepth},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseSceneParams parses the scene parameters common to every scene endpoint
func (s *Server) parseSceneParams(values url.Values) (*SceneRequest, error) {
	req := &SceneRequest{Scene: s.config.Scene}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", s.config.Width, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 0, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.RRMinBounces, err = parseIntParam(values, "rrMinBounces", s.config.RussianRouletteMinBounces, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(values, "seed", s.config.Seed); err != nil {
		return nil, err
	}
	if req.UseBVH, err = parseBoolParam(values, "bvh", s.config.UseBVH); err != nil {
		return nil, err
	}
	return req, nil
}

// createScene builds and preprocesses the requested scene
func (s *Server) createScene(req *SceneRequest, logger core.Logger) (*scene.Scene, error) {
	random := rand.New(rand.NewSource(req.Seed))
	sceneObj, err := scene.Create(req.Scene, scene.Options{
		Width:                     req.Width,
		SamplesPerPixel:           req.Samples,
		MaxDepth:                  req.MaxDepth,
		RussianRouletteMinBounces: req.RRMinBounces,
		TexturePath:               s.config.TexturePath,
	}, random)
	if err != nil {
		return nil, err
	}

	if err := sceneObj.Preprocess(req.UseBVH, random); err != nil {
		return nil, fmt.Errorf("failed to preprocess scene %q: %w", req.Scene, err)
	}
	if logger != nil {
		logger.Printf("Scene %q ready: %d primitives (BVH: %v)\n", req.Scene, sceneObj.GetPrimitiveCount(), req.UseBVH)
	}
	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON writes a JSON response with CORS enabled
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
