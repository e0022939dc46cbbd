package server

import (
	"encoding/json"
	"io"
	"math/rand"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	rrt "rrt-motion-planner"
	"rrt-motion-planner/world"
)

const (
	plannerDual = "dual"
	plannerStar = "star"

	maxBodyBytes = 32 << 20
)

// Point is a planar coordinate on the wire.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) toRRT() rrt.Point { return rrt.Point{p.X, p.Y} }

// PlanRequest asks for a path from Start to End. Zero-valued planner
// settings fall back to the server config.
type PlanRequest struct {
	Start        Point   `json:"start"`
	End          Point   `json:"end"`
	Planner      string  `json:"planner,omitempty"`
	ExtendLength float64 `json:"extendLength,omitempty"`
	MaxTries     int     `json:"maxTries,omitempty"`
	SmoothTries  *int    `json:"smoothTries,omitempty"`
	Seed         int64   `json:"seed,omitempty"`
	// NoFlyZones is an optional GeoJSON FeatureCollection of extra zones
	// that apply to this request only.
	NoFlyZones json.RawMessage `json:"noFlyZones,omitempty"`
}

// PlanResponse carries the planned path. Success is false when the goal was
// not reached; RRT* still returns the path to the vertex closest to it.
type PlanResponse struct {
	Path           []Point `json:"path"`
	Success        bool    `json:"success"`
	Message        string  `json:"message,omitempty"`
	Waypoints      int     `json:"waypoints"`
	Length         float64 `json:"length"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
}

// POST /plan
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.logger.Warnw("invalid plan request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.fillPlanDefaults(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ws := s.currentWorld()
	if len(req.NoFlyZones) > 0 {
		extra, err := world.ParseGeoJSON(req.NoFlyZones)
		if err != nil {
			s.logger.Warnw("invalid request no-fly zones", "error", err)
			http.Error(w, "Invalid noFlyZones: "+err.Error(), http.StatusBadRequest)
			return
		}
		ws = ws.With(extra)
	}

	start, goal := req.Start.toRRT(), req.End.toRRT()
	s.logger.Infow("plan request", "start", start, "end", goal, "planner", req.Planner,
		"extendLength", req.ExtendLength, "maxTries", req.MaxTries, "zones", ws.Len())

	switch {
	case !ws.IsFree(start):
		writeJSON(w, http.StatusOK, PlanResponse{Message: "start is outside the workspace or inside a no-fly zone"})
		return
	case !ws.IsFree(goal):
		writeJSON(w, http.StatusOK, PlanResponse{Message: "end is outside the workspace or inside a no-fly zone"})
		return
	}

	//nolint:gosec
	rng := rand.New(rand.NewSource(req.Seed))
	isFree := world.ContextFree(r.Context(), ws.IsFree)
	sample := ws.Sampler(rng)
	opts := []rrt.Option{rrt.WithLogger(s.logger), rrt.WithRand(rng), rrt.WithEdgeCheck(ws.SegmentClear)}

	var (
		path rrt.Path
		resp PlanResponse
	)
	switch req.Planner {
	case plannerDual:
		var err error
		path, err = rrt.DualRRTConnect(start, goal, isFree, sample, req.ExtendLength, req.MaxTries, opts...)
		if err != nil {
			resp.Message = err.Error()
		}
		resp.Success = err == nil
	case plannerStar:
		path, _ = rrt.RRTStarConnect(start, goal, isFree, sample, req.ExtendLength, req.MaxTries, opts...)
		resp.Success = floats.Equal(path[len(path)-1], goal)
		if !resp.Success {
			resp.Message = "goal not reached, returning path to the closest vertex"
		}
	}

	if err := r.Context().Err(); err != nil {
		s.logger.Warnw("plan request abandoned", "error", err)
		return
	}

	if resp.Success && !ws.PathClear(path) {
		s.logger.Warnw("planned path crosses a no-fly zone", "waypoints", len(path))
		resp.Success = false
		resp.Message = "planned path crosses a no-fly zone between waypoints"
	}

	if resp.Success && *req.SmoothTries > 0 {
		path = s.smoothClear(ws, path, isFree, req.ExtendLength, *req.SmoothTries, opts...)
	}

	resp.Path = make([]Point, len(path))
	for i, p := range path {
		resp.Path[i] = Point{X: p[0], Y: p[1]}
	}
	resp.Waypoints = len(path)
	resp.Length = path.Length()
	if s.cfg.Geographic {
		for i := 1; i < len(path); i++ {
			resp.DistanceMeters += geo.Distance(orb.Point{path[i-1][0], path[i-1][1]}, orb.Point{path[i][0], path[i][1]})
		}
	}

	if resp.Success {
		s.logger.Infow("path found", "waypoints", resp.Waypoints, "length", resp.Length, "meters", resp.DistanceMeters)
	} else {
		s.logger.Infow("no path found", "message", resp.Message)
	}
	writeJSON(w, http.StatusOK, resp)
}

// smoothClear smooths a copy of path and returns it if every segment is
// still clear of ws, and path unchanged otherwise.
func (s *Server) smoothClear(
	ws *world.World,
	path rrt.Path,
	isFree rrt.FreeFunc,
	extendLength float64,
	tries int,
	opts ...rrt.Option,
) rrt.Path {
	smoothed := path.Clone()
	rrt.SmoothPath(&smoothed, isFree, extendLength, tries, opts...)
	if !ws.PathClear(smoothed) {
		s.logger.Warnw("smoothed path crosses a no-fly zone, keeping it unsmoothed",
			"waypoints", len(path), "smoothed", len(smoothed))
		return path
	}
	return smoothed
}

func (s *Server) fillPlanDefaults(req *PlanRequest) error {
	if req.Planner == "" {
		req.Planner = plannerDual
	}
	if req.Planner != plannerDual && req.Planner != plannerStar {
		return errors.Errorf("unknown planner %q, want %q or %q", req.Planner, plannerDual, plannerStar)
	}
	if req.ExtendLength == 0 {
		req.ExtendLength = s.cfg.ExtendLength
	}
	if !(req.ExtendLength > 0) {
		return errors.Errorf("extendLength must be positive, got %v", req.ExtendLength)
	}
	if req.MaxTries == 0 {
		req.MaxTries = s.cfg.MaxTries
	}
	if req.MaxTries < 0 {
		return errors.Errorf("maxTries must not be negative, got %d", req.MaxTries)
	}
	if req.SmoothTries == nil {
		tries := s.cfg.SmoothTries
		req.SmoothTries = &tries
	}
	if req.Seed == 0 {
		req.Seed = s.cfg.Seed
	}
	return nil
}

// GET /obstacles returns the current zones as a GeoJSON FeatureCollection.
// POST /obstacles replaces them with the zones of the posted collection,
// or adds to them with ?mode=append.
func (s *Server) obstaclesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		fc := geojson.NewFeatureCollection()
		for _, zone := range s.currentWorld().Zones() {
			fc.Append(geojson.NewFeature(zone))
		}
		writeJSON(w, http.StatusOK, fc)

	case http.MethodPost:
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		zones, err := world.ParseGeoJSON(data)
		if err != nil {
			s.logger.Warnw("invalid no-fly zones", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode := r.URL.Query().Get("mode")
		if mode == "append" {
			zones = append(append([]orb.Polygon{}, s.currentWorld().Zones()...), zones...)
		}
		kept := s.SetZones(zones)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"zones":   kept,
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ws := s.currentWorld()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"zones":  ws.Len(),
		"bounds": s.cfg.Bounds,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(v)
}
