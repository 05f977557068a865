package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client.
// Zero Width, Samples and Depth mean "use the scene's value".
type RenderRequest struct {
	Scene   string
	Width   int
	Samples int
	Depth   int
	Seed    int64
	Format  output.Format
}

// handleRender renders a scene synchronously and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	logger := core.Logger()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, status, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	applyOverrides(sceneObj, req)

	startTime := time.Now()
	raytracer := renderer.NewRaytracer(sceneObj, renderer.WithSeed(req.Seed))
	img, stats := raytracer.RenderPass()

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("web render finished",
		"scene", req.Scene,
		"width", sceneObj.SamplingConfig.Width,
		"height", sceneObj.SamplingConfig.Height,
		"samples", stats.TotalSamples,
		"elapsed", time.Since(startTime))

	w.Header().Set("Content-Type", output.ContentType(req.Format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("failed to write render", "error", err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Seed: 42}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	req.Format = output.FormatPNG
	if value := query.Get("format"); value != "" {
		if req.Format, err = output.ParseFormat(value); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// applyOverrides replaces the scene's sampling settings with any set in req
func applyOverrides(s *scene.Scene, req *RenderRequest) {
	if req.Width > 0 {
		s.SetWidth(req.Width)
	}
	if req.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		s.SamplingConfig.MaxDepth = req.Depth
	}
}
