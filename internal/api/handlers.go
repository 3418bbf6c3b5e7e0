package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/mesh"
	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/raster"
	"github.com/VoidMesh/worldgen/internal/registry"
	"github.com/VoidMesh/worldgen/internal/world"
)

const (
	serviceName = "worldgen"
	version     = "1.0.0"

	generateTimeout = 25 * time.Second
	maxBodyBytes    = 1 << 16
)

type Handler struct {
	registry *registry.Registry
	logger   logging.LoggerInterface
}

func NewHandler(reg *registry.Registry, logger logging.LoggerInterface) *Handler {
	if logger == nil {
		logger = logging.NewDefaultLoggerWrapper()
	}
	return &Handler{
		registry: reg,
		logger:   logger.With("component", "api"),
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   serviceName,
		"version":   version,
		"worlds":    h.registry.Len(),
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) ListBiomes(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"biomes": biome.Describe(),
	})
}

// ClassifyResponse is the result of a single classifier query.
type ClassifyResponse struct {
	Elevation float64     `json:"elevation"`
	Moisture  float64     `json:"moisture"`
	Biome     biome.Biome `json:"biome"`
	Hex       string      `json:"hex"`
	Color     biome.Color `json:"color"`
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	elevation, err := parseUnit(r.URL.Query().Get("elevation"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid elevation", err)
		return
	}

	moisture, err := parseUnit(r.URL.Query().Get("moisture"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid moisture", err)
		return
	}

	b := biome.Classify(elevation, moisture)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, ClassifyResponse{
		Elevation: elevation,
		Moisture:  moisture,
		Biome:     b,
		Hex:       b.Color().Hex(),
		Color:     b.Color(),
	})
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	type preset struct {
		Name   string       `json:"name"`
		Config world.Config `json:"config"`
	}

	presets := make([]preset, 0, len(world.Presets))
	for _, name := range world.PresetNames() {
		cfg, _ := world.Preset(name)
		presets = append(presets, preset{Name: name, Config: cfg})
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"presets":    presets,
		"algorithms": noise.Algorithms(),
		"modes":      raster.Modes(),
	})
}

func (h *Handler) CreateWorld(w http.ResponseWriter, r *http.Request) {
	var req registry.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	summary, err := h.registry.Create(ctx, req)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to create world", err)
		return
	}

	w.Header().Set("Location", "/api/v1/worlds/"+summary.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, summary)
}

func (h *Handler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	worlds := h.registry.List()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"worlds": worlds,
		"count":  len(worlds),
		"max":    h.registry.MaxWorlds(),
	})
}

func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	summary, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to get world", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, summary)
}

func (h *Handler) RegenerateWorld(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req registry.RegenerateRequest
	if err := decodeBody(r, &req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	summary, err := h.registry.Regenerate(ctx, id, req)
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to regenerate world", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, summary)
}

func (h *Handler) DeleteWorld(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, statusFor(err), "failed to delete world", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GridResponse carries every cell of a world. Outer slices are indexed by y.
type GridResponse struct {
	ID         string          `json:"id"`
	Seed       int64           `json:"seed"`
	Resolution int             `json:"resolution"`
	Elevation  [][]float64     `json:"elevation"`
	Moisture   [][]float64     `json:"moisture"`
	Biomes     [][]biome.Biome `json:"biomes"`
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		resp GridResponse
		etag string
	)
	err := h.registry.View(id, func(wd *world.World) error {
		etag = wd.ETag()
		if notModified(r, etag) {
			return nil
		}

		res := wd.Resolution()
		biomes := wd.Biomes()
		rows := make([][]biome.Biome, res)
		for y := range rows {
			rows[y] = biomes[y*res : (y+1)*res]
		}

		resp = GridResponse{
			ID:         id,
			Seed:       wd.Seed(),
			Resolution: res,
			Elevation:  wd.Elevation().Rows(),
			Moisture:   wd.Moisture().Rows(),
			Biomes:     rows,
		}
		return nil
	})
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to get grid", err)
		return
	}

	w.Header().Set("ETag", etag)
	if notModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) GetCell(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid x coordinate", err)
		return
	}

	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid y coordinate", err)
		return
	}

	var cell world.Cell
	err = h.registry.View(chi.URLParam(r, "id"), func(wd *world.World) error {
		var cellErr error
		cell, cellErr = wd.Cell(x, y)
		return cellErr
	})
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to get cell", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, cell)
}

func (h *Handler) GetMap(w http.ResponseWriter, r *http.Request) {
	mode, err := raster.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid render mode", err)
		return
	}

	var (
		buf  bytes.Buffer
		etag string
	)
	err = h.registry.View(chi.URLParam(r, "id"), func(wd *world.World) error {
		etag = variantETag(wd.ETag(), string(mode))
		if notModified(r, etag) {
			return nil
		}
		return raster.EncodePNG(&buf, wd, mode)
	})
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to render map", err)
		return
	}

	w.Header().Set("ETag", etag)
	if notModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("Failed to write map response", "error", err)
	}
}

func (h *Handler) GetMesh(w http.ResponseWriter, r *http.Request) {
	step := 0
	if raw := r.URL.Query().Get("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.renderError(w, r, http.StatusBadRequest, "step must be a positive integer", err)
			return
		}
		step = parsed
	}

	var (
		m    *mesh.Mesh
		etag string
	)
	err := h.registry.View(chi.URLParam(r, "id"), func(wd *world.World) error {
		etag = variantETag(wd.ETag(), "mesh"+strconv.Itoa(step))
		if notModified(r, etag) {
			return nil
		}

		var buildErr error
		m, buildErr = mesh.Build(wd, mesh.Options{HeightScale: wd.Config().HeightScale, Step: step})
		return buildErr
	})
	if err != nil {
		h.renderError(w, r, statusFor(err), "failed to build mesh", err)
		return
	}

	w.Header().Set("ETag", etag)
	if notModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, m)
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		if status >= 500 {
			h.logger.Error("API error", "error", err, "message", message, "status", status)
			// Don't expose internal errors to the client
			errorResponse.Error = "Internal server error"
		} else {
			h.logger.Debug("Rejected request", "error", err, "message", message, "status", status)
			errorResponse.Message = err.Error()
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrWorldNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrRegistryFull):
		return http.StatusConflict
	case errors.Is(err, world.ErrInvalidResolution),
		errors.Is(err, world.ErrInvalidConfig),
		errors.Is(err, world.ErrOutOfBounds),
		errors.Is(err, mesh.ErrInvalidOptions),
		errors.Is(err, raster.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func parseUnit(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("value is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, errors.New("value must be within [0, 1]")
	}
	return v, nil
}

// decodeBody decodes a JSON body, treating an empty body as an empty object.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func variantETag(base, variant string) string {
	return strings.TrimSuffix(base, `"`) + "-" + variant + `"`
}

func notModified(r *http.Request, etag string) bool {
	match := r.Header.Get("If-None-Match")
	if match == "" {
		return false
	}
	for _, candidate := range strings.Split(match, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
