package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/export"
	"github.com/jmylchreest/swatch/internal/favicon"
	imgloader "github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/security"
)

// imageField is the multipart form field carrying an uploaded image.
const imageField = "image"

// multipartOverhead is allowed on top of the upload cap for form boundaries and headers.
const multipartOverhead = 1 << 20

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// defaultFaviconSize is used when a favicon request omits size.
const defaultFaviconSize = 64

// SchemeRequest is the body of POST /api/scheme.
type SchemeRequest struct {
	Base   string `json:"base" validate:"required"`
	Kind   string `json:"kind" validate:"required"`
	Format string `json:"format"`
}

// SchemeResponse is the JSON form of a generated scheme.
type SchemeResponse struct {
	Kind   colour.SchemeKind     `json:"kind"`
	Base   string                `json:"base"`
	Colors []export.SchemeColour `json:"colors"`
}

// ContrastRequest is the body of POST /api/contrast.
type ContrastRequest struct {
	Foreground string `json:"foreground" validate:"required"`
	Background string `json:"background" validate:"required"`
}

// ContrastResponse is a contrast result with its summary level.
type ContrastResponse struct {
	colour.ContrastResult
	Level string `json:"level"`
}

// FaviconRequest is the body of POST /api/favicon and the query of GET /api/favicon.
type FaviconRequest struct {
	Text       string `json:"text" validate:"required"`
	Background string `json:"background" validate:"required"`
	Foreground string `json:"foreground"`
	Size       int    `json:"size" validate:"omitempty,gt=0,lte=1024"`
	Radius     int    `json:"radius" validate:"gte=0,lte=50"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	format := export.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := export.ParseFormat(f)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		format = parsed
	}

	data, err := s.readImage(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	img, imgFormat, err := imgloader.DecodeBounded(data, s.cfg.MaxPixels)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	palette, err := s.extractor.ExtractImage(img)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Debug("palette extracted",
		"image_format", imgFormat,
		"colours", palette.Len(),
		"dominant", palette.Dominant.Hex(),
		"trace_id", TraceID(r.Context()))

	if format == export.FormatJSON {
		respondJSON(w, http.StatusOK, palette.JSON())
		return
	}

	out, err := export.Palette(palette, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondBytes(w, format.ContentType(), out)
}

// readImage returns the uploaded image bytes, either from the "image" field
// of a multipart form or from the raw request body.
func (s *Server) readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	limit := s.cfg.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return readLimited(r.Body, limit)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: missing %q form field", errBadRequest, imageField)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadRequest, err)
		}
		if part.FormName() == imageField {
			defer part.Close()
			return readLimited(part, limit)
		}
		part.Close()
	}
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(security.NewLimitedReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", errBadRequest)
	}
	return data, nil
}

func (s *Server) handleScheme(w http.ResponseWriter, r *http.Request) {
	var req SchemeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	format := export.FormatJSON
	if req.Format != "" {
		parsed, err := export.ParseFormat(req.Format)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		format = parsed
	}

	base, err := colour.ParseHex(req.Base)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	kind, err := colour.ParseSchemeKind(req.Kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	scheme, err := colour.NewScheme(base, kind)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	if format == export.FormatJSON {
		colors := make([]export.SchemeColour, len(scheme.Entries))
		for i, e := range scheme.Entries {
			colors[i] = export.SchemeColour{Name: e.Role, Hex: e.Hex()}
		}
		respondJSON(w, http.StatusOK, SchemeResponse{Kind: scheme.Kind, Base: scheme.Base.Hex(), Colors: colors})
		return
	}

	out, err := export.Scheme(scheme.Entries, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondBytes(w, format.ContentType(), out)
}

func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	var req ContrastRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	result, err := colour.CheckContrastHex(req.Foreground, req.Background)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ContrastResponse{ContrastResult: result, Level: result.Level()})
}

func (s *Server) handleFavicon(w http.ResponseWriter, r *http.Request) {
	var req FaviconRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := renderFavicon(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondBytes(w, "image/png", data)
}

// handleFaviconQuery serves GET /api/favicon so a page can reference the
// icon directly from a <link> tag. Responses carry an ETag and are cacheable.
func (s *Server) handleFaviconQuery(w http.ResponseWriter, r *http.Request) {
	req, err := faviconQuery(r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := renderFavicon(req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondCacheable(w, r, "image/png", data)
}

// faviconQuery reads text, bg, fg, size and radius query parameters.
func faviconQuery(q url.Values) (FaviconRequest, error) {
	req := FaviconRequest{
		Text:       q.Get("text"),
		Background: q.Get("bg"),
		Foreground: q.Get("fg"),
	}
	for name, dst := range map[string]*int{"size": &req.Size, "radius": &req.Radius} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
		}
		*dst = n
	}
	return req, nil
}

func renderFavicon(req FaviconRequest) ([]byte, error) {
	size := req.Size
	if size == 0 {
		size = defaultFaviconSize
	}

	img, err := favicon.Render(favicon.Options{
		Text:          req.Text,
		Background:    req.Background,
		Foreground:    req.Foreground,
		RadiusPercent: req.Radius,
	}, size)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode favicon: %w", err)
	}
	return buf.Bytes(), nil
}

// decode reads a JSON body into v and validates its struct tags.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}
	if err := s.validate.Struct(v); err != nil {
		return err
	}
	return nil
}
