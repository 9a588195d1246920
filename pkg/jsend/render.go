package jsend

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"io"

	gojson "github.com/goccy/go-json"
	"github.com/veerakumarak/jsend/pkg/config"
	pkgerrors "github.com/veerakumarak/jsend/pkg/errors"
	"github.com/veerakumarak/jsend/pkg/logger"
)

var emptyObject = []byte("{}")

// Backend encodes individual JSON values. Map keys must come out sorted so
// that rendering is deterministic.
type Backend interface {
	Name() string
	Marshal(v any) ([]byte, error)
}

type goccyBackend struct {
	escapeHTML bool
}

// GoccyBackend encodes with github.com/goccy/go-json.
func GoccyBackend(escapeHTML bool) Backend {
	return goccyBackend{escapeHTML: escapeHTML}
}

func (goccyBackend) Name() string { return config.BackendGoccy }

func (b goccyBackend) Marshal(v any) ([]byte, error) {
	if b.escapeHTML {
		return gojson.Marshal(v)
	}
	return gojson.MarshalWithOption(v, gojson.DisableHTMLEscape())
}

type stdBackend struct {
	escapeHTML bool
}

// StdBackend encodes with encoding/json.
func StdBackend(escapeHTML bool) Backend {
	return stdBackend{escapeHTML: escapeHTML}
}

func (stdBackend) Name() string { return config.BackendStd }

func (b stdBackend) Marshal(v any) ([]byte, error) {
	if b.escapeHTML {
		return stdjson.Marshal(v)
	}
	var buf bytes.Buffer
	enc := stdjson.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Renderer turns envelopes into JSend JSON. It holds no mutable state and is
// safe for concurrent use.
type Renderer struct {
	backend Backend
	log     *logger.Logger
}

type Option func(*Renderer)

func WithBackend(backend Backend) Option {
	return func(r *Renderer) {
		if backend != nil {
			r.backend = backend
		}
	}
}

// WithLogger makes the renderer log serialization failures before returning them.
func WithLogger(log *logger.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{backend: GoccyBackend(true)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRendererFromConfig builds a renderer from loaded configuration.
func NewRendererFromConfig(cfg config.RenderConfig, log *logger.Logger) *Renderer {
	backend := GoccyBackend(cfg.EscapeHTML)
	if cfg.Backend == config.BackendStd {
		backend = StdBackend(cfg.EscapeHTML)
	}
	r := NewRenderer(WithBackend(backend), WithLogger(log))
	if log != nil {
		ctx := log.WithFields(context.Background(), map[string]any{
			"backend":     backend.Name(),
			"escape_html": cfg.EscapeHTML,
		})
		log.Info(ctx, "jsend.renderer.configured")
	}
	return r
}

// Load builds a renderer and its logger from JSEND_* environment variables.
// Logs go to output, or stderr when output is nil.
func Load(output io.Writer) (*Renderer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewRendererFromConfig(cfg.Render, logger.FromConfig(cfg.Log, output)), nil
}

// Default backs Response.MarshalJSON and the package-level Render and Encode.
var Default = NewRenderer()

func Render(e Envelope) ([]byte, error) {
	return Default.Render(e)
}

func Encode(w io.Writer, e Envelope) error {
	return Default.Encode(w, e)
}

func (r *Renderer) Backend() Backend {
	if r == nil {
		return Default.backend
	}
	return r.backend
}

func (r *Renderer) Render(e Envelope) ([]byte, error) {
	return r.RenderContext(context.Background(), e)
}

// RenderContext is Render with a context whose logger fields are attached to
// failure logs.
func (r *Renderer) RenderContext(ctx context.Context, e Envelope) ([]byte, error) {
	if r == nil {
		r = Default
	}

	if e == nil {
		e = Response[any]{}
	}
	b := e.variant()
	w := &objectWriter{backend: r.backend}
	w.buf.WriteByte('{')
	err := w.field("status", string(b.status()))
	if err == nil {
		err = b.render(w)
	}
	if err != nil {
		r.logFailure(ctx, b.status(), err)
		return nil, err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// Encode writes the rendered envelope followed by a newline, matching
// json.Encoder framing.
func (r *Renderer) Encode(w io.Writer, e Envelope) error {
	return r.EncodeContext(context.Background(), w, e)
}

func (r *Renderer) EncodeContext(ctx context.Context, w io.Writer, e Envelope) error {
	payload, err := r.RenderContext(ctx, e)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(payload, '\n')); err != nil {
		if r != nil && r.log != nil {
			r.log.Warn(r.log.WithField(ctx, "backend", r.backend.Name()), "jsend.encode.write_failed")
		}
		return err
	}
	return nil
}

func (r *Renderer) logFailure(ctx context.Context, status Status, err error) {
	if r.log == nil {
		return
	}
	dump := pkgerrors.Dump(err)
	ctx = r.log.WithStatus(ctx, status.String())
	ctx = r.log.WithFields(ctx, map[string]any{
		"backend":     r.backend.Name(),
		"error_chain": dump.Chain,
		"go_type":     dump.GoType,
	})
	r.log.Error(ctx, "jsend.render.failed", err)
}

// objectWriter appends members to a single JSON object. Keys are written
// verbatim and must not need escaping.
type objectWriter struct {
	buf     bytes.Buffer
	backend Backend
	members int
}

func (w *objectWriter) field(key string, value any) error {
	raw, err := w.backend.Marshal(value)
	if err != nil {
		return err
	}
	w.raw(key, raw)
	return nil
}

func (w *objectWriter) raw(key string, value []byte) {
	if w.members > 0 {
		w.buf.WriteByte(',')
	}
	w.members++
	w.buf.WriteByte('"')
	w.buf.WriteString(key)
	w.buf.WriteString(`":`)
	w.buf.Write(value)
}

func (b successBody[T]) render(w *objectWriter) error {
	if len(b.data) == 0 {
		w.raw("data", emptyObject)
		return nil
	}
	return w.field("data", b.data)
}

func (b failBody) render(w *objectWriter) error {
	switch {
	case b.hasMessage:
		return w.field("data", map[string]string{"message": b.message})
	case len(b.reasons) > 0:
		return w.field("data", b.reasons)
	default:
		w.raw("data", emptyObject)
		return nil
	}
}

func (b errorBody) render(w *objectWriter) error {
	if err := w.field("message", b.message); err != nil {
		return err
	}
	if b.code != nil {
		if err := w.field("code", *b.code); err != nil {
			return err
		}
	}
	if len(b.data) > 0 {
		return w.field("data", b.data)
	}
	return nil
}
