package promptstore

import (
	"context"
	"sync"

	prompty "github.com/itsatony/go-prompty/v2"
	"go.uber.org/zap"
)

// Renderer is the template engine path for prompt text, sitting on top of
// go-prompty. Where the Filler only substitutes {{name}} markers, the
// Renderer applies full template semantics with the engine's own escaping
// and control flow.
//
// Compiled templates are cached by source text, so rendering the same
// prompt repeatedly parses it once.
type Renderer struct {
	engine *prompty.Engine
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]*prompty.Template
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// WithRendererLogger sets the logger for a Renderer. The logger is also
// handed to an engine built by NewRenderer.
// Default: no-op logger
func WithRendererLogger(logger *zap.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithRendererEngine sets a preconfigured template engine.
// Default: a fresh engine with default options
func WithRendererEngine(engine *prompty.Engine) RendererOption {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// NewRenderer creates a Renderer, building a default engine unless one was
// supplied.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		cache: make(map[string]*prompty.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.engine == nil {
		engine, err := prompty.New(prompty.WithLogger(r.logger))
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

// MustNewRenderer is like NewRenderer but panics on error.
func MustNewRenderer(opts ...RendererOption) *Renderer {
	r, err := NewRenderer(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// RenderText compiles the source on first use and executes it with the
// given data.
func (r *Renderer) RenderText(ctx context.Context, source string, data map[string]any) (string, error) {
	template, err := r.template(source)
	if err != nil {
		return "", err
	}
	return template.Execute(ctx, data)
}

// RenderPrompt resolves a prompt from the store and renders its text.
func (r *Renderer) RenderPrompt(ctx context.Context, store *Store, name string, data map[string]any) (string, error) {
	text, err := store.GetPrompt(ctx, name)
	if err != nil {
		return "", err
	}
	return r.RenderText(ctx, text, data)
}

// template returns the cached compiled form of source, compiling it on a
// miss.
func (r *Renderer) template(source string) (*prompty.Template, error) {
	r.mu.RLock()
	template, ok := r.cache[source]
	r.mu.RUnlock()
	if ok {
		return template, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if template, ok := r.cache[source]; ok {
		return template, nil
	}
	template, err := r.engine.Parse(source)
	if err != nil {
		return nil, err
	}
	r.cache[source] = template

	r.logger.Debug(LogMsgTemplateCompiled,
		zap.Int(LogFieldCount, len(r.cache)),
	)
	return template, nil
}

// CachedTemplates returns the number of compiled templates in the cache.
func (r *Renderer) CachedTemplates() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

// ClearCache drops all compiled templates.
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*prompty.Template)
}
