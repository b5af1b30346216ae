package param

// DefaultMaxDepth bounds array and object nesting during preparation.
const DefaultMaxDepth = 64

// Deserializer converts loosely-typed raw input into canonical arrays and objects.
// Implementations signal malformed input with *oaserrors.InvalidInputError.
type Deserializer interface {
	DeserializeArray(raw any) ([]any, error)
	DeserializeObject(raw any) (map[string]any, error)
}

// Context is shared by every value in one preparation run.
// A Context is immutable and safe for concurrent use.
type Context struct {
	deserializer Deserializer
	logger       Logger
	maxDepth     int
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithDeserializer sets the deserializer used by array and object pre-cast steps.
func WithDeserializer(d Deserializer) ContextOption {
	return func(c *Context) {
		c.deserializer = d
	}
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxDepth sets the nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// NewContext creates a Context. The defaults are no deserializer, a no-op
// logger and DefaultMaxDepth.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{logger: NopLogger{}, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultContext returns a Context with default settings.
func DefaultContext() *Context {
	return NewContext()
}

// Deserializer returns the configured deserializer, or nil.
func (c *Context) Deserializer() Deserializer { return c.deserializer }

// Logger returns the configured logger; never nil.
func (c *Context) Logger() Logger { return c.logger }

// MaxDepth returns the nesting limit.
func (c *Context) MaxDepth() int { return c.maxDepth }
