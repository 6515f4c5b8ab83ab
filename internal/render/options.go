package render

// DefaultSiteTitle heads the history index documents.
const DefaultSiteTitle = "FPL Reports"

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSiteTitle sets the heading of the index documents.
func WithSiteTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.siteTitle = title
		}
	}
}

// WithStylesheet replaces the embedded stylesheet of HTML documents.
func WithStylesheet(css string) Option {
	return func(r *Renderer) {
		if css != "" {
			r.css = css
		}
	}
}
