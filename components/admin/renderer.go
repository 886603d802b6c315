package admin

import "io"

// Renderer is the template engine surface the controller draws pages
// through. go-template's renderer satisfies it; tests substitute stubs.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}
