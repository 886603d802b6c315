package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront-admin/components/admin"
)

// PageInput identifies a page request for a viewer.
type PageInput struct {
	Page      string
	Viewer    admin.Viewer
	Overrides map[string]map[string]any
}

type pageResolver interface {
	ResolvePage(ctx context.Context, page string, viewer admin.Viewer, overrides map[string]map[string]any) (admin.PageView, error)
}

// PageQuery executes read-only page resolution.
type PageQuery struct {
	service pageResolver
}

// NewPageQuery builds the query.
func NewPageQuery(service pageResolver) *PageQuery {
	return &PageQuery{service: service}
}

var _ gocommand.Querier[PageInput, admin.PageView] = (*PageQuery)(nil)

// Query resolves the page for the viewer.
func (q *PageQuery) Query(ctx context.Context, input PageInput) (admin.PageView, error) {
	return q.service.ResolvePage(ctx, input.Page, input.Viewer, input.Overrides)
}
