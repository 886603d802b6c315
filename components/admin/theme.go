package admin

import (
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// ChartTheme maps the viewer theme onto a go-echarts render theme. Dark mode
// uses chalk, light mode uses westeros.
func ChartTheme(theme commerce.Theme) string {
	if theme == commerce.ThemeLight {
		return types.ThemeWesteros
	}
	return types.ThemeChalk
}

// ThemeClass returns the CSS class toggled on the document root.
func ThemeClass(theme commerce.Theme) string {
	if theme == commerce.ThemeLight {
		return "theme-light"
	}
	return "theme-dark"
}

// DocumentThemeHook flips the rendered theme class whenever the store theme
// changes. It satisfies commerce.ThemeHook and is wired into the store so the
// template layer always sees the current class.
type DocumentThemeHook struct {
	apply func(class string)
}

// NewDocumentThemeHook builds a hook invoking apply with the CSS class.
func NewDocumentThemeHook(apply func(class string)) *DocumentThemeHook {
	return &DocumentThemeHook{apply: apply}
}

// ThemeChanged implements commerce.ThemeHook.
func (h *DocumentThemeHook) ThemeChanged(theme commerce.Theme) {
	if h == nil || h.apply == nil {
		return
	}
	h.apply(ThemeClass(theme))
}
