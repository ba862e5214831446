// Package requestctx carries request-scoped values through context.
package requestctx

import (
	"context"

	"golang.org/x/text/language"
)

type languageContextKey struct{}

// WithLanguage stores the resolved response locale in context.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, languageContextKey{}, tag)
}

// LanguageFromContext returns the locale stored in context and whether one
// was set.
func LanguageFromContext(ctx context.Context) (language.Tag, bool) {
	if ctx == nil {
		return language.Und, false
	}
	tag, ok := ctx.Value(languageContextKey{}).(language.Tag)
	return tag, ok
}
