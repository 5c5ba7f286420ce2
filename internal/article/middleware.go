package article

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/store"
)

type ctxKey int8

const ctxKeyArticle ctxKey = iota

// ArticleCtx middleware is used to load an Article object from
// the URL parameters passed through as the request. In case
// the Article could not be found, we stop here and return a 404.
func (res *Resource) ArticleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
		if err != nil {
			res.fail(w, r, errresponse.ErrNotFound)

			return
		}

		article, err := res.store.Find(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			res.fail(w, r, errresponse.ErrNotFound)

			return
		}
		if err != nil {
			res.fail(w, r, errresponse.ErrInternal(err))

			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyArticle, article)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BasicAuth guards a route with the single configured credential pair.
// chi compares the password in constant time.
func BasicAuth(realm, username, password string) func(http.Handler) http.Handler {
	return middleware.BasicAuth(realm, map[string]string{username: password})
}

// MethodOverride lets an HTML form tunnel PATCH, PUT and DELETE through
// POST with a _method field. It also updates chi's routing method so it
// works below a Mount.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && render.GetRequestContentType(r) == render.ContentTypeForm {
			switch m := strings.ToUpper(r.PostFormValue("_method")); m {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = m
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					rctx.RouteMethod = m
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

// wantsJSON is true for Accept: application/json or a .json URL suffix.
func wantsJSON(r *http.Request) bool {
	if format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string); format == "json" {
		return true
	}

	return render.GetAcceptedContentType(r) == render.ContentTypeJSON
}
