package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the RESTy routes for the "articles" resource. auth guards
// everything except list and show, and runs before the article is loaded.
func (res *Resource) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(MethodOverride)

	r.Get("/", res.List)               // GET /articles
	r.With(auth).Post("/", res.Create) // POST /articles
	r.With(auth).Get("/new", res.New)  // GET /articles/new

	r.Route("/{articleID:[0-9]+}", func(r chi.Router) {
		r.With(res.ArticleCtx).Get("/", res.Show) // GET /articles/123

		r.Group(func(r chi.Router) {
			r.Use(auth, res.ArticleCtx)
			r.Get("/edit", res.Edit)   // GET /articles/123/edit
			r.Patch("/", res.Update)   // PATCH /articles/123
			r.Put("/", res.Update)     // PUT /articles/123
			r.Delete("/", res.Destroy) // DELETE /articles/123
		})
	})

	return r
}

// Mount wires the resource under /articles and its list at the root,
// which is where Destroy redirects to.
func (res *Resource) Mount(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/", res.List)
	r.Mount("/articles", res.Routes(auth))
}
