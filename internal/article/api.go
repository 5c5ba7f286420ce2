package article

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/articlerequest"
	"github.com/SergeyParamoshkin/blog/internal/articleresponse"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/events"
	"github.com/SergeyParamoshkin/blog/internal/logger"
	"github.com/SergeyParamoshkin/blog/internal/model"
	"github.com/SergeyParamoshkin/blog/internal/store"
	"github.com/SergeyParamoshkin/blog/internal/view"
)

// Views renders an HTML page.
type Views interface {
	Render(w http.ResponseWriter, status int, page string, data view.Data) error
}

// Validator returns a *model.ValidationError for an invalid article.
type Validator interface {
	Struct(v interface{}) error
}

// Recorder counts article writes.
type Recorder interface {
	Write(ctx context.Context, action, outcome string)
}

// Resource serves the articles resource as HTML pages and, on request,
// as JSON.
type Resource struct {
	store     Store
	views     Views
	validator Validator
	publisher Publisher
	metrics   Recorder
}

func NewResource(store Store, views Views, validator Validator, publisher Publisher, metrics Recorder) *Resource {
	return &Resource{
		store:     store,
		views:     views,
		validator: validator,
		publisher: publisher,
		metrics:   metrics,
	}
}

// List renders every article.
func (res *Resource) List(w http.ResponseWriter, r *http.Request) {
	articles, err := res.store.All(r.Context())
	if err != nil {
		res.fail(w, r, errresponse.ErrInternal(err))

		return
	}

	if wantsJSON(r) {
		res.renderJSONList(w, r, articleresponse.NewArticleListResponse(articles))

		return
	}

	res.page(w, r, http.StatusOK, view.Index, view.Data{Title: "Articles", Articles: articles})
}

// Show returns the Article loaded by ArticleCtx.
func (res *Resource) Show(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	if wantsJSON(r) {
		res.renderJSON(w, r, articleresponse.NewArticleResponse(article))

		return
	}

	res.page(w, r, http.StatusOK, view.Show, view.Data{Title: article.Title, Article: article})
}

// New renders the blank article form.
func (res *Resource) New(w http.ResponseWriter, r *http.Request) {
	article := model.NewArticle()

	if wantsJSON(r) {
		res.renderJSON(w, r, articleresponse.NewArticleResponse(article))

		return
	}

	res.page(w, r, http.StatusOK, view.NewPage, view.Data{Title: "New Article", Article: article})
}

// Create persists the posted Article and redirects to it. An invalid
// article re-renders the form with 422 and is not persisted.
func (res *Resource) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := articlerequest.Decode(r)
	if err != nil {
		res.fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	article := &model.Article{}
	data.Params.Apply(article)

	if !res.valid(w, r, "create", view.NewPage, "New Article", article) {
		return
	}

	if err := res.store.Create(ctx, article); err != nil {
		res.metrics.Write(ctx, "create", "error")
		res.fail(w, r, errresponse.ErrInternal(err))

		return
	}
	res.metrics.Write(ctx, "create", "ok")
	res.publish(ctx, events.ActionCreated, article)

	location := articleresponse.Path(article.ID)
	if wantsJSON(r) {
		w.Header().Set("Location", location)
		render.Status(r, http.StatusCreated)
		res.renderJSON(w, r, articleresponse.NewArticleResponse(article))

		return
	}

	http.Redirect(w, r, location, http.StatusFound)
}

// Edit renders the form for the Article loaded by ArticleCtx.
func (res *Resource) Edit(w http.ResponseWriter, r *http.Request) {
	article := articleFromContext(r.Context())

	if wantsJSON(r) {
		res.renderJSON(w, r, articleresponse.NewArticleResponse(article))

		return
	}

	res.page(w, r, http.StatusOK, view.Edit, view.Data{Title: "Edit Article", Article: article})
}

// Update applies the submitted fields to an existing Article. Fields that
// were not submitted keep their values.
func (res *Resource) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	article := articleFromContext(ctx)

	data, err := articlerequest.Decode(r)
	if err != nil {
		res.fail(w, r, errresponse.ErrInvalidRequest(err))

		return
	}
	data.Params.Apply(article)

	if !res.valid(w, r, "update", view.Edit, "Edit Article", article) {
		return
	}

	err = res.store.Update(ctx, article)
	if errors.Is(err, store.ErrNotFound) {
		res.fail(w, r, errresponse.ErrNotFound)

		return
	}
	if err != nil {
		res.metrics.Write(ctx, "update", "error")
		res.fail(w, r, errresponse.ErrInternal(err))

		return
	}
	res.metrics.Write(ctx, "update", "ok")
	res.publish(ctx, events.ActionUpdated, article)

	if wantsJSON(r) {
		res.renderJSON(w, r, articleresponse.NewArticleResponse(article))

		return
	}

	http.Redirect(w, r, articleresponse.Path(article.ID), http.StatusFound)
}

// Destroy removes an existing Article and sends the client back to the
// root with 303 so the follow-up request is a GET.
func (res *Resource) Destroy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	article := articleFromContext(ctx)

	err := res.store.Delete(ctx, article.ID)
	if errors.Is(err, store.ErrNotFound) {
		res.fail(w, r, errresponse.ErrNotFound)

		return
	}
	if err != nil {
		res.metrics.Write(ctx, "destroy", "error")
		res.fail(w, r, errresponse.ErrInternal(err))

		return
	}
	res.metrics.Write(ctx, "destroy", "ok")
	res.publish(ctx, events.ActionDestroyed, article)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// valid reports whether article passes validation. Otherwise it has
// already answered with 422: the form again, or the field errors as JSON.
func (res *Resource) valid(w http.ResponseWriter, r *http.Request, action, page, title string, article *model.Article) bool {
	err := res.validator.Struct(article)
	if err == nil {
		return true
	}

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		res.fail(w, r, errresponse.ErrInternal(err))

		return false
	}

	res.metrics.Write(r.Context(), action, "invalid")

	if wantsJSON(r) {
		res.renderJSON(w, r, errresponse.ErrValidation(verr))

		return false
	}

	res.page(w, r, http.StatusUnprocessableEntity, page, view.Data{
		Title:   title,
		Article: article,
		Errors:  verr.Messages(),
	})

	return false
}

// publish never fails the request: the write is already committed.
func (res *Resource) publish(ctx context.Context, action string, article *model.Article) {
	if err := res.publisher.Publish(context.WithoutCancel(ctx), events.NewEvent(action, article)); err != nil {
		logger.FromContext(ctx).Warnw("failed to publish article event",
			"action", action,
			"article_id", article.ID,
			"error", err,
		)
	}
}

func (res *Resource) page(w http.ResponseWriter, r *http.Request, status int, page string, data view.Data) {
	if err := res.views.Render(w, status, page, data); err != nil {
		logger.FromContext(r.Context()).Errorw("failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (res *Resource) renderJSON(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		res.fail(w, r, errresponse.ErrRender(err))
	}
}

func (res *Resource) renderJSONList(w http.ResponseWriter, r *http.Request, l []render.Renderer) {
	if err := render.RenderList(w, r, l); err != nil {
		res.fail(w, r, errresponse.ErrRender(err))
	}
}

// fail answers with e as JSON, or as a plain status page for HTML clients.
func (res *Resource) fail(w http.ResponseWriter, r *http.Request, e *errresponse.ErrResponse) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Errorw("request failed", "status", e.HTTPStatusCode, "error", e.Err)
	}

	if wantsJSON(r) {
		if err := render.Render(w, r, e); err != nil {
			logger.FromContext(r.Context()).Errorw(err.Error())
		}

		return
	}

	http.Error(w, http.StatusText(e.HTTPStatusCode), e.HTTPStatusCode)
}

func articleFromContext(ctx context.Context) *model.Article {
	// ArticleCtx runs before every handler that calls this; a missing
	// article is a routing bug and the Recoverer will catch the panic.
	return ctx.Value(ctxKeyArticle).(*model.Article)
}
