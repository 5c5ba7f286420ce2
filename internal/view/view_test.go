package view

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

func render(t *testing.T, status int, page string, data Data) *httptest.ResponseRecorder {
	t.Helper()

	v, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, v.Render(rec, status, page, data))

	return rec
}

func TestRender_Index(t *testing.T) {
	rec := render(t, http.StatusOK, Index, Data{
		Title: "Articles",
		Articles: []*model.Article{
			{ID: 1, Title: "Hello", Status: model.StatusPublic},
			{ID: 2, Title: "Old", Status: model.StatusArchived},
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `<a href="/articles/1">Hello</a>`)
	assert.Contains(t, body, `class="archived"`)
}

func TestRender_NewWithErrorsEscapes(t *testing.T) {
	rec := render(t, http.StatusUnprocessableEntity, NewPage, Data{
		Title:   "New Article",
		Article: &model.Article{Title: "<script>", Status: model.StatusDraft},
		Errors:  []string{"Body can't be blank"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Body can&#39;t be blank")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, `<option value="draft" selected>`)
	assert.Contains(t, body, `action="/articles"`)
}

func TestRender_EditAndShow(t *testing.T) {
	article := &model.Article{ID: 5, Title: "Hello", Body: "World", Status: model.StatusPublic}

	edit := render(t, http.StatusOK, Edit, Data{Title: "Edit", Article: article}).Body.String()
	assert.Contains(t, edit, `action="/articles/5"`)
	assert.Contains(t, edit, `name="_method" value="patch"`)

	show := render(t, http.StatusOK, Show, Data{Title: "Hello", Article: article}).Body.String()
	assert.Contains(t, show, "<h1>Hello</h1>")
	assert.Contains(t, show, `href="/articles/5/edit"`)
	assert.Contains(t, show, `name="_method" value="delete"`)
}

func TestRender_UnknownPage(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Error(t, v.Render(rec, http.StatusOK, "missing", Data{}))
	assert.Equal(t, 0, rec.Body.Len())
}

func TestAssets(t *testing.T) {
	f, err := Assets().Open("style.css")
	require.NoError(t, err)
	defer f.Close()

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(b), "#error_explanation")
}
