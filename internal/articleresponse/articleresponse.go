package articleresponse

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ArticleResponse is the response payload for the Article data model.
//
// In the ArticleResponse object, first a Render() is called on itself,
// then the next field, and so on, all the way down the tree.
type ArticleResponse struct {
	*model.Article

	// URL of the show view, computed on render
	URL string `json:"url"`
}

func NewArticleListResponse(articles []*model.Article) []render.Renderer {
	list := []render.Renderer{}
	for _, article := range articles {
		list = append(list, NewArticleResponse(article))
	}

	return list
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{Article: article}
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if rd.ID != 0 {
		rd.URL = Path(rd.ID)
	}

	return nil
}

// Path is the show path of an article.
func Path(id int64) string {
	return "/articles/" + strconv.FormatInt(id, 10)
}
