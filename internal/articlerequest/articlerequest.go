// Package articlerequest decodes article write payloads and projects them
// onto the permitted field set.
package articlerequest

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Root is the key the article fields are nested under.
const Root = "article"

// PermittedFields are the only fields a write may touch.
var PermittedFields = []string{"title", "body", "status"}

var (
	ErrParameterMissing   = errors.New("param is missing or the value is empty: " + Root)
	ErrUnsupportedPayload = errors.New("unsupported request content type")
)

// ArticleRequest is the request payload for Article writes. Raw holds
// whatever the client sent under the article root; Params is the
// allow-listed projection of it.
type ArticleRequest struct {
	Raw    map[string]interface{}
	Params model.ArticleParams
}

// Bind runs after decoding. It rejects an empty root and drops every
// field that is not permitted.
func (a *ArticleRequest) Bind(r *http.Request) error {
	if len(a.Raw) == 0 {
		return ErrParameterMissing
	}
	a.Params = Permit(a.Raw)

	return nil
}

// Decode reads a JSON or urlencoded form body.
//
// JSON bodies may nest the fields under "article" or send them at the top
// level. Form bodies use article[title] style keys.
func Decode(r *http.Request) (*ArticleRequest, error) {
	req := &ArticleRequest{}

	switch render.GetRequestContentType(r) {
	case render.ContentTypeJSON:
		var body map[string]interface{}
		if err := render.DecodeJSON(r.Body, &body); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		req.Raw = unwrap(body)
	case render.ContentTypeForm:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		req.Raw = FormFields(r.PostForm)
	default:
		return nil, ErrUnsupportedPayload
	}

	if err := req.Bind(r); err != nil {
		return nil, err
	}

	return req, nil
}

func unwrap(body map[string]interface{}) map[string]interface{} {
	if v, ok := body[Root]; ok {
		nested, _ := v.(map[string]interface{})

		return nested
	}

	return body
}

// FormFields collects article[name] keys. The last value of a repeated
// key wins; nested keys such as article[tags][] are ignored.
func FormFields(form url.Values) map[string]interface{} {
	fields := map[string]interface{}{}
	prefix := Root + "["

	for key, values := range form {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		name := key[len(prefix) : len(key)-1]
		if name == "" || strings.ContainsAny(name, "[]") {
			continue
		}
		fields[name] = values[len(values)-1]
	}

	return fields
}

// Permit projects raw onto the permitted fields. Scalars are stringified,
// null clears a field, and objects or arrays are dropped.
func Permit(raw map[string]interface{}) model.ArticleParams {
	var p model.ArticleParams

	for _, field := range PermittedFields {
		v, ok := raw[field]
		if !ok {
			continue
		}
		s, ok := scalar(v)
		if !ok {
			continue
		}

		switch field {
		case "title":
			p.Title = &s
		case "body":
			p.Body = &s
		case "status":
			p.Status = &s
		}
	}

	return p
}

func scalar(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case float64, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}
