package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

func TestStruct_ValidArticle(t *testing.T) {
	v := New()

	err := v.Struct(&model.Article{Title: "Hello", Body: "World", Status: model.StatusDraft})

	assert.NoError(t, err)
}

func TestStruct_BlankFields(t *testing.T) {
	v := New()

	err := v.Struct(&model.Article{Title: "  ", Body: "", Status: model.StatusPublic})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"can't be blank"}, verr.Fields["title"])
	assert.Equal(t, []string{"can't be blank"}, verr.Fields["body"])
	assert.NotContains(t, verr.Fields, "status")
}

func TestStruct_UnknownStatus(t *testing.T) {
	v := New()

	err := v.Struct(&model.Article{Title: "Hello", Body: "World", Status: "published"})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string][]string{"status": {"is not included in the list"}}, verr.Fields)
	assert.Equal(t, []string{"Status is not included in the list"}, verr.Messages())
}

func TestStruct_EmptyStatus(t *testing.T) {
	v := New()

	err := v.Struct(&model.Article{Title: "Hello", Body: "World"})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"can't be blank"}, verr.Fields["status"])
}
