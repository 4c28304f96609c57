package domain

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewBufferString(body))
	dec.UseNumber()
	var payload map[string]any
	require.NoError(t, dec.Decode(&payload))
	return payload
}

func TestValidateNew_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty payload reports title first", `{}`, "'title' is required"},
		{"missing title", `{"url":"https://a.b","rating":3}`, "'title' is required"},
		{"empty title", `{"title":"","url":"https://a.b","rating":3}`, "'title' is required"},
		{"null title", `{"title":null,"url":"https://a.b","rating":3}`, "'title' is required"},
		{"missing url", `{"title":"t","rating":3}`, "'url' is required"},
		{"missing url and rating reports url", `{"title":"t"}`, "'url' is required"},
		{"missing rating", `{"title":"t","url":"https://a.b"}`, "'rating' is required"},
		{"false rating is falsy", `{"title":"t","url":"https://a.b","rating":false}`, "'rating' is required"},
		{"empty string rating is falsy", `{"title":"t","url":"https://a.b","rating":""}`, "'rating' is required"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateNew(decode(t, tt.body))
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestValidateNew_Rating(t *testing.T) {
	tests := []struct {
		name   string
		rating string
		want   int
		ok     bool
	}{
		{"lower bound", `1`, 1, true},
		{"upper bound", `5`, 5, true},
		{"integral float", `3.0`, 3, true},
		{"exponent form", `2e0`, 2, true},
		{"zero", `0`, 0, false},
		{"zero float", `0.0`, 0, false},
		{"above range", `6`, 0, false},
		{"negative", `-1`, 0, false},
		{"fraction", `3.5`, 0, false},
		{"string", `"hello"`, 0, false},
		{"numeric string", `"3"`, 0, false},
		{"huge", `1e300`, 0, false},
		{"object", `{"v":3}`, 0, false},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"title":"t","url":"https://a.b","rating":` + tt.rating + `}`
			nb, err := v.ValidateNew(decode(t, body))
			if !tt.ok {
				require.Error(t, err)
				assert.Equal(t, RatingMessage, err.Error())
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Empty(t, ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, nb.Rating)
		})
	}
}

func TestValidateNew_Types(t *testing.T) {
	v := NewValidator()

	_, err := v.ValidateNew(decode(t, `{"title":7,"url":"https://a.b","rating":3}`))
	require.Error(t, err)
	assert.Equal(t, "'title' must be a string", err.Error())

	_, err = v.ValidateNew(decode(t, `{"title":"t","url":true,"rating":3}`))
	require.Error(t, err)
	assert.Equal(t, "'url' must be a string", err.Error())

	_, err = v.ValidateNew(decode(t, `{"title":"t","url":"u","rating":3,"description":[1]}`))
	require.Error(t, err)
	assert.Equal(t, "'description' must be a string", err.Error())
}

func TestValidateNew_Valid(t *testing.T) {
	v := NewValidator()

	nb, err := v.ValidateNew(decode(t, `{"title":"Go","url":"https://go.dev","rating":4,"description":"the language"}`))
	require.NoError(t, err)
	assert.Equal(t, "Go", nb.Title)
	assert.Equal(t, "https://go.dev", nb.URL)
	assert.Equal(t, 4, nb.Rating)
	require.NotNil(t, nb.Description)
	assert.Equal(t, "the language", *nb.Description)

	nb, err = v.ValidateNew(decode(t, `{"title":"Go","url":"https://go.dev","rating":4,"description":null}`))
	require.NoError(t, err)
	assert.Nil(t, nb.Description)

	nb, err = v.ValidateNew(decode(t, `{"title":"Go","url":"https://go.dev","rating":4,"description":""}`))
	require.NoError(t, err)
	require.NotNil(t, nb.Description)
	assert.Empty(t, *nb.Description)
}

func TestValidateNew_YAMLValues(t *testing.T) {
	v := NewValidator()

	nb, err := v.ValidateNew(map[string]any{"title": "t", "url": "u", "rating": 5})
	require.NoError(t, err)
	assert.Equal(t, 5, nb.Rating)

	_, err = v.ValidateNew(map[string]any{"title": "t", "url": "u", "rating": 4.5})
	require.Error(t, err)
	assert.Equal(t, RatingMessage, err.Error())
}

func TestStruct(t *testing.T) {
	v := NewValidator()

	err := v.Struct(NewBookmark{Title: "t", URL: "u", Rating: 9})
	require.Error(t, err)
	assert.Equal(t, RatingMessage, err.Error())

	err = v.Struct(NewBookmark{URL: "u", Rating: 0})
	require.Error(t, err)
	assert.Equal(t, "'title' is required", err.Error())

	assert.NoError(t, v.Struct(NewBookmark{Title: "t", URL: "u", Rating: 1}))
}

func TestToValidationError_UnknownField(t *testing.T) {
	type contact struct {
		Email string `json:"email" validate:"email"`
	}
	v := NewValidator()

	err := toValidationError(v.v.Struct(contact{Email: "not-an-email"}))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.Field)
	assert.Equal(t, "'email' is invalid", ve.Message)
	assert.NotContains(t, err.Error(), "Key:")

	assert.NoError(t, toValidationError(nil))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5", "99999999999999999999"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrNotFound, raw)
	}
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "/bookmarks/17", Bookmark{ID: 17}.Location())
}
