package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCtx() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestGetUserIDTypeVariants(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want uint64
	}{
		{"uint64", uint64(7), 7},
		{"int", int(8), 8},
		{"int64", int64(9), 9},
		{"json float64", float64(10), 10},
		{"numeric string", "11", 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCtx()
			c.Set("user_id", tc.val)
			got, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetUserIDRejectsJunk(t *testing.T) {
	c := newTestCtx()
	c.Set("user_id", "not-a-number")
	_, err := getUserID(c)
	assert.Error(t, err)

	c = newTestCtx()
	_, err = getUserID(c)
	assert.Error(t, err)
}

func TestPathID(t *testing.T) {
	c := newTestCtx()
	c.SetParamNames("id")
	c.SetParamValues("15")
	id, err := pathID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(15), id)

	for _, bad := range []string{"0", "-3", "abc", ""} {
		c := newTestCtx()
		c.SetParamNames("id")
		c.SetParamValues(bad)
		_, err := pathID(c, "id")
		assert.Error(t, err, "value %q", bad)
	}
}

func TestQueryIDOptional(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies?genre_id=3", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	id, err := queryID(c, "genre_id")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)

	req = httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	id, err = queryID(c, "genre_id")
	require.NoError(t, err)
	assert.Zero(t, id)

	req = httptest.NewRequest(http.MethodGet, "/v1/movies?genre_id=xyz", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	_, err = queryID(c, "genre_id")
	assert.Error(t, err)
}
