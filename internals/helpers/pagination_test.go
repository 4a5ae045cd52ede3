package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, query string, opt Options) Params {
	t.Helper()
	var got Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "cognome", "asc", opt)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/?"+query, nil))
	require.NoError(t, err)
	return got
}

func TestParseFiber(t *testing.T) {
	p := parseQuery(t, "", DefaultOpts)
	assert.Equal(t, Params{Page: 1, PerPage: 25, SortBy: "cognome", SortOrder: "asc"}, p)

	p = parseQuery(t, "page=3&limit=10&sort_by=created_at&order=DESC", DefaultOpts)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, "desc", p.SortOrder)

	p = parseQuery(t, "per_page=9999", DefaultOpts)
	assert.Equal(t, 200, p.PerPage)

	p = parseQuery(t, "per_page=all&page=4", ListAllOpts)
	assert.True(t, p.All)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 5000, p.PerPage)
}

func TestBuildMetaAndOrder(t *testing.T) {
	m := BuildMeta(41, Params{Page: 2, PerPage: 20})
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNext)
	assert.True(t, m.HasPrev)
	require.NotNil(t, m.NextPage)
	assert.Equal(t, 3, *m.NextPage)

	allowed := map[string]string{"cognome": "cognome", "created_at": "created_at"}
	assert.Equal(t, "cognome ASC", Params{SortBy: "drop table", SortOrder: "asc"}.OrderClause(allowed, "cognome"))
	assert.Equal(t, "created_at DESC", Params{SortBy: "created_at", SortOrder: "desc"}.OrderClause(allowed, "cognome"))
}
