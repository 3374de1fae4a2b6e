package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return FromContext(e.NewContext(req, httptest.NewRecorder()))
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		limit  int
		offset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "limit=10&offset=30", 10, 30},
		{"clamped to max", "limit=9999", MaxLimit, 0},
		{"negative offset", "offset=-5", DefaultLimit, 0},
		{"garbage", "limit=abc&offset=xyz", DefaultLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := paramsFor(t, tc.query)
			if p.Limit != tc.limit || p.Offset != tc.offset {
				t.Errorf("got %+v, want limit=%d offset=%d", p, tc.limit, tc.offset)
			}
		})
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	if !NewResponse(nil, 50, 20, 0).HasMore {
		t.Error("expected has_more for first page of 50")
	}
	if NewResponse(nil, 50, 20, 40).HasMore {
		t.Error("expected no has_more for last page")
	}
}
