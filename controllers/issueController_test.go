package controllers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"campuscare-be/models"
	"campuscare-be/views"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapStoreErr(t *testing.T) {
	t.Parallel()

	if got := mapStoreErr(mongo.ErrNoDocuments); got != models.ErrNotFound {
		t.Errorf("mapStoreErr(ErrNoDocuments) = %v, want models.ErrNotFound", got)
	}

	upstream := errors.New("connection reset")
	if got := mapStoreErr(upstream); got != upstream {
		t.Errorf("mapStoreErr(upstream) = %v, want the error unchanged", got)
	}

	if got := mapStoreErr(nil); got != nil {
		t.Errorf("mapStoreErr(nil) = %v, want nil", got)
	}
}

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestViewParamsFromQuery(t *testing.T) {
	t.Parallel()

	c := testContext(t, "/api/issue/admin?category=hvac&search=leak&sort=priority&page=3&limit=20")
	params := viewParamsFromQuery(c)

	if params.Category != models.HVAC {
		t.Errorf("category = %q, want %q", params.Category, models.HVAC)
	}
	if params.Search != "leak" {
		t.Errorf("search = %q, want %q", params.Search, "leak")
	}
	if params.Sort != views.SortPriority {
		t.Errorf("sort = %q, want %q", params.Sort, views.SortPriority)
	}
	if params.Page != 3 {
		t.Errorf("page = %d, want 3", params.Page)
	}
	if params.PageSize != 20 {
		t.Errorf("pageSize = %d, want 20", params.PageSize)
	}
}

func TestViewParamsFromQueryDefaults(t *testing.T) {
	t.Parallel()

	params := viewParamsFromQuery(testContext(t, "/api/issue/admin"))

	if params.Category != "" {
		t.Errorf("category = %q, want empty", params.Category)
	}
	if params.Sort != views.SortNewest {
		t.Errorf("sort = %q, want %q", params.Sort, views.SortNewest)
	}
	if params.Page != 1 {
		t.Errorf("page = %d, want 1", params.Page)
	}
	if params.PageSize != views.DefaultPageSize {
		t.Errorf("pageSize = %d, want %d", params.PageSize, views.DefaultPageSize)
	}
}

func TestViewParamsFromQueryRejectsBadValues(t *testing.T) {
	t.Parallel()

	params := viewParamsFromQuery(testContext(t, "/api/issue/admin?category=elevator&page=-2&limit=500"))

	if params.Category != "" {
		t.Errorf("unknown category kept: %q", params.Category)
	}
	if params.Page != 1 {
		t.Errorf("page = %d, want clamp to 1", params.Page)
	}
	if params.PageSize != views.DefaultPageSize {
		t.Errorf("pageSize = %d, want %d for out-of-range limit", params.PageSize, views.DefaultPageSize)
	}
}
