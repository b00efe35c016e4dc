package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"purem-oda-shop/services/shop-api/internal/service"
	"purem-oda-shop/shared/pkg/models"
)

// ---- fakeItems implementing ItemsService for tests ----
type fakeItems struct {
	ListFn   func() []models.Item
	CreateFn func(title, description string) (models.Item, error)
	UpdateFn func(id int64, in service.UpdateItemInput) (models.Item, error)
}

func (f *fakeItems) List(context.Context) []models.Item { return f.ListFn() }
func (f *fakeItems) Create(_ context.Context, title, description string) (models.Item, error) {
	return f.CreateFn(title, description)
}
func (f *fakeItems) Update(_ context.Context, id int64, in service.UpdateItemInput) (models.Item, error) {
	return f.UpdateFn(id, in)
}

func itemsRouter(svc ItemsService) http.Handler {
	h := &ItemsHandler{Svc: svc, Log: zerolog.Nop()}
	r := chi.NewRouter()
	r.Get("/api/items", h.List)
	r.Post("/api/items", h.Create)
	r.Put("/api/items/{id}", h.Update)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListItemsEncodesEmptyArray(t *testing.T) {
	h := itemsRouter(&fakeItems{ListFn: func() []models.Item { return []models.Item{} }})

	rec := do(t, h, http.MethodGet, "/api/items", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := bytes.TrimSpace(rec.Body.Bytes()); string(got) != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestCreateItemForwardsFields(t *testing.T) {
	var gotTitle, gotDesc string
	h := itemsRouter(&fakeItems{CreateFn: func(title, description string) (models.Item, error) {
		gotTitle, gotDesc = title, description
		return models.Item{ID: 7, Title: title, Description: description}, nil
	}})

	rec := do(t, h, http.MethodPost, "/api/items", `{"title":"Mug","description":"blue"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotTitle != "Mug" || gotDesc != "blue" {
		t.Fatalf("forwarded %q %q", gotTitle, gotDesc)
	}
	var it models.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &it); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if it.ID != 7 {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestCreateItemEmptyBodyAndBadJSON(t *testing.T) {
	calls := 0
	h := itemsRouter(&fakeItems{CreateFn: func(title, description string) (models.Item, error) {
		calls++
		return models.Item{ID: 1, Title: "Untitled"}, nil
	}})

	if rec := do(t, h, http.MethodPost, "/api/items", ""); rec.Code != http.StatusCreated {
		t.Fatalf("empty body: expected 201, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/items", `{"title":`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: expected 400, got %d", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("expected one service call, got %d", calls)
	}
}

func TestCreateItemStoreFailureIs500(t *testing.T) {
	h := itemsRouter(&fakeItems{CreateFn: func(string, string) (models.Item, error) {
		return models.Item{}, errors.New("disk full")
	}})

	rec := do(t, h, http.MethodPost, "/api/items", `{}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestUpdateItemPassesOnlyProvidedFields(t *testing.T) {
	var got service.UpdateItemInput
	h := itemsRouter(&fakeItems{UpdateFn: func(id int64, in service.UpdateItemInput) (models.Item, error) {
		got = in
		return models.Item{ID: id, Title: *in.Title, Description: "kept"}, nil
	}})

	rec := do(t, h, http.MethodPut, "/api/items/12", `{"title":"new","description":null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if got.Title == nil || *got.Title != "new" || got.Description != nil {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	h := itemsRouter(&fakeItems{UpdateFn: func(int64, service.UpdateItemInput) (models.Item, error) {
		return models.Item{}, service.ErrNotFound
	}})

	for _, path := range []string{"/api/items/404", "/api/items/abc"} {
		rec := do(t, h, http.MethodPut, path, `{"title":"x"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Fatalf("%s: expected error body, got %s", path, rec.Body)
		}
	}
}

func TestCreateItemNonStringFieldsAccepted(t *testing.T) {
	var gotTitle, gotDesc string
	h := itemsRouter(&fakeItems{CreateFn: func(title, description string) (models.Item, error) {
		gotTitle, gotDesc = title, description
		return models.Item{ID: 1, Title: title, Description: description}, nil
	}})

	rec := do(t, h, http.MethodPost, "/api/items", `{"title":5,"description":null}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotTitle != "5" || gotDesc != "" {
		t.Fatalf("forwarded %q %q", gotTitle, gotDesc)
	}
}
