package bookstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookmap/internal/domain/entity"
	"bookmap/internal/handler/http/auth"
	"bookmap/internal/handler/http/bookstore"
	"bookmap/internal/repository"
	bookUC "bookmap/internal/usecase/bookstore"
)

type stubRepo struct {
	created     *entity.Bookstore
	createErr   error
	nextID      string
	lastID      string
	lastChanges repository.BookstoreChanges
	updateErr   error
	deleteErr   error
	byOwner     []*entity.Bookstore
	listErr     error
}

func (s *stubRepo) Create(_ context.Context, b *entity.Bookstore) (string, error) {
	s.created = b
	if s.createErr != nil {
		return "", s.createErr
	}
	if s.nextID == "" {
		return "usr:new", nil
	}
	return s.nextID, nil
}

func (s *stubRepo) ListAll(_ context.Context) ([]*entity.Bookstore, error) {
	return nil, nil
}

func (s *stubRepo) ListByOwner(_ context.Context, _ string) ([]*entity.Bookstore, error) {
	return s.byOwner, s.listErr
}

func (s *stubRepo) Update(_ context.Context, id string, changes repository.BookstoreChanges) error {
	s.lastID = id
	s.lastChanges = changes
	return s.updateErr
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.lastID = id
	return s.deleteErr
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(auth.WithUser(req.Context(), "reader@example.com"))
}

/* ───────── 1. create ───────── */

func TestCreateHandler_Success(t *testing.T) {
	stub := &stubRepo{nextID: "usr:1a2b3c4d"}
	handler := bookstore.CreateHandler{Svc: &bookUC.Service{Repo: stub}}

	body := `{
		"name": "동네책방",
		"address": "서울특별시 마포구 양화로 100",
		"latitude": 37.55,
		"longitude": 126.92,
		"category": "독립서점",
		"phone": "02-1234-5678"
	}`
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/bookstores", body))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusCreated)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["id"] != "usr:1a2b3c4d" {
		t.Errorf("id = %q, want %q", resp["id"], "usr:1a2b3c4d")
	}

	if stub.created.Name != "동네책방" {
		t.Errorf("Name = %q, want 동네책방", stub.created.Name)
	}
	if stub.created.CreatedBy != "reader@example.com" {
		t.Errorf("CreatedBy = %q, want the authenticated user", stub.created.CreatedBy)
	}
	if !stub.created.UserAdded {
		t.Error("UserAdded must be true for user entries")
	}
}

func TestCreateHandler_NoIdentity(t *testing.T) {
	handler := bookstore.CreateHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

	req := httptest.NewRequest(http.MethodPost, "/bookstores",
		strings.NewReader(`{"name":"a","address":"b"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestCreateHandler_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing name",
			body: `{"address": "서울 마포구"}`,
		},
		{
			name: "missing address",
			body: `{"name": "동네책방"}`,
		},
		{
			name: "empty name",
			body: `{"name": "", "address": "서울 마포구"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := bookstore.CreateHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/bookstores", tt.body))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCreateHandler_InvalidJSON(t *testing.T) {
	handler := bookstore.CreateHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/bookstores", `{not json`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCreateHandler_StoreError(t *testing.T) {
	stub := &stubRepo{createErr: errors.New("connection refused")}
	handler := bookstore.CreateHandler{Svc: &bookUC.Service{Repo: stub}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodPost, "/bookstores",
		`{"name":"동네책방","address":"서울 마포구"}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

/* ───────── 2. update ───────── */

func TestUpdateHandler_Success(t *testing.T) {
	stub := &stubRepo{}
	handler := bookstore.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	body := `{"phone": "010-1234-5678", "closed_days": ""}`
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodPut, "/bookstores/usr:1a2b3c4d", body))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if stub.lastID != "usr:1a2b3c4d" {
		t.Errorf("updated id = %q, want usr:1a2b3c4d", stub.lastID)
	}
	if stub.lastChanges.Phone == nil || *stub.lastChanges.Phone != "010-1234-5678" {
		t.Error("phone change not applied")
	}
	// empty strings are dropped from the write set, never written
	if stub.lastChanges.ClosedDays != nil {
		t.Error("empty closed_days must be dropped from the write set")
	}
}

func TestUpdateHandler_ExternalEntryRejected(t *testing.T) {
	handler := bookstore.UpdateHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodPut, "/bookstores/ext:130588",
		`{"phone": "02-1234-5678"}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestUpdateHandler_NotFound(t *testing.T) {
	stub := &stubRepo{updateErr: entity.ErrNotFound}
	handler := bookstore.UpdateHandler{Svc: &bookUC.Service{Repo: stub}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodPut, "/bookstores/usr:missing",
		`{"phone": "02-1234-5678"}`))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUpdateHandler_InvalidID(t *testing.T) {
	handler := bookstore.UpdateHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodPut, "/bookstores/", `{}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

/* ───────── 3. delete ───────── */

func TestDeleteHandler_Success(t *testing.T) {
	stub := &stubRepo{}
	handler := bookstore.DeleteHandler{Svc: &bookUC.Service{Repo: stub}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodDelete, "/bookstores/usr:1a2b3c4d", ""))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if stub.lastID != "usr:1a2b3c4d" {
		t.Errorf("deleted id = %q, want usr:1a2b3c4d", stub.lastID)
	}
}

func TestDeleteHandler_ExternalEntryRejected(t *testing.T) {
	handler := bookstore.DeleteHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodDelete, "/bookstores/ext:130588", ""))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestDeleteHandler_StoreError(t *testing.T) {
	stub := &stubRepo{deleteErr: errors.New("connection refused")}
	handler := bookstore.DeleteHandler{Svc: &bookUC.Service{Repo: stub}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodDelete, "/bookstores/usr:1a2b3c4d", ""))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}

/* ───────── 4. mine ───────── */

func TestMineHandler_Success(t *testing.T) {
	stub := &stubRepo{byOwner: []*entity.Bookstore{
		{ID: "usr:a", Name: "동네책방", Address: "서울 마포구", CreatedBy: "reader@example.com", UserAdded: true},
		{ID: "usr:b", Name: "골목책방", Address: "부산 중구", CreatedBy: "reader@example.com", UserAdded: true},
	}}
	handler := bookstore.MineHandler{Svc: &bookUC.Service{Repo: stub}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/bookstores/mine", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var out []bookstore.DTO
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("returned %d entries, want 2", len(out))
	}
	if out[0].ID != "usr:a" || out[1].ID != "usr:b" {
		t.Errorf("order not preserved: %s, %s", out[0].ID, out[1].ID)
	}
}

func TestMineHandler_NoIdentity(t *testing.T) {
	handler := bookstore.MineHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

	req := httptest.NewRequest(http.MethodGet, "/bookstores/mine", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestMineHandler_EmptyList(t *testing.T) {
	handler := bookstore.MineHandler{Svc: &bookUC.Service{Repo: &stubRepo{}}}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, authedRequest(http.MethodGet, "/bookstores/mine", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}
