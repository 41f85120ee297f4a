package directory_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookmap/internal/common/pagination"
	"bookmap/internal/domain/entity"
	"bookmap/internal/handler/http/directory"
	"bookmap/internal/repository"
	dirUC "bookmap/internal/usecase/directory"
)

type stubFetcher struct {
	stores []*entity.Bookstore
}

func (s *stubFetcher) FetchPage(_ context.Context, _, _ int) []*entity.Bookstore {
	if s.stores == nil {
		return []*entity.Bookstore{}
	}
	return s.stores
}

type stubRepo struct {
	stores  []*entity.Bookstore
	listErr error
}

func (s *stubRepo) Create(_ context.Context, _ *entity.Bookstore) (string, error) {
	return "", nil
}

func (s *stubRepo) ListAll(_ context.Context) ([]*entity.Bookstore, error) {
	return s.stores, s.listErr
}

func (s *stubRepo) ListByOwner(_ context.Context, _ string) ([]*entity.Bookstore, error) {
	return nil, nil
}

func (s *stubRepo) Update(_ context.Context, _ string, _ repository.BookstoreChanges) error {
	return nil
}

func (s *stubRepo) Delete(_ context.Context, _ string) error {
	return nil
}

func testService(external, users []*entity.Bookstore) *dirUC.Service {
	return &dirUC.Service{
		Fetcher: &stubFetcher{stores: external},
		Repo:    &stubRepo{stores: users},
		Logger:  slog.Default(),
	}
}

func testConfig() pagination.Config {
	return pagination.DefaultConfig()
}

type pageResponse struct {
	Data       []directory.DTO     `json:"data"`
	Pagination pagination.Metadata `json:"pagination"`
}

func TestListHandler_UserEntriesFirst(t *testing.T) {
	external := []*entity.Bookstore{
		{ID: "ext:1", Name: "Kyobo Book Centre", Address: "서울 종로구", Category: "대형서점"},
	}
	users := []*entity.Bookstore{
		{ID: "usr:1", Name: "동네책방", Address: "서울 마포구", Category: "독립서점", UserAdded: true},
	}
	handler := directory.ListHandler{
		Svc:           testService(external, users),
		PaginationCfg: testConfig(),
		Logger:        slog.Default(),
	}

	req := httptest.NewRequest(http.MethodGet, "/bookstores", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp pageResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("returned %d entries, want 2", len(resp.Data))
	}
	if resp.Data[0].ID != "usr:1" {
		t.Errorf("first entry = %s, want the user entry", resp.Data[0].ID)
	}
	if resp.Pagination.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Pagination.Total)
	}
}

func TestListHandler_Pagination(t *testing.T) {
	external := []*entity.Bookstore{
		{ID: "ext:1", Name: "a", Address: "x"},
		{ID: "ext:2", Name: "b", Address: "x"},
		{ID: "ext:3", Name: "c", Address: "x"},
	}
	handler := directory.ListHandler{
		Svc:           testService(external, nil),
		PaginationCfg: testConfig(),
		Logger:        slog.Default(),
	}

	req := httptest.NewRequest(http.MethodGet, "/bookstores?page=2&limit=2", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp pageResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "ext:3" {
		t.Fatalf("page 2 = %#v, want just ext:3", resp.Data)
	}
	if resp.Pagination.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", resp.Pagination.TotalPages)
	}
}

func TestListHandler_InvalidPagination(t *testing.T) {
	handler := directory.ListHandler{
		Svc:           testService(nil, nil),
		PaginationCfg: testConfig(),
		Logger:        slog.Default(),
	}

	req := httptest.NewRequest(http.MethodGet, "/bookstores?page=0", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSearchHandler_FiltersByQuery(t *testing.T) {
	external := []*entity.Bookstore{
		{ID: "ext:1", Name: "Kyobo Book Centre", Address: "서울 종로구", Category: "대형서점"},
		{ID: "ext:2", Name: "보수동책방골목", Address: "부산 중구", Category: "book cafe"},
	}
	handler := directory.SearchHandler{
		Svc:           testService(external, nil),
		PaginationCfg: testConfig(),
		Logger:        slog.Default(),
	}

	req := httptest.NewRequest(http.MethodGet, "/bookstores/search?q=CAFE", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp pageResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "ext:2" {
		t.Fatalf("search result = %#v, want just ext:2", resp.Data)
	}
}

func TestSearchHandler_EmptyQueryReturnsAll(t *testing.T) {
	external := []*entity.Bookstore{
		{ID: "ext:1", Name: "a", Address: "x"},
		{ID: "ext:2", Name: "b", Address: "y"},
	}
	handler := directory.SearchHandler{
		Svc:           testService(external, nil),
		PaginationCfg: testConfig(),
		Logger:        slog.Default(),
	}

	req := httptest.NewRequest(http.MethodGet, "/bookstores/search", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp pageResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("returned %d entries, want all entries", len(resp.Data))
	}
}
