package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owakeel/golf-music-backend/internal/model"
	"github.com/owakeel/golf-music-backend/internal/service"
)

type stubMerchRepo struct {
	items  map[string]*model.Merch
	nextID int
}

func newStubMerchRepo() *stubMerchRepo {
	return &stubMerchRepo{items: make(map[string]*model.Merch)}
}

func (s *stubMerchRepo) List(ctx context.Context) ([]*model.Merch, error) {
	out := make([]*model.Merch, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *stubMerchRepo) GetByID(ctx context.Context, id string) (*model.Merch, error) {
	return s.items[id], nil
}

func (s *stubMerchRepo) Create(ctx context.Context, item *model.Merch) error {
	s.nextID++
	item.ID = fmt.Sprintf("merch:%d", s.nextID)
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	s.items[item.ID] = item
	return nil
}

func (s *stubMerchRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Merch, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return item, nil
}

func (s *stubMerchRepo) Delete(ctx context.Context, id string) error {
	delete(s.items, id)
	return nil
}

func (s *stubMerchRepo) FindByName(ctx context.Context, name, excludeID string) (*model.Merch, error) {
	for _, item := range s.items {
		if item.ID != excludeID && strings.EqualFold(item.Name, name) {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubMerchRepo) FindByPrintifyID(ctx context.Context, printifyID, excludeID string) (*model.Merch, error) {
	for _, item := range s.items {
		if item.ID != excludeID && item.PrintifyID == printifyID {
			return item, nil
		}
	}
	return nil, nil
}

func newMerchHandler(repo *stubMerchRepo) *MerchHandler {
	return NewMerchHandler(service.NewMerchService(repo, nil), zerolog.Nop())
}

func TestMerchHandler_List_CountEnvelope(t *testing.T) {
	repo := newStubMerchRepo()
	repo.items["merch:1"] = &model.Merch{ID: "merch:1", Name: "Tour Tee"}
	repo.items["merch:2"] = &model.Merch{ID: "merch:2", Name: "Poster"}
	h := newMerchHandler(repo)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/merch", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)

	// Merch returns the records as a bare array, not wrapped in an object.
	_, isArray := resp.Data.([]interface{})
	assert.True(t, isArray, "merch data must be a bare array")
}

func TestMerchHandler_Delete_NotFound(t *testing.T) {
	h := newMerchHandler(newStubMerchRepo())

	req := httptest.NewRequest(http.MethodDelete, "/merch/merch:missing", nil)
	req.SetPathValue("id", "merch:missing")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Merch item not found", resp.Message)
}

func TestMerchHandler_Delete_Success(t *testing.T) {
	repo := newStubMerchRepo()
	repo.items["merch:1"] = &model.Merch{ID: "merch:1", Name: "Tour Tee"}
	h := newMerchHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/merch/merch:1", nil)
	req.SetPathValue("id", "merch:1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Merch item deleted successfully", decodeResponse(t, rec).Message)
	assert.Empty(t, repo.items)
}
