package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/household-ledger/internal/domain/category"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCategoryRouter(categories *MockCategoryService) http.Handler {
	h := NewCategoryHandler(testLogger(), categories)
	r := setupTestRouter()
	r.GET("/categories/tree", h.Tree)
	r.PUT("/categories/tree", h.SaveTree)
	r.GET("/categories", h.List)
	r.POST("/categories", h.Create)
	r.DELETE("/categories/:id", h.Delete)
	r.GET("/categories/root", h.Root)
	r.GET("/categories/split", h.Split)
	return r
}

func TestCategoryHandler_Tree(t *testing.T) {
	categories := new(MockCategoryService)
	router := newCategoryRouter(categories)

	root := &category.Node{ID: 1, Name: "Categories", Type: category.TypeNormal, Children: []*category.Node{
		{ID: 2, Name: "Split", Type: category.TypeSplit, ParentID: int64Ptr(1), Children: []*category.Node{}},
		{ID: 3, Name: "Food", Type: category.TypeNormal, ParentID: int64Ptr(1), Children: []*category.Node{}},
	}}
	categories.On("Tree", mock.Anything, testSession).Return(root, nil)

	rr := performRequest(router, http.MethodGet, "/categories/tree", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body CategoryNode
	decodeResponse(t, rr, &body)
	assert.Equal(t, int64(1), body.ID)
	require.Len(t, body.Children, 2)
	assert.Equal(t, "SPLIT", body.Children[0].Type)
	assert.Equal(t, "Food", body.Children[1].Name)
	categories.AssertExpectations(t)
}

func TestCategoryHandler_SaveTree(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		err        error
		wantCall   bool
		wantStatus int
	}{
		{
			name: "Saved",
			body: CategoryNode{ID: 1, Name: "Categories", Children: []CategoryNode{
				{ID: 3, Name: "Groceries", Children: []CategoryNode{{ID: 4, Name: "Bakery"}}},
			}},
			wantCall:   true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "InvalidTree",
			body:       CategoryNode{ID: 3, Name: "Food"},
			err:        fmt.Errorf("%w: top node must be the root category", category.ErrInvalidTree),
			wantCall:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "InvalidType",
			body:       `{"id": 1, "name": "Categories", "type": "TRANSFER"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryService)
			router := newCategoryRouter(categories)
			if tt.wantCall {
				categories.On("Save", mock.Anything, testSession, mock.AnythingOfType("*category.Node")).Return(tt.err)
			}

			rr := performRequest(router, http.MethodPut, "/categories/tree", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			categories.AssertExpectations(t)
		})
	}

	t.Run("NestingIsKept", func(t *testing.T) {
		categories := new(MockCategoryService)
		router := newCategoryRouter(categories)
		categories.On("Save", mock.Anything, testSession, mock.MatchedBy(func(n *category.Node) bool {
			return n.ID == 1 && len(n.Children) == 1 && n.Children[0].ID == 3 &&
				len(n.Children[0].Children) == 1 && n.Children[0].Children[0].Name == "Bakery"
		})).Return(nil)

		body := CategoryNode{ID: 1, Name: "Categories", Children: []CategoryNode{
			{ID: 3, Name: "Groceries", Children: []CategoryNode{{ID: 4, Name: "Bakery"}}},
		}}
		rr := performRequest(router, http.MethodPut, "/categories/tree", body)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		categories.AssertExpectations(t)
	})
}

func TestCategoryHandler_List(t *testing.T) {
	categories := new(MockCategoryService)
	router := newCategoryRouter(categories)

	categories.On("List", mock.Anything, testSession).Return([]category.Leveled{
		{Category: category.Category{ID: 2, Name: "Split", Type: category.TypeSplit, ParentID: int64Ptr(1)}, Level: 0},
		{Category: category.Category{ID: 4, Name: "Bakery", Type: category.TypeNormal, ParentID: int64Ptr(3), Position: 1}, Level: 1},
	}, nil)

	rr := performRequest(router, http.MethodGet, "/categories", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body []CategoryResponse
	decodeResponse(t, rr, &body)
	require.Len(t, body, 2)
	require.NotNil(t, body[0].Level)
	assert.Equal(t, 0, *body[0].Level)
	assert.Equal(t, 1, *body[1].Level)
	assert.Equal(t, 1, body[1].Position)
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		categories := new(MockCategoryService)
		router := newCategoryRouter(categories)
		categories.On("Create", mock.Anything, testSession, &category.Node{Name: "Travel", ParentID: int64Ptr(3)}).
			Return(int64(12), nil)

		rr := performRequest(router, http.MethodPost, "/categories", CreateCategoryRequest{Name: "Travel", ParentID: int64Ptr(3)})

		assert.Equal(t, http.StatusCreated, rr.Code)
		var body IDResponse
		decodeResponse(t, rr, &body)
		assert.Equal(t, int64(12), body.ID)
	})

	t.Run("UnknownParent", func(t *testing.T) {
		categories := new(MockCategoryService)
		router := newCategoryRouter(categories)
		categories.On("Create", mock.Anything, testSession, mock.Anything).
			Return(int64(0), category.ErrCategoryNotFound{CategoryID: 99})

		rr := performRequest(router, http.MethodPost, "/categories", CreateCategoryRequest{Name: "Travel", ParentID: int64Ptr(99)})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("MissingName", func(t *testing.T) {
		categories := new(MockCategoryService)
		router := newCategoryRouter(categories)

		rr := performRequest(router, http.MethodPost, "/categories", `{"parent_id": 3}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		categories.AssertExpectations(t)
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		id         int64
		err        error
		wantStatus int
	}{
		{name: "Deleted", id: 5, wantStatus: http.StatusNoContent},
		{name: "Reserved", id: 1, err: category.ErrReservedCategory, wantStatus: http.StatusBadRequest},
		{name: "NotFound", id: 50, err: category.ErrCategoryNotFound{CategoryID: 50}, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categories := new(MockCategoryService)
			router := newCategoryRouter(categories)
			categories.On("Delete", mock.Anything, testSession, tt.id).Return(tt.err)

			rr := performRequest(router, http.MethodDelete, fmt.Sprintf("/categories/%d", tt.id), nil)

			assert.Equal(t, tt.wantStatus, rr.Code)
			categories.AssertExpectations(t)
		})
	}
}

func TestCategoryHandler_Singletons(t *testing.T) {
	categories := new(MockCategoryService)
	router := newCategoryRouter(categories)
	categories.On("Root", mock.Anything, testSession).Return(&category.Category{ID: 1, Name: "Categories", Type: category.TypeNormal}, nil)
	categories.On("Split", mock.Anything, testSession).Return(&category.Category{ID: 2, Name: "Split", Type: category.TypeSplit, ParentID: int64Ptr(1)}, nil)

	var root, split CategoryResponse
	rr := performRequest(router, http.MethodGet, "/categories/root", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	decodeResponse(t, rr, &root)

	rr = performRequest(router, http.MethodGet, "/categories/split", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	decodeResponse(t, rr, &split)

	assert.Equal(t, "Categories", root.Name)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, "SPLIT", split.Type)
	assert.Equal(t, int64(1), *split.ParentID)
	categories.AssertExpectations(t)
}
