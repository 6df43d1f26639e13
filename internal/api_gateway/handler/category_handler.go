package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/household-ledger/internal/api_gateway/middleware"
	"github.com/household-ledger/internal/api_gateway/service"
	"github.com/household-ledger/internal/domain/category"
)

// CategoryHandler handles HTTP requests for the category tree. Its routes
// run behind middleware.Session.
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(logger *slog.Logger, categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// Tree returns the whole category tree starting at the root
func (h *CategoryHandler) Tree(c *gin.Context) {
	root, err := h.categoryService.Tree(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondServiceError(c, h.logger, "Failed to load category tree", err)
		return
	}

	RespondOK(c, mapNodeToResponse(root))
}

// SaveTree overwrites names, types and nesting of the submitted tree
func (h *CategoryHandler) SaveTree(c *gin.Context) {
	var req CategoryNode
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.categoryService.Save(c.Request.Context(), middleware.GetSession(c), req.toNode()); err != nil {
		respondServiceError(c, h.logger, "Failed to save category tree", err)
		return
	}

	RespondNoContent(c)
}

// List returns the categories below the root depth first, with their levels
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondServiceError(c, h.logger, "Failed to list categories", err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, lc := range categories {
		r := mapCategoryToResponse(&lc.Category)
		level := lc.Level
		r.Level = &level
		response = append(response, r)
	}
	RespondOK(c, response)
}

// Create adds a category below the given parent
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	node := &category.Node{Name: req.Name, ParentID: req.ParentID}
	id, err := h.categoryService.Create(c.Request.Context(), middleware.GetSession(c), node)
	if err != nil {
		respondServiceError(c, h.logger, "Failed to create category", err)
		return
	}

	RespondCreated(c, IDResponse{ID: id})
}

// Delete removes a category and its descendants, entries lose their category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "category ID")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		respondServiceError(c, h.logger, "Failed to delete category", err)
		return
	}

	RespondNoContent(c)
}

// Root returns the root category
func (h *CategoryHandler) Root(c *gin.Context) {
	root, err := h.categoryService.Root(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondServiceError(c, h.logger, "Failed to get root category", err)
		return
	}

	RespondOK(c, mapCategoryToResponse(root))
}

// Split returns the split category
func (h *CategoryHandler) Split(c *gin.Context) {
	split, err := h.categoryService.Split(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		respondServiceError(c, h.logger, "Failed to get split category", err)
		return
	}

	RespondOK(c, mapCategoryToResponse(split))
}

func (n CategoryNode) toNode() *category.Node {
	node := &category.Node{
		ID:       n.ID,
		Name:     n.Name,
		Type:     category.Type(n.Type),
		Children: make([]*category.Node, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		node.Children = append(node.Children, child.toNode())
	}
	return node
}

func mapNodeToResponse(n *category.Node) CategoryNode {
	response := CategoryNode{
		ID:       n.ID,
		Name:     n.Name,
		Type:     string(n.Type),
		ParentID: n.ParentID,
		Children: make([]CategoryNode, 0, len(n.Children)),
	}
	for _, child := range n.Children {
		response.Children = append(response.Children, mapNodeToResponse(child))
	}
	return response
}

func mapCategoryToResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Type:     string(c.Type),
		ParentID: c.ParentID,
		Position: c.Position,
	}
}
