package handlers

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/middleware"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/internal/repositories"
	"github.com/shelvit/backend/pkg/slug"
)

// ItemHandler handles item CRUD, by-board listing and likes
type ItemHandler struct {
	items  repositories.ItemRepository
	boards repositories.BoardRepository
	users  repositories.UserRepository
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(items repositories.ItemRepository, boards repositories.BoardRepository, users repositories.UserRepository) *ItemHandler {
	return &ItemHandler{items: items, boards: boards, users: users}
}

// ListItems retrieves all items created by the caller
func (h *ItemHandler) ListItems(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	items, err := h.items.GetItemsByOwner(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	return respondCount(c, items, "Successfully retrieved", len(items))
}

// CreateItem creates an item under one of the caller's boards. The board
// field of the request is a slug, resolved scoped to the caller before the
// insert.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req models.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.SchemaValidation
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.SchemaValidation
	}

	ctx := c.Request().Context()
	board, err := h.boards.GetBoardBySlug(ctx, req.Board, owner)
	if err != nil {
		return err
	}

	item := &models.Item{
		Title:     req.Title,
		Source:    req.Source,
		SourceURL: req.SourceURL,
		Summary:   req.Summary,
		ItemType:  req.ItemType,
		Content:   req.Content,
		Slug:      slug.Generate(),
		Board:     board.ID,
		Keywords:  req.Keywords,
		Tags:      req.Tags,
		AddedBy:   owner,
	}
	if err := h.items.CreateItem(ctx, item); err != nil {
		return err
	}
	if err := h.users.AttachItem(ctx, owner, item.ID); err != nil {
		return err
	}
	return respond(c, item, "Successfully inserted")
}

// GetItem retrieves one item by id
func (h *ItemHandler) GetItem(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperrors.ItemNotExists
	}

	item, err := h.items.GetItemByID(c.Request().Context(), id, owner)
	if err != nil {
		return err
	}
	return respondCount(c, item, "Successfully retrieved", 1)
}

// UpdateItem partially merges the supplied fields into one item
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperrors.ItemNotExists
	}

	var req models.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.SchemaValidation
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.SchemaValidation
	}

	set := bson.M{}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Source != "" {
		set["source"] = req.Source
	}
	if req.SourceURL != "" {
		set["source_url"] = req.SourceURL
	}
	if req.Summary != "" {
		set["summary"] = req.Summary
	}
	if req.ItemType != "" {
		set["item_type"] = req.ItemType
	}
	if req.Content != "" {
		set["content"] = req.Content
	}
	if req.Keywords != nil {
		set["keywords"] = req.Keywords
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}

	if err := h.items.UpdateItemByID(c.Request().Context(), id, owner, set); err != nil {
		return err
	}
	return respond(c, nil, "Successfully updated")
}

// DeleteItem deletes one item by id
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperrors.ItemNotExists
	}

	ctx := c.Request().Context()
	if err := h.items.DeleteItemByID(ctx, id, owner); err != nil {
		return err
	}
	if err := h.users.DetachItem(ctx, owner, id); err != nil {
		return err
	}
	return respond(c, nil, "Successfully deleted")
}

// ListByBoard retrieves all items under the board matching the slug. The
// board is resolved scoped to the caller first, then items are filtered by
// board and owner.
func (h *ItemHandler) ListByBoard(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	board, err := h.boards.GetBoardBySlug(ctx, c.Param("slug"), owner)
	if err != nil {
		return err
	}
	items, err := h.items.GetItemsByBoard(ctx, board.ID, owner)
	if err != nil {
		return err
	}
	return respondCount(c, items, "Successfully retrieved", len(items))
}

// LikeItem records the caller as a liker of any item, once
func (h *ItemHandler) LikeItem(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return apperrors.BadToken
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperrors.EntryDoesnotExists
	}

	if err := h.items.LikeItem(c.Request().Context(), id, claims.Subject); err != nil {
		return err
	}
	return respond(c, nil, "Successfully liked")
}

// UnlikeItem removes the caller from an item's likers
func (h *ItemHandler) UnlikeItem(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return apperrors.BadToken
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperrors.EntryDoesnotExists
	}

	if err := h.items.UnlikeItem(c.Request().Context(), id, claims.Subject); err != nil {
		return err
	}
	return respond(c, nil, "Successfully unliked")
}
