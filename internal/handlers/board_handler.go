package handlers

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/middleware"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/internal/repositories"
)

// ownerID resolves the authenticated caller's user id from the token claims
func ownerID(c echo.Context) (primitive.ObjectID, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return primitive.NilObjectID, apperrors.BadToken
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, apperrors.BadToken
	}
	return id, nil
}

// BoardHandler handles board CRUD
type BoardHandler struct {
	boards repositories.BoardRepository
	users  repositories.UserRepository
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boards repositories.BoardRepository, users repositories.UserRepository) *BoardHandler {
	return &BoardHandler{boards: boards, users: users}
}

// ListBoards retrieves all boards created by the caller
func (h *BoardHandler) ListBoards(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.users.GetUserByID(ctx, owner)
	if err != nil {
		return err
	}
	boards, err := h.boards.GetBoardsByOwner(ctx, owner)
	if err != nil {
		return err
	}

	views := make([]models.BoardView, 0, len(boards))
	for _, board := range boards {
		views = append(views, models.BoardView{
			Board:     board,
			Username:  user.Username,
			TimeStamp: board.CreatedAt.Format(time.RFC3339),
		})
	}
	return respondCount(c, views, "Successfully retrieved", len(views))
}

// CreateBoard creates a board owned by the caller. The slug, color and
// description are populated server-side.
func (h *BoardHandler) CreateBoard(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req models.CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.SchemaValidation
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.SchemaValidation
	}

	board := &models.Board{
		Title:       req.Title,
		Symbol:      req.Symbol,
		Description: req.Description,
		Color:       req.Color,
		AddedBy:     owner,
	}
	ctx := c.Request().Context()
	if err := h.boards.CreateBoard(ctx, board); err != nil {
		return err
	}
	if err := h.users.AttachBoard(ctx, owner, board.ID); err != nil {
		return err
	}
	return respond(c, map[string]interface{}{"id": board.Slug, "board": board}, "Successfully inserted")
}

// GetBoard retrieves one board by slug
func (h *BoardHandler) GetBoard(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	board, err := h.boards.GetBoardBySlug(c.Request().Context(), c.Param("id"), owner)
	if err != nil {
		return err
	}
	return respondCount(c, board, "Successfully retrieved", 1)
}

// UpdateBoard partially merges the supplied fields into one board. The
// lookup key for updates is the raw document id, not the slug.
func (h *BoardHandler) UpdateBoard(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return apperrors.ItemNotExists
	}

	var req models.UpdateBoardRequest
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
	if req.Symbol != "" {
		set["symbol"] = req.Symbol
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.Color != "" {
		set["color"] = req.Color
	}

	if err := h.boards.UpdateBoardByID(c.Request().Context(), id, owner, set); err != nil {
		return err
	}
	return respond(c, nil, "Successfully updated")
}

// DeleteBoard deletes one board by slug. Deletion is immediate and
// unrecoverable; items under the board are left in place.
func (h *BoardHandler) DeleteBoard(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	board, err := h.boards.DeleteBoardBySlug(ctx, c.Param("id"), owner)
	if err != nil {
		return err
	}
	if err := h.users.DetachBoard(ctx, owner, board.ID); err != nil {
		return err
	}
	return respond(c, nil, "Successfully deleted")
}
