package handlers

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/bookmarks"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/internal/repositories"
	"github.com/shelvit/backend/pkg/slug"
)

// ImportHandler handles bulk bookmark-file imports
type ImportHandler struct {
	items  repositories.ItemRepository
	boards repositories.BoardRepository
	users  repositories.UserRepository
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(items repositories.ItemRepository, boards repositories.BoardRepository, users repositories.UserRepository) *ImportHandler {
	return &ImportHandler{items: items, boards: boards, users: users}
}

type importFailure struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

type importResult struct {
	Imported []string        `json:"imported"`
	Failed   []importFailure `json:"failed"`
}

// Import parses an uploaded bookmark-export file and bulk-creates items
// from its links. Folder names must resolve to existing boards owned by the
// caller; no boards are auto-created. Resolution runs before any insert, so
// an unknown folder aborts the import with zero writes. Past that boundary
// inserts proceed one by one and the response carries a per-link outcome
// list.
func (h *ImportHandler) Import(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.SchemaValidation
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.Internal
	}
	defer file.Close()

	links, err := bookmarks.Parse(file)
	if err != nil {
		return apperrors.Internal
	}

	ctx := c.Request().Context()

	// Abort boundary: resolve every folder name to a board before writing.
	boardIDs := map[string]primitive.ObjectID{}
	for _, link := range links {
		if _, seen := boardIDs[link.Board]; seen {
			continue
		}
		board, err := h.boards.GetBoardByTitle(ctx, link.Board, owner)
		if err != nil {
			return apperrors.Internal
		}
		boardIDs[link.Board] = board.ID
	}

	result := importResult{Imported: []string{}, Failed: []importFailure{}}
	for _, link := range links {
		item := &models.Item{
			Source:    link.Source,
			SourceURL: link.SourceURL,
			ItemType:  "bookmark",
			Slug:      slug.Generate(),
			Board:     boardIDs[link.Board],
			Tags:      link.Tags,
			AddedBy:   owner,
		}
		if err := h.items.CreateItem(ctx, item); err != nil {
			result.Failed = append(result.Failed, importFailure{Source: link.Source, Reason: err.Error()})
			continue
		}
		if err := h.users.AttachItem(ctx, owner, item.ID); err != nil {
			result.Failed = append(result.Failed, importFailure{Source: link.Source, Reason: err.Error()})
			continue
		}
		result.Imported = append(result.Imported, link.Source)
	}

	return respondCount(c, result, "Successfully imported", len(result.Imported))
}
