package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shelvit/backend/internal/apperrors"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/pkg/slug"
)

// In-memory fakes mirroring the Mongo repositories' error contracts.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if user.Username == "" || user.Email == "" || user.Password == "" {
		return apperrors.SchemaValidation
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return apperrors.UserNameAlreadyTaken
		}
		if existing.Email == user.Email {
			return apperrors.EmailAlreadyExists
		}
	}
	user.ID = primitive.NewObjectID()
	user.IsActive = true
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.UserDoesnotExist
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.UserDoesnotExist
}

func (r *fakeUserRepo) AttachBoard(_ context.Context, userID, boardID primitive.ObjectID) error {
	if user, ok := r.users[userID]; ok {
		user.Boards = append(user.Boards, boardID)
	}
	return nil
}

func (r *fakeUserRepo) DetachBoard(_ context.Context, userID, boardID primitive.ObjectID) error {
	if user, ok := r.users[userID]; ok {
		user.Boards = removeRef(user.Boards, boardID)
	}
	return nil
}

func (r *fakeUserRepo) AttachItem(_ context.Context, userID, itemID primitive.ObjectID) error {
	if user, ok := r.users[userID]; ok {
		user.Items = append(user.Items, itemID)
	}
	return nil
}

func (r *fakeUserRepo) DetachItem(_ context.Context, userID, itemID primitive.ObjectID) error {
	if user, ok := r.users[userID]; ok {
		user.Items = removeRef(user.Items, itemID)
	}
	return nil
}

func removeRef(refs []primitive.ObjectID, ref primitive.ObjectID) []primitive.ObjectID {
	out := refs[:0]
	for _, r := range refs {
		if r != ref {
			out = append(out, r)
		}
	}
	return out
}

type fakeBoardRepo struct {
	boards map[primitive.ObjectID]*models.Board
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: map[primitive.ObjectID]*models.Board{}}
}

func (r *fakeBoardRepo) CreateBoard(_ context.Context, board *models.Board) error {
	if board.Title == "" {
		return apperrors.SchemaValidation
	}
	board.ID = primitive.NewObjectID()
	board.Slug = slug.Generate()
	if board.Description == "" {
		board.Description = models.DefaultBoardDescription
	}
	if board.Color == "" {
		board.Color = slug.BoardColor()
	}
	r.boards[board.ID] = board
	return nil
}

func (r *fakeBoardRepo) GetBoardBySlug(_ context.Context, s string, owner primitive.ObjectID) (*models.Board, error) {
	for _, board := range r.boards {
		if board.Slug == s && board.AddedBy == owner {
			return board, nil
		}
	}
	return nil, apperrors.ItemNotExists
}

func (r *fakeBoardRepo) GetBoardByTitle(_ context.Context, title string, owner primitive.ObjectID) (*models.Board, error) {
	for _, board := range r.boards {
		if board.Title == title && board.AddedBy == owner {
			return board, nil
		}
	}
	return nil, apperrors.ItemNotExists
}

func (r *fakeBoardRepo) GetBoardsByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Board, error) {
	var out []models.Board
	for _, board := range r.boards {
		if board.AddedBy == owner {
			out = append(out, *board)
		}
	}
	return out, nil
}

func (r *fakeBoardRepo) UpdateBoardByID(_ context.Context, id, owner primitive.ObjectID, set bson.M) error {
	if len(set) == 0 {
		return apperrors.SchemaValidation
	}
	board, ok := r.boards[id]
	if !ok || board.AddedBy != owner {
		return apperrors.ItemNotExists
	}
	for key, value := range set {
		s, _ := value.(string)
		switch key {
		case "title":
			board.Title = s
		case "symbol":
			board.Symbol = s
		case "description":
			board.Description = s
		case "color":
			board.Color = s
		}
	}
	return nil
}

func (r *fakeBoardRepo) DeleteBoardBySlug(_ context.Context, s string, owner primitive.ObjectID) (*models.Board, error) {
	for id, board := range r.boards {
		if board.Slug == s && board.AddedBy == owner {
			delete(r.boards, id)
			return board, nil
		}
	}
	return nil, apperrors.ItemNotExists
}

type fakeItemRepo struct {
	items map[primitive.ObjectID]*models.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[primitive.ObjectID]*models.Item{}}
}

func (r *fakeItemRepo) CreateItem(_ context.Context, item *models.Item) error {
	if item.Source == "" || item.Board.IsZero() {
		return apperrors.SchemaValidation
	}
	item.ID = primitive.NewObjectID()
	if item.Tags == nil {
		item.Tags = []string{}
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetItemByID(_ context.Context, id, owner primitive.ObjectID) (*models.Item, error) {
	item, ok := r.items[id]
	if !ok || item.AddedBy != owner {
		return nil, apperrors.ItemNotExists
	}
	return item, nil
}

func (r *fakeItemRepo) GetItemsByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Item, error) {
	var out []models.Item
	for _, item := range r.items {
		if item.AddedBy == owner {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) GetItemsByBoard(_ context.Context, board, owner primitive.ObjectID) ([]models.Item, error) {
	var out []models.Item
	for _, item := range r.items {
		if item.Board == board && item.AddedBy == owner {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) UpdateItemByID(_ context.Context, id, owner primitive.ObjectID, set bson.M) error {
	if len(set) == 0 {
		return apperrors.SchemaValidation
	}
	item, ok := r.items[id]
	if !ok || item.AddedBy != owner {
		return apperrors.ItemNotExists
	}
	for key, value := range set {
		switch key {
		case "title":
			item.Title, _ = value.(string)
		case "source":
			item.Source, _ = value.(string)
		case "source_url":
			item.SourceURL, _ = value.(string)
		case "summary":
			item.Summary, _ = value.(string)
		case "tags":
			item.Tags, _ = value.([]string)
		}
	}
	return nil
}

func (r *fakeItemRepo) DeleteItemByID(_ context.Context, id, owner primitive.ObjectID) error {
	item, ok := r.items[id]
	if !ok || item.AddedBy != owner {
		return apperrors.ItemNotExists
	}
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) LikeItem(_ context.Context, id primitive.ObjectID, userID string) error {
	item, ok := r.items[id]
	if !ok {
		return apperrors.EntryDoesnotExists
	}
	for _, liker := range item.LikedBy {
		if liker == userID {
			return apperrors.ActionAlreadyDone
		}
	}
	item.LikedBy = append(item.LikedBy, userID)
	item.LikeCount++
	return nil
}

func (r *fakeItemRepo) UnlikeItem(_ context.Context, id primitive.ObjectID, userID string) error {
	item, ok := r.items[id]
	if !ok {
		return apperrors.EntryDoesnotExists
	}
	for i, liker := range item.LikedBy {
		if liker == userID {
			item.LikedBy = append(item.LikedBy[:i], item.LikedBy[i+1:]...)
			item.LikeCount--
			return nil
		}
	}
	return apperrors.ActionAlreadyDone
}

type fakeTokenRepo struct {
	entries map[string]*models.TokenRecord
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{entries: map[string]*models.TokenRecord{}}
}

func (r *fakeTokenRepo) Record(_ context.Context, rec *models.TokenRecord) error {
	if rec.JTI == "" || rec.TokenType == "" || rec.UserIdentity == "" {
		return apperrors.SchemaValidation
	}
	if _, ok := r.entries[rec.JTI]; ok {
		return apperrors.ItemAlreadyExists
	}
	rec.Revoked = false
	r.entries[rec.JTI] = rec
	return nil
}

func (r *fakeTokenRepo) IsRevoked(_ context.Context, jti string) (bool, error) {
	rec, ok := r.entries[jti]
	if !ok {
		return false, apperrors.TokenNotFound
	}
	return rec.Revoked, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, jti, identity string) error {
	rec, ok := r.entries[jti]
	if !ok || rec.UserIdentity != identity {
		return apperrors.TokenNotFound
	}
	rec.Revoked = true
	return nil
}

func (r *fakeTokenRepo) Remove(_ context.Context, jti string) error {
	delete(r.entries, jti)
	return nil
}
