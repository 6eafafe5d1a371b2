package apperrors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error is one kind from the fixed application error taxonomy. Every
// handler failure is one of these; anything unrecognized collapses to
// Internal before it reaches the client.
type Error struct {
	Kind    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	Internal             = &Error{"InternalServerError", http.StatusInternalServerError, "Something went wrong"}
	SchemaValidation     = &Error{"SchemaValidationError", http.StatusBadRequest, "Request is missing required fields"}
	ItemAlreadyExists    = &Error{"ItemAlreadyExistsError", http.StatusBadRequest, "Item with given name already exists"}
	UpdatingItem         = &Error{"UpdatingItemError", http.StatusForbidden, "Updating Item added by other is forbidden"}
	DeletingItem         = &Error{"DeletingItemError", http.StatusForbidden, "Deleting Item added by other is forbidden"}
	ItemNotExists        = &Error{"ItemNotExistsError", http.StatusBadRequest, "Item with given id does not exists"}
	EmailAlreadyExists   = &Error{"EmailAlreadyExistsError", http.StatusBadRequest, "User with given email address already exists"}
	UserNameAlreadyTaken = &Error{"UserNameDoesnotExistsError", http.StatusBadRequest, "User with given user name already exists"}
	Unauthorized         = &Error{"UnauthorizedError", http.StatusUnauthorized, "Invalid username or password"}
	UserDoesnotExist     = &Error{"UserDoesnotExistError", http.StatusBadRequest, "Couldn't find the user with the given email address"}
	BadToken             = &Error{"BadTokenError", http.StatusForbidden, "Invalid token"}
	TokenNotFound        = &Error{"TokenNotFound", http.StatusForbidden, "Token cannot be found"}
	EntryDoesnotExists   = &Error{"EntryDoesnotExistsError", http.StatusForbidden, "Entry cannot be found"}
	ActionAlreadyDone    = &Error{"ActionAlreadyDone", http.StatusForbidden, "Already observed the action"}
)

// HTTPErrorHandler renders taxonomy errors as {"message": ...} with the
// mapped status. Echo's own HTTP errors keep their status; everything else
// becomes Internal, discarding the diagnostic detail from the response.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		_ = c.JSON(appErr.Status, map[string]string{"message": appErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		_ = c.JSON(httpErr.Code, map[string]string{"message": msg})
		return
	}

	c.Logger().Error(err)
	_ = c.JSON(Internal.Status, map[string]string{"message": Internal.Message})
}
