package handler // handler translates HTTP requests into repository calls

import (
    "errors"
    "fmt"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/game-catalog/internal/repository"
    "github.com/iliyamo/game-catalog/internal/validation"
)

// respondError writes the JSON error body matching err's category.
// Validation problems become 400 with per-field details, missing rows 404,
// constraint violations 409.  Anything else is logged and reported as a
// generic 500 so driver messages never leak to clients.
func respondError(c echo.Context, err error) error {
    var verr *validation.Error
    switch {
    case errors.As(err, &verr):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error(), "details": verr.Fields})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    default:
        log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
    }
}

// badBody is returned when the request body is not valid JSON for the
// target struct.
func badBody(c echo.Context) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
}

// notFoundID names the missing record in the 404 body.  The result still
// matches repository.ErrNotFound.
func notFoundID(entity, id string) error {
    return fmt.Errorf("%s with ID %s %w", entity, id, repository.ErrNotFound)
}

// lookupError rewrites a repository miss into a message naming the id and
// passes other errors through unchanged.
func lookupError(err error, entity, id string) error {
    if errors.Is(err, repository.ErrNotFound) {
        return notFoundID(entity, id)
    }
    return err
}
