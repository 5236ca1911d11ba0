package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zikrhub/backend/internal/services"
)

// toHTTPError maps core sentinel errors onto HTTP statuses. Anything
// unrecognized is an internal store failure.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, services.ErrSubChallengeCountMismatch),
		errors.Is(err, services.ErrUnknownSubChallenge),
		errors.Is(err, services.ErrRepetitionsIncreased),
		errors.Is(err, services.ErrMalformedSubChallenges):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, services.ErrChallengeExpired),
		errors.Is(err, services.ErrMalformedChallenge),
		errors.Is(err, services.ErrSelfRequest),
		errors.Is(err, services.ErrChallengeNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrNoFriendRequest),
		errors.Is(err, services.ErrAlreadyRequested),
		errors.Is(err, services.ErrAlreadyAccepted):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrNoFriendship),
		errors.Is(err, services.ErrFriendshipPending):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrNotGroupMember):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
