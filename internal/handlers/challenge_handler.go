package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zikrhub/backend/internal/middleware"
	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/services"
)

// ChallengeHandler handles HTTP requests related to challenges
type ChallengeHandler struct {
	challengeService services.ChallengeService
}

// NewChallengeHandler creates a new ChallengeHandler
func NewChallengeHandler(challengeService services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// RegisterChallengeRoutes registers challenge-related routes
func (h *ChallengeHandler) RegisterChallengeRoutes(g *echo.Group) {
	g.POST("/challenges", h.AddGroupChallenge)
	g.GET("/challenges", h.GetChallenges)
	g.GET("/challenges/groups/:groupId", h.GetChallengesInGroup)
	g.GET("/challenges/:id", h.GetChallenge)
	g.PUT("/challenges/:id", h.UpdateChallenge)
	g.POST("/challenges/personal", h.AddPersonalChallenge)
	g.GET("/challenges/personal", h.GetPersonalChallenges)
	g.PUT("/challenges/personal/:id", h.UpdatePersonalChallenge)
}

// AddGroupChallenge creates a challenge inside one of the user's groups
func (h *ChallengeHandler) AddGroupChallenge(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	var req models.AddChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	challenge, err := h.challengeService.AddGroupChallenge(c.Request().Context(), currentUserID, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, challenge)
}

// AddPersonalChallenge creates a challenge on the user's personal list
func (h *ChallengeHandler) AddPersonalChallenge(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	var req models.AddPersonalChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	challenge, err := h.challengeService.AddPersonalChallenge(c.Request().Context(), currentUserID, &req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, challenge)
}

// GetChallenge returns one of the user's group challenges
func (h *ChallengeHandler) GetChallenge(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	challenge, err := h.challengeService.GetChallenge(c.Request().Context(), currentUserID, c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, challenge)
}

// GetChallenges returns all of the user's group challenges, newest first
func (h *ChallengeHandler) GetChallenges(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	challenges, err := h.challengeService.GetChallenges(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, challenges)
}

// GetChallengesInGroup returns the user's challenges within one group
func (h *ChallengeHandler) GetChallengesInGroup(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	challenges, err := h.challengeService.GetChallengesInGroup(c.Request().Context(), currentUserID, c.Param("groupId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, challenges)
}

// GetPersonalChallenges returns the user's personal challenges, newest first
func (h *ChallengeHandler) GetPersonalChallenges(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	challenges, err := h.challengeService.GetPersonalChallenges(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, challenges)
}

// UpdateChallenge submits new left-repetition counters for a group challenge
func (h *ChallengeHandler) UpdateChallenge(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	var req models.UpdateChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.challengeService.UpdateChallenge(c.Request().Context(), currentUserID, c.Param("id"), req.SubChallenges); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// UpdatePersonalChallenge submits new counters for a personal challenge
func (h *ChallengeHandler) UpdatePersonalChallenge(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	var req models.UpdateChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.challengeService.UpdatePersonalChallenge(c.Request().Context(), currentUserID, c.Param("id"), req.SubChallenges); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}
