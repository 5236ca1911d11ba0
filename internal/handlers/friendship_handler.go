package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zikrhub/backend/internal/middleware"
	"github.com/zikrhub/backend/internal/models"
	"github.com/zikrhub/backend/internal/services"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendshipService  services.FriendshipService
	leaderboardService services.LeaderboardService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipService services.FriendshipService, leaderboardService services.LeaderboardService) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipService:  friendshipService,
		leaderboardService: leaderboardService,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.GET("/friends", h.GetFriends)
	g.GET("/friends/leaderboard", h.GetFriendsLeaderboard)
	g.POST("/friends/request", h.SendFriendRequest)
	g.PUT("/friends/:id/accept", h.AcceptFriendRequest)
	g.PUT("/friends/:id/reject", h.RejectFriendRequest)
	g.DELETE("/friends/:id", h.DeleteFriend)
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	var req models.SendFriendRequestPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.friendshipService.SendRequest(c.Request().Context(), currentUserID, req.UserID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusCreated)
}

// AcceptFriendRequest accepts the pending request sent by the user in the
// path
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)
	requesterID := c.Param("id")

	if err := h.friendshipService.ResolveRequest(c.Request().Context(), currentUserID, requesterID, true); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// RejectFriendRequest rejects the pending request sent by the user in the
// path
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)
	requesterID := c.Param("id")

	if err := h.friendshipService.ResolveRequest(c.Request().Context(), currentUserID, requesterID, false); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusOK)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	friends, err := h.friendshipService.GetFriends(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, friends)
}

// GetFriendsLeaderboard retrieves the ranked per-friend scores for the
// authenticated user
func (h *FriendshipHandler) GetFriendsLeaderboard(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)

	rows, err := h.leaderboardService.GetFriendsLeaderboard(c.Request().Context(), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// DeleteFriend handles unfriending (removing an accepted friendship)
func (h *FriendshipHandler) DeleteFriend(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c)
	friendID := c.Param("id")

	if err := h.friendshipService.DeleteFriendship(c.Request().Context(), currentUserID, friendID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
