package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stridewear/storefront-api/internal/core/domain/guest"
	"github.com/stridewear/storefront-api/internal/infrastructure/httpserver/helpers"
)

// syncGuestData folds the submitted guest cart and orders into the
// authenticated customer's account. The merge is idempotent server-side, so
// a client retrying after a lost response may safely re-submit everything.
func (s *Server) syncGuestData(c echo.Context) error {
	var req guest.SyncRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId is required"})
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId is not a valid id"})
	}

	// The submitted userId must be the authenticated customer; guest data
	// cannot be pushed into someone else's account.
	authedID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	if authedID != userID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "userId does not match authenticated user"})
	}

	results, err := s.syncSvc.SyncGuestData(c.Request().Context(), userID, req.GuestCart, req.GuestOrders)
	if err != nil {
		s.logger.WithError(err).Error("guest data sync failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to sync guest data"})
	}

	return c.JSON(http.StatusOK, guest.SyncResponse{
		Success: true,
		Message: "Guest data synced successfully",
		Results: *results,
	})
}
