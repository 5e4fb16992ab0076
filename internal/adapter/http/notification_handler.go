package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"loanserve-backend/internal/dispatch"
	notifUC "loanserve-backend/internal/usecase/notification"
)

func (h *Handler) ListNotifications(c echo.Context) error {
	unread, _ := strconv.ParseBool(c.QueryParam("unread"))
	out, err := dispatch.Send[[]notifUC.NotificationDTO](c.Request().Context(), h.d, notifUC.ListInput{
		UserID:     c.Param("user_id"),
		UnreadOnly: unread,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	dto, err := dispatch.Send[*notifUC.NotificationDTO](c.Request().Context(), h.d, notifUC.MarkReadInput{
		NotificationID: c.Param("notification_id"),
		UserID:         c.QueryParam("user_id"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
