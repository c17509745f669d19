package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apierrors "github.com/teamhub/project-management-api/internal/errors"
	"github.com/teamhub/project-management-api/internal/services"
)

// respondDomainError translates a domain error into its HTTP response.
// Unrecognized errors are logged and reported as 500.
func respondDomainError(c *gin.Context, err error) {
	var invalidMembers *services.InvalidMemberIDsError

	switch {
	case errors.As(err, &invalidMembers):
		apierrors.BadRequestWithDetails(c, "Invalid member IDs", invalidMembers.IDs)
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUsernameOrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidRoleID),
		errors.Is(err, services.ErrProjectTitleRequired),
		errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrDueDateRequired),
		errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		logrus.WithError(err).Error("unhandled domain error")
		apierrors.InternalError(c, "")
	}
}
