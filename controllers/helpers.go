package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/middlewares"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/services"
)

// senderFrom rebuilds the authenticated caller from the request context
// the auth middleware populated.
func senderFrom(c *gin.Context) services.Sender {
	return services.Sender{
		UID:   c.GetString(middlewares.CtxUID),
		Name:  c.GetString(middlewares.CtxName),
		Email: c.GetString(middlewares.CtxEmail),
		Token: c.GetString(middlewares.CtxToken),
	}
}

// respondErr maps service errors onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrInsufficientCredits):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotMember),
		errors.Is(err, services.ErrNotPermitted),
		errors.Is(err, services.ErrNotParticipant),
		errors.Is(err, services.ErrNotRecipient),
		errors.Is(err, services.ErrNotFileOwner),
		errors.Is(err, services.ErrOwnerCannotLeave):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrEmptyPost),
		errors.Is(err, services.ErrEmptyPrompt),
		errors.Is(err, services.ErrParticipantCount),
		errors.Is(err, services.ErrSelfFriendRequest),
		errors.Is(err, services.ErrServerNameRequired),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrDisallowedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
