package controllers

import (
	"errors"
	"net/http"

	"WaDesk/pkg/services"
	"WaDesk/pkg/store"

	"github.com/gin-gonic/gin"
)

// ListMessages returns the full sender -> messages snapshot, the same
// structure the live feeds push.
func ListMessages(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, st.Snapshot())
	}
}

// AcceptMessage marks a message read.
func AcceptMessage(inbox *services.Inbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !inbox.MarkRead(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	}
}

// ArchiveMessage moves a message to its terminal archived state.
func ArchiveMessage(inbox *services.Inbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !inbox.Archive(c.Param("id")) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	}
}

// SendNotes attaches operator notes to a message and relays them to the
// sender as a threaded reply. The three failure modes stay distinguishable:
// 400 bad input, 404 unknown id, 502 delivery failure.
func SendNotes(inbox *services.Inbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Notes                 string `json:"notes"`
			BusinessPhoneNumberID string `json:"business_phone_number_id"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request body"})
			return
		}

		err := inbox.AttachNotes(c.Request.Context(), c.Param("id"), body.Notes, body.BusinessPhoneNumberID)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"msg": "ok"})
		case errors.Is(err, services.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "missing notes or business phone number ID"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "message not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"msg": "reply delivery failed"})
		}
	}
}
