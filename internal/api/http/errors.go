package http

import "github.com/gin-gonic/gin"

// Machine-readable error codes returned next to every error message.
const (
	codeTimeout          = "TIMEOUT"
	codeRateLimited      = "RATE_LIMITED"
	codeClientError      = "CLIENT_ERROR"
	codeServerError      = "SERVER_ERROR"
	codeInvalidRequest   = "INVALID_REQUEST"
	codeInvalidTitle     = "INVALID_TITLE"
	codeInvalidName      = "INVALID_NAME"
	codeInvalidPreset    = "INVALID_PRESET"
	codeInvalidMeetingID = "INVALID_MEETING_ID"
	codeMeetingNotFound  = "MEETING_NOT_FOUND"
	codeParticipantLimit = "PARTICIPANT_LIMIT_EXCEEDED"
	codeInvalidSignature = "INVALID_SIGNATURE"
	codeInternalError    = "INTERNAL_ERROR"
	codeNotFound         = "NOT_FOUND"
)

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}
