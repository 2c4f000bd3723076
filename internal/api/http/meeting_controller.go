package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/appifylab/webinar-platform/internal/service"
	"github.com/appifylab/webinar-platform/internal/upstream/realtimekit"
)

type MeetingController struct {
	meetings service.MeetingInteractor
	log      *slog.Logger
}

func NewMeetingController(meetings service.MeetingInteractor, log *slog.Logger) *MeetingController {
	if log == nil {
		log = slog.Default()
	}
	return &MeetingController{meetings: meetings, log: log}
}

func (c *MeetingController) CreateMeeting(ctx *gin.Context) {
	type createMeetingRequest struct {
		Title           string `json:"title"`
		PreferredRegion string `json:"preferred_region"`
	}
	var req createMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "invalid request body", codeInvalidRequest)
		return
	}

	start := time.Now()
	result, err := c.meetings.Create(ctx.Request.Context(), service.CreateMeetingInput{
		Title:           req.Title,
		PreferredRegion: req.PreferredRegion,
		ClientIP:        ctx.ClientIP(),
	})
	if err != nil {
		c.writeCreateError(ctx, err)
		return
	}

	body := result.Body
	body["metadata"] = gin.H{
		"creation_time_ms":     time.Since(start).Milliseconds(),
		"cached":               true,
		"rate_limit_remaining": ctx.Writer.Header().Get("X-RateLimit-Remaining"),
	}
	ctx.JSON(http.StatusOK, body)
}

func (c *MeetingController) JoinParticipant(ctx *gin.Context) {
	type joinRequest struct {
		Name                string `json:"name"`
		PresetName          string `json:"preset_name"`
		CustomParticipantID string `json:"custom_participant_id"`
		Picture             string `json:"picture"`
	}
	var req joinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "invalid request body", codeInvalidRequest)
		return
	}

	start := time.Now()
	result, err := c.meetings.Join(ctx.Request.Context(), service.JoinMeetingInput{
		MeetingID:           ctx.Param("meetingId"),
		Name:                req.Name,
		PresetName:          req.PresetName,
		CustomParticipantID: req.CustomParticipantID,
		Picture:             req.Picture,
	})
	if err != nil {
		c.writeJoinError(ctx, err)
		return
	}

	// null when the meeting was never cached locally
	var count any
	if result.ParticipantCount != nil {
		count = *result.ParticipantCount
	}

	body := result.Body
	body["metadata"] = gin.H{
		"join_time_ms":         time.Since(start).Milliseconds(),
		"participant_count":    count,
		"rate_limit_remaining": ctx.Writer.Header().Get("X-RateLimit-Remaining"),
	}
	ctx.JSON(http.StatusOK, body)
}

func (c *MeetingController) GetMeeting(ctx *gin.Context) {
	result, err := c.meetings.Get(ctx.Request.Context(), ctx.Param("meetingId"))
	if err != nil {
		if errors.Is(err, realtimekit.ErrNotFound) {
			writeError(ctx, http.StatusNotFound, "Meeting not found", codeMeetingNotFound)
			return
		}
		c.log.Error("meeting info failed", "meeting_id", ctx.Param("meetingId"), "error", err)
		writeError(ctx, http.StatusInternalServerError, "Failed to fetch meeting information", codeServerError)
		return
	}

	if result.Cached {
		ctx.JSON(http.StatusOK, gin.H{"meeting": result.Record, "cached": true})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"meeting": result.Body, "cached": false})
}

func (c *MeetingController) writeCreateError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		writeError(ctx, http.StatusBadRequest, err.Error(), codeInvalidTitle)
	case errors.Is(err, service.ErrTitleTooLong):
		writeError(ctx, http.StatusBadRequest, err.Error(), codeInvalidTitle)
	case errors.Is(err, realtimekit.ErrTimeout):
		writeError(ctx, http.StatusRequestTimeout, "Request timeout. Please try again.", codeTimeout)
	case errors.Is(err, realtimekit.ErrRateLimited):
		writeError(ctx, http.StatusTooManyRequests, "Rate limit exceeded on CloudFlare API. Please try again later.", codeRateLimited)
	case errors.Is(err, realtimekit.ErrNotFound):
		writeError(ctx, http.StatusNotFound, "Invalid request to CloudFlare API", codeClientError)
	default:
		var apiErr *realtimekit.APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			writeError(ctx, apiErr.StatusCode, apiErr.Message, codeClientError)
			return
		}
		writeError(ctx, http.StatusInternalServerError, "Failed to create meeting. Please try again.", codeServerError)
	}
}

func (c *MeetingController) writeJoinError(ctx *gin.Context, err error) {
	var limitErr *service.ParticipantLimitError
	var apiErr *realtimekit.APIError

	switch {
	case errors.Is(err, service.ErrInvalidMeetingID):
		writeError(ctx, http.StatusBadRequest, err.Error(), codeInvalidMeetingID)
	case errors.Is(err, service.ErrNameRequired):
		writeError(ctx, http.StatusBadRequest, err.Error(), codeInvalidName)
	case errors.Is(err, service.ErrNameTooLong):
		writeError(ctx, http.StatusBadRequest, err.Error(), codeInvalidName)
	case errors.Is(err, service.ErrInvalidPreset):
		writeError(ctx, http.StatusBadRequest, err.Error(), codeInvalidPreset)
	case errors.As(err, &limitErr):
		ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":            "Meeting has reached maximum participant limit",
			"code":             codeParticipantLimit,
			"max_participants": limitErr.Max,
		})
	case errors.Is(err, realtimekit.ErrTimeout):
		writeError(ctx, http.StatusRequestTimeout, "Request timeout. Please try again.", codeTimeout)
	case errors.Is(err, realtimekit.ErrNotFound):
		writeError(ctx, http.StatusNotFound, "Meeting not found. Please check the meeting ID.", codeMeetingNotFound)
	case errors.Is(err, realtimekit.ErrRateLimited):
		writeError(ctx, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", codeRateLimited)
	case errors.As(err, &apiErr) && apiErr.IsClientError():
		writeError(ctx, apiErr.StatusCode, apiErr.Message, codeClientError)
	default:
		writeError(ctx, http.StatusInternalServerError, "Failed to join meeting. Please try again.", codeServerError)
	}
}
