// Package servers provides primitives to interact with the openapi HTTP API.
//
// The models and the echo server wrapper follow api/openapi.yml; regenerate
// them with go generate ./api.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Defines values for FeedbackResultAction.
const (
	AdvanceNow   FeedbackResultAction = "advance_now"
	None         FeedbackResultAction = "none"
	ScheduleOpen FeedbackResultAction = "schedule_open"
)

// Defines values for FeedbackResultSentiment.
const (
	Negative FeedbackResultSentiment = "negative"
	Neutral  FeedbackResultSentiment = "neutral"
	Positive FeedbackResultSentiment = "positive"
)

// Defines values for GetContentParamsOrigin.
const (
	GetContentParamsOriginScheduler   GetContentParamsOrigin = "scheduler"
	GetContentParamsOriginUserRequest GetContentParamsOrigin = "user_request"
)

// Button defines model for Button.
type Button struct {
	Data string `json:"data"`
	Text string `json:"text"`
}

// ContentMessage defines model for ContentMessage.
type ContentMessage struct {
	Buttons *[]Button `json:"buttons,omitempty"`
	Image   *string   `json:"image,omitempty"`
	Text    string    `json:"text"`
	UserId  int64     `json:"user_id"`
}

// Draft defines model for Draft.
type Draft struct {
	Clarity    int   `json:"clarity"`
	Day        int   `json:"day"`
	Difficulty int   `json:"difficulty"`
	UserId     int64 `json:"user_id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FeedbackResult defines model for FeedbackResult.
type FeedbackResult struct {
	Action     FeedbackResultAction    `json:"action"`
	CurrentDay int                     `json:"current_day"`
	OpensAt    *time.Time              `json:"opens_at,omitempty"`
	Sentiment  FeedbackResultSentiment `json:"sentiment"`
	TargetDay  *int                    `json:"target_day,omitempty"`
}

// FeedbackResultAction defines model for FeedbackResult.Action.
type FeedbackResultAction string

// FeedbackResultSentiment defines model for FeedbackResult.Sentiment.
type FeedbackResultSentiment string

// Job defines model for Job.
type Job struct {
	CronSpec      *string   `json:"cron_spec,omitempty"`
	IsActive      bool      `json:"is_active"`
	JobId         string    `json:"job_id"`
	JobType       string    `json:"job_type"`
	ScheduledTime time.Time `json:"scheduled_time"`
	UserId        *int64    `json:"user_id,omitempty"`
}

// Participant defines model for Participant.
type Participant struct {
	CurrentDay        int       `json:"current_day"`
	IsPremium         bool      `json:"is_premium"`
	LastActivity      time.Time `json:"last_activity"`
	Timezone          string    `json:"timezone"`
	TrainingCompleted bool      `json:"training_completed"`
	UserId            int64     `json:"user_id"`
}

// Progress defines model for Progress.
type Progress struct {
	CurrentDay         int       `json:"current_day"`
	DaysCompleted      int       `json:"days_completed"`
	IsPremium          bool      `json:"is_premium"`
	LastActivity       time.Time `json:"last_activity"`
	ProgressPercentage float64   `json:"progress_percentage"`
	Toggles            int64     `json:"toggles"`
	TrainingCompleted  bool      `json:"training_completed"`
	UserId             int64     `json:"user_id"`
}

// Rating defines model for Rating.
type Rating = int

// RegisterParticipantRequest defines model for RegisterParticipantRequest.
type RegisterParticipantRequest struct {
	IsPremium *bool   `json:"is_premium,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
	UserId    int64   `json:"user_id"`
}

// StructuredFeedbackRequest defines model for StructuredFeedbackRequest.
type StructuredFeedbackRequest struct {
	Clarity    Rating  `json:"clarity"`
	Comments   *string `json:"comments,omitempty"`
	Difficulty Rating  `json:"difficulty"`
}

// SubmitDraftRequest defines model for SubmitDraftRequest.
type SubmitDraftRequest struct {
	Comments *string `json:"comments,omitempty"`
}

// TextFeedbackRequest defines model for TextFeedbackRequest.
type TextFeedbackRequest struct {
	Text string `json:"text"`
}

// ToggleTrainingResponse defines model for ToggleTrainingResponse.
type ToggleTrainingResponse struct {
	TrainingCompleted bool `json:"training_completed"`
}

// UpdateDraftRequest defines model for UpdateDraftRequest.
type UpdateDraftRequest struct {
	Clarity    *Rating `json:"clarity,omitempty"`
	Difficulty *Rating `json:"difficulty,omitempty"`
}

// Day defines model for Day.
type Day = int

// UserId defines model for UserId.
type UserId = int64

// ClearAllDataParams defines parameters for ClearAllData.
type ClearAllDataParams struct {
	Rearm *bool `form:"rearm,omitempty" json:"rearm,omitempty"`
}

// ListJobsParams defines parameters for ListJobs.
type ListJobsParams struct {
	UserId *int64 `form:"user_id,omitempty" json:"user_id,omitempty"`
	Active *bool  `form:"active,omitempty" json:"active,omitempty"`
}

// GetContentParams defines parameters for GetContent.
type GetContentParams struct {
	Origin *GetContentParamsOrigin `form:"origin,omitempty" json:"origin,omitempty"`
}

// GetContentParamsOrigin defines parameters for GetContent.
type GetContentParamsOrigin string

// RegisterParticipantJSONRequestBody defines body for RegisterParticipant for application/json ContentType.
type RegisterParticipantJSONRequestBody = RegisterParticipantRequest

// UpdateDraftJSONRequestBody defines body for UpdateDraft for application/json ContentType.
type UpdateDraftJSONRequestBody = UpdateDraftRequest

// SubmitDraftJSONRequestBody defines body for SubmitDraft for application/json ContentType.
type SubmitDraftJSONRequestBody = SubmitDraftRequest

// SubmitFeedbackJSONRequestBody defines body for SubmitFeedback for application/json ContentType.
type SubmitFeedbackJSONRequestBody = StructuredFeedbackRequest

// SubmitTextFeedbackJSONRequestBody defines body for SubmitTextFeedback for application/json ContentType.
type SubmitTextFeedbackJSONRequestBody = TextFeedbackRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Cancel every job and delete all participant data
	// (DELETE /api/v1/admin/data)
	ClearAllData(ctx echo.Context, params ClearAllDataParams) error
	// List scheduled jobs
	// (GET /api/v1/admin/jobs)
	ListJobs(ctx echo.Context, params ListJobsParams) error
	// Register or re-register a participant
	// (POST /api/v1/participants)
	RegisterParticipant(ctx echo.Context) error
	// Send the training of a day
	// (GET /api/v1/participants/{id}/days/{day}/content)
	GetContent(ctx echo.Context, id UserId, day Day, params GetContentParams) error
	// Update the rating draft of a day
	// (PUT /api/v1/participants/{id}/days/{day}/draft)
	UpdateDraft(ctx echo.Context, id UserId, day Day) error
	// Submit the rating draft as structured feedback
	// (POST /api/v1/participants/{id}/days/{day}/draft/submit)
	SubmitDraft(ctx echo.Context, id UserId, day Day) error
	// Submit structured feedback
	// (POST /api/v1/participants/{id}/days/{day}/feedback)
	SubmitFeedback(ctx echo.Context, id UserId, day Day) error
	// Submit free-text feedback
	// (POST /api/v1/participants/{id}/days/{day}/feedback/text)
	SubmitTextFeedback(ctx echo.Context, id UserId, day Day) error
	// Course progress of a participant
	// (GET /api/v1/participants/{id}/progress)
	GetProgress(ctx echo.Context, id UserId) error
	// Flip the completion flag of the current day
	// (POST /api/v1/participants/{id}/training/toggle)
	ToggleTraining(ctx echo.Context, id UserId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ClearAllData converts echo context to params.
func (w *ServerInterfaceWrapper) ClearAllData(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ClearAllDataParams
	// ------------- Optional query parameter "rearm" -------------

	err = runtime.BindQueryParameter("form", true, false, "rearm", ctx.QueryParams(), &params.Rearm)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter rearm: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ClearAllData(ctx, params)
	return err
}

// ListJobs converts echo context to params.
func (w *ServerInterfaceWrapper) ListJobs(ctx echo.Context) error {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params ListJobsParams
	// ------------- Optional query parameter "user_id" -------------

	err = runtime.BindQueryParameter("form", true, false, "user_id", ctx.QueryParams(), &params.UserId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter user_id: %s", err))
	}

	// ------------- Optional query parameter "active" -------------

	err = runtime.BindQueryParameter("form", true, false, "active", ctx.QueryParams(), &params.Active)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter active: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListJobs(ctx, params)
	return err
}

// RegisterParticipant converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterParticipant(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.RegisterParticipant(ctx)
	return err
}

// GetContent converts echo context to params.
func (w *ServerInterfaceWrapper) GetContent(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "id" -------------
	var id UserId

	err = runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	// ------------- Path parameter "day" -------------
	var day Day

	err = runtime.BindStyledParameterWithOptions("simple", "day", ctx.Param("day"), &day, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter day: %s", err))
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params GetContentParams
	// ------------- Optional query parameter "origin" -------------

	err = runtime.BindQueryParameter("form", true, false, "origin", ctx.QueryParams(), &params.Origin)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter origin: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetContent(ctx, id, day, params)
	return err
}

// UpdateDraft converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateDraft(ctx echo.Context) error {
	id, day, err := bindUserDay(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.UpdateDraft(ctx, id, day)
	return err
}

// SubmitDraft converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitDraft(ctx echo.Context) error {
	id, day, err := bindUserDay(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SubmitDraft(ctx, id, day)
	return err
}

// SubmitFeedback converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitFeedback(ctx echo.Context) error {
	id, day, err := bindUserDay(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SubmitFeedback(ctx, id, day)
	return err
}

// SubmitTextFeedback converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitTextFeedback(ctx echo.Context) error {
	id, day, err := bindUserDay(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SubmitTextFeedback(ctx, id, day)
	return err
}

// GetProgress converts echo context to params.
func (w *ServerInterfaceWrapper) GetProgress(ctx echo.Context) error {
	id, err := bindUserID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetProgress(ctx, id)
	return err
}

// ToggleTraining converts echo context to params.
func (w *ServerInterfaceWrapper) ToggleTraining(ctx echo.Context) error {
	id, err := bindUserID(ctx)
	if err != nil {
		return err
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ToggleTraining(ctx, id)
	return err
}

func bindUserID(ctx echo.Context) (UserId, error) {
	var id UserId

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func bindUserDay(ctx echo.Context) (UserId, Day, error) {
	id, err := bindUserID(ctx)
	if err != nil {
		return 0, 0, err
	}

	var day Day

	err = runtime.BindStyledParameterWithOptions("simple", "day", ctx.Param("day"), &day, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter day: %s", err))
	}
	return id, day, nil
}

// This is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.DELETE(baseURL+"/api/v1/admin/data", wrapper.ClearAllData)
	router.GET(baseURL+"/api/v1/admin/jobs", wrapper.ListJobs)
	router.POST(baseURL+"/api/v1/participants", wrapper.RegisterParticipant)
	router.GET(baseURL+"/api/v1/participants/:id/days/:day/content", wrapper.GetContent)
	router.PUT(baseURL+"/api/v1/participants/:id/days/:day/draft", wrapper.UpdateDraft)
	router.POST(baseURL+"/api/v1/participants/:id/days/:day/draft/submit", wrapper.SubmitDraft)
	router.POST(baseURL+"/api/v1/participants/:id/days/:day/feedback", wrapper.SubmitFeedback)
	router.POST(baseURL+"/api/v1/participants/:id/days/:day/feedback/text", wrapper.SubmitTextFeedback)
	router.GET(baseURL+"/api/v1/participants/:id/progress", wrapper.GetProgress)
	router.POST(baseURL+"/api/v1/participants/:id/training/toggle", wrapper.ToggleTraining)
}
