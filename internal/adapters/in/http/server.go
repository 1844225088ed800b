package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/application/usecases/queries"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type (
	ParticipantRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterParticipantCommand) (*user.User, error)
	}
	TrainingToggler interface {
		Handle(ctx context.Context, cmd commands.ToggleTrainingCommand) (bool, error)
	}
	DraftUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateRatingDraftCommand) (feedback.Draft, error)
	}
	StructuredFeedbackSubmitter interface {
		Handle(ctx context.Context, cmd commands.SubmitStructuredFeedbackCommand) (commands.FeedbackResult, error)
		HandleDraft(ctx context.Context, cmd commands.SubmitDraftFeedbackCommand) (commands.FeedbackResult, error)
	}
	TextFeedbackSubmitter interface {
		Handle(ctx context.Context, cmd commands.SubmitTextFeedbackCommand) (commands.FeedbackResult, error)
	}
	ContentDispatcher interface {
		Handle(ctx context.Context, cmd commands.DispatchContentCommand) (ports.Message, error)
	}
	DataClearer interface {
		Handle(ctx context.Context, cmd commands.ClearAllDataCommand) error
	}
	ProgressReader interface {
		Handle(ctx context.Context, query queries.GetProgressQuery) (queries.GetProgressQueryResponse, error)
	}
	JobLister interface {
		Handle(ctx context.Context, query queries.ListJobsQuery) ([]queries.ListJobsQueryResponse, error)
	}
)

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	Register           ParticipantRegistrar
	Toggle             TrainingToggler
	UpdateDraft        DraftUpdater
	StructuredFeedback StructuredFeedbackSubmitter
	TextFeedback       TextFeedbackSubmitter
	Dispatch           ContentDispatcher
	ClearAll           DataClearer
	Progress           ProgressReader
	ListJobs           JobLister
}

// Server implements servers.ServerInterface. It stands in for the chat
// transport and the admin screens.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http_server")}
}

// Register mounts the API behind contract validation and serves the
// contract under /swagger.
func (s *Server) Register(e *echo.Echo) error {
	doc, err := servers.GetSwagger()
	if err != nil {
		return err
	}

	validator, err := requestValidator(doc)
	if err != nil {
		return err
	}
	e.Use(validator)

	servers.RegisterHandlers(e, s)
	if err = registerDocs(e, doc); err != nil {
		return fmt.Errorf("swagger docs: %w", err)
	}
	return nil
}

// RegisterParticipant handles POST /api/v1/participants.
func (s *Server) RegisterParticipant(c echo.Context) error {
	var req servers.RegisterParticipantRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var timezone string
	if req.Timezone != nil {
		timezone = *req.Timezone
	}
	isPremium := req.IsPremium != nil && *req.IsPremium

	cmd, err := commands.NewRegisterParticipantCommand(kernel.UserID(req.UserId), timezone, isPremium)
	if err != nil {
		return s.fail(c, err)
	}

	participant, err := s.h.Register.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, participantFromDomain(participant))
}

// GetProgress handles GET /api/v1/participants/{id}/progress.
func (s *Server) GetProgress(c echo.Context, id servers.UserId) error {
	query, err := queries.NewGetProgressQuery(kernel.UserID(id))
	if err != nil {
		return s.fail(c, err)
	}

	progress, err := s.h.Progress.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, progressFromQuery(progress))
}

// ToggleTraining handles POST /api/v1/participants/{id}/training/toggle.
func (s *Server) ToggleTraining(c echo.Context, id servers.UserId) error {
	cmd, err := commands.NewToggleTrainingCommand(kernel.UserID(id))
	if err != nil {
		return s.fail(c, err)
	}

	completed, err := s.h.Toggle.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, servers.ToggleTrainingResponse{TrainingCompleted: completed})
}

// GetContent handles GET /api/v1/participants/{id}/days/{day}/content. The
// content is also handed to the notifier.
func (s *Server) GetContent(c echo.Context, id servers.UserId, day servers.Day, params servers.GetContentParams) error {
	origin := commands.OriginUserRequest
	if params.Origin != nil && *params.Origin == servers.GetContentParamsOriginScheduler {
		origin = commands.OriginScheduler
	}

	cmd, err := commands.NewDispatchContentCommand(kernel.UserID(id), kernel.CourseDay(day), origin)
	if err != nil {
		return s.fail(c, err)
	}

	msg, err := s.h.Dispatch.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, contentFromMessage(msg))
}

// UpdateDraft handles PUT /api/v1/participants/{id}/days/{day}/draft.
func (s *Server) UpdateDraft(c echo.Context, id servers.UserId, day servers.Day) error {
	var req servers.UpdateDraftRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateRatingDraftCommand(kernel.UserID(id), kernel.CourseDay(day), req.Difficulty, req.Clarity)
	if err != nil {
		return s.fail(c, err)
	}

	draft, err := s.h.UpdateDraft.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, draftFromDomain(draft))
}

// SubmitDraft handles POST /api/v1/participants/{id}/days/{day}/draft/submit.
func (s *Server) SubmitDraft(c echo.Context, id servers.UserId, day servers.Day) error {
	var req servers.SubmitDraftRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSubmitDraftFeedbackCommand(kernel.UserID(id), kernel.CourseDay(day), deref(req.Comments))
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.StructuredFeedback.HandleDraft(c.Request().Context(), cmd)
	return s.feedbackResponse(c, result, err)
}

// SubmitFeedback handles POST /api/v1/participants/{id}/days/{day}/feedback.
func (s *Server) SubmitFeedback(c echo.Context, id servers.UserId, day servers.Day) error {
	var req servers.StructuredFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSubmitStructuredFeedbackCommand(
		kernel.UserID(id), kernel.CourseDay(day), req.Difficulty, req.Clarity, deref(req.Comments))
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.StructuredFeedback.Handle(c.Request().Context(), cmd)
	return s.feedbackResponse(c, result, err)
}

// SubmitTextFeedback handles POST /api/v1/participants/{id}/days/{day}/feedback/text.
func (s *Server) SubmitTextFeedback(c echo.Context, id servers.UserId, day servers.Day) error {
	var req servers.TextFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSubmitTextFeedbackCommand(kernel.UserID(id), kernel.CourseDay(day), req.Text)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.TextFeedback.Handle(c.Request().Context(), cmd)
	return s.feedbackResponse(c, result, err)
}

// ListJobs handles GET /api/v1/admin/jobs. Only active jobs are listed
// unless active=false.
func (s *Server) ListJobs(c echo.Context, params servers.ListJobsParams) error {
	var userID *kernel.UserID
	if params.UserId != nil {
		uid := kernel.UserID(*params.UserId)
		userID = &uid
	}
	activeOnly := params.Active == nil || *params.Active

	query, err := queries.NewListJobsQuery(userID, activeOnly)
	if err != nil {
		return s.fail(c, err)
	}

	jobs, err := s.h.ListJobs.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, jobsFromQuery(jobs))
}

// ClearAllData handles DELETE /api/v1/admin/data. System jobs stay disarmed
// unless rearm=true.
func (s *Server) ClearAllData(c echo.Context, params servers.ClearAllDataParams) error {
	rearm := params.Rearm != nil && *params.Rearm
	if err := s.h.ClearAll.Handle(c.Request().Context(), commands.NewClearAllDataCommand(rearm)); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// feedbackResponse reports a committed submission even when arming the next
// day failed. A committed result always carries the participant's day.
func (s *Server) feedbackResponse(c echo.Context, result commands.FeedbackResult, err error) error {
	if err != nil && result.CurrentDay == 0 {
		return s.fail(c, err)
	}
	if err != nil {
		s.logger.ErrorContext(c.Request().Context(), "feedback stored but next day was not scheduled", "error", err)
	}
	return c.JSON(http.StatusOK, feedbackResultFromDomain(result))
}
