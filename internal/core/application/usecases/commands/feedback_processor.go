package commands

import (
	"context"
	"log/slog"
	"time"

	"fitcourse/internal/core/domain/model/analytics"
	"fitcourse/internal/core/domain/model/content"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/job"
	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/core/domain/services"
	"fitcourse/internal/core/ports"
)

// FeedbackResult reports what a submission changed.
type FeedbackResult struct {
	Sentiment feedback.Sentiment
	Decision  services.Decision
	// OpensAt is set when the next day was scheduled.
	OpensAt time.Time
	// CurrentDay is the participant's day after the submission.
	CurrentDay kernel.CourseDay
}

// FeedbackDeps are the collaborators shared by the feedback handlers.
type FeedbackDeps struct {
	UoWFactory  UoWFactory
	Scheduler   ports.JobScheduler
	Drafts      ports.DraftStore
	Notifier    ports.Notifier
	Catalog     *content.Catalog
	Policy      services.ProgressionPolicy
	Clock       kernel.Clock
	DefaultZone string
}

// feedbackProcessor appends a record and applies the progression policy.
//
// Order of effects:
//  1. record, analytics and an immediate advance commit together
//  2. the draft is cleared and the acknowledgement is sent, both best effort
//  3. the open_day job is armed (positive) or disarmed (advance); a failure
//     here is returned but never undoes steps 1 and 2
type feedbackProcessor struct {
	deps   FeedbackDeps
	logger *slog.Logger
}

type recordBuilder func(now time.Time) (*feedback.Record, error)

// process runs a submission. With disarmNext, the open_day job of the day
// after day is disarmed even when the policy did not advance.
func (p feedbackProcessor) process(
	ctx context.Context,
	userID kernel.UserID,
	day kernel.CourseDay,
	build recordBuilder,
	disarmNext bool,
) (FeedbackResult, error) {
	now := p.deps.Clock.Now()

	result, zone, err := p.commit(ctx, userID, day, build, now)
	if err != nil {
		return FeedbackResult{}, err
	}

	if err = p.deps.Drafts.Delete(ctx, userID, day); err != nil {
		p.logger.WarnContext(ctx, "failed to clear rating draft", "user_id", userID.Int64(), "error", err)
	}

	notify(ctx, p.deps.Notifier, p.logger, p.acknowledgement(userID, result))

	switch result.Decision.Action {
	case services.ScheduleOpen:
		openJob, jobErr := job.NewOpenDayJob(userID, result.Decision.TargetDay, result.OpensAt, now)
		if jobErr != nil {
			return result, jobErr
		}
		if err = p.deps.Scheduler.Arm(ctx, openJob); err != nil {
			return result, err
		}
		p.logger.InfoContext(ctx, "next day scheduled",
			"user_id", userID.Int64(), "day", result.Decision.TargetDay.Int(),
			"opens_at", result.OpensAt, "zone", zone.ID())
	case services.AdvanceNow:
		if err = p.deps.Scheduler.Disarm(ctx, job.OpenDayKey(result.Decision.TargetDay, userID)); err != nil {
			return result, err
		}
		p.logger.InfoContext(ctx, "day advanced by feedback",
			"user_id", userID.Int64(), "day", result.CurrentDay.Int())
	default:
		if next, nextErr := day.Next(); disarmNext && nextErr == nil {
			if err = p.deps.Scheduler.Disarm(ctx, job.OpenDayKey(next, userID)); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (p feedbackProcessor) commit(
	ctx context.Context,
	userID kernel.UserID,
	day kernel.CourseDay,
	build recordBuilder,
	now time.Time,
) (FeedbackResult, kernel.Zone, error) {
	uow := p.deps.UoWFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FeedbackResult{}, kernel.Zone{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	participant, err := users.Get(ctx, userID)
	if err != nil {
		return FeedbackResult{}, kernel.Zone{}, err
	}

	record, err := build(now)
	if err != nil {
		return FeedbackResult{}, kernel.Zone{}, err
	}
	if err = uow.FeedbackRepository().Add(ctx, record); err != nil {
		return FeedbackResult{}, kernel.Zone{}, err
	}

	events := uow.AnalyticsRepository()
	if err = recordEvent(ctx, events, userID, analytics.FeedbackSubmitted, map[string]any{
		"day":        day.Int(),
		"difficulty": record.Difficulty().Int(),
		"clarity":    record.Clarity().Int(),
		"kind":       string(record.Kind()),
		"sentiment":  record.Sentiment().String(),
	}, now); err != nil {
		return FeedbackResult{}, kernel.Zone{}, err
	}

	decision, err := p.deps.Policy.OnFeedback(participant, day, record.Sentiment())
	if err != nil {
		return FeedbackResult{}, kernel.Zone{}, err
	}

	result := FeedbackResult{Sentiment: record.Sentiment(), Decision: decision}
	zone := participantZone(ctx, participant, p.deps.DefaultZone, p.logger)

	switch decision.Action {
	case services.ScheduleOpen:
		result.OpensAt = p.deps.Policy.OpenDayAt(zone, now)
	case services.AdvanceNow:
		changed, openErr := participant.OpenDay(decision.TargetDay)
		if openErr != nil {
			return FeedbackResult{}, kernel.Zone{}, openErr
		}
		if changed {
			if err = users.Update(ctx, participant); err != nil {
				return FeedbackResult{}, kernel.Zone{}, err
			}
			if err = recordEvent(ctx, events, userID, analytics.DayOpened,
				map[string]any{"day": decision.TargetDay.Int(), "origin": "feedback"}, now); err != nil {
				return FeedbackResult{}, kernel.Zone{}, err
			}
		}
	}
	result.CurrentDay = participant.CurrentDay()

	if err = uow.Commit(ctx); err != nil {
		return FeedbackResult{}, kernel.Zone{}, err
	}

	return result, zone, nil
}

func (p feedbackProcessor) acknowledgement(userID kernel.UserID, result FeedbackResult) ports.Message {
	msg := ports.Message{UserID: userID}
	switch result.Decision.Action {
	case services.ScheduleOpen:
		msg.Text = p.deps.Catalog.Message(content.MessageAckPositive)
	case services.AdvanceNow:
		msg.Text = p.deps.Catalog.Message(content.MessageAckNegative)
		msg.Buttons = []ports.Button{openTrainingButton(result.CurrentDay)}
	default:
		msg.Text = p.deps.Catalog.Message(content.MessageAckNeutral)
	}
	return msg
}
