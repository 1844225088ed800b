package http

import (
	"fitcourse/internal/core/application/usecases/commands"
	"fitcourse/internal/core/application/usecases/queries"
	"fitcourse/internal/core/domain/model/feedback"
	"fitcourse/internal/core/domain/model/user"
	"fitcourse/internal/core/ports"
	"fitcourse/internal/generated/servers"
)

func participantFromDomain(u *user.User) servers.Participant {
	return servers.Participant{
		UserId:            u.ID().Int64(),
		Timezone:          u.Timezone(),
		CurrentDay:        u.CurrentDay().Int(),
		TrainingCompleted: u.TrainingCompleted(),
		IsPremium:         u.IsPremium(),
		LastActivity:      u.LastActivity(),
	}
}

func draftFromDomain(d feedback.Draft) servers.Draft {
	return servers.Draft{
		UserId:     d.UserID.Int64(),
		Day:        d.Day.Int(),
		Difficulty: d.Difficulty.Int(),
		Clarity:    d.Clarity.Int(),
	}
}

func feedbackResultFromDomain(r commands.FeedbackResult) servers.FeedbackResult {
	out := servers.FeedbackResult{
		Sentiment:  servers.FeedbackResultSentiment(r.Sentiment.String()),
		Action:     servers.FeedbackResultAction(r.Decision.Action.String()),
		CurrentDay: r.CurrentDay.Int(),
	}
	if target := r.Decision.TargetDay.Int(); target > 0 {
		out.TargetDay = &target
	}
	if !r.OpensAt.IsZero() {
		opensAt := r.OpensAt
		out.OpensAt = &opensAt
	}
	return out
}

func contentFromMessage(m ports.Message) servers.ContentMessage {
	out := servers.ContentMessage{
		UserId: m.UserID.Int64(),
		Text:   m.Text,
	}
	if m.Image != "" {
		image := m.Image
		out.Image = &image
	}
	if len(m.Buttons) > 0 {
		buttons := make([]servers.Button, 0, len(m.Buttons))
		for _, b := range m.Buttons {
			buttons = append(buttons, servers.Button{Text: b.Text, Data: b.Data})
		}
		out.Buttons = &buttons
	}
	return out
}

func progressFromQuery(p queries.GetProgressQueryResponse) servers.Progress {
	return servers.Progress{
		UserId:             p.UserID,
		CurrentDay:         p.CurrentDay,
		TrainingCompleted:  p.TrainingCompleted,
		IsPremium:          p.IsPremium,
		DaysCompleted:      p.DaysCompleted,
		ProgressPercentage: p.Percentage,
		Toggles:            p.Toggles,
		LastActivity:       p.LastActivity,
	}
}

func jobsFromQuery(rows []queries.ListJobsQueryResponse) []servers.Job {
	out := make([]servers.Job, 0, len(rows))
	for _, r := range rows {
		j := servers.Job{
			JobId:         r.JobID,
			UserId:        r.UserID,
			JobType:       r.JobType,
			ScheduledTime: r.ScheduledTime,
			IsActive:      r.IsActive,
		}
		if r.CronSpec != "" {
			spec := r.CronSpec
			j.CronSpec = &spec
		}
		out = append(out, j)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
