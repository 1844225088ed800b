package content

import (
	_ "embed"
	"fmt"
	"strings"

	"fitcourse/internal/core/domain/model/kernel"
	"fitcourse/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

//go:embed course.yaml
var embeddedCourse []byte

// Message keys of the catalog's messages section.
const (
	MessageDayOpened      = "day_opened"
	MessageNewDay         = "new_day"
	MessageAckPositive    = "ack_positive"
	MessageAckNeutral     = "ack_neutral"
	MessageAckNegative    = "ack_negative"
	MessageCourseComplete = "course_complete"
)

// Reminder kinds of the catalog's reminders section.
const (
	ReminderMorning  = "morning"
	ReminderTraining = "training"
	ReminderEvening  = "evening"
)

// Block is one section of a training, e.g. warm-up.
type Block struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Exercises   []string `yaml:"exercises"`
}

// Training is the static content of one course day.
type Training struct {
	Day         int      `yaml:"day"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Blocks      []Block  `yaml:"blocks"`
	Tips        []string `yaml:"tips"`
	Motivation  string   `yaml:"motivation"`
}

// Render produces the plain-text message sent to participants. The output
// depends only on the training, so every caller sends identical text.
func (t Training) Render() string {
	var b strings.Builder
	b.WriteString(t.Title)
	b.WriteString("\n\n")
	b.WriteString(t.Description)
	b.WriteString("\n")
	for _, block := range t.Blocks {
		fmt.Fprintf(&b, "\n%s\n", block.Name)
		if block.Description != "" {
			fmt.Fprintf(&b, "%s\n", block.Description)
		}
		for _, exercise := range block.Exercises {
			fmt.Fprintf(&b, "- %s\n", exercise)
		}
	}
	if len(t.Tips) > 0 {
		b.WriteString("\nTips:\n")
		for _, tip := range t.Tips {
			fmt.Fprintf(&b, "- %s\n", tip)
		}
	}
	if t.Motivation != "" {
		fmt.Fprintf(&b, "\n%s", t.Motivation)
	}
	return b.String()
}

type document struct {
	Days      []Training        `yaml:"days"`
	Reminders map[string]string `yaml:"reminders"`
	Messages  map[string]string `yaml:"messages"`
}

// Catalog is the fixed course content, indexed 1..kernel.MaxCourseDay.
type Catalog struct {
	days      map[kernel.CourseDay]Training
	reminders map[string]string
	messages  map[string]string
}

// DefaultCatalog parses the course bundled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(embeddedCourse)
}

// ParseCatalog parses a YAML course document. Every day from
// kernel.FirstCourseDay to kernel.MaxCourseDay must be present exactly once.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("course document", err)
	}

	c := &Catalog{
		days:      make(map[kernel.CourseDay]Training, len(doc.Days)),
		reminders: doc.Reminders,
		messages:  doc.Messages,
	}
	for _, t := range doc.Days {
		day, err := kernel.NewCourseDay(t.Day)
		if err != nil {
			return nil, err
		}
		if _, dup := c.days[day]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("course document", fmt.Errorf("day %d is defined twice", t.Day))
		}
		c.days[day] = t
	}
	for d := kernel.FirstCourseDay; d <= kernel.MaxCourseDay; d++ {
		if _, ok := c.days[d]; !ok {
			return nil, errs.NewContentNotFoundError(d.Int())
		}
	}
	return c, nil
}

// Day returns the training of day or a ContentNotFoundError.
func (c *Catalog) Day(day int) (Training, error) {
	t, ok := c.days[kernel.CourseDay(day)]
	if !ok {
		return Training{}, errs.NewContentNotFoundError(day)
	}
	return t, nil
}

// Reminder returns the reminder text of kind.
func (c *Catalog) Reminder(kind string) (string, bool) {
	text, ok := c.reminders[kind]
	return text, ok && text != ""
}

// Message formats the message stored under key. Unknown keys render as the
// key itself so that a missing entry is visible rather than silent.
func (c *Catalog) Message(key string, args ...any) string {
	tmpl, ok := c.messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
