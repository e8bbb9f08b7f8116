// Package reminder mails the learner their daily study digest on a cron
// schedule, so a generated plan is pushed to them instead of waiting to be
// polled.
package reminder

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"studycoach/core"
	"studycoach/core/plan"
)

type Service struct {
	planSvc *plan.Service
	mailSvc core.EmailService
	logger  core.Logger

	recipient mail.Address
	schedule  string
	loc       *time.Location
	c         *cron.Cron
}

// NewService builds the digest job from config. Returns (nil, nil) when no
// recipient is configured; the job is simply not run.
func NewService(conf *core.Config, planSvc *plan.Service, mailSvc core.EmailService, logger core.Logger) (*Service, error) {
	if conf.Reminder.Recipient == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(conf.Reminder.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading reminder timezone %q", conf.Reminder.Timezone)
	}
	return &Service{
		planSvc:   planSvc,
		mailSvc:   mailSvc,
		logger:    logger,
		recipient: mail.Address{Address: conf.Reminder.Recipient},
		schedule:  conf.Reminder.Schedule,
		loc:       loc,
	}, nil
}

func (svc *Service) Start() error {
	svc.c = cron.New(cron.WithLocation(svc.loc))
	if _, err := svc.c.AddFunc(svc.schedule, svc.run); err != nil {
		return errors.Wrapf(err, "scheduling reminder %q", svc.schedule)
	}
	svc.c.Start()
	return nil
}

func (svc *Service) Stop() {
	if svc.c != nil {
		<-svc.c.Stop().Done()
	}
}

func (svc *Service) run() {
	// "today" is resolved in the configured timezone, not the server's
	today := core.DateOf(time.Now().In(svc.loc))
	dp, err := svc.planSvc.Day(today)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("building daily digest: %v", err), err)
		return
	}
	if len(dp.Today) == 0 && len(dp.Upcoming) == 0 {
		return // nothing to study, nothing to send
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:          []mail.Address{svc.recipient},
		Subject:     "Your study plan for " + today.String(),
		TextContent: Digest(dp),
	})
}

// Digest renders a day plan as a plain-text email body.
func Digest(dp plan.DayPlan) string {
	var b strings.Builder
	if len(dp.Today) > 0 {
		b.WriteString("Today:\n")
		for _, t := range dp.Today {
			fmt.Fprintf(&b, "  - [%s] %s\n", t.CourseName, t.Title)
			if t.Description != "" {
				fmt.Fprintf(&b, "    %s\n", t.Description)
			}
		}
	} else {
		b.WriteString("Nothing scheduled for today.\n")
	}
	if len(dp.Upcoming) > 0 {
		b.WriteString("\nComing up:\n")
		for _, t := range dp.Upcoming {
			fmt.Fprintf(&b, "  - %s (in %s): [%s] %s\n", t.Date, plural(t.DaysAhead, "day"), t.CourseName, t.Title)
		}
	}
	return b.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
