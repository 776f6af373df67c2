package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Five fields: minute, hour, day of month, month, day of week. Descriptors
// such as @daily are not accepted.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// CronSchedule is a parsed cron expression evaluated in UTC.
type CronSchedule struct {
	Spec  string
	sched cron.Schedule
}

func ParseCron(spec string) (*CronSchedule, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New("invalid cron expression: empty")
	}
	sched, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return &CronSchedule{Spec: spec, sched: sched}, nil
}

// Next returns the first activation strictly after from, in UTC.
func (c *CronSchedule) Next(from time.Time) time.Time {
	return c.sched.Next(from.UTC())
}

func ValidateCronExpr(spec string) error {
	_, err := ParseCron(spec)
	return err
}

func NextCronTime(spec string, from time.Time) (time.Time, error) {
	c, err := ParseCron(spec)
	if err != nil {
		return time.Time{}, err
	}
	return c.Next(from), nil
}
