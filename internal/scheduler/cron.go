package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Ticker runs periodic jobs on a cron.
type Ticker struct {
	cron *cron.Cron
}

func NewTicker(loc *time.Location) *Ticker {
	if loc == nil {
		loc = time.Local
	}
	return &Ticker{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// Daily registers job at the given HH:MM every day.
func (t *Ticker) Daily(clock string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(clock)
	if err != nil {
		return 0, err
	}
	return t.cron.AddFunc(spec, job)
}

// Every registers job to run at a fixed interval, rounded down to whole
// seconds.
func (t *Ticker) Every(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("scheduler: interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return t.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), job)
}

// Next reports when entry runs next.
func (t *Ticker) Next(id cron.EntryID) time.Time {
	return t.cron.Entry(id).Next
}

func (t *Ticker) Start() {
	t.cron.Start()
}

// Stop halts the cron and waits for running jobs.
func (t *Ticker) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
}

func dailySpec(clock string) (string, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("scheduler: invalid time %q, expected HH:MM", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("scheduler: invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("scheduler: invalid minute in %q", clock)
	}
	// second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}
