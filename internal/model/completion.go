package model

import "time"

// CompletionRecord maps an ISO date to the ids completed that day. Ids are
// not checked against any template.
type CompletionRecord map[string][]string

func (c CompletionRecord) IsComplete(date time.Time, taskID string) bool {
	for _, id := range c[DateKey(date)] {
		if id == taskID {
			return true
		}
	}
	return false
}

// Toggle flips taskID for date and reports the resulting state.
func (c CompletionRecord) Toggle(date time.Time, taskID string) bool {
	key := DateKey(date)
	ids := c[key]
	for i, id := range ids {
		if id == taskID {
			c[key] = append(ids[:i:i], ids[i+1:]...)
			return false
		}
	}
	if ids == nil {
		ids = []string{}
	}
	c[key] = append(ids, taskID)
	return true
}

func (c CompletionRecord) IDs(date time.Time) map[string]bool {
	ids := c[DateKey(date)]
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func (c CompletionRecord) Clone() CompletionRecord {
	out := make(CompletionRecord, len(c))
	for k, ids := range c {
		out[k] = append([]string(nil), ids...)
	}
	return out
}
