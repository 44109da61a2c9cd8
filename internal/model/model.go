package model

import "encoding/json"

// IntakeEntry is one logged drink in the local ledger.
type IntakeEntry struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
	Time   string `json:"time"`
}

// DailyLedger is a point-in-time copy of the tracker state.
type DailyLedger struct {
	Goal      int           `json:"goal"`
	Total     int           `json:"total"`
	Entries   []IntakeEntry `json:"entries"`
	LastReset string        `json:"last_reset"`
}

// AppendWaterRequest is the record API body. Timestamp is either a date
// string or a number of Unix milliseconds.
type AppendWaterRequest struct {
	Capacity  *float64        `json:"capacity"`
	Timestamp json.RawMessage `json:"timestamp"`
}

type IntakeRequest struct {
	Amount int `json:"amount"`
}

type GoalRequest struct {
	Goal int `json:"goal"`
}
