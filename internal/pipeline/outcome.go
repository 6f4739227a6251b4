package pipeline

import "strings"

// Status classifies the result of one pipeline run. The values are read by
// log and alert consumers and must not change.
type Status string

const (
	StatusSuccess      Status = "SUCCESS"
	StatusSuccessEmpty Status = "SUCCESS_EMPTY"
	StatusErrorConfig  Status = "ERROR_CONFIG"
	StatusErrorAuth    Status = "ERROR_AUTH"
	StatusErrorJournal Status = "ERROR_JOURNAL"
	StatusErrorAccount Status = "ERROR_ACCOUNT"
	StatusErrorRPC     Status = "ERROR_ODOO_RPC"
	// StatusErrorCrash is never returned by Run; callers use it for failures
	// around the pipeline.
	StatusErrorCrash Status = "ERROR_CRASH"
)

// manualPrefix marks runs triggered from the UI in the run log.
const manualPrefix = "MANUAL_"

func (s Status) IsError() bool {
	return strings.HasPrefix(string(s), "ERROR")
}

// Manual returns the run-log tag of a manually triggered run.
func (s Status) Manual() string {
	if s == StatusErrorCrash {
		return manualPrefix + "CRASH"
	}

	return manualPrefix + string(s)
}

// Outcome is the terminal result of a run. MoveID and Label are set on
// StatusSuccess only.
type Outcome struct {
	Status  Status
	Message string
	MoveID  int64
	Label   string
}

func outcome(status Status, message string) Outcome {
	return Outcome{Status: status, Message: message}
}
