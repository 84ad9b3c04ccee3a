package pipeline

import "fmt"

// Stage is a step of an analysis run.
type Stage int

const (
	StageFetchingFinance Stage = iota
	StageFetchingNews
	StageDeduplicating
	StageIndexing
	StageRetrieving
	StageComposing
	StageDone
)

var stageNames = [...]string{
	StageFetchingFinance: "Fetching(finance)",
	StageFetchingNews:    "Fetching(news)",
	StageDeduplicating:   "Deduplicating",
	StageIndexing:        "Indexing",
	StageRetrieving:      "Retrieving",
	StageComposing:       "Composing",
	StageDone:            "Done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// StageError is a failure at a specific stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
