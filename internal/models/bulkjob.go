package models

type BulkJobState string

const (
	BulkJobProcessing BulkJobState = "processing"
	BulkJobCompleted  BulkJobState = "completed"
	BulkJobFailed     BulkJobState = "failed"
)

type FileOutcome string

const (
	FilePending   FileOutcome = "pending"
	FileSucceeded FileOutcome = "succeeded"
	FileDuplicate FileOutcome = "duplicate"
	FileFailed    FileOutcome = "failed"
)

// FileResult is the resolved outcome of one file within a bulk upload job.
// Individual failures and duplicates never fail the job itself.
type FileResult struct {
	Filename string      `json:"filename"`
	Outcome  FileOutcome `json:"outcome"`
	Error    string      `json:"error,omitempty"`
}
