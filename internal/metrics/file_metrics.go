package metrics

import "time"

type FileMetric struct {
	FileName    string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalLines  int64
	ParsedRows  int64
	SkippedRows int64
	Status      string
}
