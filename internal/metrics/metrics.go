package metrics

import "sync/atomic"

var (
	TotalLines     int64
	ProcessedLines int64
	AcceptedRows   int64
	SkippedRows    int64
	InsertedRows   int64
	UpdatedRows    int64
)

func IncProcessed(n int64) {
	atomic.AddInt64(&ProcessedLines, n)
}

func Reset() {
	atomic.StoreInt64(&TotalLines, 0)
	atomic.StoreInt64(&ProcessedLines, 0)
	atomic.StoreInt64(&AcceptedRows, 0)
	atomic.StoreInt64(&SkippedRows, 0)
	atomic.StoreInt64(&InsertedRows, 0)
	atomic.StoreInt64(&UpdatedRows, 0)
}
