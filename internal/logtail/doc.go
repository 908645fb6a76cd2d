// Package logtail reads and filters ticktock's log file.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file in a
// single pass, using O(maxLines) memory regardless of file size. A missing
// file yields nil, nil; other I/O errors are returned wrapped.
//
//	lines, err := logtail.Read(cfg.Log.File, 200)
//
// # Filtering
//
// Filter understands both logrus formatters the logging package can emit:
//
//	time="2026-10-17T12:00:00Z" level=warning msg="Failed to persist state" component=state
//	{"component":"state","level":"warning","msg":"Failed to persist state","time":"..."}
//
// A line is kept when its level is at least as severe as the minimum.
// Continuation lines carry no level and follow the entry above them.
// LevelFilter applies the same rule to a stream, one line at a time.
//
// # Following
//
// Follow streams lines appended after it starts, reopening the file when it
// is rotated, until its context is cancelled.
package logtail
