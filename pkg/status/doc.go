/*
Package status turns copy progress into something people and programs can follow.

	+----------+      +-----------+
	|  Copier  | ---> |   Tee     |
	+----------+      +-----+-----+
	                        |
	       +----------------+----------------+
	       |                |                |
	+------+-----+   +------+-----+   +------+------+
	|  Recorder  |   |  LogSink   |   |  Formatter  |
	|  (memory)  |   | (zerolog)  |   | (terminal)  |
	+------------+   +------------+   +-------------+

🎯 Purpose:
- Collects progress events for later inspection
- Fans one event stream out to several sinks
- Renders events, progress and summaries for the terminal

⚡ Key Pieces:
- Recorder: thread-safe sink that keeps every event
- Tee: forwards each event to several sinks in order
- LogSink: structured zerolog entries per event
- Formatter: emoji one-liners for events, progress and summaries
- FormatEventLine / FormatRecordLine: aligned, colored table rows

🔍 Example:

	rec := status.NewRecorder()
	sum, err := copier.Copy(ctx, req, status.Tee(rec, status.LogSink(ctx)))

	done, total := rec.Progress()
	fmt.Println(status.NewDefaultFormatter().FormatProgress(done, total))
*/
package status
