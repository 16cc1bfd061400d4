/*
Package copier copies files into a destination directory in a caller-chosen order.

	Items ──► Sequence (by Order, stable) ──► for each item:
	                                             start ─► copy ─► done
	                                                        │
	                                                        └──► error ─► stop

🎯 Purpose:
- Copies one file at a time, strictly in ascending Order
- Stops at the first failing item and names it in Summary.FailedAt
- Reports progress synchronously through a ProgressSink

🛡️ Guarantees:
- Every attempted item gets a start event, then exactly one done or error event
- Items after a failure are never touched
- A copy is written to a temp file beside the target and renamed into place,
  so a failed item never leaves a partial file behind
- Existing targets are only replaced when Request.Overwrite is set

⚠️ Errors:
- ErrDestinationUnavailable is the only error Copy itself returns
- ErrSourceUnreadable, ErrDestinationExists, ErrIOFailure and ErrInvalidTargetName
  are per-item and arrive as the error event's message

🔍 Example:

	sum, err := copier.Copy(ctx, copier.Request{
		Dest:  "/photos/ordered",
		Items: []copier.Item{{Src: "/photos/b.jpg", Order: 1}, {Src: "/photos/a.jpg", Order: 2}},
	}, copier.SinkFunc(func(ev copier.ProgressEvent) {
		fmt.Println(ev.Stage, ev.Index, ev.Src)
	}))
*/
package copier
