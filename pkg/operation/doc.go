/*
Package operation runs ordercopy's work units.

	+-------------+     +----------------+
	|   Runner    | --> |   Operation    |
	| sync/async  |     | Execute(ctx)   |
	+-------------+     +-------+--------+
	                            |
	          +-----------------+-----------------+
	          |                 |                 |
	   +------+------+   +------+------+   +------+------+
	   |    List     |   |    Plan     |   |    Copy     |
	   |  (lister)   |   | (selection) |   |  (copier)   |
	   +-------------+   +-------------+   +-------------+

🎯 Purpose:
- Gives the CLI one way to run listing, planning and copying
- Keeps results on the operation so callers read them after Run

⚡ Runner modes:
- sync: operations run in order, the first error stops the rest
- async: operations run concurrently on an errgroup; the first error
  cancels the others and Run returns early when ctx is cancelled

A copy that halts on a failed item is an error here (ErrCopyHalted) even
though copier.Copy itself returned none. The Summary is still recorded on
the CopyOperation.

🔍 Example:

	op := operation.NewCopyOperation(req, logger)
	if err := operation.NewRunner(nil, false).Run(ctx, op); err != nil {
		sum, _ := op.Summary()
		...
	}
*/
package operation
