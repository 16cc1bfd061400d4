/*
Package lister enumerates filesystem entries under a root directory.

	+-------------+
	|    Walk     |
	| (flat/tree) |
	+------+------+
	       |
	+------+------+
	|   Filter    |
	| (text/glob) |
	+------+------+
	       |
	+------+------+
	|    Sort     |
	|  (stable)   |
	+-------------+

🎯 Purpose:
- Produce one FileRecord per entry, with paths relative to the root
- Apply a case-insensitive name filter and doublestar exclude globs
- Order the result by name, size or modification time

🔄 Flow:
1. Resolve the root to an absolute, canonical directory
2. Walk immediate children or the whole subtree depth-first
3. Drop directories (unless requested) and non-matching names
4. Stable sort, reversing the comparator for descending order

📝 Notes:
Listing only reads the filesystem. Symbolic links are reported, never followed,
so a recursive listing cannot loop.

🔍 Example:

	records, err := lister.List(ctx, lister.Options{
		Dir:       "/photos",
		Recursive: true,
		SortBy:    lister.SortBySize,
		Desc:      true,
	})
*/
package lister
