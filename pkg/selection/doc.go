/*
Package selection holds the caller's ordered list of files to copy.

	+-----------+     +-------------+     +---------------+
	|  Listing  | --> |  Selection  | --> | copier.Request|
	+-----------+     +------+------+     +---------------+
	                         |
	             add / remove / move / swap
	             rename / number

🎯 Purpose:
- Turns listed records into an ordered selection
- Keeps order as plain position, so Items always yields order = position+1
- Adds optional "001_" style prefixes so copied names sort in copy order

The copier never numbers files itself. Numbering lives here, on the caller's side.
*/
package selection
