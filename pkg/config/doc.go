/*
Package config reads and writes ordercopy plan files.

	            +-------------+
	            |    Plan     |
	            | list + copy |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Describes a listing and an ordered copy run in a file
- Validates plans before anything touches the disk
- Converts plans into lister.Options and copier.Request

🔄 Flow:
1. Picks a parser by file extension
2. Decodes strictly (unknown fields are errors)
3. Resolves relative paths against the plan file's directory
4. Validates sections, sort keys, exclude globs and target names

📝 Plan layout (YAML):

	list:
	  dir: photos
	  recursive: true
	  sort_by: modTime
	  exclude: ["thumbs/**"]
	copy:
	  dest: ordered
	  overwrite: false
	  items:
	    - src: photos/b.jpg
	      order: 1
	      new_name: 001_b.jpg

🤝 Interfaces:
- Parser: format-specific decoding, registered with Register
- Save / Encode: write a plan back out in YAML, JSON or HCL
*/
package config
