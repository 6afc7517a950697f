// Package markdown renders resolved table grids as GitHub-Flavored-Markdown
// pipe tables.
//
// Output has three parts: a header row from the grid's flattened column
// labels, a separator row with one ":---" per column, and one row per data
// row in source order:
//
//	| 名前 | 情報 > 年齢 | 情報 > 出身 |
//	| :--- | :--- | :--- |
//	| 田中 | 30 | 東京 |
//
// Cell text is normalized so it cannot break the table: every run of
// newlines becomes a single <br> and "|" is escaped as "\|". Rendering is a
// pure function of the grid and never fails; a grid without columns renders
// as the empty string.
package markdown
