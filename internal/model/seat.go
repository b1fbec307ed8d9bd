package model

import "fmt"

// Seat identifies a physical seat in the venue by its zero-based row and
// column.  Seats are plain values: two seats are the same seat when their
// coordinates are equal.
//
// Fields:
//  Row    – zero-based row index, front of the venue first.
//  Column – zero-based column index within the row, left to right.
type Seat struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// String renders the seat as "row:column".
func (s Seat) String() string {
	return fmt.Sprintf("%d:%d", s.Row, s.Column)
}

// Label renders the seat the way tickets print it: an alphabetical row
// label followed by the one-based seat number, e.g. "A1" or "AB12".
func (s Seat) Label() string {
	return fmt.Sprintf("%s%d", RowLabel(s.Row), s.Column+1)
}

// RowLabel converts a zero-based row index to A, B, ..., Z, AA, AB, ...
// Negative indices yield "".
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
