package enums

// SortOrder is a student list ordering accepted on the query string
type SortOrder string

// Student list orderings
const (
	SortLastNameAsc   SortOrder = ""
	SortLastNameDesc  SortOrder = "name_desc"
	SortEnrollmentAsc SortOrder = "Date"
	SortEnrollmentDsc SortOrder = "date_desc"
)

// Valid reports whether s is a known ordering
func (s SortOrder) Valid() bool {
	switch s {
	case SortLastNameAsc, SortLastNameDesc, SortEnrollmentAsc, SortEnrollmentDsc:
		return true
	}
	return false
}
