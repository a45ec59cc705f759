package dto

// PaginationInfo describes the current page of a paged list
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"` // 1-based page number
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// HasPrevious reports whether a page before the current one exists
func (p PaginationInfo) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page after the current one exists
func (p PaginationInfo) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// PreviousPage returns the previous page number
func (p PaginationInfo) PreviousPage() int {
	return p.CurrentPage - 1
}

// NextPage returns the next page number
func (p PaginationInfo) NextPage() int {
	return p.CurrentPage + 1
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// SelectOption is one entry of a dropdown
type SelectOption struct {
	Value    string
	Text     string
	Selected bool
}

// FormPage bundles everything a create/edit form template needs
type FormPage struct {
	Title   string                    // "Create" or "Edit"
	Action  string                    // URL the form posts to
	Form    interface{}               // The bound or prefilled form struct
	Errors  map[string]string         // Messages keyed by form field name; "" holds form-level messages
	Options map[string][]SelectOption // Dropdown options keyed by form field name
	Courses []AssignedCourseData      // Instructor course checklist
}

// Error returns the message recorded for field
func (p FormPage) Error(field string) string {
	return p.Errors[field]
}

// DetailsPage shows one entity, optionally with the delete confirmation form
type DetailsPage struct {
	Item    interface{}
	Confirm bool   // Render the delete confirmation
	Action  string // URL the confirmation posts to
	Error   string // Message shown when a previous delete attempt failed
}
