package tasks

// Status is the workflow state of a task.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is one of the fixed status values.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Operation is an access-controlled action on a specific task.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Owner identifies the account a task belongs to.
type Owner struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Task is a to-do item. The owner is set at creation and immutable.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
	Owner       Owner  `json:"user"`
}

// Draft carries task creation input. An empty status defaults to StatusNew.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// Patch carries a partial task update; nil fields are left unchanged.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// Filter narrows a task listing.
type Filter struct {
	OwnerID *int64
	Status  *Status
}

// PageParams selects a page of a task listing.
type PageParams struct {
	Number int
	Size   int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps page parameters into their allowed ranges.
func (p PageParams) Normalize() PageParams {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Page is one page of a task listing.
type Page struct {
	Items []Task `json:"items"`
	Total int64  `json:"total"`
	Page  int    `json:"page"`
	Size  int    `json:"size"`
}
