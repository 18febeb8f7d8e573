package dto

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=1000"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest carries partial fields; nil pointers are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
	Completed   *bool   `json:"completed"`
}

type AddCollaboratorRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type CollaboratorRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserRef is a user reference resolved to display fields.
type UserRef struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type CollaboratorResponse struct {
	User        UserRef `json:"user"`
	Status      string  `json:"status"`
	Role        string  `json:"role"`
	InvitedAt   string  `json:"invitedAt"`
	RespondedAt *string `json:"respondedAt"`
}

type TaskResponse struct {
	TaskID        string                 `json:"taskId"`
	Owner         UserRef                `json:"owner"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Completed     bool                   `json:"completed"`
	Priority      string                 `json:"priority"`
	DueDate       *string                `json:"dueDate"`
	Collaborators []CollaboratorResponse `json:"collaborators"`
	CreatedAt     string                 `json:"createdAt"`
	UpdatedAt     string                 `json:"updatedAt"`
}
