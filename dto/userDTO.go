package dto

type UserResponse struct {
	UserID      string  `json:"userId"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Avatar      string  `json:"avatar"`
	Points      int     `json:"points"`
	StreakDays  int     `json:"streakDays"`
	LastLoginAt *string `json:"lastLoginAt"`
	CreatedAt   string  `json:"createdAt"`
}

type StatsResponse struct {
	TasksDueToday   int `json:"tasksDueToday"`
	TasksDoneToday  int `json:"tasksDoneToday"`
	TasksCompleted  int `json:"tasksCompleted"`
	TasksPending    int `json:"tasksPending"`
	TasksThisWeek   int `json:"tasksThisWeek"`
	StreakDays      int `json:"streakDays"`
	Points          int `json:"points"`
	ProgressPercent int `json:"progressPercent"`
}
