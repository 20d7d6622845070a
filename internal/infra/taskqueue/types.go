package taskqueue

import "time"

type NotificationTask struct {
	EventID    string    `json:"-"`
	ScheduleAt time.Time `json:"-"`

	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	Window    string    `json:"window"`
	DueDate   time.Time `json:"due_date"`
	Priority  string    `json:"priority"`
	Recipient string    `json:"recipient,omitempty"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
