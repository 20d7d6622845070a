//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client     *cloudtasks.Client
	projectID  string
	locationID string
	queueID    string
	targetURL  string
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	var opts []option.ClientOption
	if host := os.Getenv("CLOUD_TASKS_EMULATOR_HOST"); host != "" {
		opts = append(opts,
			option.WithEndpoint(host),
			option.WithoutAuthentication(),
		)
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	return &CloudTasksClient{
		client:     client,
		projectID:  cfg.ProjectID,
		locationID: cfg.LocationID,
		queueID:    cfg.QueueID,
		targetURL:  cfg.TargetURL,
	}, nil
}

func (c *CloudTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		c.projectID, c.locationID, c.queueID)

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	// Naming the queue task after the event id makes registration
	// idempotent: a rescheduled duplicate comes back AlreadyExists.
	taskName := fmt.Sprintf("%s/tasks/%s", queuePath, task.EventID)

	cloudTask := &taskspb.Task{
		Name: taskName,
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
	}

	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	created, err := c.client.CreateTask(ctx, &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   cloudTask,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			slog.Debug("notification already registered",
				slog.String("event_id", task.EventID),
				slog.String("task_id", task.TaskID),
			)
			return &TaskResponse{Name: taskName}, nil
		}
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	result := &TaskResponse{
		Name: created.GetName(),
	}
	if st := created.GetScheduleTime(); st != nil {
		result.ScheduleTime = st.AsTime()
	}
	if ct := created.GetCreateTime(); ct != nil {
		result.CreateTime = ct.AsTime()
	}

	slog.Debug("notification registered",
		slog.String("event_id", task.EventID),
		slog.String("task_id", task.TaskID),
		slog.String("queue_task", result.Name),
	)

	return result, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
