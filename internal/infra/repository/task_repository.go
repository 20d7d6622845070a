package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) domain.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) FindDueSoon(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	var records []taskRecord

	err := r.db.WithContext(ctx).
		Where("status <> ?", domain.StatusDone.String()).
		Where("due_date IS NOT NULL").
		Where("due_date BETWEEN ? AND ?", from, to).
		Order("due_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, mapSchemaErr(err)
	}

	tasks := make([]*domain.Task, 0, len(records))
	for i := range records {
		tasks = append(tasks, taskToDomain(&records[i]))
	}

	return tasks, nil
}

func (r *taskRepository) AppendRemindedWindows(ctx context.Context, taskID string, windows []domain.Window) error {
	if len(windows) == 0 {
		return nil
	}

	// Read-modify-write under a row lock, scoped to the one task. The
	// union keeps the set free of duplicates regardless of how often
	// the same firing set is applied.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec taskRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "id = ?", taskID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTaskNotFound
			}
			return mapSchemaErr(err)
		}

		existing := decodeWindows(rec.RemindedWindows)
		merged := domain.UnionWindows(existing, windows)
		if len(merged) == len(existing) {
			return nil
		}

		payload, err := encodeWindows(merged)
		if err != nil {
			return err
		}

		return tx.Model(&taskRecord{}).
			Where("id = ?", taskID).
			Update("reminded_windows", payload).Error
	})
}

func (r *taskRepository) ResetRemindedWindows(ctx context.Context, taskIDs []string, all bool, window *domain.Window) (int64, error) {
	if !all && len(taskIDs) == 0 {
		return 0, nil
	}

	db := r.db.WithContext(ctx).Model(&taskRecord{})

	if window == nil {
		query := db.Where("jsonb_array_length(coalesce(reminded_windows, '[]'::jsonb)) > 0")
		if !all {
			query = query.Where("id IN ?", taskIDs)
		}
		res := query.Update("reminded_windows", rawJSON(`[]`))
		if res.Error != nil {
			return 0, mapSchemaErr(res.Error)
		}
		return res.RowsAffected, nil
	}

	// jsonb `- text` removes the element in a single statement, so a
	// concurrent scan cannot interleave between read and write here.
	query := db.Where("jsonb_exists(coalesce(reminded_windows, '[]'::jsonb), ?)", window.String())
	if !all {
		query = query.Where("id IN ?", taskIDs)
	}
	res := query.Update("reminded_windows", gorm.Expr("reminded_windows - ?", window.String()))
	if res.Error != nil {
		return 0, mapSchemaErr(res.Error)
	}
	return res.RowsAffected, nil
}
