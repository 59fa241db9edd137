package domain

import "time"

// Snapshot is the full tracker state at one point in time.
type Snapshot struct {
	TakenAt    time.Time        `json:"taken_at" yaml:"taken_at"`
	Chapters   []Chapter        `json:"chapters" yaml:"chapters"`
	Tasks      []TaskItem       `json:"tasks" yaml:"tasks"`
	Feedback   []FeedbackEntry  `json:"feedback" yaml:"feedback"`
	Literature []LiteratureItem `json:"literature" yaml:"literature"`
}

// TasksFor returns the tasks of one chapter in their stored order.
func (s Snapshot) TasksFor(ordinal int) []TaskItem {
	var tasks []TaskItem
	for _, task := range s.Tasks {
		if task.ChapterOrdinal != nil && *task.ChapterOrdinal == ordinal {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

// GlobalTasks returns the tasks not tied to a chapter.
func (s Snapshot) GlobalTasks() []TaskItem {
	var tasks []TaskItem
	for _, task := range s.Tasks {
		if task.IsGlobal() {
			tasks = append(tasks, task)
		}
	}
	return tasks
}
