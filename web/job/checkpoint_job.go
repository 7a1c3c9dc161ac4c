package job

import (
	"github.com/quillblog/quill/database"
	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/util/common"

	"gorm.io/gorm"
)

// CheckpointJob folds the sqlite write-ahead log back into the database
// file so the WAL does not grow without bound between restarts.
type CheckpointJob struct {
	db *gorm.DB
}

func NewCheckpointJob(db *gorm.DB) *CheckpointJob {
	return &CheckpointJob{db: db}
}

func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job")
	if err := database.Checkpoint(j.db); err != nil {
		logger.Warning("checkpoint job err:", err)
		return
	}
	logger.Debug("wal checkpoint done")
}
