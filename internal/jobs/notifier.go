package jobs

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier hands notification email off to the queue. Enqueue runs after
// the caller's transaction has committed and is strictly best-effort: a
// failed enqueue is logged and swallowed, never surfaced to the submitter.
// A lost email does not imply a lost submission.
type Notifier struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func (n *Notifier) Enqueue(to, template string, data map[string]any) {
	payload, err := json.Marshal(EmailPayload{To: to, Template: template, Data: data})
	if err != nil {
		n.Log.Warn("email enqueue: marshal payload", zap.String("template", template), zap.Error(err))
		return
	}

	j := Job{
		Type:    "EMAIL_DISPATCH",
		Payload: payload,
		RunAt:   time.Now(),
		Status:  "PENDING",
	}
	if err := n.DB.Create(&j).Error; err != nil {
		n.Log.Warn("email enqueue failed",
			zap.String("to", to),
			zap.String("template", template),
			zap.Error(err),
		)
	}
}
