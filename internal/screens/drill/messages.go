package drill

import (
	"time"

	"github.com/qihuang/bianzheng/internal/question"
	"github.com/qihuang/bianzheng/internal/spacedrep"
)

// drillInitMsg is sent when session setup (snapshot load + question
// generation) is complete.
type drillInitMsg struct {
	Questions []*question.Question
	Scheduler *spacedrep.Scheduler
	Err       error
}

// timerTickMsg is sent every second to refresh the elapsed-time display.
type timerTickMsg time.Time

// drillEndMsg is sent to trigger the session end flow.
type drillEndMsg struct{}
