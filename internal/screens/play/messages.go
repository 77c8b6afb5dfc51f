package play

import "time"

// tickMsg fires every second while the screen is mounted. It drives
// question countdowns, inactivity detection, robux accrual and the
// break reminder.
type tickMsg time.Time

// leaveMsg asks the router to pop back to the home screen after the
// run has been closed out.
type leaveMsg struct{}
