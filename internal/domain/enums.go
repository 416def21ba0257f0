package domain

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "NOT_STARTED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskNotStarted: true,
	TaskInProgress: true,
	TaskCompleted:  true,
}

// ParseTaskStatus accepts the canonical upper-case form as well as the
// lower-case and kebab/space variants used on the command line.
func ParseTaskStatus(s string) (TaskStatus, error) {
	norm := TaskStatus(normalizeEnum(s))
	if !ValidTaskStatuses[norm] {
		return "", invalidf("task status %q must be one of NOT_STARTED, IN_PROGRESS, COMPLETED", s)
	}
	return norm, nil
}

type CascadeMode string

const (
	// CascadeFull recomputes stage, phase and construction after a task change.
	CascadeFull CascadeMode = "full"
	// CascadeStage recomputes only the owning stage.
	CascadeStage CascadeMode = "stage"
)

func ParseCascadeMode(s string) (CascadeMode, error) {
	switch CascadeMode(s) {
	case CascadeFull, CascadeStage:
		return CascadeMode(s), nil
	case "":
		return CascadeFull, nil
	default:
		return "", invalidf("cascade mode %q must be %q or %q", s, CascadeFull, CascadeStage)
	}
}

func normalizeEnum(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a'+'A')
		case c == '-' || c == ' ':
			out = append(out, '_')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
