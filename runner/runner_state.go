package runner

const (
	RunnerState__AWAIT_ROUND_START string = "AWAIT_ROUND_START"
	RunnerState__IN_BETTING        string = "IN_BETTING"
	RunnerState__ROUND_OVER        string = "ROUND_OVER"
	RunnerState__SESSION_CLOSED    string = "SESSION_CLOSED"

	RunnerEvent__START_ROUND string = "START_ROUND"
	RunnerEvent__END_ROUND   string = "END_ROUND"
	RunnerEvent__NEXT_ROUND  string = "NEXT_ROUND"
	RunnerEvent__CLOSE       string = "CLOSE"
)
