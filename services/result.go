package services

// RunResult is the outcome every pipeline entry point hands back to the
// scheduler or a cron trigger route. Errors never propagate past a
// service boundary: a failed run logs, reports OK=false, and the next
// scheduled invocation is the retry.
type RunResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func okResult(message string) RunResult {
	return RunResult{OK: true, Message: message}
}

func failedResult(message string) RunResult {
	return RunResult{OK: false, Message: message}
}
