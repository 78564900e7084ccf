package i

// Logger writes leveled log lines for one component.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
