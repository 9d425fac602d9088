package queue

// QueueError is a custom error type for rejected queue transitions
type QueueError string

// Error implements the error interface
func (e QueueError) Error() string {
	return string(e)
}

const (
	ErrSessionEnded    QueueError = "session has ended"
	ErrEmptyName       QueueError = "presenter name cannot be empty"
	ErrCannotAdvance   QueueError = "there is no presenter queue to advance"
	ErrQueueExhausted  QueueError = "presenter queue is exhausted"
	ErrInvalidPosition QueueError = "presenter position is out of range"
	ErrNotPresenting   QueueError = "no presenter is currently presenting"
	ErrNotGeneralMode  QueueError = "general votes can only be reset when the queue is empty"
)
