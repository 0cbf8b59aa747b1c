package recorder

// NoopRecorder drops every record. It is used when no recorder is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Save(_ *RoundRecord) error { return nil }
func (n *NoopRecorder) Close() error              { return nil }
