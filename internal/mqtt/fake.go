package mqtt

// FakeSender records payloads handed to the session layer, for publisher
// tests.
type FakeSender struct {
	// Topics and Payloads record each successful Send, index-aligned.
	Topics   []string
	Payloads [][]byte

	// SendError, if set, will be returned by Send.
	SendError error
}

// NewFakeSender creates a FakeSender for testing.
func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

// Send records the payload.
func (f *FakeSender) Send(topic string, payload []byte) error {
	if f.SendError != nil {
		return f.SendError
	}
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

// Reset clears recorded sends.
func (f *FakeSender) Reset() {
	f.Topics = nil
	f.Payloads = nil
	f.SendError = nil
}
