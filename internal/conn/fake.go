package conn

// Message records one Send call.
type Message struct {
	Topic   string
	Payload []byte
}

// FakeTransport is a test double whose link and session behavior is
// controlled through exported fields.
type FakeTransport struct {
	// Link is the value reported by LinkUp. Associate sets it true on
	// success.
	Link bool

	// Session is the value reported by SessionUp (together with Link).
	// OpenSession sets it true on success.
	Session bool

	// AssociateErr, if set, makes Associate fail.
	AssociateErr error

	// OpenErr, if set, makes OpenSession fail.
	OpenErr error

	// SendErr, if set, makes Send fail.
	SendErr error

	// DropLinkOnOpen simulates the link falling mid connect attempt:
	// OpenSession reports success but the link is down afterwards.
	DropLinkOnOpen bool

	// Call counters.
	AssociateCalls int
	OpenCalls      int

	// Sent records successful Send calls.
	Sent []Message

	// SessionIDs records the id passed to each OpenSession call.
	SessionIDs []string
}

func (f *FakeTransport) Associate() error {
	f.AssociateCalls++
	if f.AssociateErr != nil {
		return f.AssociateErr
	}
	f.Link = true
	return nil
}

func (f *FakeTransport) LinkUp() bool {
	return f.Link
}

func (f *FakeTransport) OpenSession(id string) error {
	f.OpenCalls++
	f.SessionIDs = append(f.SessionIDs, id)
	if f.OpenErr != nil {
		return f.OpenErr
	}
	f.Session = true
	if f.DropLinkOnOpen {
		f.Link = false
	}
	return nil
}

func (f *FakeTransport) SessionUp() bool {
	return f.Link && f.Session
}

func (f *FakeTransport) Send(topic string, payload []byte) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, Message{Topic: topic, Payload: payload})
	return nil
}
