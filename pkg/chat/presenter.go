package chat

// Presenter is the display side of a session. Its methods are called from
// whichever goroutine drains Session.Events, never from the exchange itself.
type Presenter interface {
	OnAssistantReply(html string)
	OnStatusChanged(status string)
	OnError(message string)
}

// Deliver routes one event to p. It reports whether the event ended an exchange.
func Deliver(ev Event, p Presenter) bool {
	switch ev.Kind {
	case EventReply:
		p.OnAssistantReply(ev.Reply.HTML)
		p.OnStatusChanged(ev.Status)
		return true
	case EventError:
		msg := "unknown error"
		if ev.Err != nil {
			msg = ev.Err.Error()
		}
		p.OnError(msg)
		p.OnStatusChanged(ev.Status)
		return true
	default:
		p.OnStatusChanged(ev.Status)
		return false
	}
}
