package models

// Snapshot is the full sender -> messages mapping at a point in time. A
// conversation is implicit: all messages sharing one sender, in arrival
// order.
type Snapshot map[string][]Message

// UnreadCount returns how many of the sender's messages are still unread.
func (s Snapshot) UnreadCount(sender string) int {
	n := 0
	for _, m := range s[sender] {
		if m.Status == StatusUnread {
			n++
		}
	}
	return n
}

// Latest returns the most recently arrived message for the sender.
func (s Snapshot) Latest(sender string) (Message, bool) {
	msgs := s[sender]
	if len(msgs) == 0 {
		return Message{}, false
	}
	return msgs[len(msgs)-1], true
}
