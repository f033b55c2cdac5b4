// inspect prints a per-conversation summary of the durable mirror file, so an
// operator can check inbox state without starting the server.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"WaDesk/pkg/store"
	"WaDesk/pkg/utills"
)

func main() {
	path := flag.String("file", "messages.json", "path to the messages mirror")
	flag.Parse()

	mirror := store.NewFileMirror(*path)
	snap, err := mirror.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *path, err)
		os.Exit(1)
	}
	if len(snap) == 0 {
		fmt.Println("no messages")
		return
	}

	senders := make([]string, 0, len(snap))
	for s := range snap {
		senders = append(senders, s)
	}
	sort.Strings(senders)

	for _, sender := range senders {
		msgs := snap[sender]
		fmt.Printf("%s  (%d messages, %d unread)\n", sender, len(msgs), snap.UnreadCount(sender))
		for _, m := range msgs {
			fmt.Printf("  [%s] %s  %s\n", m.Status, m.ID, utills.Truncate(m.Text.Body, 48))
			if m.Notes != "" {
				fmt.Printf("        notes: %s\n", utills.Truncate(m.Notes, 48))
			}
		}
	}
}
