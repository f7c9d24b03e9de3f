package main // Welcome-screen terminal client

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"

	"github.com/hitechmekong/eventProject/internal/display"
)

func main() {
	var (
		url   = flag.String("url", "ws://localhost:8080/ws", "websocket endpoint of the check-in server")
		event = flag.String("event", "", "event id whose room to join (required)")
		dwell = flag.Duration("dwell", display.DefaultDwell, "how long each welcome stays on screen")
	)
	flag.Parse()
	if *event == "" {
		fmt.Fprintln(os.Stderr, "usage: display -event <id> [-url ws://...] [-dwell 30s]")
		os.Exit(2)
	}

	ctrl := display.NewController(*dwell, render)
	defer ctrl.Close()

	client := &display.Client{
		URL:     *url,
		EventID: *event,
		Ctrl:    ctrl,
		OnStatus: func(connected bool) {
			if connected {
				color.Green.Println("● connected")
			} else {
				color.Red.Println("○ disconnected")
			}
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	color.Cyan.Printf("welcome screen for event %s (dwell %s)\n", *event, *dwell)

	// The client ends on any transport error; keep the screen alive by
	// redialing until the operator interrupts.
	for {
		if err := client.Run(ctx); err != nil {
			log.Printf("display: connection lost: %v", err)
		}
		if ctx.Err() != nil {
			return
		}
		time.Sleep(3 * time.Second)
	}
}

// render repaints the terminal whenever the current slot or queue depth
// changes.  It runs under the controller lock and must return quickly.
func render(s display.Snapshot) {
	if s.Current == nil {
		color.Gray.Printf("(idle, %d waiting)\n", s.Pending)
		return
	}
	n := s.Current
	color.Yellow.Printf("★ %s\n", n.WelcomeMessage)
	line := n.Name
	if n.JobTitle != "" {
		line += " · " + n.JobTitle
	}
	color.White.Println(line)
	color.Cyan.Printf("seat %s", n.Seat)
	if s.Pending > 0 {
		color.Gray.Printf("  (+%d waiting)", s.Pending)
	}
	fmt.Println()
}
