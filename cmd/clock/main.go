package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/blogem/clocklog/client"
	"github.com/blogem/clocklog/config"
	"github.com/blogem/clocklog/models"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	session, err := client.NewSession(client.SessionConfig{
		APIURL:       cfg.APIURL,
		PollInterval: cfg.PollInterval,
		ErrorTTL:     cfg.ErrorTTL,
		HTTPTimeout:  cfg.HTTPTimeout,
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	fmt.Printf("🕒 Clock client talking to %s\n", cfg.APIURL)
	fmt.Println("Type name,age and press enter to submit. An empty line refreshes the clock.")

	done := make(chan struct{})
	go render(session.State(), os.Stdout, done)

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

loop:
	for {
		select {
		case <-stop:
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			handleLine(session, line)
		}
	}

	if err := session.Stop(); err != nil {
		log.Printf("Failed to stop session: %v", err)
	}
	close(done)
}

// handleLine turns one input line into a submit or a refresh
func handleLine(session *client.Session, line string) {
	if strings.TrimSpace(line) == "" {
		session.Refresh()
		return
	}

	name, age, _ := strings.Cut(line, ",")
	form := models.FormRecord{Name: strings.TrimSpace(name), Age: strings.TrimSpace(age)}

	err := session.Submit(form, func(err error) {
		if err == nil {
			fmt.Println("\n✅ Saved. Fields cleared.")
		}
	})
	if err != nil {
		log.Printf("Failed to submit: %v", err)
	}
}

// render redraws the status line whenever the shared state changes
func render(state *client.SharedState, w io.Writer, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-state.Changed():
		}

		if title, ok := state.TakeTitle(); ok {
			fmt.Fprintf(w, "\033]0;%s\007", title)
		}

		snap := state.Snapshot()
		if snap.ErrorMessage != "" {
			fmt.Fprintf(w, "\r\033[K%s  ⚠️  %s", snap.DisplayText, snap.ErrorMessage)
		} else {
			fmt.Fprintf(w, "\r\033[K%s", snap.DisplayText)
		}
	}
}

func readLines(r io.Reader, lines chan<- string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	close(lines)
}
