// NAO Monitor - terminal client for the control panel's sensor stream
//
// Connects to a running nao-web server and prints each sensor snapshot
// as it arrives.
package main

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nao-robotics/go-nao/internal/config"
	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/events"
)

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "verbose output")
	addr := flag.String("addr", "localhost:8080", "nao-web address")
	flag.Parse()
	log.Init(config.LogLevel())

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws/sensors"}
	fmt.Println("📡 NAO Sensor Monitor")
	fmt.Println("====================")
	fmt.Printf("Connecting to %s\n\n", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		fmt.Printf("❌ connect: %v\n", err)
		fmt.Println("Is nao-web running?")
		os.Exit(1)
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			msg, err := events.Parse(data)
			if err != nil || msg.Type != events.TypeSensors {
				continue
			}
			snap, err := msg.GetSensorData()
			if err != nil {
				continue
			}
			printSnapshot(snap)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		fmt.Println("\nConnection closed by server")
	case <-sigChan:
		fmt.Println("\n👋 Disconnecting...")
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printSnapshot(s *events.SensorData) {
	at := time.UnixMilli(s.TakenAt).Format("15:04:05")

	touched := make([]string, 0, len(s.Touch))
	for name, v := range s.Touch {
		if v > 0.5 {
			touched = append(touched, name)
		}
	}
	touchCol := "none"
	if len(touched) > 0 {
		touchCol = strings.Join(touched, ", ")
	}

	fmt.Printf("[%s] 🔋 %3.0f%%  🌡 %.1f°C  sonar L %.2fm R %.2fm  touch: %s\n",
		at, s.Battery*100, s.HeadTempC, s.SonarLeftM, s.SonarRightM, touchCol)
}
