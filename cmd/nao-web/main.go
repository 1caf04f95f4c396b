// NAO Web - browser control panel for a NAO robot
//
// Serves a JSON API for speech, posture and LED commands plus live sensor
// and log streams over websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao-robotics/go-nao/internal/config"
	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
	"github.com/nao-robotics/go-nao/pkg/sensors"
	"github.com/nao-robotics/go-nao/pkg/web"
)

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	port := flag.String("port", "8080", "port to serve the panel on")
	interval := flag.Duration("interval", 2*time.Second, "sensor broadcast interval")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: nao-web [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	fmt.Println("🌐 NAO Control Panel")
	fmt.Println("===================")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	server := web.NewServer(*port, robotIP, web.Robot{
		Speech:  session.TextToSpeech(),
		Posture: session.RobotPosture(),
		Leds:    session.Leds(),
		Sensors: sensors.NewReader(session.Memory()),
		Gateway: session,
	})

	server.StartAsync()
	go server.WatchSensors(ctx, *interval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\n👋 Shutting down...")
	cancel()
	if err := server.Shutdown(); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
