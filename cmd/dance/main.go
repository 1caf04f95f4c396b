// Dance - NAO dance demo with eye color changes
//
// Runs two verses of arm and hip moves with LED color changes.
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
	"github.com/nao-robotics/go-nao/pkg/choreo"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	verses := flag.Int("verses", 2, "number of dance verses")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: dance [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	fmt.Println("💃 NAO Dance Demo")
	fmt.Println("================")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	motion := session.Motion()
	posture := session.RobotPosture()
	leds := session.Leds()

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\n👋 Stopping dance, resetting...")
		cancel()
		reset := context.Background()
		leds.FadeRGB(reset, naoqi.GroupFaceLeds, 1.0, 1.0, 1.0, 0.5)
		posture.GoToPosture(reset, naoqi.PostureStand, 0.5)
		time.Sleep(500 * time.Millisecond)
		os.Exit(0)
	}()

	if err := motion.WakeUp(ctx); err != nil {
		fmt.Printf("❌ wake up: %v\n", err)
		os.Exit(1)
	}
	if _, err := posture.GoToPosture(ctx, naoqi.PostureStand, 0.5); err != nil {
		fmt.Printf("❌ stand: %v\n", err)
		os.Exit(1)
	}

	session.TextToSpeech().Say(ctx, "Let's dance!")

	motion.SetStiffness(ctx, naoqi.ChainLArm, 1.0)
	motion.SetStiffness(ctx, naoqi.ChainRArm, 1.0)

	fmt.Println("🎵 Dancing! (Ctrl+C to stop)")

	runner := choreo.NewRunner(motion, leds)
	if err := runner.Run(ctx, choreo.Dance(*verses)); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	session.TextToSpeech().Say(ctx, "Thank you!")

	if _, err := posture.GoToPosture(ctx, naoqi.PostureStand, 0.5); err != nil {
		fmt.Printf("❌ stand: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Dance complete!")
}
