// Walk - make NAO walk forward, turn around, and walk back
//
// WARNING: make sure NAO has space to walk and won't fall off a table!
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/nao-robotics/go-nao/internal/config"
	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: walk [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	fmt.Println("🚶 NAO Walk Demo")
	fmt.Println("===============")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	motion := session.Motion()
	tts := session.TextToSpeech()

	if err := motion.WakeUp(ctx); err != nil {
		fmt.Printf("❌ wake up: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Standing up...")
	if _, err := session.RobotPosture().GoToPosture(ctx, naoqi.PostureStand, 0.5); err != nil {
		fmt.Printf("❌ stand: %v\n", err)
		os.Exit(1)
	}

	tts.Say(ctx, "I will now walk forward")

	if err := motion.MoveInit(ctx); err != nil {
		fmt.Printf("❌ move init: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Walking forward...")
	if err := motion.MoveTo(ctx, 0.3, 0.0, 0.0); err != nil {
		fmt.Printf("❌ walk: %v\n", err)
		os.Exit(1)
	}

	tts.Say(ctx, "Now I will turn around")

	fmt.Println("Turning 180 degrees...")
	if err := motion.MoveTo(ctx, 0.0, 0.0, math.Pi); err != nil {
		fmt.Printf("❌ turn: %v\n", err)
		os.Exit(1)
	}

	tts.Say(ctx, "Walking back")

	fmt.Println("Walking back...")
	if err := motion.MoveTo(ctx, 0.3, 0.0, 0.0); err != nil {
		fmt.Printf("❌ walk: %v\n", err)
		os.Exit(1)
	}

	// Face the original direction again.
	if err := motion.MoveTo(ctx, 0.0, 0.0, math.Pi); err != nil {
		fmt.Printf("❌ turn: %v\n", err)
		os.Exit(1)
	}

	tts.Say(ctx, "Done walking!")
	fmt.Println("✅ Done!")
}
