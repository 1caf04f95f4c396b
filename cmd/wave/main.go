// Wave - make NAO wave its right arm
//
// Stands up, says hello, raises the arm and waves three times.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nao-robotics/go-nao/internal/config"
	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/choreo"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: wave [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	fmt.Println("👋 NAO Wave")
	fmt.Println("==========")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	motion := session.Motion()
	posture := session.RobotPosture()

	if err := motion.WakeUp(ctx); err != nil {
		fmt.Printf("❌ wake up: %v\n", err)
		os.Exit(1)
	}
	if _, err := posture.GoToPosture(ctx, naoqi.PostureStand, 0.5); err != nil {
		fmt.Printf("❌ stand: %v\n", err)
		os.Exit(1)
	}
	if err := motion.SetStiffness(ctx, naoqi.ChainRArm, 1.0); err != nil {
		fmt.Printf("❌ stiffness: %v\n", err)
		os.Exit(1)
	}

	session.TextToSpeech().Say(ctx, "Hello!")

	runner := choreo.NewRunner(motion, nil)
	if err := runner.Run(ctx, choreo.Wave()); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	// Lower the arm by returning to a relaxed stand.
	posture.GoToPosture(ctx, naoqi.PostureStand, 0.3)

	fmt.Println("✅ Wave complete!")
}
