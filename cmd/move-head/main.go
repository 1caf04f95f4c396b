// Move Head - make NAO look around
//
// Sweeps the head yaw and pitch through center, left, right, up, down.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

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
		fmt.Println("Usage: move-head [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	fmt.Println("👀 NAO Head Movement")
	fmt.Println("===================")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	motion := session.Motion()

	if err := motion.WakeUp(ctx); err != nil {
		fmt.Printf("❌ wake up: %v\n", err)
		os.Exit(1)
	}
	if err := motion.SetStiffness(ctx, naoqi.ChainHead, 1.0); err != nil {
		fmt.Printf("❌ stiffness: %v\n", err)
		os.Exit(1)
	}

	type move struct {
		joint string
		angle float64
	}
	steps := []struct {
		label string
		moves []move
	}{
		{"Looking straight ahead...", []move{{naoqi.JointHeadYaw, 0.0}, {naoqi.JointHeadPitch, 0.0}}},
		{"Looking left...", []move{{naoqi.JointHeadYaw, 0.7}}},
		{"Looking right...", []move{{naoqi.JointHeadYaw, -0.7}}},
		{"Looking up...", []move{{naoqi.JointHeadYaw, 0.0}, {naoqi.JointHeadPitch, -0.4}}},
		{"Looking down...", []move{{naoqi.JointHeadPitch, 0.4}}},
		{"Returning to center...", []move{{naoqi.JointHeadYaw, 0.0}, {naoqi.JointHeadPitch, 0.0}}},
	}

	for _, step := range steps {
		fmt.Println(step.label)
		for _, m := range step.moves {
			if err := motion.SetAngle(ctx, m.joint, m.angle, 0.2); err != nil {
				fmt.Printf("❌ %v\n", err)
				os.Exit(1)
			}
		}
		time.Sleep(time.Second)
	}

	fmt.Println("✅ Done!")
}
