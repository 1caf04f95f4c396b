// Stand Sit - drive NAO into a predefined posture
//
// Usage: stand-sit [robot_ip] <action>
// Actions: stand, sit, crouch, lyingback, lyingbelly
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nao-robotics/go-nao/internal/config"
	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
)

var postureMap = map[string]string{
	"stand":      naoqi.PostureStand,
	"sit":        naoqi.PostureSit,
	"crouch":     naoqi.PostureCrouch,
	"lyingback":  naoqi.PostureLyingBack,
	"lyingbelly": naoqi.PostureLyingBelly,
}

func usage() {
	fmt.Println("Usage: stand-sit [robot_ip] <action>")
	fmt.Println("Actions: stand, sit, crouch, lyingback, lyingbelly")
	fmt.Println("Example: stand-sit 192.168.1.100 stand")
}

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	flag.Parse()
	log.Init(config.LogLevel())

	// With two args the first is the IP; with one it is the action and the
	// IP comes from the environment.
	ipArg, action := "", flag.Arg(0)
	if flag.NArg() >= 2 {
		ipArg, action = flag.Arg(0), flag.Arg(1)
	}
	if action == "" {
		usage()
		os.Exit(1)
	}

	robotIP, err := config.RobotIP(ipArg)
	if err != nil {
		usage()
		os.Exit(1)
	}

	posture, ok := postureMap[strings.ToLower(action)]
	if !ok {
		fmt.Printf("Unknown action: %s\n", action)
		fmt.Println("Valid actions: stand, sit, crouch, lyingback, lyingbelly")
		os.Exit(1)
	}

	fmt.Println("🧍 NAO Posture Control")
	fmt.Println("=====================")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	if err := session.Motion().WakeUp(ctx); err != nil {
		fmt.Printf("❌ wake up: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Going to %s posture...\n", posture)
	reached, err := session.RobotPosture().GoToPosture(ctx, posture, 0.5)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	if reached {
		fmt.Printf("✅ Successfully reached %s posture!\n", posture)
	} else {
		fmt.Println("⚠️  Failed to reach posture.")
		os.Exit(1)
	}
}
