// Say Hello - make NAO speak
//
// Says a greeting, changes the voice speed and pitch, and speaks again.
package main

import (
	"context"
	"flag"
	"fmt"
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
		fmt.Println("Usage: say-hello [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	fmt.Println("🗣️  NAO Say Hello")
	fmt.Println("================")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	tts := session.TextToSpeech()

	if err := tts.Say(ctx, "Hello! I am NAO. Nice to meet you!"); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	// Speed is a percentage (80-120 is normal), pitchShift a multiplier.
	tts.SetParameter(ctx, "speed", 100)
	tts.SetParameter(ctx, "pitchShift", 1.0)

	if err := tts.Say(ctx, "I can speak at different speeds and pitches!"); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Done!")
}
