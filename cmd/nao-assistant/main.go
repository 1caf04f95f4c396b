// NAO Assistant - voice assistant on a NAO robot
//
// Touch NAO's head to talk. Audio is recorded on the robot, fetched over
// scp, transcribed with Whisper, answered by a chat model, and spoken back.
//
// Requires OPENAI_API_KEY (environment or .env) and sshpass or an SSH key
// for the robot's nao account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao-robotics/go-nao/internal/config"
	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/assistant"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
	"github.com/nao-robotics/go-nao/pkg/openai"
	"github.com/nao-robotics/go-nao/pkg/recording"
	"github.com/nao-robotics/go-nao/pkg/sensors"
)

func setupHelp() {
	fmt.Println("Setup:")
	fmt.Println("  1. Put OPENAI_API_KEY=sk-... in .env or the environment")
	fmt.Println("  2. Install sshpass (or set up an SSH key for the nao account):")
	fmt.Println("       macOS:  brew install hudochenkov/sshpass/sshpass")
	fmt.Println("       Linux:  sudo apt-get install sshpass")
	fmt.Println("  3. Optionally set NAO_PASSWORD if yours is not the default")
}

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: nao-assistant [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	apiKey, err := config.OpenAIKey()
	if err != nil {
		fmt.Printf("❌ %v\n\n", err)
		setupHelp()
		os.Exit(1)
	}

	fmt.Println("🤖 NAO Voice Assistant")
	fmt.Println("=====================")
	fmt.Printf("Robot: %s\n", robotIP)
	fmt.Printf("Model: %s\n\n", config.ChatModel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\n👋 Shutting down...")
		cancel()
	}()

	fmt.Printf("Connecting to NAO at %s...\n", robotIP)
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()
	fmt.Println("Connected successfully!")

	brain, err := openai.New(
		openai.WithAPIKey(apiKey),
		openai.WithModel(config.ChatModel()),
	)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	a := assistant.New(
		session.TextToSpeech(),
		session.Leds(),
		session.AudioRecorder(),
		sensors.NewReader(session.Memory()),
		recording.NewFetcher(robotIP, config.DefaultSSHUser, config.SSHPassword()),
		brain,
	)

	fmt.Println("\nTouch NAO's head to start talking. Ctrl+C to quit.")

	err = a.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, recording.ErrTransferFailed) {
			fmt.Printf("\n❌ %v\n\n", err)
			setupHelp()
		} else {
			fmt.Printf("\n❌ %v\n", err)
		}
		os.Exit(1)
	}

	// Leave the eyes white on the way out.
	session.Leds().FadeRGB(context.Background(), naoqi.GroupFaceLeds, 1.0, 1.0, 1.0, 0.5)
	fmt.Println("Goodbye!")
}
