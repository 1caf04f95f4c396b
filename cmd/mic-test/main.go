// Mic Test - verify NAO's microphone recording pipeline end to end
//
// Records a short clip on the robot, fetches it over scp, decodes the WAV
// and reports format, size, and whether anything was actually captured.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nao-robotics/go-nao/internal/config"
	"github.com/nao-robotics/go-nao/internal/log"
	"github.com/nao-robotics/go-nao/pkg/naoqi"
	"github.com/nao-robotics/go-nao/pkg/recording"
)

const (
	remotePath = "/home/nao/mictest.wav"
	sampleRate = 16000
	duration   = 2 * time.Second
)

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: mic-test [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	line := strings.Repeat("=", 60)
	fmt.Println(line)
	fmt.Println("Microphone Recording Test")
	fmt.Println(line)
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	rec := session.AudioRecorder()

	// Clear any recording a crashed run left behind.
	rec.StopRecording(ctx)

	fmt.Printf("Recording %v of audio (speak now)...\n", duration)
	if err := rec.StartRecording(ctx, remotePath, "wav", sampleRate, naoqi.FrontMicrophone); err != nil {
		fmt.Printf("[ERROR] start recording: %v\n", err)
		os.Exit(1)
	}
	time.Sleep(duration)
	if err := rec.StopRecording(ctx); err != nil {
		fmt.Printf("[ERROR] stop recording: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("[OK] Recording finished")

	fmt.Println("\nFetching recording from robot...")
	fetcher := recording.NewFetcher(robotIP, config.DefaultSSHUser, config.SSHPassword())
	localPath, err := fetcher.Fetch(ctx, remotePath)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	defer os.Remove(localPath)
	fmt.Println("[OK] Transfer complete")

	info, err := recording.Inspect(localPath)
	if err != nil {
		fmt.Printf("[ERROR] decode: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n" + strings.Repeat("-", 60))
	fmt.Printf("Sample Rate: %d Hz\n", info.SampleRate)
	fmt.Printf("Channels: %d\n", info.Channels)
	fmt.Printf("Bit Depth: %d\n", info.BitDepth)
	fmt.Printf("Duration: %.2f s\n", info.Duration.Seconds())
	fmt.Printf("Size: %d bytes\n", info.Size)
	fmt.Printf("Peak Amplitude: %.3f\n", info.Peak)
	fmt.Println(strings.Repeat("-", 60))

	if info.Silent() {
		fmt.Println("\n[ERROR] Recording is pure silence, check the microphone")
		os.Exit(1)
	}

	fmt.Println("\n[OK] Microphone pipeline works!")
}
