// Leds - NAO LED light show
//
// Fades the eyes through primary colors, runs a rainbow cycle, blinks,
// and resets to white.
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
)

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: leds [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	fmt.Println("💡 NAO LED Demo")
	fmt.Println("==============")
	fmt.Printf("Robot: %s\n\n", robotIP)

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	leds := session.Leds()

	// Reset the eyes to white if interrupted mid-show.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\n👋 Resetting eyes...")
		leds.FadeRGB(context.Background(), naoqi.GroupFaceLeds, 1.0, 1.0, 1.0, 0.5)
		os.Exit(0)
	}()

	session.TextToSpeech().Say(ctx, "Watch my eyes!")

	fmt.Println("Setting eyes to red...")
	leds.FadeRGB(ctx, naoqi.GroupFaceLeds, 1.0, 0.0, 0.0, 0.5)
	time.Sleep(time.Second)

	fmt.Println("Setting eyes to green...")
	leds.FadeRGB(ctx, naoqi.GroupFaceLeds, 0.0, 1.0, 0.0, 0.5)
	time.Sleep(time.Second)

	fmt.Println("Setting eyes to blue...")
	leds.FadeRGB(ctx, naoqi.GroupFaceLeds, 0.0, 0.0, 1.0, 0.5)
	time.Sleep(time.Second)

	fmt.Println("Rainbow effect...")
	rainbow := []struct{ r, g, b float64 }{
		{1.0, 0.0, 0.0}, // Red
		{1.0, 0.5, 0.0}, // Orange
		{1.0, 1.0, 0.0}, // Yellow
		{0.0, 1.0, 0.0}, // Green
		{0.0, 0.0, 1.0}, // Blue
		{0.5, 0.0, 1.0}, // Purple
	}
	for _, c := range rainbow {
		leds.FadeRGB(ctx, naoqi.GroupFaceLeds, c.r, c.g, c.b, 0.3)
		time.Sleep(400 * time.Millisecond)
	}

	fmt.Println("Blinking...")
	for i := 0; i < 3; i++ {
		leds.Off(ctx, naoqi.GroupFaceLeds)
		time.Sleep(200 * time.Millisecond)
		leds.On(ctx, naoqi.GroupFaceLeds)
		time.Sleep(200 * time.Millisecond)
	}

	fmt.Println("Resetting to white...")
	leds.FadeRGB(ctx, naoqi.GroupFaceLeds, 1.0, 1.0, 1.0, 0.5)

	session.TextToSpeech().Say(ctx, "LED demo complete!")
	fmt.Println("✅ Done!")
}
