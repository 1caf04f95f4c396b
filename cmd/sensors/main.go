// Sensors - print a snapshot of NAO's sensors
//
// Battery, head temperature, touch sensors, sonar, foot bumpers. Sensors
// a robot does not expose print as N/A.
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
	"github.com/nao-robotics/go-nao/pkg/sensors"
)

func pressedString(r sensors.Reading) string {
	if !r.OK {
		return "N/A"
	}
	if r.Pressed() {
		return "TOUCHED"
	}
	return "not touched"
}

func main() {
	flag.BoolVar(&log.Verbose, "v", false, "trace every service call")
	flag.Parse()
	log.Init(config.LogLevel())

	robotIP, err := config.RobotIP(flag.Arg(0))
	if err != nil {
		fmt.Println("Usage: sensors [robot_ip]")
		fmt.Println("Or set NAO_IP_ADDRESS in .env file")
		os.Exit(1)
	}

	ctx := context.Background()
	session, err := naoqi.Connect(ctx, robotIP, config.DefaultPort)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	reader := sensors.NewReader(session.Memory())
	report, err := reader.Read(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	line := strings.Repeat("=", 50)
	fmt.Println(line)
	fmt.Println("NAO Sensor Readings")
	fmt.Println(line)

	fmt.Println("\n--- Battery ---")
	if pct, ok := report.BatteryPercent(); ok {
		fmt.Printf("Battery Level: %.0f%%\n", pct)
	} else {
		fmt.Println("Battery: N/A")
	}

	fmt.Println("\n--- Head Temperature ---")
	if report.HeadTemp.OK {
		fmt.Printf("Head Temperature: %.1f°C\n", report.HeadTemp.Value)
	} else {
		fmt.Println("Head Temperature: N/A")
	}

	fmt.Println("\n--- Touch Sensors ---")
	for _, t := range report.Touch {
		fmt.Printf("%s: %s\n", t.Name, pressedString(t))
	}

	fmt.Println("\n--- Sonar Distance ---")
	for _, snr := range report.Sonar {
		if snr.OK {
			fmt.Printf("%s: %.2f m\n", snr.Name, snr.Value)
		} else {
			fmt.Printf("%s: N/A\n", snr.Name)
		}
	}

	fmt.Println("\n--- Foot Bumpers ---")
	for _, b := range report.Bumpers {
		fmt.Printf("%s: %s\n", b.Name, pressedString(b))
	}

	fmt.Println("\n" + line)
}
