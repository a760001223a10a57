// Command matrix-clock drives a 32x16 MAX7219 LED matrix clock: NTP time,
// ambient-light brightness, motion-controlled power, and a web/MQTT surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"periph.io/x/host/v3"

	"github.com/sweeney/matrix-clock/internal/clock"
	"github.com/sweeney/matrix-clock/internal/display"
	"github.com/sweeney/matrix-clock/internal/logic"
	"github.com/sweeney/matrix-clock/internal/mqtt"
	"github.com/sweeney/matrix-clock/internal/render"
	"github.com/sweeney/matrix-clock/internal/sensor"
	"github.com/sweeney/matrix-clock/internal/status"
	"github.com/sweeney/matrix-clock/internal/web"
)

const (
	// resyncInterval is how often the NTP offset is re-measured.
	resyncInterval = time.Hour
	// envRefreshInterval is how often the BME280 is sampled.
	envRefreshInterval = 30 * time.Second
)

func main() {
	poll := flag.Duration("poll", 100*time.Millisecond, "Control loop tick interval")
	timeout := flag.Duration("timeout", 90*time.Second, "Inactivity timeout before the display switches off")
	grace := flag.Duration("grace", 30*time.Second, "Startup period during which the display stays on")
	override := flag.Duration("override", 30*time.Minute, "How long a manual power toggle pins the display")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address (empty to disable)")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP address (empty to disable)")
	spiMatrix := flag.String("spi-matrix", "/dev/spidev0.0", "SPI port for the MAX7219 chain")
	spiADC := flag.String("spi-adc", "/dev/spidev0.1", "SPI port for the MCP3008 ADC")
	i2cDev := flag.String("i2c", "", "I2C bus for the BME280 (empty for the default bus)")
	pirPin := flag.Int("pir-pin", sensor.DefaultPinPIR, "BCM pin number for the PIR motion sensor")
	adcChannel := flag.Int("adc-channel", sensor.DefaultADCChannel, "MCP3008 channel wired to the LDR")
	zone := flag.Int("zone", 0, "Initial timezone table index")
	cycle := flag.Duration("cycle", render.DefaultCyclePeriod, "Display mode cycle period")
	envFile := flag.String("env-file", "/run/pi-helper.env", "Network info env file (empty to skip)")
	printState := flag.Bool("print-state", false, "Print current sensor readings and exit")

	flag.Parse()

	if err := run(*poll, *timeout, *grace, *override, *broker, *heartbeat, *httpAddr,
		*spiMatrix, *spiADC, *i2cDev, *pirPin, *adcChannel, *zone, *cycle, *envFile, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(poll, timeout, grace, override time.Duration, broker string, heartbeat time.Duration, httpAddr,
	spiMatrix, spiADC, i2cDev string, pirPin, adcChannel, zone int, cycle time.Duration, envFile string, printState bool) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}

	sensors, err := sensor.NewRealReader(pirPin, spiADC, adcChannel, i2cDev)
	if err != nil {
		return fmt.Errorf("init sensors: %w", err)
	}
	defer sensors.Close()

	if printState {
		return printSensorState(sensors)
	}

	driver, err := display.NewMAX7219(spiMatrix)
	if err != nil {
		return fmt.Errorf("init matrix: %w", err)
	}
	defer driver.Close()
	applier := display.NewApplier(driver)

	var frame display.Frame
	show := func(text string) {
		render.Message(&frame, text)
		if err := driver.Present(&frame); err != nil {
			log.Printf("display present error: %v", err)
		}
	}

	// Boot sequence, mirrored on the matrix so a headless unit is debuggable.
	show("WIFI")
	netInfo := readNetworkInfo(envFile)
	if netInfo != nil && netInfo.Status != "connected" {
		show("WIFI FAIL")
		return fmt.Errorf("network not connected: %s", netInfo.Status)
	}

	show("SYNC TIME")
	source, err := clock.NewSource(zone)
	if err != nil {
		return fmt.Errorf("init clock: %w", err)
	}
	if err := source.Resync(); err != nil {
		log.Printf("initial ntp sync failed, continuing on system clock: %v", err)
	}

	timeoutTicks := int(timeout / poll)
	if timeoutTicks < 1 {
		timeoutTicks = 1
	}
	ctrl := logic.NewController(logic.Config{
		Timeout:          timeoutTicks,
		Grace:            grace,
		OverrideDuration: override,
	}, time.Now())
	tracker := status.NewTracker(ctrl, sensors, time.Now(), source.ZoneIndex(), source.ZoneName(), status.Config{
		PollMs:      poll.Milliseconds(),
		TimeoutS:    int64(timeout.Seconds()),
		GraceS:      int64(grace.Seconds()),
		OverrideMin: int64(override.Minutes()),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
	})
	tracker.SetSync(source.Synced(), source.LastSync())
	if netInfo != nil {
		tracker.SetNetwork(netInfo)
	}

	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if broker != "" {
		real, err := mqtt.NewRealPublisher(broker)
		if err != nil {
			log.Printf("mqtt connect failed, continuing without broker: %v", err)
		} else {
			publisher = real
			mqttStatus = real
			defer real.Close()

			tracker.SetMQTTConnected(real.IsConnected())
			snap := tracker.Snapshot()
			startupEvent := mqtt.SystemEvent{
				Timestamp:  snap.Now,
				Event:      "STARTUP",
				Retained:   true,
				RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
			}
			if err := real.PublishSystem(startupEvent); err != nil {
				log.Printf("failed to publish startup event: %v", err)
			} else {
				log.Printf("published startup event")
			}
		}
	}

	var srv *web.Server
	if httpAddr != "" {
		srv = web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http server listening on %s", httpAddr)
	}

	show("READY")
	log.Printf("started: poll=%v timeout=%v grace=%v broker=%s heartbeat=%v zone=%s",
		poll, timeout, grace, broker, heartbeat, source.ZoneName())

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		tracker:    tracker,
		source:     source,
		driver:     driver,
		applier:    applier,
		renderer:   render.New(time.Now(), cycle),
		publisher:  publisher,
		mqttStatus: mqttStatus,
		envFile:    envFile,
	}
	if srv != nil {
		deps.notify = srv.NotifyRefresh
	}
	return runLoop(deps, heartbeat, resyncInterval, envRefreshInterval, time.Now, ticker.C, sigCh)
}

// loopDeps carries everything the control loop touches, so tests can swap
// in fakes for the hardware and the broker.
type loopDeps struct {
	tracker    *status.Tracker
	source     *clock.Source
	driver     display.Driver
	applier    *display.Applier
	renderer   *render.Renderer
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	notify     func()
	envFile    string
}

func runLoop(deps loopDeps, heartbeat, resyncEvery, envEvery time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	lastResync := now()
	var lastEnv time.Time
	var frame display.Frame

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			publishShutdown(deps, now(), signalName)
			return nil

		case <-tick:
			t := now()

			if deps.tracker.ConsumeResetRequest() {
				log.Printf("reset requested, shutting down for re-provisioning")
				publishShutdown(deps, t, "RESET")
				return nil
			}

			// The NTP offset is timezone-independent, so a zone switch
			// needs no resync.
			if idx, ok := deps.tracker.ConsumeTimezoneRequest(); ok {
				if err := deps.source.SelectZone(idx); err != nil {
					log.Printf("timezone switch: %v", err)
				} else {
					deps.tracker.SetZone(idx, deps.source.ZoneName())
					log.Printf("timezone switched to %s", deps.source.ZoneName())
				}
			}

			if resyncEvery > 0 && t.Sub(lastResync) >= resyncEvery {
				lastResync = t
				if err := deps.source.Resync(); err != nil {
					log.Printf("ntp resync: %v", err)
				}
				deps.tracker.SetSync(deps.source.Synced(), deps.source.LastSync())
			}

			if envEvery > 0 && (lastEnv.IsZero() || t.Sub(lastEnv) >= envEvery) {
				lastEnv = t
				deps.tracker.RefreshEnvironment()
			}

			snap := deps.source.Now()
			d, events, lightChanged := deps.tracker.Tick(snap, t)

			if err := deps.applier.Apply(d.Powered, d.Intensity); err != nil {
				log.Printf("display apply error: %v", err)
			}
			if d.Powered {
				use24, fahrenheit := deps.tracker.RenderSettings()
				mode := deps.renderer.Render(&frame, snap, deps.tracker.Environment(),
					render.Settings{Use24Hour: use24, UseFahrenheit: fahrenheit}, t)
				if err := deps.driver.Present(&frame); err != nil {
					log.Printf("display present error: %v", err)
				}
				deps.tracker.SetFrame(&frame, mode.String())
			}

			for _, event := range events {
				log.Printf("event: %s (powered=%v intensity=%d phase=%s)",
					event.Type, event.Powered, event.Intensity, event.Phase)
				if deps.publisher != nil {
					if err := deps.publisher.Publish(event); err != nil {
						log.Printf("publish error: %v", err)
						// Don't crash on publish failure
					}
				}
			}

			if lightChanged && deps.notify != nil {
				deps.notify()
			}

			if hbData := deps.tracker.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v on=%d off=%d motion=%d",
					hbData.Uptime, hbData.Counts.DisplayOn, hbData.Counts.DisplayOff, hbData.Counts.Motion)
				if deps.publisher != nil {
					if deps.mqttStatus != nil {
						deps.tracker.SetMQTTConnected(deps.mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(deps.envFile); net != nil {
						deps.tracker.SetNetwork(net)
					}
					hbEvent := mqtt.SystemEvent{
						Timestamp:  hbData.Timestamp,
						Event:      "HEARTBEAT",
						RawPayload: status.FormatStatusEvent(deps.tracker.Snapshot(), "HEARTBEAT", ""),
					}
					if err := deps.publisher.PublishSystem(hbEvent); err != nil {
						log.Printf("heartbeat publish error: %v", err)
					}
				}
			}

			if deps.mqttStatus != nil {
				deps.tracker.SetMQTTConnected(deps.mqttStatus.IsConnected())
			}
		}
	}
}

func publishShutdown(deps loopDeps, t time.Time, reason string) {
	if deps.publisher == nil {
		return
	}
	if deps.mqttStatus != nil {
		deps.tracker.SetMQTTConnected(deps.mqttStatus.IsConnected())
	}
	event := mqtt.SystemEvent{
		Timestamp:  t,
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(deps.tracker.Snapshot(), "SHUTDOWN", reason),
	}
	if err := deps.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

func printSensorState(sensors sensor.Reader) error {
	light, err := sensors.ReadLight()
	if err != nil {
		return fmt.Errorf("read light: %w", err)
	}
	motion, err := sensors.ReadMotion()
	if err != nil {
		return fmt.Errorf("read motion: %w", err)
	}
	fmt.Printf("light: %d, motion: %v", light, motion)
	if env, err := sensors.ReadEnvironment(); err == nil && env.Available {
		fmt.Printf(", temp: %dC, humidity: %d%%, pressure: %dhPa", env.TemperatureC, env.HumidityPct, env.PressureHPa)
	}
	fmt.Println()
	return nil
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

// readNetworkInfo loads the provisioning helper's env file and reports the
// network state, or nil when no helper is present.
func readNetworkInfo(envFile string) *status.NetworkInfo {
	if envFile != "" {
		// Overlay only; already-set variables win so tests and systemd
		// EnvironmentFile= setups keep working.
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Printf("network env file %s: %v", envFile, err)
		}
	}
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}
