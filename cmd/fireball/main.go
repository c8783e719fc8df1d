package main

import (
	"flag"
	"os"
	"runtime"

	"fireball/internal/capture"
	"fireball/internal/config"
	"fireball/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func init() {
	// GL calls must stay on the thread that created the context.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "fireball.toml", "Path to the TOML config file")
	assetsDir := flag.String("assets", "", "Directory searched for shader overrides (shaders/*.glsl)")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	capturePath := flag.String("capture", "", "Save one frame to this path (.png or "+capture.Ext+") and exit")
	captureFrame := flag.Int("capture-frame", 60, "Frame number saved by -capture")
	followPointer := flag.Bool("follow-pointer", false, "Turn the camera towards the desktop pointer")
	noWatch := flag.Bool("no-watch", false, "Do not reload the config file when it changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	utils.CurrentLevel = utils.ParseLevel(cfg.Log.Level)
	utils.ShowRaylibInfo = cfg.Log.RaylibInfo
	if *debugFlag {
		utils.SetDebug(true)
	}
	utils.DiscoverAssets(*assetsDir)

	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	utils.Info("--- Fireball Start ---")

	window, err := NewWindow(cfg, Options{
		ConfigPath:    *configPath,
		CapturePath:   *capturePath,
		CaptureFrame:  uint64(max(*captureFrame, 1)),
		FollowPointer: *followPointer,
	})
	if err != nil {
		utils.Error("Failed to start renderer: %v", err)
		os.Exit(1)
	}

	if !*noWatch && *capturePath == "" {
		window.WatchConfig(*configPath)
	}

	err = window.Run()
	window.Close()
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}
