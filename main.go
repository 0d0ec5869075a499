package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"iva/audio"
	"iva/config"
	"iva/interviewer"
	"iva/log"
	"iva/narrator"
	"iva/recognizer"
	"iva/session"
	"iva/shutdown"
)

var version = "dev"

var shutdownOnce sync.Once

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func findDevice(actx audio.Context, name string) (*audio.DeviceInfo, error) {
	devices, err := actx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	for i, d := range devices {
		if strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("no capture device matching %q", name)
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  start        begin the interview")
	fmt.Println("  stop         end the interview and hear the evaluation")
	fmt.Println("  record       start recording a spoken answer")
	fmt.Println("  done         stop recording")
	fmt.Println("  say <text>   submit a typed answer")
	fmt.Println("  role <name>  switch the interview role")
	fmt.Println("  quit         exit")
}

func main() {
	roleFlag := flag.String("role", "", "interview role (data analyst, software developer, product manager, marketing executive)")
	deviceFlag := flag.String("device", "", "capture device name substring")
	setupFlag := flag.Bool("setup", false, "interactively pick the microphone")
	recognizerFlag := flag.String("recognizer", "", "speech recognizer backend (vosk, whisper)")
	logPathFlag := flag.String("logpath", "", "log directory")
	muteFlag := flag.Bool("mute", false, "disable spoken narration")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("iva", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if *logPathFlag != "" {
		cfg.LogPath = *logPathFlag
	}

	dir, err := log.ResolveDir(cfg.LogPath)
	if err != nil {
		fatal(fmt.Errorf("resolving log directory: %w", err))
	}
	log.SetDir(dir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	roleName := cfg.Role
	if *roleFlag != "" {
		roleName = *roleFlag
	}
	role, err := interviewer.ParseRole(roleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nValid roles:\n", err)
		for _, r := range interviewer.Roles {
			fmt.Fprintf(os.Stderr, "  %s\n", r)
		}
		os.Exit(1)
	}

	backend := cfg.Recognizer
	if *recognizerFlag != "" {
		backend = *recognizerFlag
	}
	rec, err := recognizer.New(recognizer.Config{
		Backend:      backend,
		VoskURL:      cfg.VoskURL,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		WhisperModel: cfg.WhisperModel,
	})
	if err != nil {
		fatal(err)
	}

	if cfg.OpenAIAPIKey == "" {
		fatal(fmt.Errorf("OPENAI_API_KEY is required for the interviewer backend"))
	}
	turnGen := interviewer.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)

	actx, err := audio.NewContext()
	if err != nil {
		fatal(fmt.Errorf("initializing audio: %w", err))
	}

	var device *audio.DeviceInfo
	if *setupFlag {
		device, err = audio.SelectDevice(actx)
		if err != nil {
			fatal(err)
		}
	} else if *deviceFlag != "" {
		device, err = findDevice(actx, *deviceFlag)
		if err != nil {
			fatal(err)
		}
	}

	var voice narrator.Narrator = narrator.Quiet{}
	if !*muteFlag {
		voice = narrator.NewOpenAI(cfg.OpenAIAPIKey, cfg.TTSModel, cfg.TTSVoice)
	}

	ctrl := session.New(session.Config{
		Audio:       actx,
		Device:      device,
		Recognizer:  rec,
		Generator:   turnGen,
		Narrator:    voice,
		Role:        role,
		TurnTimeout: cfg.TurnTimeout,
	})

	eventsDone := make(chan struct{})
	go func() {
		defer close(eventsDone)
		for u := range ctrl.Events() {
			fmt.Printf("%s: %s\n", u.Speaker, u.Text)
		}
	}()

	gracefulShutdown := func() {
		shutdownOnce.Do(func() {
			ctrl.Close()
			<-eventsDone
			actx.Close()
			log.Close()
		})
	}

	sig := make(chan os.Signal, 1)
	shutdown.Notify(sig)
	go func() {
		<-sig
		gracefulShutdown()
		os.Exit(0)
	}()

	fmt.Printf("Mock Interview AI (%s, recognizer: %s, role: %s)\n", version, rec.Name(), role)
	printHelp()
	ctrl.Greet()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "":
		case "start":
			ctrl.StartInterview()
		case "stop":
			ctrl.StopInterview()
		case "record":
			ctrl.StartRecording()
		case "done":
			ctrl.StopRecording()
		case "say":
			ctrl.SubmitTypedAnswer(rest)
		case "role":
			r, err := interviewer.ParseRole(rest)
			if err != nil {
				fmt.Printf("Unknown role %q. Valid roles: %v\n", rest, interviewer.Roles)
				continue
			}
			ctrl.SetRole(r)
			fmt.Printf("Role set to %s\n", r)
		case "quit", "exit":
			gracefulShutdown()
			return
		case "help":
			printHelp()
		default:
			fmt.Printf("Unknown command %q. Type help for the command list.\n", cmd)
		}
	}
	gracefulShutdown()
}
