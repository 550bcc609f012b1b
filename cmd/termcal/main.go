package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"termcal/internal/config"
	"termcal/internal/ics"
	"termcal/internal/layout"
	appLog "termcal/internal/log"
	"termcal/internal/tui"
)

const usageText = `Usage: termcal [flags] <calendar.ics> [date]

View and edit the week of an iCalendar file in the terminal.

Date format examples (defaults to today):
    2024-09-16    (YYYY-MM-DD)
    16.09.2024    (DD.MM.YYYY)
    16/09/2024    (DD/MM/YYYY)
    09/16/2024    (MM/DD/YYYY)
    2024/09/16    (YYYY/MM/DD)
    16-09-2024    (DD-MM-YYYY)
    09-16-2024    (MM-DD-YYYY)

Flags:
`

// flagConfig holds CLI flag and argument values.
type flagConfig struct {
	configPath string
	hourHeight int
	icsPath    string
	date       string
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(flags flagConfig) error {
	conf, saveErr, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.hourHeight > 0 {
		conf.HourHeight = flags.hourHeight
	}

	logFile, err := openLog(conf)
	if err != nil {
		return err
	}
	defer logFile.Close()
	if saveErr != nil {
		appLog.Error("default config not written", saveErr, "config_path", flags.configPath)
	}

	appLog.Info("termcal starting",
		"config_path", flags.configPath,
		"calendar", flags.icsPath,
		"timezone", conf.Timezone,
		"hour_height", conf.HourHeight,
		"reload", conf.Reload,
	)

	if err := checkCalendarPath(flags.icsPath); err != nil {
		return err
	}

	loc := conf.Location()
	day := time.Now().In(loc)
	if flags.date != "" {
		if day, err = ics.ParseDate(flags.date, loc); err != nil {
			return err
		}
	}

	store, err := ics.Open(flags.icsPath, loc)
	if err != nil {
		return fmt.Errorf("read calendar: %w", err)
	}

	sched, err := conf.ReloadSchedule()
	if err != nil {
		return err
	}

	err = tui.Run(store, layout.NewCursor(), tui.Options{
		WeekStart:         ics.WeekStart(day),
		HourHeight:        conf.HourHeight,
		InitialScrollHour: conf.InitialScrollHour,
		Location:          loc,
		Reload:            sched,
	})
	appLog.Info("termcal exiting")
	return err
}

// loadConfig wraps config.Load. A first-run failure to write the defaults is
// not fatal: the defaults are returned with saveErr set and a warning printed.
func loadConfig(path string) (conf *config.Config, saveErr, err error) {
	conf, err = config.Load(path)
	if err == nil {
		return conf, nil, nil
	}
	if conf == nil {
		return nil, nil, fmt.Errorf("load config %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Warning: could not write default config %s: %v\n", path, err)
	return conf, err, nil
}

func parseFlags(args []string) (flagConfig, error) {
	var cfg flagConfig

	fs := flag.NewFlagSet("termcal", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.configPath, "config", config.DefaultPath(), "Path to config file")
	fs.IntVar(&cfg.hourHeight, "hour-height", 0, "Rows per hour (overrides config if set)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch fs.NArg() {
	case 1:
		cfg.icsPath = fs.Arg(0)
	case 2:
		cfg.icsPath, cfg.date = fs.Arg(0), fs.Arg(1)
	default:
		fs.Usage()
		return cfg, fmt.Errorf("expected <calendar.ics> [date], got %d arguments", fs.NArg())
	}
	return cfg, nil
}

// checkCalendarPath mirrors the checks done before the view starts: the file
// must exist and be a regular file. An unusual extension only warns.
func checkCalendarPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("iCal file '%s' does not exist", path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("'%s' is not a file", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ics", ".ical":
	default:
		fmt.Fprintf(os.Stderr, "Warning: '%s' does not have a typical iCal extension (.ics or .ical)\n", path)
	}
	return nil
}

func openLog(conf *config.Config) (*os.File, error) {
	level, err := appLog.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, err
	}
	appLog.SetLevel(level)

	if err := os.MkdirAll(filepath.Dir(conf.LogFile), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	appLog.SetOutput(f)
	return f, nil
}
