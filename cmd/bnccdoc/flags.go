package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks command-line arguments the flag parser rejected.
var ErrUsage = errors.New("invalid arguments")

// parseArgs parses args into fs. Help requests pass through unwrapped.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config string
	dbPath string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.dbPath, "db", "", "SQLite database path")
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
}

func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (e.g., :3000)")

	fs.Usage = func() { printServeUsage(stderr) }
	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// exportFlags holds flags for the export command.
type exportFlags struct {
	common  commonFlags
	user    int64
	plan    int64
	year    string
	all     bool
	format  string
	output  string
	workers int
}

func parseExportFlags(args []string, stderr io.Writer) (*exportFlags, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &exportFlags{}

	addCommonFlags(fs, &f.common)
	fs.Int64VarP(&f.user, "user", "u", 0, "owner user ID (plan and year exports)")
	fs.Int64VarP(&f.plan, "plan", "p", 0, "export one plan by ID")
	fs.StringVarP(&f.year, "year", "y", "", "export the yearly document of a school year")
	fs.BoolVar(&f.all, "all", false, "export every plan as a ZIP of PDFs")
	fs.StringVarP(&f.format, "format", "f", formatPDF, "output format: pdf, docx, html")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: download name)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent renders for --all (0 = config)")

	fs.Usage = func() { printExportUsage(stderr) }
	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// skillsFlags holds flags for the skills command.
type skillsFlags struct {
	year string
	axis string
	json bool
}

func parseSkillsFlags(args []string, stderr io.Writer) (*skillsFlags, error) {
	fs := flag.NewFlagSet("skills", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &skillsFlags{}

	fs.StringVarP(&f.year, "year", "y", "", "filter by school year (e.g., \"5º Ano\")")
	fs.StringVar(&f.axis, "axis", "", "filter by curriculum axis")
	fs.BoolVar(&f.json, "json", false, "print JSON")

	fs.Usage = func() { printSkillsUsage(stderr) }
	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, error) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &doctorFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print JSON")

	fs.Usage = func() { printDoctorUsage(stderr) }
	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}
