package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bnccdoc <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the lesson-planning HTTP API")
	fmt.Fprintln(w, "  export     Render plans to PDF, Word, HTML or a ZIP archive")
	fmt.Fprintln(w, "  skills     List the curriculum skills")
	fmt.Fprintln(w, "  doctor     Check the browser, configuration and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'bnccdoc help <command>' for details on a specific command.")
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bnccdoc serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :3000)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --db <path>           SQLite database path")
	fmt.Fprintln(w)
	printEnvUsage(w)
}

func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bnccdoc export (--plan <id> | --year <year> | --all) [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render documents straight from the database.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Targets:")
	fmt.Fprintln(w, "  -p, --plan <id>           One plan (requires --user)")
	fmt.Fprintln(w, "  -y, --year <year>         Yearly document of a school year (requires --user)")
	fmt.Fprintln(w, "      --all                 Every plan, as a ZIP of PDFs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -u, --user <id>           Owner of the plans")
	fmt.Fprintln(w, "  -f, --format <fmt>        pdf, docx (plans only), html (default pdf)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: download name)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent renders for --all")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --db <path>           SQLite database path")
}

func printSkillsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bnccdoc skills [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -y, --year <year>         Filter by school year (e.g., \"5º Ano\")")
	fmt.Fprintln(w, "      --axis <axis>         Filter by axis")
	fmt.Fprintln(w, "      --json                Print JSON")
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bnccdoc doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Print JSON")
}

func printEnvUsage(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BNCCDOC_JWT_SECRET        Token signing key (required, 16+ bytes)")
	fmt.Fprintln(w, "  BNCCDOC_GEMINI_API_KEY    Text generation key (generation disabled when unset)")
	fmt.Fprintln(w, "  BNCCDOC_CONFIG            Config file name or path")
	fmt.Fprintln(w, "  BNCCDOC_ADDR, BNCCDOC_DB_PATH, BNCCDOC_DOMAIN, BNCCDOC_LOG_LEVEL")
	fmt.Fprintln(w, "  BNCCDOC_BATCH_WORKERS     Concurrent renders of the batch export")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox (containers)")
}

// runHelp prints help for a command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "skills":
		printSkillsUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n", args[0])
		return ExitUsage
	}
	return ExitSuccess
}
