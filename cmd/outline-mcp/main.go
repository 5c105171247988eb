package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/outline-tools-mcp/internal/imaging"
	"github.com/ironsheep/outline-tools-mcp/internal/server"
	"github.com/ironsheep/outline-tools-mcp/internal/trace"
	"github.com/ironsheep/outline-tools-mcp/internal/vector"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("outline-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("outline-tools-mcp - MCP server for tracing bitmaps into bezier outlines")
			fmt.Println()
			fmt.Println("Usage: outline-tools-mcp [options]")
			fmt.Println("       outline-tools-mcp trace <image> [ratio]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Commands:")
			fmt.Println("  trace            Trace the first dark region of an image and print it as SVG")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  OUTLINE_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("Without a command the server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		case "trace":
			if err := runTrace(os.Args[2:], os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "outline-tools-mcp: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("OUTLINE_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Outline MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// runTrace implements "trace <image> [ratio]".
func runTrace(args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: trace <image> [ratio]")
	}

	ratio := 0.25
	if len(args) == 2 {
		r, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("failed to parse ratio %q: %w", args[1], err)
		}
		ratio = r
	}
	if err := trace.ValidateRatio(ratio); err != nil {
		return err
	}

	img, err := imaging.NewImageCache().Load(args[0])
	if err != nil {
		return err
	}
	b, err := imaging.Binarize(img, imaging.BinarizeOptions{Threshold: 128})
	if err != nil {
		return err
	}
	res, err := trace.OutlineBitmap(b, ratio)
	if err != nil {
		return err
	}
	return vector.WriteSVG(out, res, vector.SVGOptions{})
}
