// Package cmd implements the CLI application to explore income statements.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands lists the subcommands registered by the main package.
var Commands = []subcommands.Command{
	&serveCmd{},
	&tableCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables debug logging.
var Verbose = flag.Bool("v", false, "verbose logging")

const (
	EnvAPIKey       = "FMP_API_KEY"
	EnvLegacyAPIKey = "NEXT_PUBLIC_API_KEY" // name used by the web deployment
)

// Init loads the .env file and configures logging, it must be called after flag.Parse.
func Init() {
	// existing variables take precedence over the .env file.
	err := godotenv.Load()
	if *Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		if err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	}
}

// apiKeyFlag is embedded in commands that consume the FMP API.
type apiKeyFlag struct {
	key string
}

func (c *apiKeyFlag) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "fmp-api-key", "", "FMP API key to use for consuming financialmodelingprep.com API. This flag takes precedence over the "+EnvAPIKey+" environment variable.")
}

// apiKey retrieves the API key from the command-line flag or the environment variables.
// It prioritizes the flag over the environment.
func (c *apiKeyFlag) apiKey() string {
	if c.key != "" {
		return c.key
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}
	return os.Getenv(EnvLegacyAPIKey)
}

// checkAPIKey prints an error and returns false if no key is configured.
func (c *apiKeyFlag) checkAPIKey() bool {
	if c.apiKey() == "" {
		fmt.Fprintf(os.Stderr, "Error: FMP API key is not set. Use -fmp-api-key flag or %s environment variable\n", EnvAPIKey)
		return false
	}
	return true
}

// printMarkdown renders markdown for the terminal, falling back to raw markdown.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
