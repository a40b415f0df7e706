package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/labstack/gommon/bytes"
	"github.com/labstack/gommon/color"
	log "github.com/sirupsen/logrus"

	"hurracloud.io/docsearch/internal/backend"
	"hurracloud.io/docsearch/internal/catalog"
	"hurracloud.io/docsearch/internal/search"
	"hurracloud.io/docsearch/internal/server"
)

type Options struct {
	Verbose bool `short:"v" long:"verbose" description:"Enable verbose logging"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"Disable colored output"`
}

type ServeCommand struct {
	Parallelism       int    `short:"p" long:"parallelism" env:"PARALLELISM" description:"How many pages to index per bulk" default:"2"`
	MetadataDir       string `short:"d" long:"metadata_dir" env:"METADATA_DIR" description:"Where to store metadata about indices" default:"."`
	Backend           string `short:"b" long:"backend" env:"BACKEND" description:"Full-text search backend" default:"bleve" choice:"bleve" choice:"sonic"`
	SonicHost         string `short:"H" long:"sonic_host" env:"SONIC_HOST" description:"Sonic server host" default:"127.0.0.1"`
	SonicPort         int    `short:"P" long:"sonic_port" env:"SONIC_PORT" description:"Sonic server port" default:"1491"`
	SonicPassword     string `short:"s" long:"sonic_password" env:"SONIC_PASSWORD" description:"Sonic server password" default:"SecretPassword"`
	FileSizeThreshold string `short:"t" long:"file_size_threshold" env:"FILE_SIZE_THRESHOLD" description:"Pages larger than this are not indexed" default:"1MB"`
	Listen            string `short:"L" long:"listen" env:"LISTEN" description:"Address to bind server to" default:"127.0.0.1"`
	Port              int    `short:"o" long:"port" env:"PORT" description:"Port to bind server to" default:"10002"`
}

type SearchCommand struct {
	Args struct {
		Query []string `positional-arg-name:"query" description:"Words to look for in page titles"`
	} `positional-args:"yes"`
}

type TocCommand struct{}

var options Options

var out io.Writer = os.Stdout

func (c *ServeCommand) Execute(args []string) error {
	threshold, err := bytes.Parse(c.FileSizeThreshold)
	if err != nil {
		return fmt.Errorf("Invalid file size threshold %q: %v", c.FileSizeThreshold, err)
	}

	searchBackend, err := c.newBackend()
	if err != nil {
		return fmt.Errorf("Error connecting to search backend: %s", err)
	}

	z, err := server.NewDocSearchServer(searchBackend, c.Listen, c.Port, c.MetadataDir, c.Parallelism, threshold)
	if err != nil {
		return fmt.Errorf("Failed creating docsearch server: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		log.Infof("Received %s, shutting down", s)
		z.Stop()
	}()

	log.Debugf("Pages over %s will not be indexed", bytes.Format(threshold))
	return serve(z)
}

type stoppableServer interface {
	Start() error
	Stop()
}

// serve returns once the server has fully stopped. Start returns as
// soon as gRPC stops serving, while Stop may still be saving progress.
func serve(z stoppableServer) error {
	err := z.Start()
	z.Stop()
	return err
}

func (c *ServeCommand) newBackend() (backend.SearchBackend, error) {
	switch c.Backend {
	case "sonic":
		return backend.NewSonicBackend(c.SonicHost, c.SonicPort, c.SonicPassword, c.Parallelism)
	default:
		return backend.NewBleveBackend(c.MetadataDir)
	}
}

func (c *SearchCommand) Execute(args []string) error {
	query := strings.Join(c.Args.Query, " ")
	found := 0
	for d := range search.Default().Search(query) {
		fmt.Fprintf(out, "%s  %s\n", color.Bold(d.Title), color.Grey(d.Href))
		found++
	}
	if found == 0 {
		fmt.Fprintln(out, color.Yellow("No results found."))
	}
	return nil
}

func (c *TocCommand) Execute(args []string) error {
	for _, s := range catalog.Sections() {
		fmt.Fprintln(out, color.Bold(color.Cyan(s.Title)))
		for _, item := range s.Items {
			fmt.Fprintf(out, "  %s  %s\n", item.Title, color.Grey(item.Href))
		}
	}
	return nil
}

func newParser() *flags.Parser {
	parser := flags.NewParser(&options, flags.Default)
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if options.Verbose {
			log.SetLevel(log.DebugLevel)
		}
		if options.NoColor {
			color.Disable()
		}
		return command.Execute(args)
	}

	parser.AddCommand("serve", "Run the search server", "Serve title and full-text search over gRPC and index documentation content", &ServeCommand{})
	parser.AddCommand("search", "Search page titles", "Print every documentation page whose title contains the query", &SearchCommand{})
	parser.AddCommand("toc", "Print the table of contents", "Print the documentation sidebar sections", &TocCommand{})
	return parser
}

func main() {
	if _, err := newParser().Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
}
