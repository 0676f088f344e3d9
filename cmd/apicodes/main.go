package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/app"
	"github.com/fastygo/apiresponse/internal/builder"
	"github.com/fastygo/apiresponse/internal/config"
	"github.com/fastygo/apiresponse/internal/jsonenc"
	"github.com/fastygo/apiresponse/internal/services/lifecycle"
	"github.com/fastygo/apiresponse/pkg/logger"
)

func main() {
	if err := newApp(loadResponder).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// responderFunc builds the responder for a command and returns its cleanup.
type responderFunc func(c *cli.Context) (*builder.Builder, func(), error)

func newApp(load responderFunc) *cli.App {
	return &cli.App{
		Name:  "apicodes",
		Usage: "Inspect the API code catalog and render response envelopes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Log catalog loading to stdout",
				Aliases: []string{"v"},
			},
		},
		Commands: []*cli.Command{
			createListCommand(load),
			createMakeCommand(load),
		},
	}
}

func createListCommand(load responderFunc) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List every registered API code",
		Action: func(c *cli.Context) error {
			b, cleanup, err := load(c)
			if err != nil {
				return err
			}
			defer cleanup()
			return runList(c.App.Writer, b)
		},
	}
}

type makeOptions struct {
	code     int
	hasCode  bool
	message  string
	msgCode  int
	hasMsg   bool
	failure  bool
	data     string
	status   int
	encoding int
	hasEnc   bool
}

func createMakeCommand(load responderFunc) *cli.Command {
	var opts makeOptions

	return &cli.Command{
		Name:  "make",
		Usage: "Render the JSON body of a response",
		Description: `Build an envelope the same way the service does.

Examples:
  apicodes make --code 0 --data '{"test":"ąćę"}'
  apicodes make --message "Saved"
  apicodes make --failure --code 121 --message-code 120
  apicodes make --failure --code 120 --status 429
  apicodes make --code 0 --encoding 271`,
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "code", Aliases: []string{"c"}, Usage: "API code", Destination: &opts.code},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Literal message", Destination: &opts.message},
			&cli.IntFlag{Name: "message-code", Usage: "Take the message from this code's template", Destination: &opts.msgCode},
			&cli.BoolFlag{Name: "failure", Aliases: []string{"f"}, Usage: "Build a failure response", Destination: &opts.failure},
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "Payload as JSON", Destination: &opts.data},
			&cli.IntFlag{Name: "status", Aliases: []string{"s"}, Usage: "HTTP status override", Destination: &opts.status},
			&cli.IntFlag{Name: "encoding", Aliases: []string{"e"}, Usage: "Encoding options bitmask override", Destination: &opts.encoding},
		},
		Action: func(c *cli.Context) error {
			opts.hasCode = c.IsSet("code")
			opts.hasEnc = c.IsSet("encoding")
			opts.hasMsg = c.IsSet("message-code")

			b, cleanup, err := load(c)
			if err != nil {
				return err
			}
			defer cleanup()
			return runMake(c.App.Writer, b, opts)
		},
	}
}

func runList(w io.Writer, b *builder.Builder) error {
	reg := b.Registry()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "CODE\tRANGE\tMESSAGE\n")
	for _, e := range reg.Entries() {
		kind := "user"
		if e.Reserved {
			kind = "reserved"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", e.Code, kind, e.Message)
	}
	fmt.Fprintf(tw, "\nuser codes %d..%d\n", reg.MinUserCode(), reg.MaxCode())
	return tw.Flush()
}

func runMake(w io.Writer, b *builder.Builder, opts makeOptions) error {
	params := builder.Params{
		Success:    !opts.failure,
		HTTPStatus: opts.status,
	}
	if opts.hasCode {
		params.Subject = builder.ByCode(domain.ApiCode(opts.code))
		params.Message = opts.message
	} else {
		params.Subject = builder.ByMessage(opts.message)
	}
	if opts.hasMsg {
		msgCode := domain.ApiCode(opts.msgCode)
		params.MessageCode = &msgCode
	}
	if opts.data != "" {
		if !json.Valid([]byte(opts.data)) {
			return fmt.Errorf("--data is not valid JSON")
		}
		params.Data = json.RawMessage(opts.data)
	}
	if opts.hasEnc {
		enc := jsonenc.Options(opts.encoding)
		params.EncodingOptions = &enc
	}

	resp, err := b.Make(params)
	if err != nil {
		return err
	}
	body, err := resp.Body()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "HTTP %d\n%s\n", resp.HTTPStatus, body)
	return err
}

func loadResponder(c *cli.Context) (*builder.Builder, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	zapLogger := zap.NewNop()
	if c.Bool("verbose") {
		zapLogger, err = logger.New(logger.Config{Level: "debug", Encoding: "console", Service: "apicodes"})
		if err != nil {
			return nil, nil, err
		}
	}

	manager := lifecycle.New(5*time.Second, zapLogger)
	b, err := app.BuildResponder(c.Context, cfg, manager, zapLogger)
	cleanup := func() {
		_ = manager.Shutdown(context.Background())
		_ = zapLogger.Sync()
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return b, cleanup, nil
}
