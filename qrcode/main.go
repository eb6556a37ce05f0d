package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/townmi/qrencode"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "qrcode",
		Usage:     "print a QR code in the terminal or write it as PNG",
		ArgsUsage: "[content...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load configuration file",
			},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "error correction level: L, M, Q or H",
				Value:   "H",
			},
			&cli.IntFlag{
				Name:  "version",
				Usage: "force symbol version 1-40",
			},
			&cli.IntFlag{
				Name:  "mask",
				Usage: "force mask pattern 0-7",
			},
			&cli.StringFlag{
				Name:    "png",
				Aliases: []string{"o"},
				Usage:   "write a PNG image to `FILE` instead of printing",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "PNG image size in pixels, negative for pixels per module",
				Value: 256,
			},
			&cli.BoolFlag{
				Name:    "small",
				Aliases: []string{"s"},
				Usage:   "print using half block characters",
			},
			&cli.BoolFlag{
				Name:    "invert",
				Aliases: []string{"i"},
				Usage:   "invert colours for light terminals",
			},
			&cli.BoolFlag{
				Name:  "no-border",
				Usage: "omit the quiet zone",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log encoder decisions",
			},
		},
		HideVersion: true,
		Action:      run,
	}
}

func run(c *cli.Context) error {
	cfg := defaultConfig()
	if path := c.String("config"); path != "" {
		if err := loadConfig(path, cfg); err != nil {
			return err
		}
	}
	cfg.applyFlags(c)

	logger := newLogger(c.App.ErrWriter, cfg.Verbose)

	content, err := readContent(c)
	if err != nil {
		return err
	}

	level, opts, err := cfg.encoderOptions(logger)
	if err != nil {
		return err
	}

	q, err := qrencode.New(content, level, opts...)
	if err != nil {
		return err
	}
	q.DisableBorder = cfg.NoBorder

	logger.Debug("encoded", "version", q.VersionNumber, "level", q.Level, "mask", q.Mask)

	if cfg.PNG != "" {
		png, err := q.PNG(cfg.Size)
		if err != nil {
			return err
		}

		return os.WriteFile(cfg.PNG, png, 0o644)
	}

	art := q.ToString(cfg.Invert)
	if cfg.Small {
		art = q.ToSmallString(cfg.Invert)
	}
	fmt.Fprint(c.App.Writer, art)

	return nil
}

// readContent joins the arguments, or reads standard input when there are
// none. A single trailing newline from standard input is dropped.
func readContent(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}

	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	content := strings.TrimSuffix(string(data), "\n")
	content = strings.TrimSuffix(content, "\r")
	if content == "" {
		return "", errors.New("nothing to encode")
	}

	return content, nil
}

func init() {
	// customization cli help template
	cli.AppHelpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}
   {{if .VisibleFlags}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}
EXAMPLES:
   {{.HelpName}} https://example.org
   echo hello | {{.HelpName}} --small --level M
   {{.HelpName}} --png code.png --size -8 "HELLO WORLD"
`
}
