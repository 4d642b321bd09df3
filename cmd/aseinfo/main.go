// Command aseinfo inspects and exports sprite files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/aseload/ase"
	"github.com/cam-per/aseload/internal/oops"
)

func init() {
	zerolog.ErrorStackMarshaler = oops.ZerologStackMarshaler
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "aseinfo",
		Usage:     "inspect and export Aseprite sprites",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "flip",
				Usage:   "store the atlas bottom row first",
				Sources: cli.EnvVars("ASELOAD_FLIP"),
			},
			&cli.BoolFlag{
				Name:  "no-checksum",
				Usage: "accept cels with a bad Adler-32 trailer",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every frame and chunk",
				Sources: cli.EnvVars("ASELOAD_VERBOSE"),
			},
		},
		Commands: []*cli.Command{
			infoCommand(),
			exportCommand(),
			chunksCommand(),
		},
	}
}

func newLogger(cmd *cli.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if cmd.Bool("verbose") {
		level = zerolog.TraceLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.Root().ErrWriter, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func fileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one sprite file", cmd.Name)
	}
	return cmd.Args().First(), nil
}

func loadSprite(cmd *cli.Command) (*ase.Sprite, error) {
	path, err := fileArg(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd).With().Str("file", path).Logger()
	sprite, err := ase.LoadFile(path, ase.Options{
		FlipVertically: cmd.Bool("flip"),
		SkipChecksum:   cmd.Bool("no-checksum"),
		Logger:         &logger,
	})
	if err != nil {
		logger.Error().Stack().Err(err).Msg("load failed")
		return nil, err
	}
	return sprite, nil
}
