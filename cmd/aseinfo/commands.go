package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/aseload/ase"
	"github.com/cam-per/aseload/utils"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print header, frames, tags and slices",
		ArgsUsage: "<file>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sprite, err := loadSprite(cmd)
			if err != nil {
				return err
			}
			defer sprite.Release()

			w := cmd.Root().Writer
			h := sprite.Header
			fmt.Fprintf(w, "file size:  %s\n", humanize.Bytes(uint64(h.FileSize)))
			fmt.Fprintf(w, "canvas:     %dx%d, %d bpp\n", h.Width, h.Height, h.ColorDepth)
			fmt.Fprintf(w, "frames:     %d\n", sprite.NumFrames())
			fmt.Fprintf(w, "atlas:      %dx%d, %s\n",
				sprite.FrameWidth*sprite.NumFrames(), sprite.FrameHeight,
				humanize.Bytes(uint64(len(sprite.Pixels))))
			if h.ColorDepth == ase.DepthIndexed {
				fmt.Fprintf(w, "palette:    %d colors, transparent index %d\n", sprite.Palette.Count, sprite.Palette.ColorKey)
			}

			var total time.Duration
			for i, d := range sprite.Durations {
				fmt.Fprintf(w, "  frame %d: %s\n", i, d)
				total += d
			}
			fmt.Fprintf(w, "duration:   %s\n", total)

			for _, tag := range sprite.Tags {
				fmt.Fprintf(w, "tag %q: frames %d-%d\n", tag.Name, tag.From, tag.To)
			}
			for _, slice := range sprite.Slices {
				fmt.Fprintf(w, "slice %q: %v\n", slice.Name, slice.Bounds)
			}
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "write the atlas or a single frame as PNG",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output path, defaults to the input name with a .png extension",
			},
			&cli.IntFlag{
				Name:  "frame",
				Usage: "export only this frame",
				Value: -1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sprite, err := loadSprite(cmd)
			if err != nil {
				return err
			}
			defer sprite.Release()

			img := sprite.Image()
			if frame := int(cmd.Int("frame")); frame >= 0 {
				img = sprite.Frame(frame)
				if img == nil {
					return fmt.Errorf("export: frame %d out of range, sprite has %d frames", frame, sprite.NumFrames())
				}
			}

			out := cmd.String("out")
			if out == "" {
				in := cmd.Args().First()
				out = strings.TrimSuffix(in, filepath.Ext(in)) + ".png"
			}

			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "wrote %s (%s)\n", out, humanize.Bytes(uint64(buf.Len())))
			return nil
		},
	}
}

func chunksCommand() *cli.Command {
	return &cli.Command{
		Name:      "chunks",
		Usage:     "list the chunks of every frame",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "dump chunk bytes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			chunks, err := ase.Chunks(data)
			if err != nil {
				logger := newLogger(cmd)
				logger.Error().Stack().Err(err).Str("file", path).Msg("walk failed")
				return err
			}

			w := cmd.Root().Writer
			r := bytes.NewReader(data)
			for _, chunk := range chunks {
				fmt.Fprintf(w, "frame %-4d %08x %8s  %s\n",
					chunk.Frame, chunk.Offset, humanize.Comma(int64(chunk.Size)), chunk.Type)
				if cmd.Bool("hex") {
					if err := utils.HexDump(w, r, int64(chunk.Offset), int64(chunk.Size)); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}
