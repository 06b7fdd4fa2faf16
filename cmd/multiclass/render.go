package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"

	"seehuhn.de/go/multiclass"
	"seehuhn.de/go/multiclass/paint"
)

type renderCmd struct {
	configPath string
	outputPath string
	workers    int
	progress   bool
}

func (c *renderCmd) Name() string     { return "render" }
func (c *renderCmd) Synopsis() string { return "render a configuration into PNG images" }
func (c *renderCmd) Usage() string {
	return "multiclass render -c <config.json> [-o <out.png> -j <workers> -progress]\n"
}
func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "c", "", "configuration file")
	f.StringVar(&c.outputPath, "o", "out.png", "output file; planes get an index suffix, or a .gif name gives an animation for \"time\"")
	f.IntVar(&c.workers, "j", 0, "number of aggregation workers (default: all CPUs)")
	f.BoolVar(&c.progress, "progress", false, "show a progress bar while aggregating")
}

func (c *renderCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.configPath == "" {
		log.Println("missing configuration file (-c)")
		return subcommands.ExitUsageError
	}
	conf, err := readConfig(c.configPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	opt := &multiclass.Options{Workers: c.workers}
	var bar *progressbar.ProgressBar
	if c.progress {
		opt.Total = func(n int) {
			bar = progressbar.NewOptions(n,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("aggregating"),
				progressbar.OptionShowIts(),
				progressbar.OptionShowCount())
		}
		opt.Progress = func(n int) { bar.Add(n) }
	}

	ip, err := multiclass.New(conf, opt)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	res, err := ip.Run(ctx)
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if res.Interval > 0 && strings.EqualFold(filepath.Ext(c.outputPath), ".gif") {
		if err := writeGIF(c.outputPath, paint.Animation(res)); err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if res.Planes != nil {
		ext := filepath.Ext(c.outputPath)
		base := strings.TrimSuffix(c.outputPath, ext)
		for i, img := range paint.Planes(res) {
			if err := writePNG(fmt.Sprintf("%s_%d%s", base, i, ext), img); err != nil {
				log.Println(err)
				return subcommands.ExitFailure
			}
		}
		return subcommands.ExitSuccess
	}

	if err := writePNG(c.outputPath, paint.Image(res)); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func writePNG(fname string, img image.Image) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(fd, img); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func writeGIF(fname string, anim *gif.GIF) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(fd, anim); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
