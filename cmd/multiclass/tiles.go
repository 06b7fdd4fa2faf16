package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"seehuhn.de/go/multiclass"
)

type tilesCmd struct {
	configPath string
}

func (c *tilesCmd) Name() string     { return "tiles" }
func (c *tilesCmd) Synopsis() string { return "print the aggregated tiles as JSON" }
func (c *tilesCmd) Usage() string {
	return "multiclass tiles -c <config.json>\n"
}
func (c *tilesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "c", "", "configuration file")
}

type tileInfo struct {
	Name   string     `json:"name,omitempty"`
	Bounds [4]float64 `json:"bounds"`
	Center [2]float64 `json:"center"`
	Area   int        `json:"area"`
	Values []float64  `json:"values"`
}

func (c *tilesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	conf, err := readConfig(c.configPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	ip, err := multiclass.New(conf, nil)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	res, err := ip.Run(ctx)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	out := make([]tileInfo, len(res.Tiles))
	for k, t := range res.Tiles {
		b := t.Bounds()
		out[k] = tileInfo{
			Name:   t.Name,
			Bounds: [4]float64{b.LLx, b.LLy, b.URx, b.URy},
			Center: [2]float64{t.Center.X, t.Center.Y},
			Area:   t.Area(),
			Values: t.DataValues,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type checkCmd struct {
	configPath string
}

func (c *checkCmd) Name() string     { return "check" }
func (c *checkCmd) Synopsis() string { return "validate a configuration file" }
func (c *checkCmd) Usage() string {
	return "multiclass check -c <config.json>\n"
}
func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "c", "", "configuration file")
}

func (c *checkCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	conf, err := readConfig(c.configPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	log.Printf("%dx%d canvas, %d classes: ok", conf.Width, conf.Height, len(conf.Data))
	return subcommands.ExitSuccess
}
