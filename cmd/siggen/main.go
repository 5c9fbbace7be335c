// Command siggen runs a cosine signal generator and logs the rolling history it produces.
//
// Parameters come from siggen.{yaml,toml,json} in the working directory, SIGGEN_* environment
// variables and command line flags, in increasing order of precedence.
package main

import (
	"flag"
	"math"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/faiface/siggen"
	"github.com/faiface/siggen/effects"
	"github.com/faiface/siggen/generators"
	"github.com/faiface/siggen/pcm"
	"github.com/faiface/siggen/speaker"
	"github.com/faiface/siggen/wav"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

func newConfig() *viper.Viper {
	cfg := viper.New()
	cfg.SetDefault("phase", 0)
	cfg.SetDefault("amplitude", 1)
	cfg.SetDefault("frequency", 1)
	cfg.SetDefault("samplefrequency", 10)
	cfg.SetDefault("duration", 1)
	cfg.SetDefault("pacing", siggen.DefaultPacing)
	cfg.SetDefault("ticks", 0)
	cfg.SetDefault("output", "")
	cfg.SetDefault("play", false)
	cfg.SetDefault("volume", 0)
	cfg.SetDefault("render.seconds", 0)
	cfg.SetDefault("render.rate", 44100)
	cfg.SetDefault("render.format", "wav")
	cfg.SetEnvPrefix("siggen")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.AddConfigPath(".")
	cfg.SetConfigName("siggen")
	return cfg
}

// flags mirrors the configuration keys on the command line.
var flags = map[string]*string{}

func init() {
	for _, key := range []string{
		"phase", "amplitude", "frequency", "samplefrequency", "duration", "pacing", "ticks",
		"output", "play", "volume", "render.seconds", "render.rate", "render.format",
	} {
		flags[key] = flag.String(key, "", "overrides the "+key+" configuration value")
	}
}

func parameters(cfg *viper.Viper) siggen.Parameters {
	return siggen.Parameters{
		Phase:           cfg.GetFloat64("phase"),
		Amplitude:       cfg.GetFloat64("amplitude"),
		Frequency:       cfg.GetFloat64("frequency"),
		SampleFrequency: cfg.GetFloat64("samplefrequency"),
		Duration:        cfg.GetFloat64("duration"),
	}
}

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := newConfig()
	if err := cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			glog.Exitf("Reading configuration: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if v, ok := flags[f.Name]; ok {
			cfg.Set(f.Name, *v)
		}
	})

	p := parameters(cfg)
	if seconds := cfg.GetFloat64("render.seconds"); seconds > 0 {
		if err := render(cfg, p, seconds); err != nil {
			glog.Exitf("Rendering: %v", err)
		}
		return
	}

	if err := run(cfg, p); err != nil {
		glog.Exitf("%v", err)
	}
}

// render writes the given number of seconds of the tone to the output file.
func render(cfg *viper.Viper, p siggen.Parameters, seconds float64) error {
	rate := cfg.GetInt("render.rate")
	tone, err := generators.CosineTone(rate, p)
	if err != nil {
		return err
	}
	output := cfg.GetString("output")
	if output == "" {
		return errors.New("render needs an output file")
	}
	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer f.Close()

	s := siggen.Take(int(math.Round(seconds*float64(rate))), tone)
	format := siggen.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	switch cfg.GetString("render.format") {
	case "wav":
		err = wav.Encode(f, s, format)
	case "pcm":
		err = pcm.Encode(f, s, format)
	default:
		err = errors.Errorf("unknown render format %q", cfg.GetString("render.format"))
	}
	if err != nil {
		return err
	}
	glog.Infof("Rendered %v seconds of %v Hz to %s", seconds, p.Frequency, output)
	return f.Close()
}

// run drives a generator until interrupted or until the configured number of ticks.
func run(cfg *viper.Viper, p siggen.Parameters) error {
	gen, err := siggen.New(p, siggen.WithPacing(cfg.GetDuration("pacing")))
	if err != nil {
		return err
	}
	glog.Infof("Generator ready: %+v, capacity %d", p, gen.Capacity())

	if cfg.GetBool("play") {
		rate := cfg.GetInt("render.rate")
		if err := speaker.Init(rate, rate/10); err != nil {
			return err
		}
		defer speaker.Close()
		tone, err := generators.CosineTone(rate, p)
		if err != nil {
			return err
		}
		speaker.Play(&effects.Volume{Streamer: tone, Base: 2, Volume: cfg.GetFloat64("volume")})
	}

	var (
		done     = make(chan struct{})
		doneOnce sync.Once
		ticks    = 0
		limit    = cfg.GetInt("ticks")
	)
	gen.Subscribe(func(g *siggen.Generator, history []float64) {
		ticks++
		if glog.V(2) {
			glog.Infof("Tick %d: %v", ticks, history)
		} else if len(history) > 0 {
			glog.Infof("Tick %d: %d samples, newest %.6f", ticks, len(history), history[len(history)-1])
		}
		if limit > 0 && ticks >= limit {
			doneOnce.Do(func() { close(done) })
		}
	})

	go gen.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	select {
	case <-interrupt:
		glog.Info("Got interrupt")
	case <-done:
	}
	gen.Stop()
	defer gen.Close()

	if output := cfg.GetString("output"); output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		defer f.Close()
		rate := int(math.Round(gen.SampleFrequency()))
		history := gen.History()
		if err := wav.EncodeSamples(f, history, siggen.Format{SampleRate: rate, NumChannels: 1, Precision: 2}); err != nil {
			return err
		}
		glog.Infof("Wrote %d samples of history to %s", len(history), output)
	}
	return nil
}
