// Command shopcheck evaluates a shop fixture offline: open or closed, next opening and,
// given a customer point, the delivery quote.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"storefront/internal/availability"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("shopcheck failed")
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("shopcheck", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: shopcheck [options] <fixture.yaml>\n\n")
		fs.PrintDefaults()
	}

	var (
		lat      = fs.Float64("lat", 0, "customer latitude")
		lon      = fs.Float64("lon", 0, "customer longitude")
		subtotal = fs.Float64("subtotal", 0, "order subtotal")
		at       = fs.String("at", "", "evaluation instant in RFC3339, defaults to now")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return flag.ErrHelp
	}

	now := time.Now()
	if *at != "" {
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		now = t
	}

	var customer *availability.Coordinate
	if flagSet(fs, "lat") || flagSet(fs, "lon") {
		customer = &availability.Coordinate{Lat: *lat, Lon: *lon}
		if !customer.Valid() {
			return errors.New("customer coordinate is out of range")
		}
	}

	fx, err := LoadFixture(fs.Arg(0))
	if err != nil {
		return err
	}
	log.Debug().Str("fixture", fs.Arg(0)).Str("shop", fx.Name).Msg("Fixture loaded")

	report, err := Evaluate(fx, now, customer, *subtotal)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
