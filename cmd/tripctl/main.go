package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/services"

	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func main() {
	app := &cli.App{
		Name:  "tripctl",
		Usage: "plan trips from problem files without running the server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "console",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			obs.SetupLogger(c.String("log-format"), c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			searchCommand(),
			{
				Name:  "sample",
				Usage: "print the built-in sample problem as YAML",
				Action: func(c *cli.Context) error {
					enc := yaml.NewEncoder(c.App.Writer)
					enc.SetIndent(2)
					defer enc.Close()
					return enc.Encode(domain.SampleProblem())
				},
			},
			{
				Name:      "validate",
				Usage:     "check that problem files describe a consistent graph",
				ArgsUsage: "FILE...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("at least one problem file is required", 2)
					}

					failed := 0
					for _, path := range c.Args().Slice() {
						if err := validateFile(path); err != nil {
							log.Error().Err(err).Str("file", path).Msg("Invalid problem")
							failed++
							continue
						}
						log.Info().Str("file", path).Msg("Problem OK")
					}

					if failed > 0 {
						return cli.Exit(fmt.Sprintf("%d problem file(s) invalid", failed), 1)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "find the highest utility route from a start place",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "problem",
				Usage: "problem file (.yaml or .json); the built-in sample is used when empty",
			},
			&cli.StringFlag{Name: "start", Value: "Paris"},
			&cli.Float64Flag{Name: "budget", Value: 700},
			&cli.Float64Flag{Name: "days", Value: 14},
			&cli.Float64Flag{Name: "transit-cost", Value: 100, Usage: "money charged per day in transit"},
			&cli.IntFlag{Name: "workers", Value: 1, Usage: "explore start subtrees concurrently when > 1"},
			&cli.BoolFlag{Name: "trace", Usage: "log every partial route at debug level"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "text, json or pretty"},
		},
		Action: func(c *cli.Context) error {
			def, problemID, err := loadProblem(c.String("problem"))
			if err != nil {
				return err
			}

			places, err := domain.BuildGraph(*def)
			if err != nil {
				return err
			}

			start, ok := places[c.String("start")]
			if !ok {
				return &domain.ReferenceError{Index: -1, City: c.String("start")}
			}

			params := services.SearchParams{
				Budget:            c.Float64("budget"),
				TimeAvailable:     c.Float64("days"),
				TransitCostPerDay: c.Float64("transit-cost"),
			}

			var tracer services.Tracer
			traced := 0
			if c.Bool("trace") {
				tracer = services.TracerFunc(func(route *domain.Route) {
					traced++
					log.Debug().
						Strs("places", placeNames(route)).
						Float64("utility", route.Utility).
						Float64("budget_remaining", route.BudgetRemaining).
						Float64("time_remaining", route.TimeRemaining).
						Msg("Recorded route")
				})
			}

			var route *domain.Route
			if workers := c.Int("workers"); workers > 1 {
				// TracerFunc is not goroutine safe; collect concurrently instead.
				if tracer != nil {
					collector := services.NewTraceCollector()
					route, err = services.SearchParallel(c.Context, start, params, collector, workers)
					for _, r := range collector.Routes() {
						tracer.Record(r)
					}
				} else {
					route, err = services.SearchParallel(c.Context, start, params, nil, workers)
				}
			} else {
				route, err = services.Search(start, params, tracer)
			}
			if err != nil {
				return err
			}

			plan := services.NewTripPlan(problemID, route)
			plan.TracedRoutes = traced

			return printPlan(c, plan)
		},
	}
}

func loadProblem(path string) (*domain.ProblemDefinition, string, error) {
	if strings.TrimSpace(path) == "" {
		def := domain.SampleProblem()
		return &def, "sample", nil
	}

	def, err := repositories.LoadProblemFile(path)
	if err != nil {
		return nil, "", err
	}
	return def, path, nil
}

func validateFile(path string) error {
	def, err := repositories.LoadProblemFile(path)
	if err != nil {
		return err
	}
	_, err = domain.BuildGraph(*def)
	return err
}

func printPlan(c *cli.Context, plan *domain.TripPlan) error {
	w := c.App.Writer

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case "pretty":
		_, err := pretty.Fprintf(w, "%# v\n", plan)
		return err
	case "text":
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q", c.String("format")), 2)
	}

	fmt.Fprintf(w, "Route: %s\n", strings.Join(plan.Itinerary(), " -> "))
	for _, leg := range plan.Legs {
		fmt.Fprintf(w, "  %s -> %s: %g days, utility %g\n", leg.From, leg.To, leg.Time, leg.Utility)
	}
	fmt.Fprintf(w, "Utility: %g\n", plan.Utility)
	fmt.Fprintf(w, "Budget remaining: %g\n", plan.BudgetRemaining)
	fmt.Fprintf(w, "Time remaining: %g\n", plan.TimeRemaining)
	if plan.TracedRoutes > 0 {
		fmt.Fprintf(w, "Traced routes: %d\n", plan.TracedRoutes)
	}

	return nil
}

func placeNames(route *domain.Route) []string {
	places := route.Places()
	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.Name)
	}
	return names
}
