package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akozadaev/agriguru/internal/advisor"
	"github.com/akozadaev/agriguru/internal/classifier"
	"github.com/akozadaev/agriguru/internal/config"
	"github.com/akozadaev/agriguru/internal/models"
	"github.com/akozadaev/agriguru/internal/production"
	"github.com/akozadaev/agriguru/internal/reference"
	"github.com/akozadaev/agriguru/internal/storage"
	"github.com/akozadaev/agriguru/internal/translate"
	"github.com/akozadaev/agriguru/internal/weather"
)

func (a *app) newRecommendCmd() *cobra.Command {
	var (
		req    models.RecommendRequest
		budget float64
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend crops for a district from soil and climate measurements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("budget") {
				req.Budget = &budget
			}

			svc, err := advisor.Bootstrap(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return dataError(err)
			}
			defer svc.Close()

			resp, err := svc.Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRecommendations(resp))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.State, "state", "", "state name, e.g. \"West Bengal\"")
	f.StringVar(&req.District, "district", "", "district name, e.g. MALDAH")
	f.StringVar(&req.Season, "season", "", "season (informational)")
	f.StringVar(&req.SoilType, "soil", "", "soil type known to the model")
	f.Float64VarP(&req.Measurements.Nitrogen, "nitrogen", "N", 0, "nitrogen")
	f.Float64VarP(&req.Measurements.Phosphorous, "phosphorous", "P", 0, "phosphorous")
	f.Float64VarP(&req.Measurements.Potassium, "potassium", "K", 0, "potassium")
	f.Float64Var(&req.Measurements.Temperature, "temperature", 0, "temperature, °C")
	f.Float64Var(&req.Measurements.Humidity, "humidity", 0, "air humidity, %")
	f.Float64Var(&req.Measurements.Moisture, "moisture", 0, "soil moisture, %")
	f.Float64Var(&budget, "budget", 0, "maximum price per tonne")
	f.BoolVar(&req.PinMostCommon, "pin", false, "pin the most common crop of the state to the top")
	f.StringVar(&req.Lang, "lang", "en", "language: en, hi, bn, mr, ta")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("district")
	_ = cmd.MarkFlagRequired("soil")
	return cmd
}

func (a *app) newWeatherCmd() *cobra.Command {
	var district, lang string

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Show the 5-point weather forecast for a district",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := translate.NewBackend(cmd.Context(), a.cfg.TranslatorBackend, a.cfg.GenAIAPIKey, a.cfg.GenAIModel)
			if err != nil {
				return err
			}

			// Прогнозу не нужны наборы данных и модель
			svc := advisor.New(advisor.Deps{
				Translator: translate.NewService(backend, nil, a.logger),
				Weather:    weather.NewClient(a.cfg.WeatherBaseURL, a.cfg.WeatherAPIKey, a.logger),
				Logger:     a.logger,
			})
			resp, err := svc.Weather(cmd.Context(), district, lang)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderForecast(resp))
			return nil
		},
	}
	cmd.Flags().StringVar(&district, "district", "", "district name")
	cmd.Flags().StringVar(&lang, "lang", "en", "language: en, hi, bn, mr, ta")
	_ = cmd.MarkFlagRequired("district")
	return cmd
}

func (a *app) newSoilCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "soil [type]",
		Short: "Show suggested crops for soil types",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), renderSuggestions(reference.SoilSuggestions()))
				return nil
			}
			crops, ok := reference.CropsForSoil(args[0])
			if !ok {
				return fmt.Errorf("unknown soil type %q (known: %s)", args[0], strings.Join(reference.SoilTypes(), ", "))
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSuggestions([]models.SoilSuggestion{{SoilType: args[0], Crops: crops}}))
			return nil
		},
	}
}

func (a *app) newLocationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations [state]",
		Short: "List states, or districts of a state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, closePG, err := a.postgresFor(cmd.Context(), a.cfg.DataSource)
			if err != nil {
				return dataError(err)
			}
			defer closePG()

			records, err := advisor.LoadProductionRecords(cmd.Context(), a.cfg, pg)
			if err != nil {
				return dataError(err)
			}
			idx := production.NewIndex(records)

			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), renderList("States", idx.States()))
				fmt.Fprint(cmd.OutOrStdout(), renderList("Seasons", idx.Seasons()))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), renderList("Districts of "+args[0], idx.Districts(args[0])))
			return nil
		},
	}
}

func (a *app) newTrainCmd() *cobra.Command {
	var (
		out   string
		trees int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the random forest on the soil sample table and save it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, closePG, err := a.postgresFor(cmd.Context(), a.cfg.SoilSource)
			if err != nil {
				return dataError(err)
			}
			defer closePG()

			samples, err := advisor.LoadSamples(cmd.Context(), a.cfg, pg)
			if err != nil {
				return dataError(err)
			}

			opts := classifier.Options{Trees: a.cfg.ForestTrees, Seed: a.cfg.ForestSeed}
			if cmd.Flags().Changed("trees") {
				opts.Trees = trees
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			model, err := classifier.Train(samples, opts)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := model.Save(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(fmt.Sprintf("Model saved to %s", out)))
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("%d samples, %d trees, %d crops, soil types: %s",
				len(samples), model.Trees(), len(model.Labels()), strings.Join(model.SoilTypes(), ", "))))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "model.json", "output file")
	cmd.Flags().IntVar(&trees, "trees", 100, "number of trees")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}

// postgresFor открывает PostgreSQL, если источник данных - postgres.
func (a *app) postgresFor(ctx context.Context, source string) (*storage.PostgresStorage, func(), error) {
	if source != config.SourcePostgres {
		return nil, func() {}, nil
	}
	pg, err := storage.NewPostgresStorage(ctx, a.cfg.DSN())
	if err != nil {
		return nil, nil, &advisor.DataUnavailableError{Source: "postgres", Err: err}
	}
	return pg, func() { _ = pg.Close() }, nil
}

// dataError дополняет ошибку недоступного набора данных подсказкой для пользователя.
func dataError(err error) error {
	var due *advisor.DataUnavailableError
	if errors.As(err, &due) {
		return fmt.Errorf("%w\nPlease upload %s", err, due.Source)
	}
	return err
}
