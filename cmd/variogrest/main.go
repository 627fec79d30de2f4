package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"variogrest/internal/models"
	"variogrest/pkg/config"
	"variogrest/pkg/estimation"
	"variogrest/pkg/grid"
	"variogrest/pkg/report"
	"variogrest/pkg/variogram"
	"variogrest/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputFile := flag.String("input", "", "CSV file containing the gridded observations (i,j,k,value)")
	configFile := flag.String("config", "variogrest.yaml", "YAML configuration file")
	identifier := flag.String("id", "", "Identifier for the summary records (default: input file base name)")
	outputDir := flag.String("output-dir", "", "Output directory (overrides config)")
	saveImages := flag.Bool("save-images", false, "Render QC imagery (slice curves, variogram maps)")
	writeConfig := flag.Bool("write-config", false, "Write a default configuration file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configFile); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *configFile)
		return
	}

	// Validate inputs
	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *saveImages {
		cfg.Output.SaveImages = true
	}
	if *identifier == "" {
		base := filepath.Base(*inputFile)
		*identifier = base[:len(base)-len(filepath.Ext(base))]
	}

	fmt.Println("================================")
	fmt.Println("VARIOGREST - 3D VARIOGRAM ESTIMATION FROM GRIDDED DATA")
	fmt.Println("================================")

	f, err := os.Open(*inputFile)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	observations, err := grid.ReadCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to read observations: %v", err)
	}

	res := grid.Resolution{Dx: cfg.Grid.Dx, Dy: cfg.Grid.Dy, Dz: cfg.Grid.Dz}
	if cfg.Output.Verbose {
		fmt.Printf("Loaded %dx%dx%d grid from %s\n", observations.Nx, observations.Ny, observations.Nz, *inputFile)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Fit every configured family against the same empirical map.
	var records []models.SummaryRecord
	startTime := time.Now()
	for _, name := range cfg.Estimation.Families {
		family, err := variogram.ParseFamily(name)
		if err != nil {
			log.Fatalf("Invalid family in config: %v", err)
		}

		estimator := estimation.NewEstimator(&estimation.Params{
			Grid:        observations,
			Resolution:  res,
			Family:      family,
			SigmaWeight: cfg.Estimation.SigmaWeight,
		})
		est, err := estimator.Process()
		if err != nil {
			log.Fatalf("Estimation failed for %s family: %v", family, err)
		}

		polished := models.Polish(est.Parameters, res)
		records = append(records, models.SummaryRecord{
			Identifier: *identifier,
			Family:     family.String(),
			Quality:    est.Quality.Full,
			QualityX:   est.Quality.XSlice,
			QualityY:   est.Quality.YSlice,
			QualityZ:   est.Quality.ZSlice,
			Parameters: polished,
		})

		if cfg.Output.Verbose {
			fmt.Printf("\nFamily: %s\n", family)
			fmt.Printf("  quality:    %.3f (x=%.3f y=%.3f z=%.3f)\n",
				est.Quality.Full, est.Quality.XSlice, est.Quality.YSlice, est.Quality.ZSlice)
			fmt.Printf("  r_major:    %.3f %s\n", polished.RMajor.Value, polished.RMajor.Unit)
			fmt.Printf("  r_minor:    %.3f %s\n", polished.RMinor.Value, polished.RMinor.Unit)
			fmt.Printf("  r_vertical: %.3f %s\n", polished.RVertical.Value, polished.RVertical.Unit)
			fmt.Printf("  azimuth:    %.1f %s\n", polished.Azimuth.Value, polished.Azimuth.Unit)
			fmt.Printf("  sigma:      %.4f\n", polished.Sigma.Value)
		}

		if cfg.Output.SaveImages {
			if err := saveImagery(cfg.Output.Dir, family, est, observations, res); err != nil {
				log.Printf("Warning: failed to save QC imagery for %s: %v", family, err)
			}
		}
	}

	csvPath := filepath.Join(cfg.Output.Dir, "summary.csv")
	jsonPath := filepath.Join(cfg.Output.Dir, "summary.json")
	if err := writeSummaries(csvPath, jsonPath, records); err != nil {
		log.Fatalf("Failed to write summaries: %v", err)
	}

	fmt.Printf("\nEstimation completed in %.2f seconds\n", time.Since(startTime).Seconds())
	fmt.Printf("Summary written to: %s\n", csvPath)
	fmt.Printf("Summary written to: %s\n", jsonPath)
}

// fittedVariogramMap evaluates the fitted model on the empirical map's
// lag grid. The fit runs in cell units, so the evaluation uses a unit
// resolution; the plots apply physical scaling on their axes instead.
func fittedVariogramMap(family variogram.Family, est *estimation.Estimate) *grid.Grid3D {
	unit := grid.Resolution{Dx: 1, Dy: 1, Dz: 1}
	return family.VariogramArray(est.Map.Nx, est.Map.Ny, est.Map.Nz, unit, est.Parameters)
}

// saveImagery renders the per-family QC set: empirical versus fitted
// center-line curves, the empirical and fitted horizontal map images on
// a shared color scale from the observed data, and a slice sequence of
// the 3D empirical map.
func saveImagery(dir string, family variogram.Family, est *estimation.Estimate, observations *grid.Grid3D, res grid.Resolution) error {
	vmap := est.Map
	fitted := fittedVariogramMap(family, est)

	pattern := filepath.Join(dir, fmt.Sprintf("slices_%s_%%s.png", family))
	title := fmt.Sprintf("%s variogram fit", family)
	if err := visualization.SaveSlicePlots(vmap, fitted, res, title, pattern); err != nil {
		return err
	}

	empSlice, err := grid.FromGrid3D(vmap).HorizontalMidSlice()
	if err != nil {
		return err
	}
	fitSlice, err := grid.FromGrid3D(fitted).HorizontalMidSlice()
	if err != nil {
		return err
	}
	lo, hi := visualization.MapColorLimits(observations.Data)
	if err := visualization.SaveMapImage(empSlice, lo, hi,
		filepath.Join(dir, fmt.Sprintf("map_empirical_%s.png", family))); err != nil {
		return err
	}
	if err := visualization.SaveMapImage(fitSlice, lo, hi,
		filepath.Join(dir, fmt.Sprintf("map_fitted_%s.png", family))); err != nil {
		return err
	}

	viewer := visualization.NewViewer(vmap)
	return viewer.SaveSliceSequence("z", filepath.Join(dir, fmt.Sprintf("map_slices_%s", family)))
}

func writeSummaries(csvPath, jsonPath string, records []models.SummaryRecord) error {
	cf, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer cf.Close()
	if err := report.WriteCSV(cf, records); err != nil {
		return err
	}

	jf, err := os.Create(jsonPath)
	if err != nil {
		return err
	}
	defer jf.Close()
	return report.WriteJSON(jf, records)
}
