// Command sdfmatterctl is the CLI front-end for the SDF<->Matter
// translator: one process invocation selects exactly one
// direction, reads the matching input pair, runs the core pipeline, and
// writes the equivalent pair in the other format. It also exposes an
// optional -serve flag (with -serve-addr) that runs the same core
// pipelines behind an HTTP API instead of a one-shot conversion.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/onedm/sdf-matter-translator/internal/cliargs"
	"github.com/onedm/sdf-matter-translator/internal/config"
	"github.com/onedm/sdf-matter-translator/internal/convert/mattertosdf"
	"github.com/onedm/sdf-matter-translator/internal/convert/sdftomatter"
	"github.com/onedm/sdf-matter-translator/internal/httpapi"
	"github.com/onedm/sdf-matter-translator/internal/httpauth"
	"github.com/onedm/sdf-matter-translator/internal/matterio"
	"github.com/onedm/sdf-matter-translator/internal/metrics"
	"github.com/onedm/sdf-matter-translator/internal/model/matter"
	"github.com/onedm/sdf-matter-translator/internal/schemavalidate"
	loggerpkg "github.com/onedm/sdf-matter-translator/pkg/logger"
)

var (
	version string = "dev"
	commit  string = "none"
)

func main() {
	args, cfgPath, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("sdfmatterctl %s (commit %s)\n", version, commit)
		os.Exit(0)
	}

	if err := cliargs.Validate(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, log, err := bootstrap(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	runID := uuid.New().String()
	log = log.WithFields(loggerpkg.String("run_id", runID))

	if args.Serve {
		if err := runServe(cfg, log, args.ServeAddr); err != nil {
			log.Fatal("server exited with error", loggerpkg.Error(err))
		}
		return
	}

	if err := runConvert(args, cfg, log); err != nil {
		log.Error("translation failed", loggerpkg.Error(err))
		os.Exit(1)
	}
}

func parseFlags() (*cliargs.Args, string, bool) {
	args := &cliargs.Args{}

	sdfToMatter := flag.Bool("sdf-to-matter", false, "translate an SDF model+mapping pair into Matter XML")
	matterToSdf := flag.Bool("matter-to-sdf", false, "translate a Matter device/cluster XML pair into SDF JSON")
	flag.StringVar(&args.SDFModelPath, "sdf-model", "", "path to the SDF model JSON document")
	flag.StringVar(&args.SDFMappingPath, "sdf-mapping", "", "path to the SDF mapping (side-car) JSON document")
	flag.StringVar(&args.DeviceXMLPath, "device-xml", "", "path to the Matter device-type XML document")
	flag.StringVar(&args.ClusterXMLPath, "cluster-xml", "", "path to the Matter cluster-library XML document")
	flag.BoolVar(&args.Validate, "validate", false, "run structural pre/post validation")
	flag.BoolVar(&args.RoundTrip, "round-trip", false, "convert then convert back and write a second artifact")
	output := flag.String("o", "", "output path (also: -output)")
	flag.StringVar(output, "output", "", "output path")
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.BoolVar(&args.Serve, "serve", false, "run the optional HTTP front-end instead of a one-shot conversion")
	flag.StringVar(&args.ServeAddr, "serve-addr", "", "bind address for -serve, e.g. 0.0.0.0:8080")
	showVersion := flag.Bool("version", false, "print version information and exit")

	flag.Parse()

	args.Output = *output
	if *sdfToMatter && *matterToSdf {
		fmt.Fprintln(os.Stderr, "sdfmatterctl: --sdf-to-matter and --matter-to-sdf are mutually exclusive")
		os.Exit(2)
	}
	switch {
	case *sdfToMatter:
		args.Direction = cliargs.DirectionSdfToMatter
	case *matterToSdf:
		args.Direction = cliargs.DirectionMatterToSdf
	}

	return args, *configPath, *showVersion
}

func bootstrap(cfgPath string) (*config.Config, loggerpkg.Logger, error) {
	cfg := defaultConfig()
	if cfgPath != "" {
		if err := loadConfig(config.NewYAMLLoader(cfgPath), cfg); err != nil {
			return nil, nil, err
		}
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("sdfmatterctl: invalid config: %w", err)
	}

	log, err := loggerpkg.NewZapLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("sdfmatterctl: initializing logger: %w", err)
	}
	return cfg, log, nil
}

// loadConfig runs loader against cfg, wrapping any failure the same way
// regardless of which config.Loader implementation produced it.
func loadConfig(loader config.Loader, cfg *config.Config) error {
	if err := loader.Load(cfg); err != nil {
		return fmt.Errorf("sdfmatterctl: loading config: %w", err)
	}
	return nil
}

func defaultConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			Mode:         "release",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Logging: config.LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Translation: config.TranslationConfig{
			StrictConformance: false,
			MaxDocumentBytes:  64 << 20,
		},
		Features: config.FeaturesConfig{Metrics: false},
	}
}

// runConvert performs exactly one pipeline direction (and, if requested,
// --validate and --round-trip) per the documented behavior.
func runConvert(args *cliargs.Args, cfg *config.Config, log loggerpkg.Logger) error {
	collector := metrics.NewCollector(metricsImpl(cfg), log)

	switch args.Direction {
	case cliargs.DirectionSdfToMatter:
		return runSdfToMatter(args, collector, log)
	case cliargs.DirectionMatterToSdf:
		return runMatterToSdf(args, collector, log)
	default:
		return fmt.Errorf("sdfmatterctl: no direction selected")
	}
}

func metricsImpl(cfg *config.Config) string {
	if cfg.Features.Metrics {
		return "prometheus"
	}
	return "noop"
}

func runSdfToMatter(args *cliargs.Args, collector metrics.Collector, log loggerpkg.Logger) error {
	model, err := matterio.LoadSDFModelFile(args.SDFModelPath)
	if err != nil {
		return err
	}
	mapping, err := matterio.LoadSDFMappingFile(args.SDFMappingPath)
	if err != nil {
		return err
	}

	if args.Validate {
		if r := schemavalidate.SDFModel(model); !r.Valid {
			return fmt.Errorf("sdfmatterctl: pre-validation failed: %s", strings.Join(r.Issues, "; "))
		}
		if r := schemavalidate.SDFMapping(mapping); !r.Valid {
			return fmt.Errorf("sdfmatterctl: pre-validation failed: %s", strings.Join(r.Issues, "; "))
		}
	}

	start := time.Now()
	device, clusters, err := sdftomatter.New(mapping).Convert(model)
	collector.RecordConversion("sdf-to-matter", err == nil, time.Since(start))
	if err != nil {
		return err
	}

	if args.Validate {
		if r := schemavalidate.MatterClusters(clusters); !r.Valid {
			log.Warn("post-validation found issues", loggerpkg.String("issues", strings.Join(r.Issues, "; ")))
		}
		if r := schemavalidate.MatterDevice(device, clusters); !r.Valid {
			log.Warn("post-validation found issues", loggerpkg.String("issues", strings.Join(r.Issues, "; ")))
		}
	}

	base := outputBase(args.Output, args.SDFModelPath)
	if err := writeMatterOutput(base, device, clusters); err != nil {
		return err
	}
	log.Info("sdf-to-matter conversion complete",
		loggerpkg.Int("clusters", len(clusters)),
		loggerpkg.Bool("hasDevice", device != nil))

	if args.RoundTrip {
		rtModel, rtMapping, err := mattertosdf.New().Convert(device, clusters)
		if err != nil {
			return fmt.Errorf("sdfmatterctl: round-trip leg failed: %w", err)
		}
		if err := matterio.SaveSDFModelFile(base+".roundtrip.sdf.json", rtModel); err != nil {
			return err
		}
		if err := matterio.SaveSDFMappingFile(base+".roundtrip.mapping.json", rtMapping); err != nil {
			return err
		}
		log.Info("round-trip leg complete")
	}
	return nil
}

func runMatterToSdf(args *cliargs.Args, collector metrics.Collector, log loggerpkg.Logger) error {
	var device *matter.Device
	var err error
	if args.DeviceXMLPath != "" {
		device, err = matterio.LoadDeviceXMLFile(args.DeviceXMLPath)
		if err != nil {
			return err
		}
	}
	clusters, err := matterio.LoadClusterXMLFile(args.ClusterXMLPath)
	if err != nil {
		return err
	}

	if args.Validate {
		if r := schemavalidate.MatterClusters(clusters); !r.Valid {
			return fmt.Errorf("sdfmatterctl: pre-validation failed: %s", strings.Join(r.Issues, "; "))
		}
		if r := schemavalidate.MatterDevice(device, clusters); !r.Valid {
			return fmt.Errorf("sdfmatterctl: pre-validation failed: %s", strings.Join(r.Issues, "; "))
		}
	}

	start := time.Now()
	model, mapping, err := mattertosdf.New().Convert(device, clusters)
	collector.RecordConversion("matter-to-sdf", err == nil, time.Since(start))
	if err != nil {
		return err
	}

	if args.Validate {
		if r := schemavalidate.SDFModel(model); !r.Valid {
			log.Warn("post-validation found issues", loggerpkg.String("issues", strings.Join(r.Issues, "; ")))
		}
	}

	base := outputBase(args.Output, args.ClusterXMLPath)
	if err := matterio.SaveSDFModelFile(base+".sdf.json", model); err != nil {
		return err
	}
	if err := matterio.SaveSDFMappingFile(base+".mapping.json", mapping); err != nil {
		return err
	}
	log.Info("matter-to-sdf conversion complete", loggerpkg.Bool("hasDevice", device != nil))

	if args.RoundTrip {
		rtDevice, rtClusters, err := sdftomatter.New(mapping).Convert(model)
		if err != nil {
			return fmt.Errorf("sdfmatterctl: round-trip leg failed: %w", err)
		}
		if err := writeMatterOutput(base+".roundtrip", rtDevice, rtClusters); err != nil {
			return err
		}
		log.Info("round-trip leg complete")
	}
	return nil
}

func writeMatterOutput(base string, device *matter.Device, clusters []matter.Cluster) error {
	if err := matterio.SaveClusterXML(base+".cluster.xml", clusters); err != nil {
		return err
	}
	if device != nil {
		if err := matterio.SaveDeviceXML(base+".device.xml", device); err != nil {
			return err
		}
	}
	return nil
}

func outputBase(output, inputPath string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(inputPath, ".json")
}

func runServe(cfg *config.Config, log loggerpkg.Logger, addr string) error {
	host, port, err := splitHostPort(addr)
	if err != nil {
		return err
	}
	cfg.Server.Host = host
	cfg.Server.Port = port

	collector := metrics.NewCollector(metricsImpl(cfg), log)

	var auth *httpauth.Middleware
	if cfg.Auth.Enabled {
		auth = httpauth.New(cfg.Auth.JWTSecretKey, cfg.Auth.Issuer, log)
	}

	server := httpapi.NewServer(cfg.Server, log, collector, auth, cfg.Features.Metrics)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		log.Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Stop(ctx)
}

func splitHostPort(addr string) (string, int, error) {
	parts := strings.SplitN(addr, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("sdfmatterctl: invalid -serve-addr %q, expected host:port", addr)
	}
	var port int
	if _, err := fmt.Sscanf(parts[1], "%d", &port); err != nil {
		return "", 0, fmt.Errorf("sdfmatterctl: invalid port in -serve-addr %q: %w", addr, err)
	}
	return parts[0], port, nil
}
