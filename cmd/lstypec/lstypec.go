package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/usbctools/typec/internal/config"
	"github.com/usbctools/typec/internal/configpaths"
	"github.com/usbctools/typec/internal/log"
	"github.com/usbctools/typec/vdo"
	"github.com/usbctools/typec/vendordb"

	// Register the OS backends in probe order.
	_ "github.com/usbctools/typec/backend/sysfs"
	_ "github.com/usbctools/typec/backend/ucsidev"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("lstypec"),
		kong.Description(Description()),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	db := loadVendorDB(logger, cli.Vendors)

	ctx.Bind(logger)
	ctx.BindTo(db, (*vdo.VendorDB)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("LSTYPEC_CONFIG")
}

// loadVendorDB builds the vendor name database: the built-in table, the
// overlay candidates from the config dirs, then the user-specified file.
// Overlay problems are logged, not fatal.
func loadVendorDB(logger *slog.Logger, userFile string) *vendordb.DB {
	db := vendordb.New()
	for _, path := range configpaths.VendorFileCandidates() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := db.LoadFile(path); err != nil {
			logger.Warn("skipping vendor overlay", "file", path, "error", err)
		}
	}
	if userFile != "" {
		if err := db.LoadFile(userFile); err != nil {
			logger.Warn("skipping vendor overlay", "file", userFile, "error", err)
		}
	}
	return db
}
