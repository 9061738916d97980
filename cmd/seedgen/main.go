package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/angelmondragon/shoppingcart/internal/seed"
	"github.com/angelmondragon/shoppingcart/pkg/config"
	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/angelmondragon/shoppingcart/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	logg := logger.New(logger.Options{ServiceName: "seedgen"})

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		logg.Error(context.Background(), "seed generation failed", err)
		os.Exit(1)
	}
}

type options struct {
	cfg seed.GeneratorConfig
	out string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := options{cfg: seed.DefaultGeneratorConfig()}

	cmd := &cobra.Command{
		Use:           "seedgen",
		Short:         "Generate a synthetic seed document for the shopping cart store",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := outputPath(opts.out)
			if err != nil {
				return err
			}

			gen, err := seed.NewGenerator(opts.cfg)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeConfig, err, "invalid generator settings")
			}
			doc := gen.Generate()
			if err := seed.WriteFile(path, doc); err != nil {
				return err
			}

			fmt.Fprintf(stdout, "wrote %d products, %d carts, %d cart items to %s\n",
				len(doc.Products), len(doc.Carts), len(doc.CartItems), path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.cfg.Products, "products", seed.DefaultProducts, "number of products")
	flags.IntVar(&opts.cfg.Carts, "carts", seed.DefaultCarts, "number of carts")
	flags.IntVar(&opts.cfg.Items, "items", seed.DefaultItems, "number of cart items")
	flags.Uint64Var(&opts.cfg.Seed, "seed", 0, "random seed (0 picks one)")
	flags.StringVar(&opts.out, "out", "", "output file (default: $"+config.EnvSeedFile+")")

	return cmd
}

// outputPath prefers --out, then the configured seed file anchored at the base directory
// or the working directory.
func outputPath(out string) (string, error) {
	if out = strings.TrimSpace(out); out != "" {
		return filepath.Abs(out)
	}

	cfg := config.SeedConfig{
		File:    os.Getenv(config.EnvSeedFile),
		BaseDir: os.Getenv(config.EnvBaseDir),
	}
	if strings.TrimSpace(cfg.File) == "" {
		return "", pkgerrors.New(pkgerrors.CodeConfig, fmt.Sprintf("no output path: pass --out or set %s", config.EnvSeedFile))
	}
	if strings.TrimSpace(cfg.BaseDir) == "" {
		cfg.BaseDir = "."
	}
	return seed.ResolvePath(cfg)
}
