package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wayfind-dev/wayfind/internal/config"
	werrors "github.com/wayfind-dev/wayfind/internal/errors"
	"github.com/wayfind-dev/wayfind/pkg/router"
)

// loadProjectRouter builds a router from the project's pages tree. An
// explicit pagesDir overrides wayfind.json; without either, the default
// pages directory must exist.
func loadProjectRouter(pagesDir string) (*router.Router, *config.Config, error) {
	cfg := config.New()
	if pagesDir == "" {
		loaded, err := config.LoadFromWorkingDir()
		if err == nil {
			cfg = loaded
		}
		pagesDir = cfg.PagesPath()
	}
	if _, err := os.Stat(pagesDir); err != nil {
		return nil, nil, werrors.New("CL001").
			WithDetail("Pages directory " + pagesDir + " does not exist").
			WithSuggestion("Run wayfind inside a project, or pass --pages")
	}

	var opts []router.Option
	if cfg.Router.CaseInsensitive {
		opts = append(opts, router.WithCaseInsensitive())
	}
	r := router.New(opts...)
	if err := router.NewScanner(pagesDir).ScanInto(r); err != nil {
		return nil, nil, werrors.FromRouteError(err, "SC002")
	}
	return r, cfg, nil
}

func routesCmd() *cobra.Command {
	var pagesDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Compile the pages tree and print the route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := loadProjectRouter(pagesDir)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := router.BuildManifest(r).JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			printRouteTable(r)
			return nil
		},
	}

	cmd.Flags().StringVar(&pagesDir, "pages", "", "pages directory (overrides wayfind.json)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the manifest as JSON")
	return cmd
}

func printRouteTable(r *router.Router) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tKIND\tPATTERN\tSOURCE")
	for _, rt := range r.Routes() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", rt.Priority, rt.Kind, rt.Pattern, rt.SourcePath)
	}
	w.Flush()

	printTable := func(title string, table map[string]*router.Route) {
		if len(table) == 0 {
			return
		}
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println()
		info("%s:", title)
		for _, k := range keys {
			info("  %s → %s", k, table[k].SourcePath)
		}
	}
	printTable("Layouts", r.Layouts())
	printTable("Error pages", r.ErrorPages())
	printTable("Loading pages", r.LoadingPages())
	printTable("Templates", r.Templates())
	printTable("Not-found pages", r.NotFoundPages())

	if barriers := r.NoLayoutBarriers(); len(barriers) > 0 {
		keys := make([]string, 0, len(barriers))
		for k := range barriers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println()
		info("No-layout barriers:")
		for _, k := range keys {
			info("  %s", k)
		}
	}

	fmt.Println()
	success("%d routes compiled", len(r.Routes()))
}
